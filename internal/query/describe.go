package query

import (
	"strconv"
	"strings"

	"github.com/roach88/mixq/internal/mixed"
)

// String renders the query in textual query language form.
func (q *Query) String() string {
	var sb strings.Builder
	if q.Filter == nil {
		sb.WriteString("TRUEPREDICATE")
	} else {
		writePredicate(&sb, q.Filter, false)
	}
	for _, d := range q.Descriptors {
		sb.WriteByte(' ')
		writeDescriptor(&sb, d)
	}
	return sb.String()
}

// Describe renders a single predicate.
func Describe(p Predicate) string {
	var sb strings.Builder
	writePredicate(&sb, p, false)
	return sb.String()
}

func writePredicate(sb *strings.Builder, p Predicate, nested bool) {
	switch pred := p.(type) {
	case nil:
		sb.WriteString("TRUEPREDICATE")
	case IsNull:
		sb.WriteString(pred.Field + " == NULL")
	case IsNotNull:
		sb.WriteString(pred.Field + " != NULL")
	case IsEmpty:
		sb.WriteString(pred.Field + ".@size == 0")
	case IsNotEmpty:
		sb.WriteString(pred.Field + ".@size > 0")
	case Compare:
		sb.WriteString(pred.Field + " " + pred.Op.String() + " " + literal(pred.Value))
	case Between:
		sb.WriteString(pred.Field + " BETWEEN {" + literal(pred.Low) + ", " + literal(pred.High) + "}")
	case Text:
		sb.WriteString(pred.Field + " " + pred.Op.String())
		if pred.Case == Insensitive {
			sb.WriteString("[c]")
		}
		sb.WriteString(" " + strconv.Quote(pred.Value))
	case And:
		writeCompound(sb, pred.Predicates, " AND ", "TRUEPREDICATE", nested)
	case Or:
		writeCompound(sb, pred.Predicates, " OR ", "FALSEPREDICATE", nested)
	case Not:
		sb.WriteString("NOT (")
		writePredicate(sb, pred.Predicate, false)
		sb.WriteByte(')')
	case Always:
		if pred.Value {
			sb.WriteString("TRUEPREDICATE")
		} else {
			sb.WriteString("FALSEPREDICATE")
		}
	default:
		sb.WriteString("<unknown>")
	}
}

func writeCompound(sb *strings.Builder, preds []Predicate, sep, empty string, nested bool) {
	switch len(preds) {
	case 0:
		sb.WriteString(empty)
		return
	case 1:
		writePredicate(sb, preds[0], nested)
		return
	}
	if nested {
		sb.WriteByte('(')
	}
	for i, child := range preds {
		if i > 0 {
			sb.WriteString(sep)
		}
		writePredicate(sb, child, true)
	}
	if nested {
		sb.WriteByte(')')
	}
}

func writeDescriptor(sb *strings.Builder, d Descriptor) {
	switch desc := d.(type) {
	case SortBy:
		sb.WriteString("SORT(" + desc.Field + " " + desc.Order.String() + ")")
	case DistinctOn:
		sb.WriteString("DISTINCT(" + desc.Field + ")")
	case LimitTo:
		sb.WriteString("LIMIT(" + strconv.Itoa(desc.N) + ")")
	default:
		sb.WriteString("<unknown>")
	}
}

// literal renders a value the way the query language spells it.
func literal(v mixed.Value) string {
	if v.IsNull() {
		return "NULL"
	}
	kind, payload := mixed.Encode(v)
	switch v.Kind() {
	case mixed.KindString:
		return strconv.Quote(payload)
	case mixed.KindInteger, mixed.KindFloat, mixed.KindDouble, mixed.KindBoolean:
		return payload
	default:
		return kind + "(" + payload + ")"
	}
}
