package mixed

import (
	"bytes"
	"cmp"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Compare returns -1, 0 or +1 ordering a against b.
//
// The order is total: values are ordered by kind rank first and by payload
// within a kind. Null sorts before every other value. Within Float and Double
// NaN sorts first and -0 equals +0; within Decimal128 NaN sorts first.
func Compare(a, b Value) int {
	if c := cmp.Compare(a.kind.Rank(), b.kind.Rank()); c != 0 {
		return c
	}

	switch a.kind {
	case KindNull:
		return 0
	case KindBoolean:
		return compareBool(a.b, b.b)
	case KindInteger:
		return cmp.Compare(a.i, b.i)
	case KindFloat, KindDouble:
		return cmp.Compare(a.f, b.f)
	case KindDecimal128:
		return compareDecimal(a.dec, b.dec)
	case KindString:
		return strings.Compare(a.s, b.s)
	case KindBinary:
		return bytes.Compare(a.bin, b.bin)
	case KindDate:
		return a.t.Compare(b.t)
	case KindObjectID:
		return a.oid.Compare(b.oid)
	case KindUUID:
		return bytes.Compare(a.uid[:], b.uid[:])
	case KindObjectLink:
		if c := strings.Compare(a.link.Class, b.link.Class); c != 0 {
			return c
		}
		return cmp.Compare(a.link.Key, b.link.Key)
	default:
		return 0
	}
}

// Equal reports whether a and b hold the same kind and an equal payload.
// Values of different kinds are never equal.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// Compare is the method form of Compare.
func (v Value) Compare(other Value) int {
	return Compare(v, other)
}

// Equal is the method form of Equal.
func (v Value) Equal(other Value) bool {
	return Equal(v, other)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func isDecimalNaN(d *apd.Decimal) bool {
	return d.Form == apd.NaN || d.Form == apd.NaNSignaling
}

// compareDecimal orders by numeric value; NaNs are equal to each other and
// lower than every number.
func compareDecimal(a, b *apd.Decimal) int {
	aNaN, bNaN := isDecimalNaN(a), isDecimalNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	}
	return a.Cmp(b)
}
