package mixed

import (
	"encoding/hex"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// keySep separates the kind name from the payload in a canonical key.
const keySep = "\x1f"

// Key returns the canonical (kind, payload) representation of v.
//
// Two values have the same key exactly when Equal reports true, so the key
// can stand in for the value in hash sets (distinct) and in SQL equality
// pushdown. It must remain stable: it is persisted by the store.
func (v Value) Key() string {
	prefix := v.kind.String() + keySep
	switch v.kind {
	case KindNull:
		return v.kind.String()
	case KindInteger:
		return prefix + strconv.FormatInt(v.i, 10)
	case KindFloat, KindDouble:
		return prefix + floatKey(v.f)
	case KindBoolean:
		if v.b {
			return prefix + "1"
		}
		return prefix + "0"
	case KindString:
		return prefix + v.s
	case KindBinary:
		return prefix + hex.EncodeToString(v.bin)
	case KindDate:
		return prefix + strconv.FormatInt(v.t.Unix(), 10) + "." + strconv.Itoa(v.t.Nanosecond())
	case KindObjectID:
		return prefix + hex.EncodeToString(v.oid.Bytes())
	case KindDecimal128:
		return prefix + decimalKey(v.dec)
	case KindUUID:
		return prefix + hex.EncodeToString(v.uid[:])
	case KindObjectLink:
		return prefix + v.link.String()
	default:
		return "invalid"
	}
}

// floatKey folds every NaN to one key and -0 onto +0, matching Compare.
func floatKey(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case f == 0:
		return "0"
	default:
		return strconv.FormatUint(math.Float64bits(f), 16)
	}
}

// decimalKey strips trailing zeros so that 2.50 and 2.5 share a key.
func decimalKey(d *apd.Decimal) string {
	if isDecimalNaN(d) {
		return "NaN"
	}
	var reduced apd.Decimal
	reduced.Reduce(d)
	return reduced.Text('E')
}
