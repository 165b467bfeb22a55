package mixed

import "fmt"

// Kind identifies which payload a Value carries.
// The set is closed; ParseKind rejects anything else.
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindDouble
	KindBoolean
	KindString
	KindBinary
	KindDate
	KindObjectID
	KindDecimal128
	KindUUID
	KindObjectLink
)

// kindNames are stable: they appear in the store, in YAML scenarios,
// in CUE fixture plans and in JSON output.
var kindNames = [...]string{
	KindNull:       "null",
	KindInteger:    "integer",
	KindFloat:      "float",
	KindDouble:     "double",
	KindBoolean:    "boolean",
	KindString:     "string",
	KindBinary:     "binary",
	KindDate:       "date",
	KindObjectID:   "object_id",
	KindDecimal128: "decimal128",
	KindUUID:       "uuid",
	KindObjectLink: "object_link",
}

// kindRank is the cross-kind sort order. It is a contract: changing it
// changes the result order of every sorted query.
//
//	null < boolean < integer < float < double < decimal128 < string
//	     < binary < date < object_id < uuid < object_link
var kindRank = [...]int{
	KindNull:       0,
	KindBoolean:    1,
	KindInteger:    2,
	KindFloat:      3,
	KindDouble:     4,
	KindDecimal128: 5,
	KindString:     6,
	KindBinary:     7,
	KindDate:       8,
	KindObjectID:   9,
	KindUUID:       10,
	KindObjectLink: 11,
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// String returns the stable name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Rank returns the position of the kind in the cross-kind sort order.
func (k Kind) Rank() int {
	if int(k) < len(kindRank) {
		return kindRank[k]
	}
	return len(kindRank)
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

// ParseKind returns the kind with the given stable name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
