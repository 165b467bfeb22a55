package mixed

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/rs/xid"
)

// Value is a dynamically-typed scalar.
//
// Exactly one payload field is meaningful per kind:
//
//	Integer, Date -> i / t
//	Float, Double -> f (Float payloads are float32-exact)
//	Boolean       -> b
//	String        -> s
//	Binary        -> bin
//	ObjectID      -> oid
//	Decimal128    -> dec
//	UUID          -> uid
//	ObjectLink    -> link
//
// The zero Value is Null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
	bin  []byte
	t    time.Time
	oid  xid.ID
	dec  *apd.Decimal
	uid  uuid.UUID
	link Link
}

// Link is the payload of an ObjectLink value: a reference to an object of
// another class by primary key.
type Link struct {
	Class string `json:"class"`
	Key   int64  `json:"key"`
}

// String returns "Class#Key".
func (l Link) String() string {
	return l.Class + "#" + strconv.FormatInt(l.Key, 10)
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Int creates an Integer value.
func Int(n int64) Value {
	return Value{kind: KindInteger, i: n}
}

// Float creates a Float value.
func Float(f float32) Value {
	return Value{kind: KindFloat, f: float64(f)}
}

// Double creates a Double value.
func Double(f float64) Value {
	return Value{kind: KindDouble, f: f}
}

// Bool creates a Boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// String creates a String value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Binary creates a Binary value. The slice is copied.
func Binary(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: KindBinary, bin: cp}
}

// Date creates a Date value. The monotonic clock reading is stripped so that
// equal instants compare equal.
func Date(t time.Time) Value {
	return Value{kind: KindDate, t: t.Round(0)}
}

// ObjectID creates an ObjectID value.
func ObjectID(id xid.ID) Value {
	return Value{kind: KindObjectID, oid: id}
}

// Decimal creates a Decimal128 value. The decimal is copied; a nil decimal
// yields Null.
func Decimal(d *apd.Decimal) Value {
	if d == nil {
		return Null()
	}
	return Value{kind: KindDecimal128, dec: new(apd.Decimal).Set(d)}
}

// DecimalFromString parses s as a Decimal128 value.
func DecimalFromString(s string) (Value, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return Value{kind: KindDecimal128, dec: d}, nil
}

// UUID creates a UUID value.
func UUID(id uuid.UUID) Value {
	return Value{kind: KindUUID, uid: id}
}

// ObjectLink creates an ObjectLink value.
func ObjectLink(class string, key int64) Value {
	return Value{kind: KindObjectLink, link: Link{Class: class, Key: key}}
}

// Kind returns the discriminant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsInt returns the Integer payload.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// AsFloat returns the Float payload.
func (v Value) AsFloat() (float32, bool) {
	return float32(v.f), v.kind == KindFloat
}

// AsDouble returns the Double payload.
func (v Value) AsDouble() (float64, bool) {
	return v.f, v.kind == KindDouble
}

// AsBool returns the Boolean payload.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBoolean
}

// AsString returns the String payload.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsBinary returns a copy of the Binary payload.
func (v Value) AsBinary() ([]byte, bool) {
	if v.kind != KindBinary {
		return nil, false
	}
	cp := make([]byte, len(v.bin))
	copy(cp, v.bin)
	return cp, true
}

// AsDate returns the Date payload.
func (v Value) AsDate() (time.Time, bool) {
	return v.t, v.kind == KindDate
}

// AsObjectID returns the ObjectID payload.
func (v Value) AsObjectID() (xid.ID, bool) {
	return v.oid, v.kind == KindObjectID
}

// AsDecimal returns a copy of the Decimal128 payload.
func (v Value) AsDecimal() (*apd.Decimal, bool) {
	if v.kind != KindDecimal128 {
		return nil, false
	}
	return new(apd.Decimal).Set(v.dec), true
}

// AsUUID returns the UUID payload.
func (v Value) AsUUID() (uuid.UUID, bool) {
	return v.uid, v.kind == KindUUID
}

// AsLink returns the ObjectLink payload.
func (v Value) AsLink() (Link, bool) {
	return v.link, v.kind == KindObjectLink
}

// String renders the value for humans and for textual query descriptions.
// Strings are double-quoted; null renders as NULL.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindString:
		return strconv.Quote(v.s)
	default:
		return v.kind.String() + "(" + encodePayload(v) + ")"
	}
}
