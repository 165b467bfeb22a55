package mixed

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

// Encode returns the storage form of v: the kind name and a text payload.
// The payload is empty for Null. Decode(Encode(v)) is Equal to v.
func Encode(v Value) (kind string, payload string) {
	return v.kind.String(), encodePayload(v)
}

// encodePayload renders the payload of v as text.
func encodePayload(v Value) string {
	switch v.kind {
	case KindNull:
		return ""
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindString:
		return v.s
	case KindBinary:
		return base64.StdEncoding.EncodeToString(v.bin)
	case KindDate:
		return v.t.UTC().Format(time.RFC3339Nano)
	case KindObjectID:
		return v.oid.String()
	case KindDecimal128:
		return v.dec.String()
	case KindUUID:
		return v.uid.String()
	case KindObjectLink:
		return v.link.String()
	default:
		return ""
	}
}

// Decode rebuilds a value from its storage form.
func Decode(kind string, payload string) (Value, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Value{}, err
	}
	v, err := decodePayload(k, payload)
	if err != nil {
		return Value{}, fmt.Errorf("decode %s payload: %w", k, err)
	}
	return v, nil
}

func decodePayload(k Kind, payload string) (Value, error) {
	switch k {
	case KindNull:
		return Null(), nil
	case KindInteger:
		n, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return Int(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(payload, 32)
		if err != nil {
			return Value{}, err
		}
		return Float(float32(f)), nil
	case KindDouble:
		f, err := strconv.ParseFloat(payload, 64)
		if err != nil {
			return Value{}, err
		}
		return Double(f), nil
	case KindBoolean:
		b, err := strconv.ParseBool(payload)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case KindString:
		return String(payload), nil
	case KindBinary:
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindBinary, bin: b}, nil
	case KindDate:
		t, err := time.Parse(time.RFC3339Nano, payload)
		if err != nil {
			return Value{}, err
		}
		return Date(t), nil
	case KindObjectID:
		id, err := xid.FromString(payload)
		if err != nil {
			return Value{}, err
		}
		return ObjectID(id), nil
	case KindDecimal128:
		return DecimalFromString(payload)
	case KindUUID:
		id, err := uuid.Parse(payload)
		if err != nil {
			return Value{}, err
		}
		return UUID(id), nil
	case KindObjectLink:
		i := strings.LastIndex(payload, "#")
		if i < 0 {
			return Value{}, fmt.Errorf("missing '#' in link %q", payload)
		}
		key, err := strconv.ParseInt(payload[i+1:], 10, 64)
		if err != nil {
			return Value{}, err
		}
		return ObjectLink(payload[:i], key), nil
	default:
		return Value{}, fmt.Errorf("unsupported kind %s", k)
	}
}

// jsonValue is the wire shape of a Value.
type jsonValue struct {
	Kind  Kind    `json:"kind"`
	Value *string `json:"value,omitempty"`
}

// MarshalJSON implements json.Marshaler as {"kind": ..., "value": ...}.
// The value member is omitted for Null.
func (v Value) MarshalJSON() ([]byte, error) {
	out := jsonValue{Kind: v.kind}
	if !v.IsNull() {
		payload := encodePayload(v)
		out.Value = &payload
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var in jsonValue
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var payload string
	if in.Value != nil {
		payload = *in.Value
	}
	decoded, err := decodePayload(in.Kind, payload)
	if err != nil {
		return fmt.Errorf("decode %s value: %w", in.Kind, err)
	}
	*v = decoded
	return nil
}
