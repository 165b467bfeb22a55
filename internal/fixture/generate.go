package fixture

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/rs/xid"

	"github.com/roach88/mixq/internal/mixed"
)

// Generate returns the plan's values in scan order.
func Generate(p Plan) ([]mixed.Value, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rounds := 0
	for _, g := range p.Groups {
		rounds = max(rounds, g.Records)
	}

	out := make([]mixed.Value, 0, p.Total())
	for r := range rounds {
		for _, g := range p.Groups {
			if r >= g.Records {
				continue
			}
			v, err := ValueAt(g.Kind, r%g.Distinct)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// MustGenerate is Generate for plans known to be valid.
func MustGenerate(p Plan) []mixed.Value {
	values, err := Generate(p)
	if err != nil {
		panic(err)
	}
	return values
}

// ValueAt returns the j-th value of a kind. Distinct j give distinct values.
func ValueAt(kind mixed.Kind, j int) (mixed.Value, error) {
	if j < 0 {
		return mixed.Value{}, fmt.Errorf("value index must not be negative, got %d", j)
	}
	switch kind {
	case mixed.KindNull:
		return mixed.Null(), nil
	case mixed.KindBoolean:
		return mixed.Bool(j%2 == 0), nil
	case mixed.KindInteger:
		return mixed.Int(int64(j) - 3), nil
	case mixed.KindFloat:
		return mixed.Float(float32(j)*1.5 + 0.25), nil
	case mixed.KindDouble:
		return mixed.Double(float64(j)*2.25 - 1), nil
	case mixed.KindString:
		return mixed.String(fmt.Sprintf("hello world %d", j)), nil
	case mixed.KindBinary:
		return mixed.Binary([]byte{byte(j), byte(j + 1)}), nil
	case mixed.KindDate:
		return mixed.Date(time.Unix(int64(j)*86400, 0).UTC()), nil
	case mixed.KindObjectID:
		var b [12]byte
		binary.BigEndian.PutUint32(b[:4], uint32(1600000000+j))
		b[11] = byte(j)
		id, err := xid.FromBytes(b[:])
		if err != nil {
			return mixed.Value{}, err
		}
		return mixed.ObjectID(id), nil
	case mixed.KindDecimal128:
		return mixed.Decimal(apd.New(int64(j)*125, -2)), nil
	case mixed.KindUUID:
		return mixed.UUID(uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "mixed-%d", j))), nil
	case mixed.KindObjectLink:
		return mixed.ObjectLink("MixedNotIndexed", int64(j)), nil
	default:
		return mixed.Value{}, fmt.Errorf("unknown kind %s", kind)
	}
}
