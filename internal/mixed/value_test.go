package mixed

import (
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_NamesRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)

		text, err := k.MarshalText()
		require.NoError(t, err)
		var back Kind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, k, back)
	}

	_, err := ParseKind("list")
	assert.Error(t, err)
	assert.False(t, Kind(200).Valid())
}

func TestKind_NullRanksFirst(t *testing.T) {
	for _, k := range Kinds() {
		if k != KindNull {
			assert.Less(t, KindNull.Rank(), k.Rank(), k.String())
		}
	}
}

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.True(t, Equal(v, Null()))
	assert.Equal(t, "NULL", v.String())
}

func TestValue_AccessorsCheckKind(t *testing.T) {
	n, ok := Int(7).AsInt()
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	_, ok = Int(7).AsDouble()
	assert.False(t, ok)

	_, ok = Null().AsString()
	assert.False(t, ok)

	link, ok := ObjectLink("Dog", 3).AsLink()
	assert.True(t, ok)
	assert.Equal(t, "Dog#3", link.String())
}

func TestValue_BinaryIsCopied(t *testing.T) {
	src := []byte{1, 2}
	v := Binary(src)
	src[0] = 9

	got, ok := v.AsBinary()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2}, got)

	got[1] = 9
	again, _ := v.AsBinary()
	assert.Equal(t, []byte{1, 2}, again)
}

func TestValue_DecimalIsCopied(t *testing.T) {
	d := apd.New(15, -1)
	v := Decimal(d)
	d.SetInt64(99)

	got, ok := v.AsDecimal()
	require.True(t, ok)
	assert.Equal(t, "1.5", got.String())
	assert.True(t, Decimal(nil).IsNull())
}

func TestValue_DateDropsMonotonicReading(t *testing.T) {
	now := time.Now()
	got, ok := Date(now).AsDate()
	require.True(t, ok)
	assert.Equal(t, now.Round(0), got)
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, `"hi"`, String("hi").String())
	assert.Equal(t, "integer(-4)", Int(-4).String())
	assert.Equal(t, "boolean(true)", Bool(true).String())
}
