package mixed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_PreservesEquality(t *testing.T) {
	for _, v := range sampleValues(t) {
		t.Run(v.Kind().String(), func(t *testing.T) {
			kind, payload := Encode(v)
			decoded, err := Decode(kind, payload)
			require.NoError(t, err)
			assert.Equal(t, v.Kind(), decoded.Kind())
			assert.True(t, Equal(v, decoded), "%s decoded as %s", v, decoded)
			assert.Equal(t, v.Key(), decoded.Key())
		})
	}
}

func TestEncode_Payloads(t *testing.T) {
	tests := []struct {
		value   Value
		kind    string
		payload string
	}{
		{Null(), "null", ""},
		{Int(-12), "integer", "-12"},
		{Float(1.5), "float", "1.5"},
		{Double(0.1), "double", "0.1"},
		{Bool(true), "boolean", "true"},
		{String("hello world"), "string", "hello world"},
		{Binary([]byte("hi")), "binary", "aGk="},
		{ObjectLink("Dog", 7), "object_link", "Dog#7"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			kind, payload := Encode(tt.value)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.payload, payload)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		payload string
	}{
		{"unknown kind", "list", "[]"},
		{"bad integer", "integer", "x"},
		{"bad boolean", "boolean", "maybe"},
		{"bad uuid", "uuid", "not-a-uuid"},
		{"bad object id", "object_id", "short"},
		{"link without key", "object_link", "Dog"},
		{"bad decimal", "decimal128", "1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.kind, tt.payload)
			assert.Error(t, err)
		})
	}
}

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal(Null())
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"null"}`, string(data))

	data, err = json.Marshal(Int(5))
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"integer","value":"5"}`, string(data))

	var decoded Value
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"string","value":"x"}`), &decoded))
	assert.True(t, Equal(String("x"), decoded))

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"null"}`), &decoded))
	assert.True(t, decoded.IsNull())

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"tuple"}`), &decoded))
}

func TestRecordJSON(t *testing.T) {
	data, err := json.Marshal(Record{ID: "r1", Seq: 3, Mixed: Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, `{"id":"r1","seq":3,"mixed":{"kind":"boolean","value":"false"}}`, string(data))
}
