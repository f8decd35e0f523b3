// File: lixenwraith/conftree/value_test.go
package conftree

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValueNormalization covers the JSON-canonical mapping from raw Go
// values into the closed union.
func TestValueNormalization(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Value
	}{
		{"Nil", nil, NullValue()},
		{"Bool", true, BoolValue(true)},
		{"Int", 42, IntValue(42)},
		{"Int64", int64(-7), IntValue(-7)},
		{"Uint", uint(3), IntValue(3)},
		{"Float", 0.25, FloatValue(0.25)},
		{"Float32", float32(0.5), FloatValue(0.5)},
		{"String", "hi", StringValue("hi")},
		{"JSONNumberInt", json.Number("12"), IntValue(12)},
		{"JSONNumberFloat", json.Number("1.5"), FloatValue(1.5)},
		{"NamedIntType", 2 * time.Second, IntValue(int64(2 * time.Second))},
		{"PassThroughValue", IntValue(9), IntValue(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := valueFromAny(tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	t.Run("TypedSlices", func(t *testing.T) {
		got, err := valueFromAny([]string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, KindTuple, got.Kind())
		assert.Equal(t, KindString, got.ElemKind())

		got, err = valueFromAny([]any{1, 2, 3})
		require.NoError(t, err)
		assert.Equal(t, KindInt, got.ElemKind())
		assert.Len(t, got.Elems(), 3)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := valueFromAny(struct{}{})
		assert.ErrorIs(t, err, ErrInvalidValue)
		_, err = valueFromAny(func() {})
		assert.ErrorIs(t, err, ErrInvalidValue)
	})
}

// TestTupleInvariants checks that tuples are never empty, homogeneous, and
// scalar-only.
func TestTupleInvariants(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		_, err := TupleValue()
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("Heterogeneous", func(t *testing.T) {
		_, err := TupleValue(IntValue(1), StringValue("a"))
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("NullElement", func(t *testing.T) {
		_, err := TupleValue(NullValue())
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("NestedTuple", func(t *testing.T) {
		inner, err := TupleValue(IntValue(1))
		require.NoError(t, err)
		_, err = TupleValue(inner)
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("ElemsAreCopied", func(t *testing.T) {
		tuple, err := TupleValue(IntValue(1), IntValue(2))
		require.NoError(t, err)
		elems := tuple.Elems()
		elems[0] = IntValue(99)
		again := tuple.Elems()
		assert.Equal(t, IntValue(1), again[0])
	})
}

// TestValueFormatting covers display formatting and type names used by the
// report and help output.
func TestValueFormatting(t *testing.T) {
	tuple, err := TupleValue(IntValue(1), IntValue(2))
	require.NoError(t, err)

	tests := []struct {
		value    Value
		str      string
		typeName string
	}{
		{NullValue(), "null", "null"},
		{BoolValue(true), "True", "bool"},
		{BoolValue(false), "False", "bool"},
		{IntValue(42), "42", "int"},
		{FloatValue(3.5), "3.5", "float"},
		{FloatValue(1e-05), "1e-05", "float"},
		{StringValue("walk"), "walk", "string"},
		{tuple, "[1, 2]", "ints"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.str, tt.value.String())
		assert.Equal(t, tt.typeName, tt.value.TypeName())
	}
}

// TestKeyClassification covers the literal/pattern charset split.
func TestKeyClassification(t *testing.T) {
	literals := []string{"a", "net.depth", "snake_case", "with-dash", "A9"}
	patterns := []string{`net\..*`, "a b", "x+", "per%cent", "[abc]"}

	for _, key := range literals {
		assert.Equal(t, keyLiteral, classifyKey(key), key)
	}
	for _, key := range patterns {
		assert.Equal(t, keyPattern, classifyKey(key), key)
	}
}
