package stackitem

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToDebugValuePrimitives(t *testing.T) {
	v, err := ToDebugValue(Null{})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"type": "null"}, v)

	v, err = ToDebugValue(Bool(true))
	require.NoError(t, err)
	require.Equal(t, "boolean", v["type"])
	require.Equal(t, true, v["value"])

	v, err = ToDebugValue(NewBigInteger(big.NewInt(42)))
	require.NoError(t, err)
	require.Equal(t, "integer", v["type"])
	require.Equal(t, "42", v["value"])

	v, err = ToDebugValue(NewByteArray([]byte{1, 2}))
	require.NoError(t, err)
	require.Equal(t, "bytestring", v["type"])
}

func TestToDebugValueArray(t *testing.T) {
	arr := NewArray([]Item{Make(1), Make(2)})
	v, err := ToDebugValue(arr)
	require.NoError(t, err)
	require.Equal(t, "array", v["type"])
	elems := v["value"].([]any)
	require.Len(t, elems, 2)
}

func TestToDebugValueRecursive(t *testing.T) {
	arr := NewArray(nil)
	arr.value = []Item{arr}
	_, err := ToDebugValue(arr)
	require.ErrorIs(t, err, ErrRecursive)
}

func TestToDebugValueInterop(t *testing.T) {
	_, err := ToDebugValue(NewInterop(42))
	require.ErrorIs(t, err, ErrUnserializable)
}
