package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"
)

func TestBitwiseInvert(t *testing.T) {
	e, ctx := newTestEngine(t)
	pushInt(e, ctx, 5)
	require.NoError(t, e.execBitwise(ctx, Instruction{Opcode: opcode.INVERT}))
	require.Equal(t, int64(-6), popInt(t, ctx))
}

func TestBitwiseAndOrXor(t *testing.T) {
	e, ctx := newTestEngine(t)

	pushInt(e, ctx, 49)
	pushInt(e, ctx, 35)
	require.NoError(t, e.execBitwise(ctx, Instruction{Opcode: opcode.AND}))
	require.Equal(t, int64(33), popInt(t, ctx))

	pushInt(e, ctx, 49)
	pushInt(e, ctx, 35)
	require.NoError(t, e.execBitwise(ctx, Instruction{Opcode: opcode.OR}))
	require.Equal(t, int64(51), popInt(t, ctx))

	pushInt(e, ctx, 49)
	pushInt(e, ctx, 35)
	require.NoError(t, e.execBitwise(ctx, Instruction{Opcode: opcode.XOR}))
	require.Equal(t, int64(18), popInt(t, ctx))
}

func TestBitwiseEqualComparesByValue(t *testing.T) {
	e, ctx := newTestEngine(t)

	pushInt(e, ctx, 10)
	pushInt(e, ctx, 10)
	require.NoError(t, e.execBitwise(ctx, Instruction{Opcode: opcode.EQUAL}))
	b, err := ctx.estack.Pop()
	require.NoError(t, err)
	ok, err := b.TryBool()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBitwiseEqualArraysCompareByIdentity(t *testing.T) {
	e, ctx := newTestEngine(t)
	a := stackitem.NewArray(nil)
	b := stackitem.NewArray(nil)
	e.push(ctx, a)
	e.push(ctx, b)
	require.NoError(t, e.execBitwise(ctx, Instruction{Opcode: opcode.EQUAL}))
	item, err := ctx.estack.Pop()
	require.NoError(t, err)
	ok, err := item.TryBool()
	require.NoError(t, err)
	require.False(t, ok, "distinct array instances with the same contents are not Equal")
}

// TestBitwiseEqualDoesNotCompareAcrossPrimitiveTypes pins current behavior:
// Integer 1 and the single byte 0x01 share a canonical byte span but are
// not EQUAL, because each primitive's Equals is gated on the operand's
// concrete type before any byte-span comparison happens.
func TestBitwiseEqualDoesNotCompareAcrossPrimitiveTypes(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.push(ctx, stackitem.NewBigInteger(bigFromInt64(1)))
	e.push(ctx, stackitem.NewByteArray([]byte{0x01}))
	require.NoError(t, e.execBitwise(ctx, Instruction{Opcode: opcode.EQUAL}))
	item, err := ctx.estack.Pop()
	require.NoError(t, err)
	ok, err := item.TryBool()
	require.NoError(t, err)
	require.False(t, ok)
}
