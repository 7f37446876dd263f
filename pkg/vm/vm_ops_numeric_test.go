package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"
)

func pushInt(e *Engine, ctx *Context, n int64) {
	e.push(ctx, stackitem.NewBigInteger(bigFromInt64(n)))
}

func popInt(t *testing.T, ctx *Context) int64 {
	item, err := ctx.estack.Pop()
	require.NoError(t, err)
	return mustInt(item)
}

func TestNumericAddSubMulDiv(t *testing.T) {
	e, ctx := newTestEngine(t)

	pushInt(e, ctx, 3)
	pushInt(e, ctx, 4)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.ADD}))
	require.Equal(t, int64(7), popInt(t, ctx))

	pushInt(e, ctx, 10)
	pushInt(e, ctx, 4)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.SUB}))
	require.Equal(t, int64(6), popInt(t, ctx))

	pushInt(e, ctx, 6)
	pushInt(e, ctx, 7)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.MUL}))
	require.Equal(t, int64(42), popInt(t, ctx))

	pushInt(e, ctx, 17)
	pushInt(e, ctx, 5)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.DIV}))
	require.Equal(t, int64(3), popInt(t, ctx))

	pushInt(e, ctx, 17)
	pushInt(e, ctx, 5)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.MOD}))
	require.Equal(t, int64(2), popInt(t, ctx))
}

func TestNumericDivModByZeroFaults(t *testing.T) {
	e, ctx := newTestEngine(t)

	pushInt(e, ctx, 1)
	pushInt(e, ctx, 0)
	require.ErrorIs(t, e.execNumeric(ctx, Instruction{Opcode: opcode.DIV}), errDivideByZero)

	pushInt(e, ctx, 1)
	pushInt(e, ctx, 0)
	require.ErrorIs(t, e.execNumeric(ctx, Instruction{Opcode: opcode.MOD}), errDivideByZero)
}

func TestNumericIncDecSignNegateAbs(t *testing.T) {
	e, ctx := newTestEngine(t)

	pushInt(e, ctx, 5)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.INC}))
	require.Equal(t, int64(6), popInt(t, ctx))

	pushInt(e, ctx, 5)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.DEC}))
	require.Equal(t, int64(4), popInt(t, ctx))

	pushInt(e, ctx, -9)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.SIGN}))
	require.Equal(t, int64(-1), popInt(t, ctx))

	pushInt(e, ctx, 5)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.NEGATE}))
	require.Equal(t, int64(-5), popInt(t, ctx))

	pushInt(e, ctx, -5)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.ABS}))
	require.Equal(t, int64(5), popInt(t, ctx))
}

func TestNumericComparisons(t *testing.T) {
	e, ctx := newTestEngine(t)

	pushInt(e, ctx, 3)
	pushInt(e, ctx, 5)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.LT}))
	b, err := ctx.estack.Pop()
	require.NoError(t, err)
	ok, err := b.TryBool()
	require.NoError(t, err)
	require.True(t, ok)

	pushInt(e, ctx, 1)
	pushInt(e, ctx, 9)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.MAX}))
	require.Equal(t, int64(9), popInt(t, ctx))

	pushInt(e, ctx, 1)
	pushInt(e, ctx, 9)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.MIN}))
	require.Equal(t, int64(1), popInt(t, ctx))
}

func TestNumericWithin(t *testing.T) {
	e, ctx := newTestEngine(t)

	pushInt(e, ctx, 5)
	pushInt(e, ctx, 0)
	pushInt(e, ctx, 10)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.WITHIN}))
	b, err := ctx.estack.Pop()
	require.NoError(t, err)
	ok, err := b.TryBool()
	require.NoError(t, err)
	require.True(t, ok)

	pushInt(e, ctx, 10)
	pushInt(e, ctx, 0)
	pushInt(e, ctx, 10)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.WITHIN}))
	b, err = ctx.estack.Pop()
	require.NoError(t, err)
	ok, err = b.TryBool()
	require.NoError(t, err)
	require.False(t, ok, "upper bound is exclusive")
}

func TestNumericShiftLeftRight(t *testing.T) {
	e, ctx := newTestEngine(t)

	pushInt(e, ctx, 1)
	pushInt(e, ctx, 3)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.SHL}))
	require.Equal(t, int64(8), popInt(t, ctx))

	pushInt(e, ctx, 8)
	pushInt(e, ctx, 3)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.SHR}))
	require.Equal(t, int64(1), popInt(t, ctx))
}

func TestNumericShiftZeroIsNoOp(t *testing.T) {
	e, ctx := newTestEngine(t)

	pushInt(e, ctx, 42)
	pushInt(e, ctx, 0)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.SHL}))
	require.Equal(t, int64(42), popInt(t, ctx))
}

func TestNumericShiftOutOfRangeFaults(t *testing.T) {
	e, ctx := newTestEngine(t)

	pushInt(e, ctx, 1)
	pushInt(e, ctx, int64(e.limits.MaxShift)+1)
	require.ErrorIs(t, e.execNumeric(ctx, Instruction{Opcode: opcode.SHL}), errShiftOutOfRange)
}

func TestNumericBoolOps(t *testing.T) {
	e, ctx := newTestEngine(t)

	e.pushBool(ctx, true)
	e.pushBool(ctx, false)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.BOOLAND}))
	b, err := ctx.estack.Pop()
	require.NoError(t, err)
	ok, err := b.TryBool()
	require.NoError(t, err)
	require.False(t, ok)

	e.pushBool(ctx, true)
	e.pushBool(ctx, false)
	require.NoError(t, e.execNumeric(ctx, Instruction{Opcode: opcode.BOOLOR}))
	b, err = ctx.estack.Pop()
	require.NoError(t, err)
	ok, err = b.TryBool()
	require.NoError(t, err)
	require.True(t, ok)
}
