package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"
)

func TestLiteralPushBytesPushesExactlyOneItem(t *testing.T) {
	e, ctx := newTestEngine(t)
	instr := Instruction{Opcode: opcode.Opcode(3), Parameter: []byte{1, 2, 3}}
	require.NoError(t, e.execLiteralPush(ctx, instr))
	require.Equal(t, 1, ctx.estack.Count(), "a PUSHBYTES instruction pushes exactly one item")
	require.Equal(t, []byte{1, 2, 3}, popBytes(t, ctx))
}

func TestLiteralPushM1AndPushN(t *testing.T) {
	e, ctx := newTestEngine(t)
	require.NoError(t, e.execLiteralPush(ctx, Instruction{Opcode: opcode.PUSHM1}))
	require.Equal(t, int64(-1), popInt(t, ctx))

	require.NoError(t, e.execLiteralPush(ctx, Instruction{Opcode: opcode.PUSH16}))
	require.Equal(t, int64(16), popInt(t, ctx))
}

func TestLiteralPushNull(t *testing.T) {
	e, ctx := newTestEngine(t)
	require.NoError(t, e.execLiteralPush(ctx, Instruction{Opcode: opcode.PUSHNULL}))
	item, err := ctx.estack.Pop()
	require.NoError(t, err)
	_, ok := item.(stackitem.Null)
	require.True(t, ok)
}

func TestRetCopiesResultStackWithLiveReferences(t *testing.T) {
	e := NewEngine(nil)
	script := []byte{byte(opcode.PUSH1), byte(opcode.NEWARRAY), byte(opcode.RET)}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, HALT, state)
	require.Equal(t, 1, e.ResultStack().Count())
	// The array returned to the top level must still be tracked as live,
	// not reclaimed after unloadContext's blanket dereference.
	// One slot for the array itself, one for its single element.
	require.Equal(t, 2, e.StackItemCount())
}

func TestExceptionThrowIfNot(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.pushBool(ctx, true)
	require.NoError(t, e.execException(ctx, Instruction{Opcode: opcode.THROWIFNOT}))

	e.pushBool(ctx, false)
	require.ErrorIs(t, e.execException(ctx, Instruction{Opcode: opcode.THROWIFNOT}), errThrow)
}

func TestJumpOutOfBoundsFaults(t *testing.T) {
	e, ctx := newTestEngine(t)
	ctx.script = Script{byte(opcode.JMP), 0xFF, 0x7F, byte(opcode.RET)}
	require.Error(t, e.execJump(ctx, Instruction{Opcode: opcode.JMP, Parameter: []byte{0xFF, 0x7F}}))
}
