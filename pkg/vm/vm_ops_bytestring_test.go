package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"
)

func popBytes(t *testing.T, ctx *Context) []byte {
	item, err := ctx.estack.Pop()
	require.NoError(t, err)
	b, err := item.TryBytes()
	require.NoError(t, err)
	return b
}

func TestByteStringCat(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.push(ctx, stackitem.NewByteArray([]byte("foo")))
	e.push(ctx, stackitem.NewByteArray([]byte("bar")))
	require.NoError(t, e.execByteString(ctx, Instruction{Opcode: opcode.CAT}))
	require.Equal(t, []byte("foobar"), popBytes(t, ctx))
}

func TestByteStringSubstr(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.push(ctx, stackitem.NewByteArray([]byte("hello world")))
	pushInt(e, ctx, 6)
	pushInt(e, ctx, 5)
	require.NoError(t, e.execByteString(ctx, Instruction{Opcode: opcode.SUBSTR}))
	require.Equal(t, []byte("world"), popBytes(t, ctx))
}

func TestByteStringSubstrClampsCountToRemainingLength(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.push(ctx, stackitem.NewByteArray([]byte("hello world")))
	pushInt(e, ctx, 6)
	pushInt(e, ctx, 1000)
	require.NoError(t, e.execByteString(ctx, Instruction{Opcode: opcode.SUBSTR}))
	require.Equal(t, []byte("world"), popBytes(t, ctx))
}

func TestByteStringSubstrClampsCountToMaxItemSize(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.limits.MaxItemSize = 3
	e.push(ctx, stackitem.NewByteArray([]byte("hello world")))
	pushInt(e, ctx, 0)
	pushInt(e, ctx, 1000)
	require.NoError(t, e.execByteString(ctx, Instruction{Opcode: opcode.SUBSTR}))
	require.Equal(t, []byte("hel"), popBytes(t, ctx))
}

func TestByteStringSubstrFaultsOnlyWhenIndexExceedsLength(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.push(ctx, stackitem.NewByteArray([]byte("hi")))
	pushInt(e, ctx, 100)
	pushInt(e, ctx, 3)
	require.ErrorIs(t, e.execByteString(ctx, Instruction{Opcode: opcode.SUBSTR}), errIndexOutOfRange)
}

func TestByteStringLeftRight(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.push(ctx, stackitem.NewByteArray([]byte("hello")))
	pushInt(e, ctx, 2)
	require.NoError(t, e.execByteString(ctx, Instruction{Opcode: opcode.LEFT}))
	require.Equal(t, []byte("he"), popBytes(t, ctx))

	e.push(ctx, stackitem.NewByteArray([]byte("hello")))
	pushInt(e, ctx, 2)
	require.NoError(t, e.execByteString(ctx, Instruction{Opcode: opcode.RIGHT}))
	require.Equal(t, []byte("lo"), popBytes(t, ctx))
}

func TestByteStringSize(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.push(ctx, stackitem.NewByteArray([]byte("hello")))
	require.NoError(t, e.execByteString(ctx, Instruction{Opcode: opcode.SIZE}))
	require.Equal(t, int64(5), popInt(t, ctx))
}

func TestByteStringOutOfRangeFaults(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.push(ctx, stackitem.NewByteArray([]byte("hi")))
	pushInt(e, ctx, 10)
	require.ErrorIs(t, e.execByteString(ctx, Instruction{Opcode: opcode.LEFT}), errIndexOutOfRange)
}

func TestByteStringCatTooBigFaults(t *testing.T) {
	e, ctx := newTestEngine(t)
	e.limits.MaxItemSize = 4
	e.push(ctx, stackitem.NewByteArray([]byte("foo")))
	e.push(ctx, stackitem.NewByteArray([]byte("bar")))
	require.ErrorIs(t, e.execByteString(ctx, Instruction{Opcode: opcode.CAT}), errItemTooBig)
}
