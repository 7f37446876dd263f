package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timloh-gtoken/neo-vm/pkg/config"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
)

func newTestEngine(t *testing.T) (*Engine, *Context) {
	e := NewEngine(nil)
	ctx, err := e.LoadScript([]byte{byte(opcode.RET)}, -1)
	require.NoError(t, err)
	return e, ctx
}

func TestEngineHaltsOnEmptyScript(t *testing.T) {
	e := NewEngine(nil)
	_, err := e.LoadScript(nil, -1)
	require.NoError(t, err)
	state := e.Execute()
	require.Equal(t, HALT, state)
}

func TestEngineExecutesSimpleArithmetic(t *testing.T) {
	e := NewEngine(nil)
	script := []byte{byte(opcode.PUSH1), byte(opcode.PUSH2), byte(opcode.ADD), byte(opcode.RET)}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, HALT, state)
	require.Equal(t, 1, e.ResultStack().Count())
	top, err := e.ResultStack().Peek(0)
	require.NoError(t, err)
	require.Equal(t, int64(3), mustInt(top))
}

func TestEngineFaultsOnDivideByZero(t *testing.T) {
	e := NewEngine(nil)
	script := []byte{byte(opcode.PUSH1), byte(opcode.PUSH0), byte(opcode.DIV), byte(opcode.RET)}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, FAULT, state)
}

func TestEngineFaultsOnStackUnderflow(t *testing.T) {
	e := NewEngine(nil)
	script := []byte{byte(opcode.ADD), byte(opcode.RET)}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, FAULT, state)
}

func TestEngineJumpSkipsInstructions(t *testing.T) {
	e := NewEngine(nil)
	// JMP +4 (relative to JMP's own position at ip 0) lands directly on RET
	// at ip 4, skipping the NOP at ip 3.
	script := []byte{byte(opcode.JMP), 4, 0, byte(opcode.NOP), byte(opcode.RET)}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, HALT, state)
}

func TestEngineJumpIfRespectsCondition(t *testing.T) {
	e := NewEngine(nil)
	// PUSH0 (false) JMPIFNOT +4 (relative to its own ip 1) skips PUSHM1 and
	// lands directly on RET.
	script := []byte{
		byte(opcode.PUSH0), byte(opcode.JMPIFNOT), 4, 0,
		byte(opcode.PUSHM1), byte(opcode.RET),
	}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, HALT, state)
	require.Equal(t, 0, e.ResultStack().Count())
}

func TestEngineCallReturnsValueToCaller(t *testing.T) {
	e := NewEngine(nil)
	// main: PUSH5 CALL(+4 -> ip5) RET
	// sub:  PUSH3 PUSH4 ADD RET
	script := []byte{
		byte(opcode.PUSH5), byte(opcode.CALL), 4, 0, byte(opcode.RET),
		byte(opcode.PUSH3), byte(opcode.PUSH4), byte(opcode.ADD), byte(opcode.RET),
	}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, HALT, state)
	require.Equal(t, 2, e.ResultStack().Count())

	top, err := e.ResultStack().Peek(0)
	require.NoError(t, err)
	require.Equal(t, int64(7), mustInt(top))

	bottom, err := e.ResultStack().Peek(1)
	require.NoError(t, err)
	require.Equal(t, int64(5), mustInt(bottom))
}

func TestEngineInvocationStackOverflow(t *testing.T) {
	e := NewEngine(nil)
	e.limits.MaxInvocationStackSize = 1
	_, err := e.LoadScript([]byte{byte(opcode.RET)}, -1)
	require.NoError(t, err)

	_, err = e.LoadScript([]byte{byte(opcode.RET)}, -1)
	require.ErrorIs(t, err, errInvocationStackFull)
}

func TestEngineSyscallInvokesHook(t *testing.T) {
	e := NewEngine(nil)
	var gotID uint32
	e.OnSysCall = func(id uint32) bool {
		gotID = id
		return true
	}
	script := []byte{byte(opcode.SYSCALL), 0x2A, 0, 0, 0, byte(opcode.RET)}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, HALT, state)
	require.Equal(t, uint32(0x2A), gotID)
}

func TestEngineSyscallFailureFaults(t *testing.T) {
	e := NewEngine(nil)
	e.OnSysCall = func(id uint32) bool { return false }
	script := []byte{byte(opcode.SYSCALL), 0, 0, 0, 0, byte(opcode.RET)}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	require.Equal(t, FAULT, e.Execute())
}

func TestEngineSyscallPanicIsRecoveredAsFault(t *testing.T) {
	e := NewEngine(nil)
	e.OnSysCall = func(id uint32) bool { panic("boom") }
	script := []byte{byte(opcode.SYSCALL), 0, 0, 0, 0, byte(opcode.RET)}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	require.Equal(t, FAULT, e.Execute())
}

func TestEngineThrowFaults(t *testing.T) {
	e := NewEngine(nil)
	script := []byte{byte(opcode.THROW)}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	require.Equal(t, FAULT, e.Execute())
}

func TestEngineStepSingleInstructionAtATime(t *testing.T) {
	e := NewEngine(nil)
	script := []byte{byte(opcode.PUSH1), byte(opcode.PUSH2), byte(opcode.ADD), byte(opcode.RET)}
	ctx, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	e.Step()
	require.Equal(t, 1, ctx.Estack().Count())
	e.Step()
	require.Equal(t, 2, ctx.Estack().Count())
	e.Step()
	require.Equal(t, 1, ctx.Estack().Count())
	// Step on its own never moves the engine out of BREAK; only Execute does.
	require.Equal(t, BREAK, e.State())
	e.Step()
	require.Equal(t, HALT, e.State())
}

// TestEngineStackItemCountTracksCompounds checks that stackitem_count
// counts every primitive-equivalent slot reachable from the stacks, not
// just the number of live compounds: an array of three freshly allocated
// elements contributes one slot for itself plus one for each element.
func TestEngineStackItemCountTracksCompounds(t *testing.T) {
	e := NewEngine(nil)
	script := []byte{byte(opcode.PUSH3), byte(opcode.NEWARRAY), byte(opcode.RET)}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, HALT, state)
	require.Equal(t, 4, e.StackItemCount())
}

// TestEngineStackItemCountCountsPrimitives guards against the tracker
// silently ignoring primitives on the stack: with no compounds involved
// at all, three pushed integers must still register as three slots, and
// the MaxStackSize cap must be reachable by primitives alone.
func TestEngineStackItemCountCountsPrimitives(t *testing.T) {
	e := NewEngine(nil)
	script := []byte{
		byte(opcode.PUSH1), byte(opcode.PUSH1), byte(opcode.PUSH1),
		byte(opcode.RET),
	}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, HALT, state)
	require.Equal(t, 3, e.StackItemCount())
}

// TestEngineFaultsOnPrimitiveStackOverflow exercises the MaxStackSize cap
// with nothing but primitives on the stack, which the buggy tracker
// never counted and so could never trip.
func TestEngineFaultsOnPrimitiveStackOverflow(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxStackSize = 3
	e := NewEngine(limits)
	script := []byte{
		byte(opcode.PUSH1), byte(opcode.PUSH1), byte(opcode.PUSH1), byte(opcode.PUSH1),
		byte(opcode.RET),
	}
	_, err := e.LoadScript(script, -1)
	require.NoError(t, err)

	state := e.Execute()
	require.Equal(t, FAULT, state)
}
