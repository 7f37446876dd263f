package asm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/timloh-gtoken/neo-vm/pkg/core/interop/interopnames"
	"github.com/timloh-gtoken/neo-vm/pkg/vm"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
)

func TestAssembleLiteralPushes(t *testing.T) {
	script, err := Assemble(`
		PUSHINT 3
		PUSHINT 4
		ADD
	`)
	require.NoError(t, err)
	require.Equal(t, []byte{byte(opcode.PUSH3), byte(opcode.PUSH4), byte(opcode.ADD)}, script)
}

func TestAssembleAndExecuteRoundtrip(t *testing.T) {
	script, err := Assemble(`
		PUSHINT 10
		PUSHDATA 0x14 ; 20 has no PUSHn opcode, so push it as a one-byte literal
		ADD
		RET
	`)
	require.NoError(t, err)

	e := vm.NewEngine(nil)
	_, err = e.LoadScript(script, -1)
	require.NoError(t, err)
	require.Equal(t, vm.HALT, e.Execute())
	item, err := e.ResultStack().Pop()
	require.NoError(t, err)
	n, err := item.TryInteger()
	require.NoError(t, err)
	require.Equal(t, int64(30), n.Int64())
}

func TestAssembleJumpWithLabel(t *testing.T) {
	script, err := Assemble(`
		JMP skip
		PUSHINT 1
	skip:
		PUSHINT 2
		RET
	`)
	require.NoError(t, err)

	e := vm.NewEngine(nil)
	_, err = e.LoadScript(script, -1)
	require.NoError(t, err)
	require.Equal(t, vm.HALT, e.Execute())
	item, err := e.ResultStack().Pop()
	require.NoError(t, err)
	n, err := item.TryInteger()
	require.NoError(t, err)
	require.Equal(t, int64(2), n.Int64())
}

func TestAssemblePushDataAndCat(t *testing.T) {
	script, err := Assemble(`
		PUSHDATA "foo"
		PUSHDATA "bar"
		CAT
		RET
	`)
	require.NoError(t, err)

	e := vm.NewEngine(nil)
	_, err = e.LoadScript(script, -1)
	require.NoError(t, err)
	require.Equal(t, vm.HALT, e.Execute())
	item, err := e.ResultStack().Pop()
	require.NoError(t, err)
	b, err := item.TryBytes()
	require.NoError(t, err)
	require.Equal(t, []byte("foobar"), b)
}

func TestAssembleSyscallResolvesMethodName(t *testing.T) {
	script, err := Assemble(`SYSCALL "System.Runtime.Log"`)
	require.NoError(t, err)
	require.Equal(t, byte(opcode.SYSCALL), script[0])
	require.Equal(t, interopnames.ToID([]byte("System.Runtime.Log")), vm.ReadSyscallID(script[1:]))
}

func TestDisassembleRendersOffsetsAndOperands(t *testing.T) {
	script := []byte{byte(opcode.PUSH3), byte(opcode.PUSH4), byte(opcode.ADD)}
	out, err := Disassemble(script)
	require.NoError(t, err)
	require.Contains(t, out, "0000: PUSH3")
	require.Contains(t, out, "0001: PUSH4")
	require.Contains(t, out, "0002: ADD")
}

func TestAssembleRejectsOutOfRangeLiteral(t *testing.T) {
	_, err := Assemble(`PUSHINT 17`)
	require.Error(t, err)
}
