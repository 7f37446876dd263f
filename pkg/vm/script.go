package vm

import (
	"encoding/binary"

	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
)

// Script is the opaque, immutable byte sequence a Context executes. It
// knows nothing about call frames; its only job is decoding one
// instruction at a time from an offset.
type Script []byte

// Len returns the number of bytes in the script.
func (s Script) Len() int {
	return len(s)
}

// Instruction is one decoded opcode plus its immediate operand, if any.
// Parameter aliases the underlying script and must not be written to.
type Instruction struct {
	Opcode    opcode.Opcode
	Parameter []byte
}

// Next decodes the instruction at ip and returns it along with the
// offset of the instruction that follows it. It never panics: a
// malformed immediate or an unknown opcode is reported as an error,
// leaving ip interpretation to the caller.
func (s Script) Next(ip int) (Instruction, int, error) {
	if ip >= len(s) {
		return Instruction{Opcode: opcode.RET}, ip, nil
	}
	op := opcode.Opcode(s[ip])
	if !opcode.IsValid(op) {
		return Instruction{}, ip, errInvalidOpcode
	}
	next := ip + 1

	if opcode.IsPushBytes(op) {
		n := int(op)
		if next+n > len(s) {
			return Instruction{}, ip, errInstructionDecode
		}
		return Instruction{Opcode: op, Parameter: s[next : next+n]}, next + n, nil
	}

	var n int
	switch op {
	case opcode.PUSHDATA1:
		if next >= len(s) {
			return Instruction{}, ip, errInstructionDecode
		}
		n = int(s[next])
		next++
	case opcode.PUSHDATA2:
		if next+2 > len(s) {
			return Instruction{}, ip, errInstructionDecode
		}
		n = int(binary.LittleEndian.Uint16(s[next : next+2]))
		next += 2
	case opcode.PUSHDATA4:
		if next+4 > len(s) {
			return Instruction{}, ip, errInstructionDecode
		}
		n = int(binary.LittleEndian.Uint32(s[next : next+4]))
		next += 4
	case opcode.JMP, opcode.JMPIF, opcode.JMPIFNOT, opcode.CALL:
		n = 2
	case opcode.SYSCALL:
		n = 4
	default:
		n = 0
	}
	if n == 0 {
		return Instruction{Opcode: op}, next, nil
	}
	if next+n > len(s) {
		return Instruction{}, ip, errInstructionDecode
	}
	return Instruction{Opcode: op, Parameter: s[next : next+n]}, next + n, nil
}

// ReadJumpOffset decodes the signed 16-bit little-endian offset carried
// by JMP/JMPIF/JMPIFNOT/CALL.
func ReadJumpOffset(param []byte) int {
	return int(int16(binary.LittleEndian.Uint16(param)))
}

// ReadSyscallID decodes the 32-bit little-endian method id carried by
// SYSCALL.
func ReadSyscallID(param []byte) uint32 {
	return binary.LittleEndian.Uint32(param)
}
