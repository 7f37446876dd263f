// Package asm assembles and disassembles the VM's mnemonic instruction
// listings. It exists purely for tests and the CLI: the interpreter never
// sees mnemonics, only the decoded byte stream.
package asm

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/timloh-gtoken/neo-vm/pkg/core/interop/interopnames"
	"github.com/timloh-gtoken/neo-vm/pkg/vm"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
)

// line is one parsed source line: either a label definition or an
// instruction (a label immediately followed by an instruction on the same
// line is not supported; use two lines).
type line struct {
	label string
	op    string
	arg   string
}

func parseLines(src string) []line {
	var out []line
	for _, raw := range strings.Split(src, "\n") {
		text := raw
		if i := strings.IndexAny(text, ";#"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.HasSuffix(text, ":") {
			out = append(out, line{label: strings.TrimSuffix(text, ":")})
			continue
		}
		fields := strings.Fields(text)
		l := line{op: strings.ToUpper(fields[0])}
		if len(fields) > 1 {
			l.arg = strings.Join(fields[1:], " ")
		}
		out = append(out, l)
	}
	return out
}

// Assemble compiles mnemonic source into a script. Lines are either a
// bare `label:` definition or `MNEMONIC [argument]`. Jump/call mnemonics
// take either a label name or a literal signed relative offset.
func Assemble(src string) ([]byte, error) {
	lines := parseLines(src)

	sizes := make([]int, 0, len(lines))
	offsets := make([]int, 0, len(lines))
	labels := make(map[string]int)
	offset := 0
	for _, l := range lines {
		if l.label != "" {
			labels[l.label] = offset
			continue
		}
		n, err := instrSize(l)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
		offsets = append(offsets, offset)
		offset += n
	}

	out := make([]byte, 0, offset)
	idx := 0
	for _, l := range lines {
		if l.label != "" {
			continue
		}
		b, err := encodeInstr(l, offsets[idx], labels)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
		idx++
	}
	return out, nil
}

func instrSize(l line) (int, error) {
	op, arg, err := resolveMnemonic(l.op, l.arg)
	if err != nil {
		return 0, err
	}
	if opcode.IsPushBytes(op) {
		return 1 + int(op), nil
	}
	switch op {
	case opcode.PUSHDATA1:
		return 2 + len(arg), nil
	case opcode.PUSHDATA2:
		return 3 + len(arg), nil
	case opcode.PUSHDATA4:
		return 5 + len(arg), nil
	case opcode.JMP, opcode.JMPIF, opcode.JMPIFNOT, opcode.CALL:
		return 3, nil
	case opcode.SYSCALL:
		return 5, nil
	default:
		return 1, nil
	}
}

// resolveMnemonic expands the PUSHDATA/PUSHINT/SYSCALL convenience pseudo
// forms into a concrete opcode plus its raw byte argument (unused for
// jump/call/syscall, whose arg is resolved separately at encode time).
func resolveMnemonic(op, arg string) (opcode.Opcode, []byte, error) {
	switch op {
	case "PUSHDATA":
		b, err := parseHexOrString(arg)
		if err != nil {
			return 0, nil, err
		}
		return pushDataOpcodeFor(len(b)), b, nil
	case "PUSHINT":
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return 0, nil, fmt.Errorf("asm: PUSHINT: %w", err)
		}
		if n < -1 || n > 16 {
			return 0, nil, fmt.Errorf("asm: PUSHINT %d out of the PUSHM1..PUSH16 range; this instruction set has no literal encoding for larger integers", n)
		}
		if n == -1 {
			return opcode.PUSHM1, nil, nil
		}
		return opcode.PUSH1 + opcode.Opcode(n-1), nil, nil
	default:
		o, err := opcode.FromString(op)
		if err != nil {
			return 0, nil, err
		}
		if opcode.IsPushBytes(o) {
			b, err := parseHexOrString(arg)
			if err != nil {
				return 0, nil, err
			}
			if len(b) != int(o) {
				return 0, nil, fmt.Errorf("asm: %s needs exactly %d bytes, got %d", op, o, len(b))
			}
			return o, b, nil
		}
		if o == opcode.PUSHDATA1 || o == opcode.PUSHDATA2 || o == opcode.PUSHDATA4 {
			b, err := parseHexOrString(arg)
			if err != nil {
				return 0, nil, err
			}
			return o, b, nil
		}
		return o, nil, nil
	}
}

func pushDataOpcodeFor(n int) opcode.Opcode {
	switch {
	case n <= 75:
		return opcode.Opcode(n)
	case n <= 0xFF:
		return opcode.PUSHDATA1
	case n <= 0xFFFF:
		return opcode.PUSHDATA2
	default:
		return opcode.PUSHDATA4
	}
}

func parseHexOrString(arg string) ([]byte, error) {
	if arg == "" {
		return nil, nil
	}
	if s, ok := unquote(arg); ok {
		return []byte(s), nil
	}
	return hex.DecodeString(strings.TrimPrefix(arg, "0x"))
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], true
	}
	return "", false
}

func encodeInstr(l line, ip int, labels map[string]int) ([]byte, error) {
	op, arg, err := resolveMnemonic(l.op, l.arg)
	if err != nil {
		return nil, err
	}

	switch {
	case opcode.IsPushBytes(op):
		return append([]byte{byte(op)}, arg...), nil
	case op == opcode.PUSHDATA1:
		return append([]byte{byte(op), byte(len(arg))}, arg...), nil
	case op == opcode.PUSHDATA2:
		hdr := make([]byte, 2)
		binary.LittleEndian.PutUint16(hdr, uint16(len(arg)))
		return append(append([]byte{byte(op)}, hdr...), arg...), nil
	case op == opcode.PUSHDATA4:
		hdr := make([]byte, 4)
		binary.LittleEndian.PutUint32(hdr, uint32(len(arg)))
		return append(append([]byte{byte(op)}, hdr...), arg...), nil
	case op == opcode.JMP, op == opcode.JMPIF, op == opcode.JMPIFNOT, op == opcode.CALL:
		target, err := resolveOffset(l.arg, ip, labels)
		if err != nil {
			return nil, err
		}
		rel := target - ip
		if rel < -32768 || rel > 32767 {
			return nil, fmt.Errorf("asm: jump offset %d out of int16 range", rel)
		}
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(int16(rel)))
		return append([]byte{byte(op)}, buf...), nil
	case op == opcode.SYSCALL:
		id, err := resolveSyscallID(l.arg)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, id)
		return append([]byte{byte(op)}, buf...), nil
	default:
		return []byte{byte(op)}, nil
	}
}

func resolveOffset(arg string, ip int, labels map[string]int) (int, error) {
	if target, ok := labels[arg]; ok {
		return target, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("asm: unresolved jump target %q", arg)
	}
	return ip + n, nil
}

func resolveSyscallID(arg string) (uint32, error) {
	if b, err := hex.DecodeString(strings.TrimPrefix(arg, "0x")); err == nil && len(b) == 4 {
		return binary.LittleEndian.Uint32(b), nil
	}
	return interopnames.ToID([]byte(strings.Trim(arg, `"`))), nil
}

// Disassemble renders script back to one mnemonic line per instruction,
// each prefixed with its byte offset.
func Disassemble(script []byte) (string, error) {
	var b strings.Builder
	s := vm.Script(script)
	for ip := 0; ip < s.Len(); {
		instr, next, err := s.Next(ip)
		if err != nil {
			return "", fmt.Errorf("asm: decode at %d: %w", ip, err)
		}
		fmt.Fprintf(&b, "%04d: %s", ip, renderMnemonic(instr))
		b.WriteByte('\n')
		if next <= ip {
			break
		}
		ip = next
	}
	return b.String(), nil
}

func renderMnemonic(instr vm.Instruction) string {
	switch {
	case opcode.IsPushBytes(instr.Opcode), instr.Opcode == opcode.PUSHDATA1,
		instr.Opcode == opcode.PUSHDATA2, instr.Opcode == opcode.PUSHDATA4:
		return fmt.Sprintf("%s %s", instr.Opcode, hex.EncodeToString(instr.Parameter))
	case instr.Opcode == opcode.JMP, instr.Opcode == opcode.JMPIF,
		instr.Opcode == opcode.JMPIFNOT, instr.Opcode == opcode.CALL:
		return fmt.Sprintf("%s %d", instr.Opcode, vm.ReadJumpOffset(instr.Parameter))
	case instr.Opcode == opcode.SYSCALL:
		return fmt.Sprintf("%s 0x%08x", instr.Opcode, vm.ReadSyscallID(instr.Parameter))
	default:
		return instr.Opcode.String()
	}
}
