package vm

import (
	"math/big"

	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
)

func isBitwiseOp(op opcode.Opcode) bool {
	switch op {
	case opcode.INVERT, opcode.AND, opcode.OR, opcode.XOR, opcode.EQUAL:
		return true
	default:
		return false
	}
}

func (e *Engine) execBitwise(ctx *Context, instr Instruction) error {
	switch instr.Opcode {
	case opcode.INVERT:
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).Not(a))

	case opcode.AND:
		b, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).And(a, b))

	case opcode.OR:
		b, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).Or(a, b))

	case opcode.XOR:
		b, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).Xor(a, b))

	case opcode.EQUAL:
		b, err := e.pop(ctx)
		if err != nil {
			return err
		}
		a, err := e.pop(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, a.Equals(b))
		return nil

	default:
		return errInvalidOpcode
	}
}
