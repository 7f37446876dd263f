package vm

import (
	"math/big"

	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
)

func isNumericOp(op opcode.Opcode) bool {
	switch op {
	case opcode.INC, opcode.DEC, opcode.SIGN, opcode.NEGATE, opcode.ABS, opcode.NOT, opcode.NZ,
		opcode.ADD, opcode.SUB, opcode.MUL, opcode.DIV, opcode.MOD, opcode.SHL, opcode.SHR,
		opcode.BOOLAND, opcode.BOOLOR, opcode.NUMEQUAL, opcode.NUMNOTEQUAL,
		opcode.LT, opcode.GT, opcode.LTE, opcode.GTE, opcode.MIN, opcode.MAX, opcode.WITHIN:
		return true
	default:
		return false
	}
}

func (e *Engine) execNumeric(ctx *Context, instr Instruction) error {
	switch instr.Opcode {
	case opcode.INC:
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).Add(a, big.NewInt(1)))

	case opcode.DEC:
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).Sub(a, big.NewInt(1)))

	case opcode.SIGN:
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, big.NewInt(int64(a.Sign())))

	case opcode.NEGATE:
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).Neg(a))

	case opcode.ABS:
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).Abs(a))

	case opcode.NOT:
		b, err := e.popBool(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, !b)
		return nil

	case opcode.NZ:
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, a.Sign() != 0)
		return nil

	case opcode.ADD:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).Add(a, b))

	case opcode.SUB:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).Sub(a, b))

	case opcode.MUL:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		return e.pushBigInt(ctx, new(big.Int).Mul(a, b))

	case opcode.DIV:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		if b.Sign() == 0 {
			return errDivideByZero
		}
		return e.pushBigInt(ctx, new(big.Int).Quo(a, b))

	case opcode.MOD:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		if b.Sign() == 0 {
			return errDivideByZero
		}
		return e.pushBigInt(ctx, new(big.Int).Rem(a, b))

	case opcode.SHL:
		return e.execShift(ctx, true)

	case opcode.SHR:
		return e.execShift(ctx, false)

	case opcode.BOOLAND:
		b, err := e.popBool(ctx)
		if err != nil {
			return err
		}
		a, err := e.popBool(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, a && b)
		return nil

	case opcode.BOOLOR:
		b, err := e.popBool(ctx)
		if err != nil {
			return err
		}
		a, err := e.popBool(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, a || b)
		return nil

	case opcode.NUMEQUAL:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, a.Cmp(b) == 0)
		return nil

	case opcode.NUMNOTEQUAL:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, a.Cmp(b) != 0)
		return nil

	case opcode.LT:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, a.Cmp(b) < 0)
		return nil

	case opcode.GT:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, a.Cmp(b) > 0)
		return nil

	case opcode.LTE:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, a.Cmp(b) <= 0)
		return nil

	case opcode.GTE:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, a.Cmp(b) >= 0)
		return nil

	case opcode.MIN:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		if a.Cmp(b) <= 0 {
			return e.pushBigInt(ctx, a)
		}
		return e.pushBigInt(ctx, b)

	case opcode.MAX:
		b, a, err := e.pop2BigInt(ctx)
		if err != nil {
			return err
		}
		if a.Cmp(b) >= 0 {
			return e.pushBigInt(ctx, a)
		}
		return e.pushBigInt(ctx, b)

	case opcode.WITHIN:
		b, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		a, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		x, err := e.popBigInt(ctx)
		if err != nil {
			return err
		}
		e.pushBool(ctx, x.Cmp(a) >= 0 && x.Cmp(b) < 0)
		return nil

	default:
		return errInvalidOpcode
	}
}

// pop2BigInt pops the two operands of a binary arithmetic opcode, the
// second-popped being the left-hand operand (a op b, in push order a
// then b, so b is on top).
func (e *Engine) pop2BigInt(ctx *Context) (b, a *big.Int, err error) {
	b, err = e.popBigInt(ctx)
	if err != nil {
		return nil, nil, err
	}
	a, err = e.popBigInt(ctx)
	if err != nil {
		return nil, nil, err
	}
	return b, a, nil
}

// execShift implements SHL/SHR. A shift count of 0 is a no-op beyond
// consuming the operand; counts outside ±MaxShift fault.
func (e *Engine) execShift(ctx *Context, left bool) error {
	shift, err := e.popBigInt(ctx)
	if err != nil {
		return err
	}
	if !shift.IsInt64() {
		return errShiftOutOfRange
	}
	n := shift.Int64()
	if n < -int64(e.limits.MaxShift) || n > int64(e.limits.MaxShift) {
		return errShiftOutOfRange
	}
	a, err := e.popBigInt(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return e.pushBigInt(ctx, a)
	}
	if n < 0 {
		left = !left
		n = -n
	}
	if left {
		return e.pushBigInt(ctx, new(big.Int).Lsh(a, uint(n)))
	}
	return e.pushBigInt(ctx, new(big.Int).Rsh(a, uint(n)))
}
