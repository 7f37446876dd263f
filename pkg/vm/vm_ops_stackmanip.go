package vm

import (
	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"
)

func isStackOp(op opcode.Opcode) bool {
	switch op {
	case opcode.TOALTSTACK, opcode.FROMALTSTACK, opcode.DUPFROMALTSTACK, opcode.DUPFROMALTSTACKBOTTOM,
		opcode.XDROP, opcode.XSWAP, opcode.XTUCK, opcode.DEPTH, opcode.DROP, opcode.DUP, opcode.NIP,
		opcode.OVER, opcode.PICK, opcode.ROLL, opcode.ROT, opcode.SWAP, opcode.TUCK, opcode.ISNULL:
		return true
	default:
		return false
	}
}

// pushAlt and popAlt move items to/from a frame's alt stack, keeping the
// reference tracker's bookkeeping the same as for the evaluation stack:
// it doesn't distinguish which stack a slot belongs to.
func (e *Engine) pushAlt(ctx *Context, item stackitem.Item) {
	ctx.astack.Push(item)
	e.refs.AddStackReference(item)
}

func (e *Engine) popAlt(ctx *Context) (stackitem.Item, error) {
	item, err := ctx.astack.Pop()
	if err != nil {
		return nil, err
	}
	e.refs.RemoveStackReference(item)
	return item, nil
}

func (e *Engine) execStackManip(ctx *Context, instr Instruction) error {
	switch instr.Opcode {
	case opcode.TOALTSTACK:
		item, err := e.pop(ctx)
		if err != nil {
			return err
		}
		e.pushAlt(ctx, item)
		return nil

	case opcode.FROMALTSTACK:
		item, err := e.popAlt(ctx)
		if err != nil {
			return err
		}
		e.push(ctx, item)
		return nil

	case opcode.DUPFROMALTSTACK:
		item, err := ctx.astack.Peek(0)
		if err != nil {
			return err
		}
		e.push(ctx, item)
		return nil

	case opcode.DUPFROMALTSTACKBOTTOM:
		item, err := ctx.astack.PeekFromBottom(0)
		if err != nil {
			return err
		}
		e.push(ctx, item)
		return nil

	case opcode.DEPTH:
		e.push(ctx, stackitem.NewBigInteger(bigFromInt64(int64(ctx.estack.Count()))))
		return nil

	case opcode.DROP:
		_, err := e.pop(ctx)
		return err

	case opcode.DUP:
		item, err := ctx.estack.Peek(0)
		if err != nil {
			return err
		}
		e.push(ctx, item)
		return nil

	case opcode.NIP:
		item, err := ctx.estack.Remove(1)
		if err != nil {
			return err
		}
		e.refs.RemoveStackReference(item)
		return nil

	case opcode.OVER:
		item, err := ctx.estack.Peek(1)
		if err != nil {
			return err
		}
		e.push(ctx, item)
		return nil

	case opcode.SWAP:
		return e.swap(ctx, 0, 1)

	case opcode.ROT:
		return e.roll(ctx, 2)

	case opcode.TUCK:
		item, err := ctx.estack.Peek(0)
		if err != nil {
			return err
		}
		if err := ctx.estack.Insert(2, item); err != nil {
			return err
		}
		e.refs.AddStackReference(item)
		return nil

	case opcode.XDROP:
		n, err := e.popIndex(ctx)
		if err != nil {
			return err
		}
		item, err := ctx.estack.Remove(n)
		if err != nil {
			return err
		}
		e.refs.RemoveStackReference(item)
		return nil

	case opcode.XSWAP:
		n, err := e.popIndex(ctx)
		if err != nil {
			return err
		}
		return e.swap(ctx, 0, n)

	case opcode.XTUCK:
		n, err := e.popIndex(ctx)
		if err != nil {
			return err
		}
		item, err := ctx.estack.Peek(0)
		if err != nil {
			return err
		}
		if err := ctx.estack.Insert(n, item); err != nil {
			return err
		}
		e.refs.AddStackReference(item)
		return nil

	case opcode.PICK:
		n, err := e.popIndex(ctx)
		if err != nil {
			return err
		}
		item, err := ctx.estack.Peek(n)
		if err != nil {
			return err
		}
		e.push(ctx, item)
		return nil

	case opcode.ROLL:
		n, err := e.popIndex(ctx)
		if err != nil {
			return err
		}
		return e.roll(ctx, n)

	case opcode.ISNULL:
		item, err := e.pop(ctx)
		if err != nil {
			return err
		}
		_, isNull := item.(stackitem.Null)
		e.pushBool(ctx, isNull)
		return nil

	default:
		return errInvalidOpcode
	}
}

// swap exchanges the items at positions a and b, counted from the top.
// It moves no reference edges: the same two items simply occupy each
// other's slot.
func (e *Engine) swap(ctx *Context, a, b int) error {
	x, err := ctx.estack.Peek(a)
	if err != nil {
		return err
	}
	y, err := ctx.estack.Peek(b)
	if err != nil {
		return err
	}
	if err := ctx.estack.Set(a, y); err != nil {
		return err
	}
	return ctx.estack.Set(b, x)
}

// roll removes the item at depth n and pushes it back on top.
func (e *Engine) roll(ctx *Context, n int) error {
	if n == 0 {
		return nil
	}
	item, err := ctx.estack.Remove(n)
	if err != nil {
		return err
	}
	ctx.estack.Push(item)
	return nil
}
