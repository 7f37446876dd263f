package vm

import (
	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"
)

func isByteStringOp(op opcode.Opcode) bool {
	switch op {
	case opcode.CAT, opcode.SUBSTR, opcode.LEFT, opcode.RIGHT, opcode.SIZE:
		return true
	default:
		return false
	}
}

func (e *Engine) popBytes(ctx *Context) ([]byte, error) {
	item, err := e.pop(ctx)
	if err != nil {
		return nil, err
	}
	return item.TryBytes()
}

func (e *Engine) execByteString(ctx *Context, instr Instruction) error {
	switch instr.Opcode {
	case opcode.CAT:
		b, err := e.popBytes(ctx)
		if err != nil {
			return err
		}
		a, err := e.popBytes(ctx)
		if err != nil {
			return err
		}
		if len(a)+len(b) > e.limits.MaxItemSize {
			return errItemTooBig
		}
		out := make([]byte, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		e.push(ctx, stackitem.NewByteArray(out))
		return nil

	case opcode.SUBSTR:
		count, err := e.popIndex(ctx)
		if err != nil {
			return err
		}
		index, err := e.popIndex(ctx)
		if err != nil {
			return err
		}
		b, err := e.popBytes(ctx)
		if err != nil {
			return err
		}
		if index > len(b) {
			return errIndexOutOfRange
		}
		if count > len(b)-index {
			count = len(b) - index
		}
		if count > e.limits.MaxItemSize {
			count = e.limits.MaxItemSize
		}
		e.push(ctx, stackitem.NewByteArray(append([]byte(nil), b[index:index+count]...)))
		return nil

	case opcode.LEFT:
		count, err := e.popIndex(ctx)
		if err != nil {
			return err
		}
		b, err := e.popBytes(ctx)
		if err != nil {
			return err
		}
		if count > len(b) {
			return errIndexOutOfRange
		}
		e.push(ctx, stackitem.NewByteArray(append([]byte(nil), b[:count]...)))
		return nil

	case opcode.RIGHT:
		count, err := e.popIndex(ctx)
		if err != nil {
			return err
		}
		b, err := e.popBytes(ctx)
		if err != nil {
			return err
		}
		if count > len(b) {
			return errIndexOutOfRange
		}
		e.push(ctx, stackitem.NewByteArray(append([]byte(nil), b[len(b)-count:]...)))
		return nil

	case opcode.SIZE:
		item, err := e.pop(ctx)
		if err != nil {
			return err
		}
		b, err := item.TryBytes()
		if err != nil {
			return err
		}
		e.push(ctx, stackitem.NewBigInteger(bigFromInt64(int64(len(b)))))
		return nil

	default:
		return errInvalidOpcode
	}
}
