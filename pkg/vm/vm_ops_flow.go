package vm

import (
	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"
)

func isLiteralPush(op opcode.Opcode) bool {
	switch op {
	case opcode.PUSH0, opcode.PUSHDATA1, opcode.PUSHDATA2, opcode.PUSHDATA4,
		opcode.PUSHM1, opcode.PUSHNULL,
		opcode.PUSH1, opcode.PUSH2, opcode.PUSH3, opcode.PUSH4, opcode.PUSH5,
		opcode.PUSH6, opcode.PUSH7, opcode.PUSH8, opcode.PUSH9, opcode.PUSH10,
		opcode.PUSH11, opcode.PUSH12, opcode.PUSH13, opcode.PUSH14, opcode.PUSH15,
		opcode.PUSH16:
		return true
	default:
		return false
	}
}

func (e *Engine) execLiteralPush(ctx *Context, instr Instruction) error {
	switch {
	case opcode.IsPushBytes(instr.Opcode):
		if len(instr.Parameter) > e.limits.MaxItemSize {
			return errItemTooBig
		}
		e.push(ctx, stackitem.NewByteArray(append([]byte(nil), instr.Parameter...)))
	case instr.Opcode == opcode.PUSH0:
		e.push(ctx, stackitem.NewByteArray([]byte{}))
	case instr.Opcode == opcode.PUSHNULL:
		e.push(ctx, stackitem.Null{})
	case instr.Opcode == opcode.PUSHM1:
		e.push(ctx, stackitem.NewBigInteger(bigFromInt64(-1)))
	case instr.Opcode == opcode.PUSHDATA1, instr.Opcode == opcode.PUSHDATA2, instr.Opcode == opcode.PUSHDATA4:
		if len(instr.Parameter) > e.limits.MaxItemSize {
			return errItemTooBig
		}
		e.push(ctx, stackitem.NewByteArray(append([]byte(nil), instr.Parameter...)))
	default:
		n := int(instr.Opcode - opcode.PUSH1 + 1)
		e.push(ctx, stackitem.NewBigInteger(bigFromInt64(int64(n))))
	}
	return nil
}

func isControlOp(op opcode.Opcode) bool {
	switch op {
	case opcode.NOP, opcode.JMP, opcode.JMPIF, opcode.JMPIFNOT, opcode.CALL, opcode.RET, opcode.SYSCALL:
		return true
	default:
		return false
	}
}

func (e *Engine) execControl(ctx *Context, instr Instruction) error {
	switch instr.Opcode {
	case opcode.NOP:
		return nil
	case opcode.JMP, opcode.JMPIF, opcode.JMPIFNOT:
		return e.execJump(ctx, instr)
	case opcode.CALL:
		return e.execCall(ctx, instr)
	case opcode.RET:
		return e.execRet(ctx)
	case opcode.SYSCALL:
		return e.execSyscall(ctx, instr)
	default:
		return errInvalidOpcode
	}
}

func (e *Engine) execJump(ctx *Context, instr Instruction) error {
	offset := ReadJumpOffset(instr.Parameter)
	target := ctx.IP() + offset

	take := true
	if instr.Opcode != opcode.JMP {
		item, err := e.pop(ctx)
		if err != nil {
			return err
		}
		b, err := item.TryBool()
		if err != nil {
			return err
		}
		if instr.Opcode == opcode.JMPIF {
			take = b
		} else {
			take = !b
		}
	}
	if !take {
		return nil
	}
	if target < 0 || target > ctx.script.Len() {
		return errInstructionDecode
	}
	ctx.Jump(target)
	return nil
}

func (e *Engine) execCall(ctx *Context, instr Instruction) error {
	offset := ReadJumpOffset(instr.Parameter)
	target := ctx.IP() + offset
	if target < 0 || target > ctx.script.Len() {
		return errInstructionDecode
	}
	if len(e.istack) >= e.limits.MaxInvocationStackSize {
		return errInvocationStackFull
	}
	e.loadContext(ctx.clone(target))
	return nil
}

func (e *Engine) execRet(_ *Context) error {
	frame := e.CurrentContext()
	e.unloadContext(frame)

	eff := frame.RVCount
	if eff == -1 {
		eff = frame.estack.Count()
	}

	caller := e.CurrentContext()
	var dest *RandomAccess
	if caller == nil {
		dest = e.result
	} else {
		dest = caller.estack
	}

	if caller != nil && dest == frame.estack {
		if frame.RVCount != 0 {
			return errTypeMismatch
		}
	} else if eff != frame.estack.Count() {
		return errTypeMismatch
	}

	for _, it := range frame.estack.Items() {
		dest.Push(it)
		e.refs.AddStackReference(it)
	}
	if frame.RVCount == -1 && caller != nil {
		frame.astack.CopyTo(caller.astack)
		for _, it := range frame.astack.Items() {
			e.refs.AddStackReference(it)
		}
	}

	if caller == nil {
		e.state = HALT
	}
	return nil
}

func (e *Engine) execSyscall(_ *Context, instr Instruction) (err error) {
	id := ReadSyscallID(instr.Parameter)
	if e.OnSysCall == nil {
		return errHostCallFailed
	}
	ok := func() bool {
		defer func() {
			if r := recover(); r != nil {
				err = errHostCallFailed
			}
		}()
		return e.OnSysCall(id)
	}()
	if err != nil {
		return err
	}
	if !ok {
		return errHostCallFailed
	}
	return nil
}

func isExceptionOp(op opcode.Opcode) bool {
	return op == opcode.THROW || op == opcode.THROWIFNOT
}

func (e *Engine) execException(ctx *Context, instr Instruction) error {
	switch instr.Opcode {
	case opcode.THROW:
		return errThrow
	case opcode.THROWIFNOT:
		item, err := e.pop(ctx)
		if err != nil {
			return err
		}
		b, err := item.TryBool()
		if err != nil {
			return err
		}
		if !b {
			return errThrow
		}
		return nil
	default:
		return errInvalidOpcode
	}
}
