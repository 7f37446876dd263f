// Package vm implements the stack-based interpreter at the heart of the
// platform: decoding scripts one instruction at a time, maintaining the
// per-frame evaluation and alt stacks, and keeping compound stack items'
// reference counts correct even across cycles.
package vm

import (
	"fmt"

	"github.com/timloh-gtoken/neo-vm/pkg/config"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"
)

// Engine is a single-threaded, non-reentrant interpreter. It owns its
// invocation stack, result stack, and reference tracker exclusively;
// nothing about it may be shared across goroutines or across engines.
type Engine struct {
	state State

	istack []*Context
	result *RandomAccess
	refs   *RefTracker
	limits *config.Limits

	// OnSysCall is the single extension point for SYSCALL. It receives the
	// 32-bit method id and reports success; a false return or a panic
	// inside it faults the engine. The core never interprets the id itself.
	OnSysCall func(id uint32) bool

	// PreExecuteInstruction runs before dispatch; a false return faults
	// the engine without executing the instruction.
	PreExecuteInstruction func(e *Engine, instr Instruction) bool
	// PostExecuteInstruction runs after dispatch and after the
	// reclamation sweep; a false return faults the engine.
	PostExecuteInstruction func(e *Engine, instr Instruction) bool
	// ContextUnloaded runs when a frame is popped off the invocation stack.
	ContextUnloaded func(ctx *Context)
	// LoadContextHook runs when a frame is pushed onto the invocation stack.
	LoadContextHook func(ctx *Context)
}

// NewEngine returns a ready-to-load engine. A nil limits selects
// config.DefaultLimits().
func NewEngine(limits *config.Limits) *Engine {
	if limits == nil {
		limits = config.DefaultLimits()
	}
	return &Engine{
		state:  BREAK,
		result: NewRandomAccess(),
		refs:   NewRefTracker(),
		limits: limits,
	}
}

// State returns the engine's current state.
func (e *Engine) State() State {
	return e.state
}

// SetState lets a hook force a transition, most commonly to FAULT or
// HALT between steps.
func (e *Engine) SetState(s State) {
	e.state = s
}

// Limits returns the resource limits this engine enforces.
func (e *Engine) Limits() *config.Limits {
	return e.limits
}

// Ready reports whether a script has been loaded and not yet fully
// unwound, i.e. there is a frame a debugger could step through.
func (e *Engine) Ready() bool {
	return len(e.istack) > 0
}

// HasHalted reports whether the engine reached HALT.
func (e *Engine) HasHalted() bool {
	return e.state == HALT
}

// HasFailed reports whether the engine reached FAULT.
func (e *Engine) HasFailed() bool {
	return e.state == FAULT
}

// InvocationStackLen returns the depth of the invocation stack.
func (e *Engine) InvocationStackLen() int {
	return len(e.istack)
}

// CurrentContext returns the frame currently executing, or nil if the
// invocation stack is empty.
func (e *Engine) CurrentContext() *Context {
	if len(e.istack) == 0 {
		return nil
	}
	return e.istack[len(e.istack)-1]
}

// EntryContext returns the bottom frame of the invocation stack (the entry
// frame while it is live), or nil when the invocation stack is empty.
func (e *Engine) EntryContext() *Context {
	if len(e.istack) == 0 {
		return nil
	}
	return e.istack[0]
}

// ResultStack returns the engine's final-result stack, populated once
// the entry frame returns.
func (e *Engine) ResultStack() *RandomAccess {
	return e.result
}

// StackItemCount returns stackitem_count as currently tracked.
func (e *Engine) StackItemCount() int {
	return e.refs.Count()
}

// LoadScript appends a new frame executing script from offset 0 and
// pushes it onto the invocation stack. It fails if the invocation stack
// is already at MaxInvocationStackSize.
func (e *Engine) LoadScript(script []byte, rvcount int) (*Context, error) {
	return e.LoadScriptAt(script, rvcount, 0)
}

// LoadScriptAt is LoadScript starting at a given offset.
func (e *Engine) LoadScriptAt(script []byte, rvcount, ip int) (*Context, error) {
	if len(e.istack) >= e.limits.MaxInvocationStackSize {
		return nil, errInvocationStackFull
	}
	ctx := NewContextAt(Script(script), rvcount, ip)
	e.loadContext(ctx)
	return ctx, nil
}

func (e *Engine) loadContext(ctx *Context) {
	e.istack = append(e.istack, ctx)
	if e.LoadContextHook != nil {
		e.LoadContextHook(ctx)
	}
}

func (e *Engine) unloadContext(ctx *Context) {
	e.istack = e.istack[:len(e.istack)-1]
	for _, it := range ctx.estack.Items() {
		e.refs.RemoveStackReference(it)
	}
	for _, it := range ctx.astack.Items() {
		e.refs.RemoveStackReference(it)
	}
	if e.ContextUnloaded != nil {
		e.ContextUnloaded(ctx)
	}
}

// push puts item onto ctx's evaluation stack, registering it with the
// reference tracker if it's a compound.
func (e *Engine) push(ctx *Context, item stackitem.Item) {
	ctx.estack.Push(item)
	e.refs.AddStackReference(item)
}

// pop removes and returns the top of ctx's evaluation stack.
func (e *Engine) pop(ctx *Context) (stackitem.Item, error) {
	item, err := ctx.estack.Pop()
	if err != nil {
		return nil, err
	}
	e.refs.RemoveStackReference(item)
	return item, nil
}

// peek returns the item at position n on ctx's evaluation stack without
// removing it.
func (e *Engine) peek(ctx *Context, n int) (stackitem.Item, error) {
	return ctx.estack.Peek(n)
}

// Push puts item onto the current context's evaluation stack. It is the
// public counterpart of push, exported for host-call handlers that run
// outside the package (see pkg/hostcall).
func (e *Engine) Push(item stackitem.Item) error {
	ctx := e.CurrentContext()
	if ctx == nil {
		return errInvocationStackEmpty
	}
	e.push(ctx, item)
	return nil
}

// Pop removes and returns the top item of the current context's
// evaluation stack. It is the public counterpart of pop, exported for
// host-call handlers that run outside the package.
func (e *Engine) Pop() (stackitem.Item, error) {
	ctx := e.CurrentContext()
	if ctx == nil {
		return nil, errInvocationStackEmpty
	}
	return e.pop(ctx)
}

// Execute drives the engine from BREAK/NONE to a terminal state.
func (e *Engine) Execute() State {
	if e.state == BREAK {
		e.state = NONE
	}
	for e.state == NONE {
		e.Step()
	}
	return e.state
}

// Step runs a single instruction. It is exported so a host can drive the
// engine one instruction at a time (a debugger, a gas-metered wrapper).
func (e *Engine) Step() {
	ctx := e.CurrentContext()
	if ctx == nil {
		e.state = HALT
		return
	}

	instr, err := ctx.Next()
	if err != nil {
		e.fault(err)
		return
	}

	if e.PreExecuteInstruction != nil && !e.PreExecuteInstruction(e, instr) {
		e.fault(errInstructionDecode)
		return
	}

	if err := e.dispatch(ctx, instr); err != nil {
		e.fault(err)
		return
	}

	if e.state == FAULT || e.state == HALT {
		return
	}

	e.refs.Sweep()
	if e.refs.Count() > e.limits.MaxStackSize {
		e.fault(errStackItemLimit)
		return
	}

	if e.PostExecuteInstruction != nil && !e.PostExecuteInstruction(e, instr) {
		e.fault(errInstructionDecode)
		return
	}
}

func (e *Engine) fault(err error) {
	e.state = FAULT
	_ = err // reserved for a future diagnostic surface; core only signals FAULT.
}

// dispatch executes one decoded instruction against ctx, recovering any
// panic raised by value-domain code (a conversion error, an index panic
// from a malformed opcode sequence) into a FAULT rather than a crash.
func (e *Engine) dispatch(ctx *Context, instr Instruction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during %s: %v", instr.Opcode, r)
		}
	}()

	switch {
	case opcode.IsPushBytes(instr.Opcode), isLiteralPush(instr.Opcode):
		return e.execLiteralPush(ctx, instr)
	case isControlOp(instr.Opcode):
		return e.execControl(ctx, instr)
	case isStackOp(instr.Opcode):
		return e.execStackManip(ctx, instr)
	case isByteStringOp(instr.Opcode):
		return e.execByteString(ctx, instr)
	case isBitwiseOp(instr.Opcode):
		return e.execBitwise(ctx, instr)
	case isNumericOp(instr.Opcode):
		return e.execNumeric(ctx, instr)
	case isAggregateOp(instr.Opcode):
		return e.execAggregate(ctx, instr)
	case isExceptionOp(instr.Opcode):
		return e.execException(ctx, instr)
	default:
		return errInvalidOpcode
	}
}
