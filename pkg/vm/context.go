package vm

import "github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"

// Context is a single call frame: the immutable script it executes, its
// instruction pointer, its own evaluation and alt stacks, the number of
// values it must return, and an optional link to the frame that called it.
type Context struct {
	script  Script
	ip      int
	nextip  int
	estack  *RandomAccess
	astack  *RandomAccess
	// RVCount is the number of values RET must copy to the caller.
	// -1 means unconstrained: copy whatever is on the evaluation stack.
	RVCount int
	caller  *Context
}

// NewContext creates a frame starting execution at the beginning of
// script with an unconstrained return count.
func NewContext(script Script) *Context {
	return NewContextAt(script, -1, 0)
}

// NewContextAt creates a frame starting at ip with the given return count.
func NewContextAt(script Script, rvcount, ip int) *Context {
	return &Context{
		script:  script,
		ip:      ip,
		nextip:  ip,
		estack:  NewRandomAccess(),
		astack:  NewRandomAccess(),
		RVCount: rvcount,
	}
}

// Script returns the frame's program.
func (c *Context) Script() Script {
	return c.script
}

// IP returns the offset of the instruction last decoded by Next.
func (c *Context) IP() int {
	return c.ip
}

// NextIP returns the offset Next will decode from next.
func (c *Context) NextIP() int {
	return c.nextip
}

// Jump unconditionally sets the offset Next will decode from next.
func (c *Context) Jump(ip int) {
	c.nextip = ip
}

// Next decodes the instruction at the frame's current position and
// advances past it.
func (c *Context) Next() (Instruction, error) {
	instr, next, err := c.script.Next(c.nextip)
	if err != nil {
		return Instruction{}, err
	}
	c.ip = c.nextip
	c.nextip = next
	return instr, nil
}

// Estack returns the frame's evaluation stack.
func (c *Context) Estack() *RandomAccess {
	return c.estack
}

// Astack returns the frame's alt stack.
func (c *Context) Astack() *RandomAccess {
	return c.astack
}

// Caller returns the frame that invoked this one via CALL, or nil for
// the entry frame.
func (c *Context) Caller() *Context {
	return c.caller
}

// clone produces a new frame sharing this frame's script, positioned at
// ip, with fresh empty stacks and caller linked back to this frame. Used
// by CALL.
func (c *Context) clone(ip int) *Context {
	return &Context{
		script:  c.script,
		ip:      ip,
		nextip:  ip,
		estack:  NewRandomAccess(),
		astack:  NewRandomAccess(),
		RVCount: -1,
		caller:  c,
	}
}

// currentOpcode peeks at the opcode the next call to Next will decode,
// without advancing. Used by pre/post hooks for inspection.
func (c *Context) currentOpcode() opcode.Opcode {
	if c.nextip >= len(c.script) {
		return opcode.RET
	}
	return opcode.Opcode(c.script[c.nextip])
}

// NextInstr returns the offset and opcode Next will decode next, without
// advancing. Used by debuggers/CLIs to show where execution will resume.
func (c *Context) NextInstr() (int, opcode.Opcode) {
	return c.nextip, c.currentOpcode()
}

// LenInstr returns the length, in bytes, of the frame's script.
func (c *Context) LenInstr() int {
	return c.script.Len()
}
