package vm

import "github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"

// FrameSnapshot is the per-frame view named by the core's snapshot/debug
// surface: instruction pointer, the opcode at the next position, and the
// {type, value} rendering of both stacks, top-first.
type FrameSnapshot struct {
	InstructionPointer int              `json:"instructionPointer"`
	NextInstruction    string           `json:"nextInstruction"`
	EvaluationStack    []map[string]any `json:"evaluationStack"`
	AltStack           []map[string]any `json:"altStack"`
}

// Snapshot renders the frame's debug view. An item with no debug
// representation (an Interop, a too-deep or cyclic compound) renders as
// an error placeholder rather than failing the whole snapshot: a
// debugger inspecting a live, possibly-malformed stack must not itself
// be able to crash on it.
func (c *Context) Snapshot() FrameSnapshot {
	ip, op := c.NextInstr()
	return FrameSnapshot{
		InstructionPointer: ip,
		NextInstruction:    op.String(),
		EvaluationStack:    dumpStack(c.estack),
		AltStack:           dumpStack(c.astack),
	}
}

func dumpStack(r *RandomAccess) []map[string]any {
	items := r.Items()
	out := make([]map[string]any, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		v, err := stackitem.ToDebugValue(items[i])
		if err != nil {
			v = map[string]any{"type": "error", "value": err.Error()}
		}
		out[len(items)-1-i] = v
	}
	return out
}

// Snapshot renders every live invocation frame, entry-first, plus the
// final result stack (populated only once the entry frame has returned).
func (e *Engine) Snapshot() ([]FrameSnapshot, []map[string]any) {
	frames := make([]FrameSnapshot, len(e.istack))
	for i, ctx := range e.istack {
		frames[i] = ctx.Snapshot()
	}
	return frames, dumpStack(e.result)
}
