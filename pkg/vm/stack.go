package vm

import "github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"

// randomAccessAverageSize sizes the backing slice to avoid the first few
// reallocations for a typical script.
const randomAccessAverageSize = 16

// RandomAccess is a dense, indexable stack of stackitem.Item values.
// Every operation is bounds-checked and returns an error rather than
// panicking: the interpreter turns every error into FAULT, never a crash.
// Index 0 always means the top of the stack.
type RandomAccess struct {
	vals []stackitem.Item
}

// NewRandomAccess returns an empty stack.
func NewRandomAccess() *RandomAccess {
	return &RandomAccess{vals: make([]stackitem.Item, 0, randomAccessAverageSize)}
}

// Count returns the number of items on the stack.
func (r *RandomAccess) Count() int {
	return len(r.vals)
}

// Clear empties the stack.
func (r *RandomAccess) Clear() {
	r.vals = r.vals[:0]
}

// Push puts item on top of the stack.
func (r *RandomAccess) Push(item stackitem.Item) {
	r.vals = append(r.vals, item)
}

// Pop removes and returns the top item.
func (r *RandomAccess) Pop() (stackitem.Item, error) {
	return r.Remove(0)
}

// Peek returns the item at position n without removing it; n=0 is top.
func (r *RandomAccess) Peek(n int) (stackitem.Item, error) {
	if n < 0 || n >= len(r.vals) {
		return nil, errIndexOutOfRange
	}
	return r.vals[len(r.vals)-1-n], nil
}

// PeekFromBottom returns the item at position k counted from the
// bottom of the stack; k=0 is the oldest item still present.
func (r *RandomAccess) PeekFromBottom(k int) (stackitem.Item, error) {
	if k < 0 || k >= len(r.vals) {
		return nil, errIndexOutOfRange
	}
	return r.vals[k], nil
}

// Insert places item at position n, shifting items above it up; n=0 is
// equivalent to Push.
func (r *RandomAccess) Insert(n int, item stackitem.Item) error {
	if n < 0 || n > len(r.vals) {
		return errIndexOutOfRange
	}
	if n == 0 {
		r.Push(item)
		return nil
	}
	index := len(r.vals) - n
	r.vals = append(r.vals, nil)
	copy(r.vals[index+1:], r.vals[index:])
	r.vals[index] = item
	return nil
}

// Remove deletes and returns the item at position n.
func (r *RandomAccess) Remove(n int) (stackitem.Item, error) {
	if n < 0 || n >= len(r.vals) {
		return nil, errIndexOutOfRange
	}
	index := len(r.vals) - 1 - n
	item := r.vals[index]
	r.vals = append(r.vals[:index], r.vals[index+1:]...)
	return item, nil
}

// Set overwrites the item at position n.
func (r *RandomAccess) Set(n int, item stackitem.Item) error {
	if n < 0 || n >= len(r.vals) {
		return errIndexOutOfRange
	}
	r.vals[len(r.vals)-1-n] = item
	return nil
}

// CopyTo appends a copy of every item, in the same order, to other.
func (r *RandomAccess) CopyTo(other *RandomAccess) {
	other.vals = append(other.vals, r.vals...)
}

// Items exposes the underlying slice, top-last, for iteration by the
// engine's reference tracker and debug-snapshot code. Callers must not
// retain or mutate the slice.
func (r *RandomAccess) Items() []stackitem.Item {
	return r.vals
}
