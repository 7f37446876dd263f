package vm

import "github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"

// refNode is the tracker's bookkeeping for one live compound: how many
// stack/alt-stack slots hold it directly, and the multiset of compounds
// that hold it as an element. Only compounds get a node; primitives are
// value-like (and, for Bool/Null, not even unique by identity), so they
// are counted directly in t.count without ever being used as a map key.
type refNode struct {
	stackReferences int
	parentEdges     map[stackitem.Item]int
}

// RefTracker keeps stackitem_count accurate: every slot on an evaluation
// or alt stack counts for one, every element held inside a live compound
// counts for one more (a Map entry thus counts for two, one for its key
// and one for its value), and a compound that becomes unreachable -
// including one kept "alive" only by a reference cycle through its own
// elements - is detected and its contribution reclaimed by Sweep.
type RefTracker struct {
	tracing      map[stackitem.Item]*refNode
	count        int
	zeroReferred map[stackitem.Item]struct{}
}

// NewRefTracker returns an empty tracker.
func NewRefTracker() *RefTracker {
	return &RefTracker{
		tracing:      make(map[stackitem.Item]*refNode),
		zeroReferred: make(map[stackitem.Item]struct{}),
	}
}

// Count returns stackitem_count: the number of primitive-equivalent
// slots reachable from every tracked stack, compound expansion included.
func (t *RefTracker) Count() int {
	return t.count
}

func isCompound(item stackitem.Item) bool {
	switch item.(type) {
	case *stackitem.Array, *stackitem.Struct, *stackitem.Map:
		return true
	default:
		return false
	}
}

// compoundChildren returns the items a compound directly owns - Array
// and Struct elements, or a Map's keys and values interleaved one pair
// per entry so each contributes its own slot.
func compoundChildren(item stackitem.Item) []stackitem.Item {
	switch v := item.(type) {
	case *stackitem.Array:
		return v.Value().([]stackitem.Item)
	case *stackitem.Struct:
		return v.Value().([]stackitem.Item)
	case *stackitem.Map:
		elems := v.Value().([]stackitem.MapElement)
		children := make([]stackitem.Item, 0, len(elems)*2)
		for _, el := range elems {
			children = append(children, el.Key, el.Value)
		}
		return children
	default:
		return nil
	}
}

func (t *RefTracker) node(item stackitem.Item) *refNode {
	n, ok := t.tracing[item]
	if !ok {
		n = &refNode{parentEdges: make(map[stackitem.Item]int)}
		t.tracing[item] = n
	}
	return n
}

// AddStackReference registers item as newly present on an evaluation or
// alt stack. Every item counts for one slot; compounds additionally get
// a tracking node so a later Sweep can tell whether they're still live.
func (t *RefTracker) AddStackReference(item stackitem.Item) {
	t.count++
	if isCompound(item) {
		t.node(item).stackReferences++
	}
}

// RemoveStackReference unregisters item, removed from an evaluation or
// alt stack. A compound whose reference count reaches zero is queued
// for the next Sweep rather than reclaimed immediately, so a later
// re-push in the same step doesn't pay for a needless round trip.
func (t *RefTracker) RemoveStackReference(item stackitem.Item) {
	t.count--
	if !isCompound(item) {
		return
	}
	n, ok := t.tracing[item]
	if !ok {
		return
	}
	n.stackReferences--
	if n.stackReferences <= 0 {
		t.zeroReferred[item] = struct{}{}
	}
}

// AddParentEdge records that child has just been stored into a slot of
// parent (an array/struct element or a map key/value). The slot counts
// for one regardless of child's type; a compound child additionally
// gets a parent edge so Sweep can walk the containment graph.
func (t *RefTracker) AddParentEdge(parent, child stackitem.Item) {
	t.count++
	if isCompound(child) {
		t.node(child).parentEdges[parent]++
	}
}

// RemoveParentEdge records that child has just been removed from, or
// overwritten in, a slot of parent.
func (t *RefTracker) RemoveParentEdge(parent, child stackitem.Item) {
	t.count--
	if !isCompound(child) {
		return
	}
	n, ok := t.tracing[child]
	if !ok {
		return
	}
	n.parentEdges[parent]--
	if n.parentEdges[parent] <= 0 {
		delete(n.parentEdges, parent)
	}
	if n.stackReferences == 0 {
		t.zeroReferred[child] = struct{}{}
	}
}

// Sweep runs the cycle-safe reclamation pass: every compound enqueued
// since the last Sweep is checked for reachability by walking its
// parent-edge chain. A local cluster is reclaimed as a whole only if no
// node within it still has a live stack reference; pure reference
// counting can't make that call by itself when the cluster contains a
// cycle. Reclaiming a compound also releases the slots it held for its
// own elements, cascading into any child that was only kept alive by
// the dying parent.
func (t *RefTracker) Sweep() {
	if len(t.zeroReferred) == 0 {
		return
	}
	pending := t.zeroReferred
	t.zeroReferred = make(map[stackitem.Item]struct{})

	for root := range pending {
		if _, ok := t.tracing[root]; !ok {
			continue
		}
		visited := make(map[stackitem.Item]struct{})
		if t.isLive(root, visited) {
			continue
		}
		t.destroy(root)
	}
}

// destroy removes item's tracking node and releases the slot it held
// for each of its own children, recursing into any child left with no
// remaining stack reference or parent edge once that release lands.
func (t *RefTracker) destroy(item stackitem.Item) {
	if _, ok := t.tracing[item]; !ok {
		return
	}
	delete(t.tracing, item)
	for _, child := range compoundChildren(item) {
		t.releaseChildSlot(item, child)
	}
}

func (t *RefTracker) releaseChildSlot(parent, child stackitem.Item) {
	t.count--
	if !isCompound(child) {
		return
	}
	n, ok := t.tracing[child]
	if !ok {
		return
	}
	n.parentEdges[parent]--
	if n.parentEdges[parent] <= 0 {
		delete(n.parentEdges, parent)
	}
	if n.stackReferences == 0 && len(n.parentEdges) == 0 {
		t.destroy(child)
	}
}

// isLive walks from c through its parent edges (its containing
// compounds, and theirs in turn), returning true the moment any node in
// that reachable set still has a direct stack reference.
func (t *RefTracker) isLive(c stackitem.Item, visited map[stackitem.Item]struct{}) bool {
	if _, ok := visited[c]; ok {
		return false
	}
	visited[c] = struct{}{}
	n, ok := t.tracing[c]
	if !ok {
		return false
	}
	if n.stackReferences > 0 {
		return true
	}
	for parent := range n.parentEdges {
		if t.isLive(parent, visited) {
			return true
		}
	}
	return false
}
