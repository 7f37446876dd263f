package vm

import (
	"github.com/timloh-gtoken/neo-vm/pkg/vm/opcode"
	"github.com/timloh-gtoken/neo-vm/pkg/vm/stackitem"
)

func isAggregateOp(op opcode.Opcode) bool {
	switch op {
	case opcode.ARRAYSIZE, opcode.PACK, opcode.UNPACK, opcode.PICKITEM, opcode.SETITEM,
		opcode.NEWARRAY, opcode.NEWSTRUCT, opcode.NEWMAP, opcode.APPEND, opcode.REVERSE,
		opcode.REMOVE, opcode.HASKEY, opcode.KEYS, opcode.VALUES:
		return true
	default:
		return false
	}
}

// elementsOf returns the backing slice of an Array or Struct, shared with
// the item itself: writes through the returned slice mutate the item.
func elementsOf(item stackitem.Item) ([]stackitem.Item, error) {
	switch v := item.(type) {
	case *stackitem.Array:
		return v.Value().([]stackitem.Item), nil
	case *stackitem.Struct:
		return v.Value().([]stackitem.Item), nil
	default:
		return nil, errTypeMismatch
	}
}

// storeValue prepares value for storage inside parent: a Struct is
// deep-cloned so the container owns an independent copy (Struct has
// value semantics on assignment), while Array and Map values are kept
// by reference. The prepared value's parent edge is registered before
// it's returned.
func (e *Engine) storeValue(parent, value stackitem.Item) (stackitem.Item, error) {
	if s, ok := value.(*stackitem.Struct); ok {
		clone, err := s.Clone()
		if err != nil {
			return nil, errArrayTooBig
		}
		value = clone
	}
	e.refs.AddParentEdge(parent, value)
	return value, nil
}

func (e *Engine) execAggregate(ctx *Context, instr Instruction) error {
	switch instr.Opcode {
	case opcode.ARRAYSIZE:
		item, err := e.pop(ctx)
		if err != nil {
			return err
		}
		switch v := item.(type) {
		case *stackitem.Array:
			e.push(ctx, stackitem.NewBigInteger(bigFromInt64(int64(v.Len()))))
		case *stackitem.Struct:
			e.push(ctx, stackitem.NewBigInteger(bigFromInt64(int64(v.Len()))))
		case *stackitem.Map:
			e.push(ctx, stackitem.NewBigInteger(bigFromInt64(int64(v.Len()))))
		default:
			b, err := item.TryBytes()
			if err != nil {
				return errTypeMismatch
			}
			e.push(ctx, stackitem.NewBigInteger(bigFromInt64(int64(len(b)))))
		}
		return nil

	case opcode.PACK:
		n, err := e.popIndex(ctx)
		if err != nil {
			return err
		}
		if n > e.limits.MaxArraySize {
			return errArrayTooBig
		}
		items := make([]stackitem.Item, n)
		for i := 0; i < n; i++ {
			items[i], err = e.pop(ctx)
			if err != nil {
				return err
			}
		}
		arr := stackitem.NewArray(items)
		for i, it := range items {
			stored, err := e.storeValue(arr, it)
			if err != nil {
				return err
			}
			items[i] = stored
		}
		e.push(ctx, arr)
		return nil

	case opcode.UNPACK:
		item, err := e.pop(ctx)
		if err != nil {
			return err
		}
		items, err := elementsOf(item)
		if err != nil {
			return err
		}
		for i := len(items) - 1; i >= 0; i-- {
			e.push(ctx, items[i])
		}
		e.push(ctx, stackitem.NewBigInteger(bigFromInt64(int64(len(items)))))
		return nil

	case opcode.PICKITEM:
		key, err := e.pop(ctx)
		if err != nil {
			return err
		}
		container, err := e.pop(ctx)
		if err != nil {
			return err
		}
		switch v := container.(type) {
		case *stackitem.Map:
			idx := v.Index(key)
			if idx < 0 {
				return errIndexOutOfRange
			}
			elems := v.Value().([]stackitem.MapElement)
			e.push(ctx, elems[idx].Value)
			return nil
		case *stackitem.Array, *stackitem.Struct:
			items, err := elementsOf(v)
			if err != nil {
				return err
			}
			n, err := key.TryInteger()
			if err != nil {
				return errTypeMismatch
			}
			if !n.IsInt64() || n.Sign() < 0 || n.Int64() >= int64(len(items)) {
				return errIndexOutOfRange
			}
			e.push(ctx, items[n.Int64()])
			return nil
		default:
			b, err := container.TryBytes()
			if err != nil {
				return errTypeMismatch
			}
			n, err := key.TryInteger()
			if err != nil {
				return errTypeMismatch
			}
			if !n.IsInt64() || n.Sign() < 0 || n.Int64() >= int64(len(b)) {
				return errIndexOutOfRange
			}
			e.push(ctx, stackitem.NewBigInteger(bigFromInt64(int64(b[n.Int64()]))))
			return nil
		}

	case opcode.SETITEM:
		value, err := e.pop(ctx)
		if err != nil {
			return err
		}
		key, err := e.pop(ctx)
		if err != nil {
			return err
		}
		container, err := e.pop(ctx)
		if err != nil {
			return err
		}
		switch v := container.(type) {
		case *stackitem.Map:
			if idx := v.Index(key); idx >= 0 {
				elems := v.Value().([]stackitem.MapElement)
				e.refs.RemoveParentEdge(v, elems[idx].Value)
			} else {
				if v.Len() >= e.limits.MaxArraySize {
					return errArrayTooBig
				}
				e.refs.AddParentEdge(v, key)
			}
			stored, err := e.storeValue(v, value)
			if err != nil {
				return err
			}
			v.Add(key, stored)
			return nil
		default:
			items, err := elementsOf(container)
			if err != nil {
				return err
			}
			n, err := key.TryInteger()
			if err != nil {
				return errTypeMismatch
			}
			if !n.IsInt64() || n.Sign() < 0 || n.Int64() >= int64(len(items)) {
				return errIndexOutOfRange
			}
			idx := n.Int64()
			e.refs.RemoveParentEdge(container, items[idx])
			stored, err := e.storeValue(container, value)
			if err != nil {
				return err
			}
			items[idx] = stored
			return nil
		}

	case opcode.NEWARRAY:
		return e.execNewAggregate(ctx, false)

	case opcode.NEWSTRUCT:
		return e.execNewAggregate(ctx, true)

	case opcode.NEWMAP:
		e.push(ctx, stackitem.NewMap())
		return nil

	case opcode.APPEND:
		value, err := e.pop(ctx)
		if err != nil {
			return err
		}
		container, err := e.pop(ctx)
		if err != nil {
			return err
		}
		items, err := elementsOf(container)
		if err != nil {
			return err
		}
		if len(items) >= e.limits.MaxArraySize {
			return errArrayTooBig
		}
		stored, err := e.storeValue(container, value)
		if err != nil {
			return err
		}
		switch v := container.(type) {
		case *stackitem.Array:
			v.Append(stored)
		case *stackitem.Struct:
			v.Append(stored)
		}
		return nil

	case opcode.REVERSE:
		container, err := e.pop(ctx)
		if err != nil {
			return err
		}
		items, err := elementsOf(container)
		if err != nil {
			return err
		}
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
		return nil

	case opcode.REMOVE:
		key, err := e.pop(ctx)
		if err != nil {
			return err
		}
		container, err := e.pop(ctx)
		if err != nil {
			return err
		}
		switch v := container.(type) {
		case *stackitem.Map:
			idx := v.Index(key)
			if idx < 0 {
				return errIndexOutOfRange
			}
			elems := v.Value().([]stackitem.MapElement)
			e.refs.RemoveParentEdge(v, elems[idx].Key)
			e.refs.RemoveParentEdge(v, elems[idx].Value)
			v.Drop(idx)
			return nil
		default:
			items, err := elementsOf(container)
			if err != nil {
				return err
			}
			n, err := key.TryInteger()
			if err != nil {
				return errTypeMismatch
			}
			if !n.IsInt64() || n.Sign() < 0 || n.Int64() >= int64(len(items)) {
				return errIndexOutOfRange
			}
			idx := n.Int64()
			e.refs.RemoveParentEdge(container, items[idx])
			switch vv := container.(type) {
			case *stackitem.Array:
				vv.Remove(int(idx))
			case *stackitem.Struct:
				vv.Remove(int(idx))
			}
			return nil
		}

	case opcode.HASKEY:
		key, err := e.pop(ctx)
		if err != nil {
			return err
		}
		container, err := e.pop(ctx)
		if err != nil {
			return err
		}
		if v, ok := container.(*stackitem.Map); ok {
			e.pushBool(ctx, v.Has(key))
			return nil
		}
		items, err := elementsOf(container)
		if err != nil {
			return err
		}
		n, err := key.TryInteger()
		if err != nil {
			return errTypeMismatch
		}
		e.pushBool(ctx, n.Sign() >= 0 && n.IsInt64() && n.Int64() < int64(len(items)))
		return nil

	case opcode.KEYS:
		container, err := e.pop(ctx)
		if err != nil {
			return err
		}
		m, ok := container.(*stackitem.Map)
		if !ok {
			return errTypeMismatch
		}
		elems := m.Value().([]stackitem.MapElement)
		keys := make([]stackitem.Item, len(elems))
		for i, el := range elems {
			keys[i] = el.Key
		}
		arr := stackitem.NewArray(keys)
		for _, k := range keys {
			e.refs.AddParentEdge(arr, k)
		}
		e.push(ctx, arr)
		return nil

	case opcode.VALUES:
		container, err := e.pop(ctx)
		if err != nil {
			return err
		}
		var src []stackitem.Item
		if m, ok := container.(*stackitem.Map); ok {
			elems := m.Value().([]stackitem.MapElement)
			src = make([]stackitem.Item, len(elems))
			for i, el := range elems {
				src[i] = el.Value
			}
		} else {
			src, err = elementsOf(container)
			if err != nil {
				return err
			}
		}
		out := make([]stackitem.Item, len(src))
		arr := stackitem.NewArray(out)
		for i, it := range src {
			stored, err := e.storeValue(arr, it)
			if err != nil {
				return err
			}
			out[i] = stored
		}
		e.push(ctx, arr)
		return nil

	default:
		return errInvalidOpcode
	}
}

// execNewAggregate implements NEWARRAY/NEWSTRUCT. Applied to an integer n,
// it allocates a fresh n-element container of Null items. Applied to an
// existing Array or Struct, it converts the operand in place: the result
// is the other kind, sharing the operand's element references rather than
// copying them.
func (e *Engine) execNewAggregate(ctx *Context, asStruct bool) error {
	targetType := stackitem.ArrayT
	if asStruct {
		targetType = stackitem.StructT
	}
	if top, err := e.peek(ctx, 0); err == nil {
		switch top.(type) {
		case *stackitem.Array, *stackitem.Struct:
			converted, err := convertAggregate(top, targetType)
			if err != nil {
				return err
			}
			if _, err := e.pop(ctx); err != nil {
				return err
			}
			if converted != top {
				for _, it := range elementsOfMust(converted) {
					e.refs.AddParentEdge(converted, it)
				}
			}
			e.push(ctx, converted)
			return nil
		}
	}

	n, err := e.popIndex(ctx)
	if err != nil {
		return err
	}
	if n > e.limits.MaxArraySize {
		return errArrayTooBig
	}
	items := make([]stackitem.Item, n)
	for i := range items {
		items[i] = stackitem.Null{}
	}
	var container stackitem.Item
	if asStruct {
		container = stackitem.NewStruct(items)
	} else {
		container = stackitem.NewArray(items)
	}
	for _, it := range items {
		e.refs.AddParentEdge(container, it)
	}
	e.push(ctx, container)
	return nil
}

// convertAggregate converts an Array or Struct to typ. The result gets its
// own copy of the element slice holding the same element references (see
// stackitem's Array.Convert/Struct.Convert).
func convertAggregate(item stackitem.Item, typ stackitem.Type) (stackitem.Item, error) {
	switch v := item.(type) {
	case *stackitem.Array:
		return v.Convert(typ)
	case *stackitem.Struct:
		return v.Convert(typ)
	default:
		return nil, errTypeMismatch
	}
}

// elementsOfMust is elementsOf without the error, used where the caller
// has already established the item is an Array or Struct.
func elementsOfMust(item stackitem.Item) []stackitem.Item {
	items, _ := elementsOf(item)
	return items
}
