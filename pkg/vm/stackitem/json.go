package stackitem

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// MaxJSONDepth is the maximum allowed nesting level when walking an Item
// tree for debug/snapshot output.
const MaxJSONDepth = 10

// ErrRecursive is returned when a compound item directly or indirectly
// contains itself, which can't be represented as a tree.
var ErrRecursive = errors.New("recursive item")

// ErrUnserializable is returned for items that have no debug
// representation (Interop values carry host-defined Go state).
var ErrUnserializable = errors.New("unserializable item")

// ErrInvalidValue is returned when an item value doesn't fit some
// constraint, e.g. not being valid UTF-8.
var ErrInvalidValue = errors.New("invalid value")

// debugTypeName renders a Type the way the snapshot/debug surface expects:
// lowercase, and with Null rendered as "null" rather than "any".
func debugTypeName(item Item) string {
	if _, ok := item.(Null); ok {
		return "null"
	}
	switch item.Type() {
	case ByteArrayT:
		return "bytestring"
	default:
		s := item.Type().String()
		out := make([]byte, len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			out[i] = c
		}
		return string(out)
	}
}

// ToDebugValue renders item as the {type, value} structure named by the
// core's snapshot/debug surface. Compound items are walked depth-first;
// a cycle or a depth beyond MaxJSONDepth is reported as an error rather
// than looping forever.
func ToDebugValue(item Item) (map[string]any, error) {
	return toDebugValue(item, make(map[Item]bool), 0)
}

func toDebugValue(item Item, seen map[Item]bool, depth int) (map[string]any, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	result := map[string]any{"type": debugTypeName(item)}
	switch it := item.(type) {
	case Null:
		return result, nil
	case Bool:
		result["value"] = bool(it)
	case *BigInteger:
		result["value"] = it.Big().String()
	case *ByteArray:
		result["value"] = base64.StdEncoding.EncodeToString(*it)
	case *Buffer:
		result["value"] = base64.StdEncoding.EncodeToString(*it)
	case *Pointer:
		result["value"] = it.pos
	case *Interop:
		return nil, fmt.Errorf("%w: %s", ErrUnserializable, it)
	case *Array, *Struct:
		if seen[item] {
			return nil, ErrRecursive
		}
		seen[item] = true
		_ = it
		elems := item.Value().([]Item)
		arr := make([]any, len(elems))
		for i, e := range elems {
			v, err := toDebugValue(e, seen, depth+1)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		result["value"] = arr
		delete(seen, item)
	case *Map:
		if seen[item] {
			return nil, ErrRecursive
		}
		seen[item] = true
		entries := make([]any, len(it.value))
		for i, e := range it.value {
			k, err := toDebugValue(e.Key, seen, depth+1)
			if err != nil {
				return nil, err
			}
			v, err := toDebugValue(e.Value, seen, depth+1)
			if err != nil {
				return nil, err
			}
			entries[i] = map[string]any{"key": k, "value": v}
		}
		result["value"] = entries
		delete(seen, item)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnserializable, item)
	}
	return result, nil
}

// ErrTooDeep is returned when a debug value walk exceeds MaxJSONDepth.
var ErrTooDeep = errors.New("too deep")
