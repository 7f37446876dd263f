package stackitem

import "fmt"

// Type is the single-byte tag identifying a stack item's kind on the wire
// and in its string form. The numeric values are the ones the VM's byte
// format fixes for each kind and can't be renumbered.
type Type byte

// This block defines all known stack item types.
const (
	AnyT       Type = 0x00
	PointerT   Type = 0x10
	BooleanT   Type = 0x20
	IntegerT   Type = 0x21
	ByteArrayT Type = 0x28
	BufferT    Type = 0x30
	ArrayT     Type = 0x40
	StructT    Type = 0x41
	MapT       Type = 0x48
	InteropT   Type = 0x60
	InvalidT   Type = 0xFF
)

// typeNames holds the canonical name for every valid Type, in both
// directions: Type.String looks it up by value, FromString by name.
var typeNames = [...]struct {
	t    Type
	name string
}{
	{AnyT, "Any"},
	{PointerT, "Pointer"},
	{BooleanT, "Boolean"},
	{IntegerT, "Integer"},
	{ByteArrayT, "ByteString"},
	{BufferT, "Buffer"},
	{ArrayT, "Array"},
	{StructT, "Struct"},
	{MapT, "Map"},
	{InteropT, "Interop"},
}

// String implements fmt.Stringer interface.
func (t Type) String() string {
	for _, e := range typeNames {
		if e.t == t {
			return e.name
		}
	}
	return "INVALID"
}

// IsValid checks if s is a well defined stack item type.
func (t Type) IsValid() bool {
	for _, e := range typeNames {
		if e.t == t {
			return true
		}
	}
	return false
}

// FromString returns stackitem type from string.
func FromString(s string) (Type, error) {
	for _, e := range typeNames {
		if e.name == s {
			return e.t, nil
		}
	}
	return InvalidT, fmt.Errorf("%w: unknown stack item type %q", ErrInvalidType, s)
}
