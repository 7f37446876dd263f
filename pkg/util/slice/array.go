// Package slice contains byte slice helpers shared by the integer codec
// and the hash types.
package slice

// Copy returns a new slice holding a copy of b's bytes.
func Copy(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// CopyReverse returns a new slice holding b's bytes in reverse order,
// leaving b untouched.
func CopyReverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// Reverse reverses b in place.
func Reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
