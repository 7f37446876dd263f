package util

import "github.com/timloh-gtoken/neo-vm/pkg/util/slice"

// ArrayReverse reverses arr in place and returns it.
func ArrayReverse(arr []byte) []byte {
	slice.Reverse(arr)
	return arr
}
