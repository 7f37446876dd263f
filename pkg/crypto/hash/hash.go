// Package hash provides the digest functions the VM core uses to derive a
// stable script identity for Pointer items.
package hash

import (
	"crypto/sha256"

	"github.com/timloh-gtoken/neo-vm/pkg/util"
	"golang.org/x/crypto/ripemd160"
)

// Sha256 computes the SHA-256 digest of data.
func Sha256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// RipeMD160 computes the RIPEMD-160 digest of data.
func RipeMD160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// Hash160 computes SHA-256 followed by RIPEMD-160, the script-identity digest
// used by Pointer items to distinguish one loaded script from another.
func Hash160(data []byte) util.Uint160 {
	u, err := util.Uint160DecodeBytes(RipeMD160(Sha256(data)))
	if err != nil {
		// RipeMD160 always yields exactly 20 bytes, so this is unreachable.
		panic(err)
	}
	return u
}
