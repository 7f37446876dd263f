// Package scriptcache is a pure performance supplement to the loader
// path: a bounded LRU of scripts that have already been fully decoded
// and validated once, keyed by content hash. It never changes a script's
// FAULT/HALT outcome; it only lets a repeated Load of the same script (a
// CLI reloading the same hex string, say) skip the whole-script
// decode-and-bounds-check pass. CALL inside a running script does not
// consult the cache, and the engine still decodes each instruction as it
// executes it.
package scriptcache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/timloh-gtoken/neo-vm/pkg/crypto/hash"
	"github.com/timloh-gtoken/neo-vm/pkg/vm"
)

// DefaultSize is a reasonable number of distinct scripts to keep warm
// for a single embedder process.
const DefaultSize = 256

// Cache holds previously-validated decode results, keyed by the SHA-256
// digest of the script's bytes.
type Cache struct {
	lru *lru.Cache
}

// New returns a cache holding at most size decoded scripts. size <= 0
// selects DefaultSize.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("scriptcache: %w", err)
	}
	return &Cache{lru: c}, nil
}

// key is the hex-free, comparable cache key: a fixed-size array copy of
// the script's SHA-256 digest, safe to use as a map key.
type key [32]byte

func keyOf(script []byte) key {
	var k key
	copy(k[:], hash.Sha256(script))
	return k
}

// Decode returns the full, offset-keyed instruction decode of script,
// validating it from scratch only the first time this exact script is
// seen. A malformed script (bad opcode, truncated immediate) is reported
// once and is not cached, so a caller that fixes the script and retries
// isn't stuck with a stale failure.
func (c *Cache) Decode(script []byte) (map[int]vm.Instruction, error) {
	k := keyOf(script)
	if v, ok := c.lru.Get(k); ok {
		return v.(map[int]vm.Instruction), nil
	}
	instrs, err := decodeAll(script)
	if err != nil {
		return nil, err
	}
	c.lru.Add(k, instrs)
	return instrs, nil
}

// Len returns the number of distinct scripts currently cached.
func (c *Cache) Len() int {
	return c.lru.Len()
}

func decodeAll(script []byte) (map[int]vm.Instruction, error) {
	s := vm.Script(script)
	out := make(map[int]vm.Instruction, len(script))
	for ip := 0; ip < s.Len(); {
		instr, next, err := s.Next(ip)
		if err != nil {
			return nil, fmt.Errorf("scriptcache: decode at offset %d: %w", ip, err)
		}
		out[ip] = instr
		if next <= ip {
			break
		}
		ip = next
	}
	return out, nil
}

// Load validates script against the cache (returning its decode error,
// if any, without touching the engine) and, once it is known-good,
// loads it into e exactly as Engine.LoadScript would.
func Load(e *vm.Engine, c *Cache, script []byte, rvcount int) (*vm.Context, error) {
	if _, err := c.Decode(script); err != nil {
		return nil, err
	}
	return e.LoadScript(script, rvcount)
}
