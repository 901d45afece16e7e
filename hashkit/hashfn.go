package hashkit

import (
	"hash/fnv"

	"github.com/bitleak/go-ahash"
	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// HashFn maps a key to a 32-bit position used for shard placement.
type HashFn func(key []byte) uint32

// Fixed seeds of the placement builder. Changing them reshuffles every ring.
const (
	ringSeed0 = 0x6b65_7461_6d61_5f30
	ringSeed1 = 0x7368_6172_645f_5f31
	ringSeed2 = 0x726f_7574_6572_5f32
	ringSeed3 = 0x6861_7368_6b69_7433
)

var ringBuilder = ahash.WithSeeds(ringSeed0, ringSeed1, ringSeed2, ringSeed3)

func Fnv1a64(key []byte) uint32 {
	h := fnv.New64a()
	h.Write(key)
	return uint32(h.Sum64())
}

// Xxh3
// https://github.com/rurban/smhasher/blob/master/doc/xxh3low.txt
// https://github.com/kelindar/hashbench
func Xxh3(key []byte) uint32 {
	return uint32(xxh3.Hash(key))
}

func Xxhash(key []byte) uint32 {
	return uint32(xxhash.Sum64(key))
}

// Ahash is the default placement hash. Its keys are fixed, so two processes
// place a key on the same shard as long as they run the same ahash path; set
// AHASH_PATH=fallback on every client of a mixed-CPU fleet.
func Ahash(key []byte) uint32 {
	return uint32(ringBuilder.Hash(key))
}

// AhashWith returns a HashFn keyed by b, e.g. a per-process ahash.New() for a
// purely in-memory ring.
func AhashWith(b ahash.Builder) HashFn {
	return func(key []byte) uint32 {
		return uint32(b.Hash(key))
	}
}
