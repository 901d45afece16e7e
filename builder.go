package ahash

import (
	"math/bits"
	"unsafe"
)

// Builder holds the four key words and is the factory for Hashers.
//
// A Builder is read-only after construction and safe for concurrent use.
// Copies are keyed identically: every Hasher built from a Builder or from a
// copy of it produces the same digest for the same input.
//
//	| Constructor  | Distinct per call | Seed                          |
//	|--------------|-------------------|-------------------------------|
//	| New          | yes               | RandomSource                  |
//	| GenerateWith | yes               | 4 words + RandomSource        |
//	| WithSeed     | no, per process   | 1 word + process fixed seeds  |
//	| WithSeeds    | no, everywhere    | 4 words                       |
type Builder struct {
	k0, k1, k2, k3 uint64
}

// New returns a Builder with keys unique to this call. The process entropy
// is read once and cached; every call after that is syscall free.
func New() Builder {
	return process.newBuilder()
}

// GenerateWith mixes the caller's seeds with the random source, so every
// call returns a different Builder even for constant or weak seeds.
func GenerateWith(k0, k1, k2, k3 uint64) Builder {
	return process.generateWith(k0, k1, k2, k3)
}

// WithSeed returns a Builder derived from key and the process fixed seeds.
// Builders with the same key hash identically within one process. The key
// does not need to be of high quality.
func WithSeed(key uint64) Builder {
	return process.withSeed(key)
}

// WithSeeds returns a Builder that depends only on the four seeds, so it hashes
// identically across processes on the same path. Zeros or repeated values are
// tolerated; for DOS resistance at least one seed should be random. Pass seeds
// from highest to lowest quality.
func WithSeeds(k0, k1, k2, k3 uint64) Builder {
	mixed := preMixKey(&pi, k0^bits.RotateLeft64(k1, 16)^bits.RotateLeft64(k2, 32)^bits.RotateLeft64(k3, 48))
	return fromKeys(&pi, &[4]uint64{k0 ^ pi2[0], k1 ^ pi2[1], k2 ^ pi2[2], k3 ^ pi2[3]}, mixed)
}

func (p *processState) newBuilder() Builder {
	var b Builder
	fixed := p.fixedSeeds()
	seed := p.randomSource().GenHasherSeed() ^ uint64(uintptr(unsafe.Pointer(&b)))
	b = fromKeys(&fixed[0], &fixed[1], preMixKey(&fixed[0], seed))
	return b
}

func (p *processState) generateWith(k0, k1, k2, k3 uint64) Builder {
	fixed := p.fixedSeeds()
	mixed := preMixKey(&fixed[0], p.randomSource().GenHasherSeed())
	return fromKeys(&fixed[0], &[4]uint64{k0, k1, k2, k3}, mixed)
}

func (p *processState) withSeed(key uint64) Builder {
	fixed := p.fixedSeeds()
	return fromKeys(&fixed[0], &fixed[1], preMixKey(&fixed[0], key))
}

func preMixKey(a *[4]uint64, c uint64) uint64 {
	return foldedMultiply(a[0]^c, a[1])
}

// fromKeys spreads one pre-mixed word over four keys. Each key combines two
// different words of b so equal inputs in b still yield distinct keys.
func fromKeys(a, b *[4]uint64, preMixed uint64) Builder {
	c1 := foldedMultiply(preMixed, a[2])
	c2 := foldedMultiply(preMixed, a[3])
	return Builder{
		k0: (c1 ^ b[0]) + b[2],
		k1: (c1 ^ b[1]) + b[3],
		k2: (c2 ^ b[2]) + b[1],
		k3: (c2 ^ b[3]) + b[0],
	}
}

// Build returns a fresh Hasher on the active path.
func (b Builder) Build() Hasher {
	if activePath == AES {
		return b.aes()
	}
	return b.fallback()
}

func (b Builder) aes() *aesHasher {
	return newAESHasher(block{b.k0, b.k1}, block{b.k2, b.k3})
}

func (b Builder) fallback() *fallbackHasher {
	return newFallbackHasher(b.k1, b.k0, b.k2, b.k3)
}

// Hash returns the digest of p. Same as HashByteSlice(b, p).
func (b Builder) Hash(p []byte) uint64 {
	if activePath == AES {
		h := b.aes()
		h.write(p)
		return h.Sum64()
	}
	h := b.fallback()
	h.write(p)
	return h.Sum64()
}

// HashString returns the digest of s, equal to Hash([]byte(s)).
func (b Builder) HashString(s string) uint64 {
	return b.Hash(stringBytes(s))
}

// SmallBuilder keeps a single pre-mixed word and expands it into four keys
// on every Build. It trades a slower Build for a quarter of the memory.
type SmallBuilder struct {
	key uint64
}

// NewSmall returns a SmallBuilder unique to this call.
func NewSmall() SmallBuilder {
	fixed := process.fixedSeeds()
	return SmallBuilder{key: preMixKey(&fixed[0], process.randomSource().GenHasherSeed())}
}

// SmallWithSeed is the SmallBuilder counterpart of WithSeed, and hashes
// identically to WithSeed(key).
func SmallWithSeed(key uint64) SmallBuilder {
	fixed := process.fixedSeeds()
	return SmallBuilder{key: preMixKey(&fixed[0], key)}
}

// Builder expands the stored word into a full Builder.
func (s SmallBuilder) Builder() Builder {
	fixed := process.fixedSeeds()
	return fromKeys(&fixed[0], &fixed[1], s.key)
}

// Build returns a fresh Hasher.
func (s SmallBuilder) Build() Hasher {
	return s.Builder().Build()
}
