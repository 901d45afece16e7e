// Package ahash implements a keyed, non-cryptographic 64-bit hash meant to
// back hash tables. It is fast on commodity hardware and, as long as the keys
// stay secret, resistant to hash flooding.
//
// Two accumulators share one contract. On CPUs with AES instructions (amd64,
// arm64) input is absorbed with single AES rounds; everywhere else a folded
// multiply with rotations is used. The path is chosen once at init and can be
// forced with AHASH_PATH=fallback or AHASH_PATH=aes. Digests differ between
// the two paths and may change between versions, so never persist them.
//
//	b := ahash.New()
//	h := b.Build()
//	h.WriteString("key")
//	sum := h.Sum64()
//
// The generic helpers HashNarrow, HashWide, HashUint128, HashString,
// HashByteSlice and HashValue pick the cheapest absorption for the static
// type of the value.
//
// A Hasher absorbs each WriteBytes or WriteString call as one unit, so it is
// not an io.Writer: the digest depends on how the input is split into calls.
package ahash
