package ahash

import "unsafe"

// The hashing strategy for a value is picked by its static type through one
// of the generic entry points below. Each instantiation takes a single code
// path; nothing branches on the value itself.

// Narrow is the set of fixed-width integers hashed with a single folded multiply.
type Narrow interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Wide is the set of pointer sized integers, hashed through a full Hasher.
type Wide interface {
	~int | ~uint | ~uintptr
}

// Hashable is implemented by composite types that decompose themselves into
// primitive writes. Implement it on the value receiver so that a pointer
// hashes the same as the value it points to.
type Hashable interface {
	HashInto(h Hasher)
}

// HashNarrow hashes v with one word-mixing step and no buffered state.
func HashNarrow[T Narrow](b Builder, v T) uint64 {
	return b.hashWord(uint64(v) ^ widthTag(unsafe.Sizeof(v)))
}

// HashNarrowRef hashes the integer p points to, same as HashNarrow(b, *p).
func HashNarrowRef[T Narrow](b Builder, p *T) uint64 {
	return HashNarrow(b, *p)
}

// HashWide hashes v with two word-mixing steps: one absorption into a full
// accumulator on the active path, then its short finish.
func HashWide[T Wide](b Builder, v T) uint64 {
	return b.hashFixed(uint64(v), tag64)
}

// HashWideRef is HashWide(b, *p).
func HashWideRef[T Wide](b Builder, p *T) uint64 {
	return HashWide(b, *p)
}

// HashUint128 hashes a 128-bit integer with two word-mixing steps.
func HashUint128(b Builder, v Uint128) uint64 {
	if activePath == AES {
		h := b.aes()
		h.WriteUint128(v)
		return h.shortFinish()
	}
	h := b.fallback()
	h.update(v.Lo ^ tag128)
	h.update(v.Hi ^ tag128)
	return h.shortFinish()
}

// HashUint128Ref is HashUint128(b, *p).
func HashUint128Ref(b Builder, p *Uint128) uint64 {
	return HashUint128(b, *p)
}

// HashString hashes a string type without copying it. A string and a byte
// slice with the same contents have the same digest.
func HashString[T ~string](b Builder, v T) uint64 {
	return b.HashString(string(v))
}

// HashStringRef is HashString(b, *p).
func HashStringRef[T ~string](b Builder, p *T) uint64 {
	return HashString(b, *p)
}

// HashByteSlice hashes a byte slice type.
func HashByteSlice[T ~[]byte](b Builder, v T) uint64 {
	return b.Hash([]byte(v))
}

// HashByteSliceRef is HashByteSlice(b, *p).
func HashByteSliceRef[T ~[]byte](b Builder, p *T) uint64 {
	return HashByteSlice(b, *p)
}

// HashValue is the generic path: v writes itself into a fresh Hasher.
func HashValue[T Hashable](b Builder, v T) uint64 {
	h := b.Build()
	v.HashInto(h)
	return h.Sum64()
}

// HashValueRef is HashValue(b, *p).
func HashValueRef[T Hashable](b Builder, p *T) uint64 {
	return HashValue(b, *p)
}

// hashWord is the narrow integer shortcut. It shares the portable mixing step
// on both paths, a single multiply keyed by k1 then finished with k0.
func (b Builder) hashWord(v uint64) uint64 {
	buffer := foldedMultiply(v^b.k1, multiple)
	return foldedMultiply(buffer, b.k0)
}

func (b Builder) hashFixed(v, tag uint64) uint64 {
	if activePath == AES {
		h := b.aes()
		h.hashIn(block{v, tag})
		return h.shortFinish()
	}
	h := b.fallback()
	h.update(v ^ tag)
	return h.shortFinish()
}
