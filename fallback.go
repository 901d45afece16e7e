package ahash

import "math/bits"

// fallbackHasher is the portable accumulator. buffer is the data word, pad
// and extraKeys are key material that is never overwritten by input.
//
// A single multiply per word would be invertible: an attacker who strips the
// pre-mixing can place a high bit difference that a later block cancels.
// Rotating between multiplies feeds every bit into a different position of
// the next multiply, so no such cancelling pair exists.
type fallbackHasher struct {
	buffer    uint64
	pad       uint64
	extraKeys [2]uint64

	seed [4]uint64
}

var _ Hasher = (*fallbackHasher)(nil)

func newFallbackHasher(buffer, pad, e0, e1 uint64) *fallbackHasher {
	h := &fallbackHasher{seed: [4]uint64{buffer, pad, e0, e1}}
	h.Reset()
	return h
}

func newFallbackHasherWithKeys(k0, k1 uint64) *fallbackHasher {
	return newFallbackHasher(k0^pi[0], pi[1], k1^pi[2], pi[3])
}

func (h *fallbackHasher) Reset() {
	h.buffer = h.seed[0]
	h.pad = h.seed[1]
	h.extraKeys = [2]uint64{h.seed[2], h.seed[3]}
}

func (h *fallbackHasher) update(v uint64) {
	h.buffer = foldedMultiply(v^h.buffer, multiple)
}

func (h *fallbackHasher) largeUpdate(a, b uint64) {
	h.mix(a, b, h.extraKeys[0])
}

func (h *fallbackHasher) mix(a, b, key uint64) {
	combined := foldedMultiply(a^key, b^h.extraKeys[1])
	h.buffer = bits.RotateLeft64((h.buffer+h.pad)^combined, rot)
}

func (h *fallbackHasher) WriteUint8(v uint8) {
	h.update(uint64(v) ^ tag8)
}

func (h *fallbackHasher) WriteUint16(v uint16) {
	h.update(uint64(v) ^ tag16)
}

func (h *fallbackHasher) WriteUint32(v uint32) {
	h.update(uint64(v) ^ tag32)
}

func (h *fallbackHasher) WriteUint64(v uint64) {
	h.update(v ^ tag64)
}

func (h *fallbackHasher) WriteUint128(v Uint128) {
	h.largeUpdate(v.Lo, v.Hi^tag128)
}

func (h *fallbackHasher) WriteBytes(p []byte) {
	h.write(p)
}

func (h *fallbackHasher) WriteString(s string) {
	h.write(stringBytes(s))
}

func (h *fallbackHasher) write(data []byte) {
	n := len(data)
	// An add rather than an xor, a crafted suffix cannot cancel it.
	h.buffer = (h.buffer + uint64(n)) * multiple
	switch {
	case n > 16:
		h.largeUpdate(readU64(data[n-16:]), readLastU64(data))
		key := h.extraKeys[0]
		for len(data) > 16 {
			key += increment
			h.mix(readU64(data), readU64(data[8:]), key)
			data = data[16:]
		}
	case n > 8:
		h.largeUpdate(readU64(data), readLastU64(data))
	default:
		lo, hi := readSmall(data)
		h.largeUpdate(lo, hi)
	}
}

// Sum64 rotates by a data dependent amount so the weak top bits of the
// product do not stay in place.
func (h *fallbackHasher) Sum64() uint64 {
	r := int(h.buffer & 63)
	return bits.RotateLeft64(foldedMultiply(h.buffer, h.pad), r)
}

func (h *fallbackHasher) shortFinish() uint64 {
	return foldedMultiply(h.buffer, h.pad)
}

func (h *fallbackHasher) Clone() Hasher {
	c := *h
	return &c
}
