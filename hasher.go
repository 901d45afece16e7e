package ahash

import "math/bits"

const (
	// multiple comes from a 64-bit LCG (Knuth's MMIX).
	multiple uint64 = 6364136223846793005
	// increment advances the per-block key word of the portable bulk loop.
	increment uint64 = 1442695040888963407
	rot              = 23
)

// The digits of pi, these are not special.
var pi = [4]uint64{
	0x243f_6a88_85a3_08d3,
	0x1319_8a2e_0370_7344,
	0xa409_3822_299f_31d0,
	0x082e_fa98_ec4e_6c89,
}

var pi2 = [4]uint64{
	0x4528_21e6_38d0_1377,
	0xbe54_66cf_34e9_0c6c,
	0xc0ac_29b7_c97c_50dd,
	0x3f84_d5b5_b547_0917,
}

// Width tags are XORed into every fixed-width word so that the same numeric
// value written at two different widths does not produce the same digest.
const (
	tag8   uint64 = 0x8f1b_bcdc_ca62_c1d6
	tag16  uint64 = 0x6ed9_eba1_5a82_7999
	tag32  uint64 = 0x5be0_cd19_1f83_d9ab
	tag64  uint64 = 0x9b05_688c_2b3e_6c1f
	tag128 uint64 = 0x510e_527f_ade6_82d1
)

// widthTag maps a size in bytes to its width tag.
func widthTag(size uintptr) uint64 {
	switch size {
	case 1:
		return tag8
	case 2:
		return tag16
	case 4:
		return tag32
	case 16:
		return tag128
	default:
		return tag64
	}
}

// Uint128 is a 128-bit unsigned integer split into two 64-bit halves.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Hasher is the accumulator that folds input into a 64-bit digest.
//
// A Hasher is not safe for concurrent use. Sum64 does not modify the state,
// so it can be called any number of times.
//
// WriteBytes and WriteString absorb each call as one length-tagged unit:
// writing "ab" then "c" differs from writing "abc". For that reason a Hasher
// is deliberately not an io.Writer or a hash.Hash64; feed it whole values.
type Hasher interface {
	WriteBytes(p []byte)
	WriteString(s string)
	WriteUint8(v uint8)
	WriteUint16(v uint16)
	WriteUint32(v uint32)
	WriteUint64(v uint64)
	WriteUint128(v Uint128)

	// Sum64 returns the digest of everything written so far.
	Sum64() uint64
	// Reset returns the Hasher to its freshly keyed state.
	Reset()
	// Clone returns an independent copy, used to fork the hash of a common prefix.
	Clone() Hasher
}

// NewHasher returns a Hasher on the active path keyed by k0 and k1.
//
// Digests are not stable between the AES and the portable path, nor between
// versions of this package.
func NewHasher(k0, k1 uint64) Hasher {
	if activePath == AES {
		return newAESHasherWithKeys(k0, k1)
	}
	return newFallbackHasherWithKeys(k0, k1)
}

// foldedMultiply returns the XOR of the high and low halves of the 128-bit product.
func foldedMultiply(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return hi ^ lo
}
