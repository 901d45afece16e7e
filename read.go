package ahash

import (
	"encoding/binary"
	"unsafe"
)

func readU64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

func readLastU64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b[len(b)-8:])
}

func readU32(b []byte) uint64 {
	return uint64(binary.LittleEndian.Uint32(b))
}

func readLastU32(b []byte) uint64 {
	return uint64(binary.LittleEndian.Uint32(b[len(b)-4:]))
}

func readU16(b []byte) uint64 {
	return uint64(binary.LittleEndian.Uint16(b))
}

// readSmall packs up to 8 bytes into two words. Head and tail reads overlap
// when the input is shorter than their combined width, so every byte lands
// in at least one word.
func readSmall(b []byte) (uint64, uint64) {
	switch n := len(b); {
	case n >= 4:
		return readU32(b), readLastU32(b)
	case n >= 2:
		return readU16(b), uint64(b[n-1])
	case n == 1:
		return uint64(b[0]), uint64(b[0])
	default:
		return 0, 0
	}
}

// stringBytes views s as a byte slice without copying. The result must not be modified.
func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
