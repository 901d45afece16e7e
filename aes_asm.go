//go:build (amd64 || arm64) && !purego

package ahash

// aesenc performs one AES encryption round: ShiftRows, SubBytes and
// MixColumns on value, then XOR with key.
//
//go:noescape
func aesenc(value, key block) block

// aesdec performs one AES decryption round: InvShiftRows, InvSubBytes and
// InvMixColumns on value, then XOR with key.
//
//go:noescape
func aesdec(value, key block) block
