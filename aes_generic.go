//go:build !(amd64 || arm64) || purego

package ahash

// Stubs for targets without an assembly AES round. ActivePath never reports
// AES on these targets, so the stubs are unreachable.

func aesenc(value, key block) block {
	panic("ahash: aesenc called without hardware AES support")
}

func aesdec(value, key block) block {
	panic("ahash: aesdec called without hardware AES support")
}

func init() {
	initPath()
}
