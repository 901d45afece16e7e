//go:build amd64 && !purego

package ahash

import "golang.org/x/sys/cpu"

func init() {
	hasAES = cpu.X86.HasAES
	initPath()
}
