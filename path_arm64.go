//go:build arm64 && !purego

package ahash

import "golang.org/x/sys/cpu"

func init() {
	hasAES = cpu.ARM64.HasAES
	initPath()
}
