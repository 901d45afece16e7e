package ahash

import (
	"os"
	"strings"
)

// Path identifies which accumulator implementation backs new Hashers.
type Path uint8

const (
	// Fallback is the portable folded-multiply accumulator.
	Fallback Path = iota
	// AES is the accumulator built on hardware AES rounds.
	AES
)

// PathEnv overrides the detected path, e.g. AHASH_PATH=fallback.
const PathEnv = "AHASH_PATH"

func (p Path) String() string {
	switch p {
	case Fallback:
		return "fallback"
	case AES:
		return "aes"
	default:
		return "unknown"
	}
}

// ParsePath parses the name returned by Path.String.
func ParsePath(s string) (Path, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fallback":
		return Fallback, true
	case "aes":
		return AES, true
	default:
		return Fallback, false
	}
}

// Set once by the per-arch init before any Hasher is built.
var (
	activePath  Path
	hasOverride bool
	hasAES      bool
)

func initPath() {
	if override := os.Getenv(PathEnv); override != "" {
		if p, ok := ParsePath(override); ok && isPathAvailable(p) {
			hasOverride = true
			activePath = p
			return
		}
	}
	if hasAES {
		activePath = AES
	} else {
		activePath = Fallback
	}
}

func isPathAvailable(p Path) bool {
	switch p {
	case Fallback:
		return true
	case AES:
		return hasAES
	default:
		return false
	}
}

// ActivePath returns the path selected at init.
func ActivePath() Path {
	return activePath
}

// HasAES reports whether the CPU supports the AES path.
func HasAES() bool {
	return hasAES
}

// IsOverridden reports whether AHASH_PATH picked the active path.
func IsOverridden() bool {
	return hasOverride
}
