package ahash

import "github.com/pkg/errors"

var (
	// ErrEntropyUnavailable is the cause of a failed entropy read. It is only
	// logged, key derivation falls back to fixed constants.
	ErrEntropyUnavailable = errors.New("entropy source unavailable")
	// ErrRandomSourceSet is returned by SetRandomSource once a source is in use.
	ErrRandomSourceSet = errors.New("random source already set")
)
