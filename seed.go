package ahash

import (
	"crypto/rand"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EntropySource fills p with random bytes.
type EntropySource func(p []byte) error

func systemEntropy(p []byte) error {
	_, err := rand.Read(p)
	return err
}

// RandomSource supplies the per-builder word that New and GenerateWith mix
// into the fixed seeds. Implementations must be safe for concurrent use.
type RandomSource interface {
	GenHasherSeed() uint64
}

// defaultRandomSource advances a counter by its own address on every call.
// The counter starts at the address of the fixed seed table, so both the
// start and the stride depend on the address space layout.
type defaultRandomSource struct {
	counter uint64
}

func newDefaultRandomSource(origin unsafe.Pointer) *defaultRandomSource {
	return &defaultRandomSource{counter: uint64(uintptr(origin))}
}

func (s *defaultRandomSource) GenHasherSeed() uint64 {
	stride := uint64(uintptr(unsafe.Pointer(s))) | 1
	return atomic.AddUint64(&s.counter, stride)
}

// processState is the only shared state of the package: the fixed seeds,
// read from the entropy source at most once, and the random source. All of
// it is reached through builder construction.
type processState struct {
	entropy EntropySource

	seedsOnce sync.Once
	seeds     [2][4]uint64

	sourceOnce sync.Once
	source     RandomSource
}

var process = newProcessState(systemEntropy)

func newProcessState(entropy EntropySource) *processState {
	return &processState{entropy: entropy}
}

func readEntropy(src EntropySource, p []byte) error {
	if err := src(p); err != nil {
		return errors.Wrapf(ErrEntropyUnavailable, "read %d bytes: %v", len(p), err)
	}
	return nil
}

// fixedSeeds returns the two seed quads. When the entropy source fails the
// digits of pi are used, which keeps construction infallible but lets anyone
// who knows this package predict keys built from WithSeed.
func (p *processState) fixedSeeds() *[2][4]uint64 {
	p.seedsOnce.Do(func() {
		var buf [64]byte
		if err := readEntropy(p.entropy, buf[:]); err != nil {
			log().Warn("falling back to fixed hash seeds, DOS resistance is reduced", zap.Error(err))
			p.seeds = [2][4]uint64{pi, pi2}
			return
		}
		for i := range p.seeds {
			for j := range p.seeds[i] {
				p.seeds[i][j] = readU64(buf[(i*4+j)*8:])
			}
		}
	})
	return &p.seeds
}

func (p *processState) randomSource() RandomSource {
	p.sourceOnce.Do(func() {
		p.source = newDefaultRandomSource(unsafe.Pointer(p.fixedSeeds()))
	})
	return p.source
}

func (p *processState) setRandomSource(src RandomSource) error {
	if src == nil {
		return errors.New("nil random source")
	}
	set := false
	p.sourceOnce.Do(func() {
		p.source = src
		set = true
	})
	if !set {
		return ErrRandomSourceSet
	}
	return nil
}

// SetRandomSource installs the source used by New and GenerateWith. It must
// be called before the first builder is created; later calls return
// ErrRandomSourceSet.
func SetRandomSource(src RandomSource) error {
	return process.setRandomSource(src)
}
