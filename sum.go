package ahash

// Sum64WithSeed hashes p with a Builder derived only from seed. It is the
// single entry point used for differential testing against external hash
// quality suites: WithSeeds(seed, seed, seed, seed), one Write, one Sum64.
func Sum64WithSeed(p []byte, seed uint64) uint64 {
	return WithSeeds(seed, seed, seed, seed).Hash(p)
}
