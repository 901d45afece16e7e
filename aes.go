package ahash

// block is a 128-bit AES state, lane 0 holds the low 64 bits.
type block [2]uint64

func readBlock(b []byte) block {
	return block{readU64(b), readU64(b[8:])}
}

func readLastBlock(b []byte) block {
	return readBlock(b[len(b)-16:])
}

func (b block) xor(o block) block {
	return block{b[0] ^ o[0], b[1] ^ o[1]}
}

func (b block) not() block {
	return block{^b[0], ^b[1]}
}

// addBy64s adds the two lanes independently, carries do not cross lanes.
func addBy64s(a, b block) block {
	return block{a[0] + b[0], a[1] + b[1]}
}

var shuffleMask = [16]byte{
	0x04, 0x0b, 0x09, 0x06, 0x08, 0x0d, 0x0f, 0x05,
	0x0e, 0x03, 0x01, 0x0c, 0x00, 0x07, 0x0a, 0x02,
}

// shuffle permutes the 16 bytes of b so that high entropy bytes end up in
// positions that an AES round mixes into other columns.
func shuffle(b block) block {
	var in, out [16]byte
	for i := 0; i < 8; i++ {
		in[i] = byte(b[0] >> (8 * i))
		in[8+i] = byte(b[1] >> (8 * i))
	}
	for i, m := range shuffleMask {
		out[i] = in[m]
	}
	return block{readU64(out[:8]), readU64(out[8:])}
}

func shuffleAndAdd(base, toAdd block) block {
	return addBy64s(shuffle(base), toAdd)
}

// aesHasher absorbs input through single AES rounds. enc carries the
// permutation lane, sum carries the running sum lane and key is folded back
// in on finish. Only selected when the CPU has AES instructions.
type aesHasher struct {
	enc block
	sum block
	key block

	seed [2]block
}

var _ Hasher = (*aesHasher)(nil)

func newAESHasher(key1, key2 block) *aesHasher {
	h := &aesHasher{seed: [2]block{key1, key2}}
	h.Reset()
	return h
}

func newAESHasherWithKeys(k0, k1 uint64) *aesHasher {
	return newAESHasher(
		block{k0 ^ pi[0], pi[1]},
		block{k1 ^ pi[2], pi[3]},
	)
}

func (h *aesHasher) Reset() {
	h.enc = h.seed[0]
	h.sum = h.seed[1]
	h.key = h.seed[0].xor(h.seed[1])
}

func (h *aesHasher) hashIn(v block) {
	h.enc = aesdec(h.enc, v)
	h.sum = shuffleAndAdd(h.sum, v)
}

func (h *aesHasher) hashIn2(v1, v2 block) {
	h.enc = aesdec(h.enc, v1)
	h.sum = shuffleAndAdd(h.sum, v1)
	h.enc = aesdec(h.enc, v2)
	h.sum = shuffleAndAdd(h.sum, v2)
}

func (h *aesHasher) WriteUint8(v uint8) {
	h.hashIn(block{uint64(v), tag8})
}

func (h *aesHasher) WriteUint16(v uint16) {
	h.hashIn(block{uint64(v), tag16})
}

func (h *aesHasher) WriteUint32(v uint32) {
	h.hashIn(block{uint64(v), tag32})
}

func (h *aesHasher) WriteUint64(v uint64) {
	h.hashIn(block{v, tag64})
}

func (h *aesHasher) WriteUint128(v Uint128) {
	h.hashIn(block{v.Lo, v.Hi ^ tag128})
}

func (h *aesHasher) WriteBytes(p []byte) {
	h.write(p)
}

func (h *aesHasher) WriteString(s string) {
	h.write(stringBytes(s))
}

func (h *aesHasher) write(data []byte) {
	// Scrambled by the first round of whichever branch runs.
	h.enc[0] += uint64(len(data))
	n := len(data)
	switch {
	case n <= 8:
		lo, hi := readSmall(data)
		h.hashIn(block{lo, hi})
	case n <= 16:
		h.hashIn(block{readU64(data), readLastU64(data)})
	case n <= 32:
		h.hashIn2(readBlock(data), readLastBlock(data))
	case n <= 64:
		h.hashIn2(readBlock(data), readBlock(data[16:]))
		h.hashIn2(readBlock(data[n-32:]), readLastBlock(data))
	default:
		h.writeBulk(data)
	}
}

// writeBulk handles inputs longer than 64 bytes. Four permutation lanes and
// two sum lanes are seeded from the trailing 64 bytes, then every full 64-byte
// stride except the last is folded in. The lanes are independent of each other
// so the rounds and additions pipeline.
func (h *aesHasher) writeBulk(data []byte) {
	tail := data[len(data)-64:]
	t0, t1, t2, t3 := readBlock(tail), readBlock(tail[16:]), readBlock(tail[32:]), readBlock(tail[48:])

	current := [4]block{
		aesenc(h.key, t0),
		aesenc(h.key, t1),
		aesenc(h.key, t2),
		aesenc(h.key, t3),
	}
	sum := [2]block{
		addBy64s(h.key, t0),
		addBy64s(h.key.not(), t1),
	}
	sum[0] = shuffleAndAdd(sum[0], t2)
	sum[1] = shuffleAndAdd(sum[1], t3)

	for len(data) > 64 {
		b0, b1, b2, b3 := readBlock(data), readBlock(data[16:]), readBlock(data[32:]), readBlock(data[48:])
		current[0] = aesdec(current[0], b0)
		current[1] = aesdec(current[1], b1)
		current[2] = aesdec(current[2], b2)
		current[3] = aesdec(current[3], b3)
		sum[0] = shuffleAndAdd(sum[0], b0)
		sum[1] = shuffleAndAdd(sum[1], b1)
		sum[0] = shuffleAndAdd(sum[0], b2)
		sum[1] = shuffleAndAdd(sum[1], b3)
		data = data[64:]
	}

	h.hashIn2(current[0], current[1])
	h.hashIn2(current[2], current[3])
	h.hashIn2(sum[0], sum[1])
}

func (h *aesHasher) Sum64() uint64 {
	combined := aesenc(h.sum, h.enc)
	result := aesdec(aesdec(combined, h.key), combined)
	return result[0]
}

// shortFinish uses a single round after the combine. Only sound for fixed-width
// inputs that went through exactly one absorption.
func (h *aesHasher) shortFinish() uint64 {
	combined := aesenc(h.sum, h.enc)
	return aesdec(combined, h.key)[0]
}

func (h *aesHasher) Clone() Hasher {
	c := *h
	return &c
}
