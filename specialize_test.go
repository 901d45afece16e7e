package ahash

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type point struct {
	X, Y int32
	Name string
}

func (p point) HashInto(h Hasher) {
	h.WriteUint32(uint32(p.X))
	h.WriteUint32(uint32(p.Y))
	h.WriteString(p.Name)
}

type userID uint64

var _ = Describe("static dispatch", func() {
	b := WithSeeds(1, 2, 3, 4)

	It("hashes narrow integers the same through references", func() {
		x := uint32(7)
		px := &x
		ppx := &px
		Expect(HashNarrowRef(b, &x)).To(Equal(HashNarrow(b, x)))
		Expect(HashNarrowRef(b, *ppx)).To(Equal(HashNarrow(b, x)))
		id := userID(99)
		Expect(HashNarrow(b, id)).To(Equal(HashNarrow(b, uint64(99))))
	})

	It("looks through references for every narrow width", func() {
		u8, u16, u64 := uint8(1), uint16(2), uint64(3)
		p8, p16, p64 := &u8, &u16, &u64
		pp16, pp64 := &p16, &p64
		Expect(HashNarrowRef(b, p8)).To(Equal(HashNarrow(b, u8)))
		Expect(HashNarrowRef(b, *pp16)).To(Equal(HashNarrow(b, u16)))
		Expect(HashNarrowRef(b, *pp64)).To(Equal(HashNarrow(b, u64)))

		v := Uint128{Lo: 4, Hi: 5}
		pv := &v
		ppv := &pv
		Expect(HashUint128Ref(b, &v)).To(Equal(HashUint128(b, v)))
		Expect(HashUint128Ref(b, *ppv)).To(Equal(HashUint128(b, v)))
	})

	It("separates narrow integers by width", func() {
		digests := []uint64{
			HashNarrow(b, uint8(5)),
			HashNarrow(b, uint16(5)),
			HashNarrow(b, uint32(5)),
			HashNarrow(b, uint64(5)),
		}
		seen := map[uint64]bool{}
		for _, d := range digests {
			seen[d] = true
		}
		Expect(seen).To(HaveLen(len(digests)))
	})

	It("hashes wide integers the same through references", func() {
		n := 12345
		pn := &n
		Expect(HashWideRef(b, &n)).To(Equal(HashWide(b, n)))
		Expect(HashWideRef(b, pn)).To(Equal(HashWide(b, 12345)))
		Expect(HashWide(b, uintptr(1))).NotTo(Equal(HashWide(b, uintptr(2))))
	})

	It("treats strings and byte slices alike", func() {
		s := "hash me"
		bs := []byte(s)
		want := b.HashString(s)
		ps, pbs := &s, &bs
		pps, ppbs := &ps, &pbs
		Expect(HashString(b, s)).To(Equal(want))
		Expect(HashByteSlice(b, bs)).To(Equal(want))
		Expect(HashStringRef(b, *pps)).To(Equal(want))
		Expect(HashByteSliceRef(b, *ppbs)).To(Equal(want))
		type name string
		Expect(HashString(b, name(s))).To(Equal(want))
		Expect(b.Hash(bs)).To(Equal(want))
	})

	It("hashes composite values the same through references", func() {
		p := point{X: 1, Y: -2, Name: "origin"}
		pp := &p
		Expect(HashValueRef(b, &p)).To(Equal(HashValue(b, p)))
		Expect(HashValueRef(b, pp)).To(Equal(HashValue(b, p)))
		Expect(HashValue(b, point{X: -2, Y: 1, Name: "origin"})).NotTo(Equal(HashValue(b, p)))
	})

	It("hashes 128-bit integers by both halves", func() {
		v := Uint128{Lo: 1, Hi: 2}
		Expect(HashUint128(b, v)).To(Equal(HashUint128(b, v)))
		Expect(HashUint128(b, v)).NotTo(Equal(HashUint128(b, Uint128{Lo: 2, Hi: 1})))
		Expect(HashUint128(b, Uint128{Lo: 5})).NotTo(Equal(HashNarrow(b, uint64(5))))
	})
})
