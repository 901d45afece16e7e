package hashkit

import (
	"fmt"
	"sort"

	"github.com/bitleak/go-ahash"
)

const KetamaPointsPerServer = 160

// pointsPerHash is the number of 32-bit ring points cut from one 64-bit digest.
const pointsPerHash = 2

type continuumPoint struct {
	server *Server
	point  uint32
}

type Continuum struct {
	ring   continuumPoints
	hashFn HashFn
	points ahash.Builder
}

type continuumPoints []continuumPoint

func (c continuumPoints) Less(i, j int) bool { return c[i].point < c[j].point }
func (c continuumPoints) Len() int           { return len(c) }
func (c continuumPoints) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }

// NewKetama builds a consistent hash ring over servers. Keys are placed with
// hashFn, Ahash when nil. Ring points always come from the fixed ahash
// placement builder.
func NewKetama(servers []*Server, hashFn HashFn) *Continuum {
	ketama := &Continuum{
		hashFn: hashFn,
		points: ringBuilder,
	}
	if ketama.hashFn == nil {
		ketama.hashFn = Ahash
	}
	ketama.ring = ketama.build(servers)
	return ketama
}

func (c *Continuum) Dispatch(key string) uint32 {
	if len(c.ring) == 0 {
		return 0
	}
	h := c.hashFn([]byte(key))
	return c.ring[c.search(h)].server.Index
}

func (c *Continuum) Rebuild(servers []*Server) {
	c.ring = c.build(servers)
}

func (c *Continuum) build(servers []*Server) continuumPoints {
	numServers := len(servers)
	ring := make(continuumPoints, 0, numServers*KetamaPointsPerServer)

	var totalWeight int64
	for _, server := range servers {
		if server.Weight > 0 {
			totalWeight += server.Weight
		}
	}
	if totalWeight == 0 {
		return ring
	}

	for _, server := range servers {
		if server.Weight <= 0 {
			continue
		}
		// Divide last so equal weights get exactly KetamaPointsPerServer points.
		share := float64(server.Weight) * float64(KetamaPointsPerServer/pointsPerHash) * float64(numServers)
		hashNum := int(share / float64(totalWeight))

		for hashIdx := 0; hashIdx < hashNum; hashIdx++ {
			digest := c.points.HashString(fmt.Sprintf("%s-%d", server.Name, hashIdx))
			ring = append(ring,
				continuumPoint{point: uint32(digest), server: server},
				continuumPoint{point: uint32(digest >> 32), server: server},
			)
		}
	}
	sort.Sort(ring)
	return ring
}

// search returns the first point at or after h, wrapping to the start of the ring.
func (c *Continuum) search(h uint32) int {
	i := sort.Search(len(c.ring), func(i int) bool { return c.ring[i].point >= h })
	if i == len(c.ring) {
		return 0
	}
	return i
}
