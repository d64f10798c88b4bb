package planar

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/tessadri/facekit/pkg/kernel"
	"github.com/tessadri/facekit/pkg/vecutil"
)

// gridKey is a point snapped to the precision grid. Points with the
// same key are the same vertex.
type gridKey [3]int64

// snap rounds a point to the kernel precision so that coincident
// input points collapse onto the same grid position.
func (k *Kernel) snap(p v3.Vec) v3.Vec {
	return v3.Vec{
		X: vecutil.Round(p.X, k.digits),
		Y: vecutil.Round(p.Y, k.digits),
		Z: vecutil.Round(p.Z, k.digits),
	}
}

// keyOf returns the grid key of a point.
func (k *Kernel) keyOf(p v3.Vec) gridKey {
	s := math.Pow(10, float64(k.digits))
	return gridKey{
		int64(math.Round(p.X * s)),
		int64(math.Round(p.Y * s)),
		int64(math.Round(p.Z * s)),
	}
}

// newVertex builds a snapped vertex for a point.
func (k *Kernel) newVertex(p v3.Vec) *vertex {
	sp := k.snap(p)
	return &vertex{p: sp, key: k.keyOf(sp)}
}

// less orders grid keys lexicographically.
func (a gridKey) less(b gridKey) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// edgeHash derives the canonical edge identity from the unordered
// endpoint pair. Edges built separately between the same two grid
// points hash identically regardless of direction.
func edgeHash(a, b gridKey) kernel.Hash {
	if b.less(a) {
		a, b = b, a
	}
	h := fnv.New64a()
	var buf [8]byte
	for _, key := range [2]gridKey{a, b} {
		for _, c := range key {
			binary.LittleEndian.PutUint64(buf[:], uint64(c))
			h.Write(buf[:])
		}
	}
	return kernel.Hash(h.Sum64())
}

// faceHashOf derives the face identity from its edge set, order
// independent.
func faceHashOf(edges []*edge) kernel.Hash {
	hs := make([]uint64, len(edges))
	for i, e := range edges {
		hs[i] = uint64(e.hash)
	}
	slices.Sort(hs)
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range hs {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	return kernel.Hash(h.Sum64())
}

// newEdge builds an edge between two snapped vertices.
func newEdge(a, b *vertex) *edge {
	return &edge{hash: edgeHash(a.key, b.key), a: a, b: b}
}
