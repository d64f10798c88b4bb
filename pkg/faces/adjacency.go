package faces

import (
	"github.com/tessadri/facekit/pkg/kernel"
)

// The operations in this package all start from some edge-to-face
// adjacency view of a face set, built fresh per call. Map iteration
// order is not deterministic, so every builder that feeds an ordered
// walk also returns its keys in first-appearance order.

// edgeCounts tallies how many faces of the set use each edge.
func edgeCounts(faces []kernel.Face) map[kernel.Hash]int {
	n := make(map[kernel.Hash]int)
	for _, f := range faces {
		for _, e := range f.Edges() {
			n[e.Hash()]++
		}
	}
	return n
}

// edgeOwners maps every edge of the set to the indices of the faces
// using it.
func edgeOwners(faces []kernel.Face) (owners map[kernel.Hash][]int, order []kernel.Hash) {
	owners = make(map[kernel.Hash][]int)
	for i, f := range faces {
		for _, e := range f.Edges() {
			h := e.Hash()
			if _, ok := owners[h]; !ok {
				order = append(order, h)
			}
			owners[h] = append(owners[h], i)
		}
	}
	return owners, order
}

// edgeObjects groups the edge objects of the set by hash.
func edgeObjects(faces []kernel.Face) (groups map[kernel.Hash][]kernel.Edge, order []kernel.Hash) {
	groups = make(map[kernel.Hash][]kernel.Edge)
	for _, f := range faces {
		for _, e := range f.Edges() {
			h := e.Hash()
			if _, ok := groups[h]; !ok {
				order = append(order, h)
			}
			groups[h] = append(groups[h], e)
		}
	}
	return groups, order
}
