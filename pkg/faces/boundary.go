package faces

import (
	"github.com/tessadri/facekit/pkg/kernel"
)

// Boundary returns the edges of the shape used by exactly one of its
// faces, in the shape's own edge order. Edges shared between faces
// are interior and dropped. A shape without faces has no boundary.
func (o *Ops) Boundary(shape kernel.Shape) []kernel.Edge {
	counts := edgeCounts(shape.Faces())
	var bound []kernel.Edge
	for _, e := range shape.Edges() {
		if counts[e.Hash()] == 1 {
			bound = append(bound, e)
		}
	}
	return bound
}

// BoundaryOfFaces returns the boundary of a face list, treated as one
// compound shape.
func (o *Ops) BoundaryOfFaces(faces []kernel.Face) []kernel.Edge {
	return o.Boundary(o.k.MakeCompound(faces))
}
