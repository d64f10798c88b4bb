// Package kernel defines the abstract geometry kernel interface for
// boundary-representation topology. Implementations provide edges,
// wires, faces and shape assembly behind opaque handles. The kernel
// abstraction allows the face utilities to run against any backend
// without changing the rest of the system.
package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Hash identifies an edge or face topologically. Two handles with the
// same Hash refer to the same piece of topology even when they are
// distinct objects. Backends derive hashes from canonical geometry,
// never from object identity.
type Hash uint64

// Vertex is an opaque handle to a kernel vertex.
type Vertex interface {
	// Point returns the vertex position.
	Point() v3.Vec
}

// Edge is an opaque handle to a kernel edge.
type Edge interface {
	// Hash returns the topological identity of the edge.
	Hash() Hash
	// Vertices returns the edge endpoints in parameter order.
	Vertices() []Vertex
}

// Shape is the topology surface common to wires, faces, shells,
// compounds and solids.
type Shape interface {
	// Faces returns the faces of the shape, if any.
	Faces() []Face
	// Edges returns the edges of the shape. Aggregate shapes report
	// each distinct edge once even when several faces share it.
	Edges() []Edge
	// IsClosed reports whether the shape bounds a region: a closed
	// loop for a wire, a watertight shell for a face aggregate.
	IsClosed() bool
}

// Wire is an opaque handle to a connected chain of edges.
type Wire interface {
	Shape
	// Vertices returns the wire vertices in chain order.
	Vertices() []Vertex
	// BoundsDiagonal returns the length of the diagonal of the
	// wire's axis-aligned bounding box.
	BoundsDiagonal() float64
}

// Face is an opaque handle to a bounded surface patch.
type Face interface {
	Shape
	// Hash returns the topological identity of the face.
	Hash() Hash
	// Vertices returns the boundary vertices of the face.
	Vertices() []Vertex
	// NormalAt returns the surface normal at the normalized surface
	// parameters u, v in [0, 1].
	NormalAt(u, v float64) v3.Vec
	// IsValid reports whether the face is geometrically sound.
	IsValid() bool
	// Reverse flips the face orientation in place.
	Reverse()
}

// Kernel is the abstract geometry kernel interface. Implementations
// provide topology construction behind this interface.
type Kernel interface {
	// Curves and loops
	MakeLine(p1, p2 v3.Vec) (Edge, error)
	MakePolygon(pts []v3.Vec) (Wire, error) // closed iff first and last point coincide
	MakeWire(edges []Edge) (Wire, error)

	// Surfaces. The first wire is the outer boundary, any further
	// wires are holes inside it.
	MakeFace(wires ...Wire) (Face, error)

	// Assembly
	MakeShell(faces []Face) (Shape, error)
	MakeSolid(shell Shape) (Shape, error)
	MakeCompound(faces []Face) Shape

	// SortEdges reorders an unordered edge set into connected chains.
	SortEdges(edges []Edge) []Edge
}
