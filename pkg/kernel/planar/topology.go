package planar

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/tessadri/facekit/pkg/kernel"
	"github.com/tessadri/facekit/pkg/vecutil"
)

// vertex is a snapped point. The grid key is the canonical identity
// used for chaining and hashing.
type vertex struct {
	p   v3.Vec
	key gridKey
}

// Point returns the vertex position.
func (v *vertex) Point() v3.Vec { return v.p }

// edge is a straight segment between two snapped vertices.
type edge struct {
	hash kernel.Hash
	a, b *vertex
}

// Hash returns the topological identity of the edge.
func (e *edge) Hash() kernel.Hash { return e.hash }

// Vertices returns the endpoints in parameter order.
func (e *edge) Vertices() []kernel.Vertex {
	return []kernel.Vertex{e.a, e.b}
}

// otherEnd returns the endpoint key opposite to k. The second return
// is false when neither endpoint matches.
func (e *edge) otherEnd(k gridKey) (gridKey, bool) {
	switch k {
	case e.a.key:
		return e.b.key, true
	case e.b.key:
		return e.a.key, true
	}
	return gridKey{}, false
}

// wire is a connected edge chain. verts holds the vertices in chain
// order; closed wires do not repeat the first vertex at the end.
type wire struct {
	edges  []*edge
	verts  []*vertex
	closed bool
}

// Faces returns nil: a wire has no faces.
func (w *wire) Faces() []kernel.Face { return nil }

// Edges returns the edges in chain order.
func (w *wire) Edges() []kernel.Edge {
	out := make([]kernel.Edge, len(w.edges))
	for i, e := range w.edges {
		out[i] = e
	}
	return out
}

// Vertices returns the vertices in chain order.
func (w *wire) Vertices() []kernel.Vertex {
	out := make([]kernel.Vertex, len(w.verts))
	for i, v := range w.verts {
		out[i] = v
	}
	return out
}

// IsClosed reports whether the chain loops back to its start.
func (w *wire) IsClosed() bool { return w.closed }

// bounds returns the axis-aligned bounding box of the wire.
func (w *wire) bounds() sdf.Box3 {
	b := sdf.Box3{Min: w.verts[0].p, Max: w.verts[0].p}
	for _, v := range w.verts[1:] {
		b.Min = b.Min.Min(v.p)
		b.Max = b.Max.Max(v.p)
	}
	return b
}

// BoundsDiagonal returns the length of the bounding-box diagonal.
func (w *wire) BoundsDiagonal() float64 {
	b := w.bounds()
	return b.Max.Sub(b.Min).Length()
}

// points returns the wire vertices as raw positions.
func (w *wire) points() []v3.Vec {
	pts := make([]v3.Vec, len(w.verts))
	for i, v := range w.verts {
		pts[i] = v.p
	}
	return pts
}

// face is a planar polygon, possibly with holes. The normal is the
// plane normal oriented by the outer wire winding; Reverse flips it
// without touching the loops, like an orientation flag.
type face struct {
	hash   kernel.Hash
	outer  *wire
	holes  []*wire
	normal v3.Vec
	tol    float64
}

// Hash returns the topological identity of the face.
func (f *face) Hash() kernel.Hash { return f.hash }

// Faces returns the face itself.
func (f *face) Faces() []kernel.Face { return []kernel.Face{f} }

// Edges returns the outer edges followed by any hole edges.
func (f *face) Edges() []kernel.Edge {
	out := make([]kernel.Edge, 0, len(f.outer.edges))
	for _, e := range f.allEdges() {
		out = append(out, e)
	}
	return out
}

// allEdges returns the concrete edges of the outer wire and all holes.
func (f *face) allEdges() []*edge {
	all := make([]*edge, 0, len(f.outer.edges))
	all = append(all, f.outer.edges...)
	for _, h := range f.holes {
		all = append(all, h.edges...)
	}
	return all
}

// Vertices returns the outer wire vertices followed by hole vertices.
func (f *face) Vertices() []kernel.Vertex {
	out := make([]kernel.Vertex, 0, len(f.outer.verts))
	out = append(out, f.outer.Vertices()...)
	for _, h := range f.holes {
		out = append(out, h.Vertices()...)
	}
	return out
}

// IsClosed returns false: a lone planar face never bounds a region.
func (f *face) IsClosed() bool { return false }

// NormalAt returns the plane normal. The surface parameters are
// ignored since the normal is constant on a plane.
func (f *face) NormalAt(u, v float64) v3.Vec { return f.normal }

// Reverse flips the face orientation in place.
func (f *face) Reverse() { f.normal = f.normal.Neg() }

// IsValid reports whether the face is geometrically sound: closed
// loops, a simple outer boundary (every vertex on exactly two edges)
// and nonzero area. Construction enforces planarity but not
// simplicity, so faces built from a self-touching boundary fail here.
func (f *face) IsValid() bool {
	if !f.outer.closed {
		return false
	}
	for _, h := range f.holes {
		if !h.closed {
			return false
		}
	}
	deg := make(map[gridKey]int)
	for _, e := range f.outer.edges {
		deg[e.a.key]++
		deg[e.b.key]++
	}
	for _, d := range deg {
		if d != 2 {
			return false
		}
	}
	return vecutil.Newell(f.outer.points()).Length() > f.tol
}

// faceGroup is the concrete shape behind shells, solids and
// compounds: a face list plus its deduplicated edge set.
type faceGroup struct {
	faces  []*face
	edges  []*edge // distinct edges, first-appearance order
	closed bool
}

// newFaceGroup collects the distinct edges of faces in first-appearance
// order and computes closedness: a group is closed when every edge is
// shared by exactly two faces.
func newFaceGroup(faces []*face) *faceGroup {
	g := &faceGroup{faces: faces}
	count := make(map[kernel.Hash]int)
	for _, f := range faces {
		for _, e := range f.allEdges() {
			if count[e.hash] == 0 {
				g.edges = append(g.edges, e)
			}
			count[e.hash]++
		}
	}
	g.closed = len(faces) > 0
	for _, c := range count {
		if c != 2 {
			g.closed = false
			break
		}
	}
	return g
}

// Faces returns the faces of the group.
func (g *faceGroup) Faces() []kernel.Face {
	out := make([]kernel.Face, len(g.faces))
	for i, f := range g.faces {
		out[i] = f
	}
	return out
}

// Edges returns each distinct edge once, in first-appearance order.
func (g *faceGroup) Edges() []kernel.Edge {
	out := make([]kernel.Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = e
	}
	return out
}

// IsClosed reports whether the group is watertight.
func (g *faceGroup) IsClosed() bool { return g.closed }
