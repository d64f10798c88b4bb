// Package planar implements the kernel.Kernel interface with an
// in-memory representation restricted to straight edges and planar
// polygonal faces. It gives the face utilities a small, substitutable
// backend for tests and examples; a full B-rep kernel can replace it
// behind the same interface.
package planar

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/tessadri/facekit/pkg/kernel"
	"github.com/tessadri/facekit/pkg/vecutil"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// defaultTolerance bounds planarity deviation and degeneracy checks.
const defaultTolerance = 1e-7

// Kernel implements kernel.Kernel with planar topology held in memory.
type Kernel struct {
	digits int
	tol    float64
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithPrecision sets the number of decimal digits vertices are
// snapped to.
func WithPrecision(digits int) Option {
	return func(k *Kernel) { k.digits = digits }
}

// WithTolerance sets the planarity tolerance.
func WithTolerance(tol float64) Option {
	return func(k *Kernel) { k.tol = tol }
}

// New returns a new planar Kernel.
func New(opts ...Option) *Kernel {
	k := &Kernel{digits: vecutil.Precision, tol: defaultTolerance}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// unwrapWire extracts the concrete wire. Only shapes built by this
// backend are accepted.
func unwrapWire(w kernel.Wire) *wire { return w.(*wire) }

// unwrapFace extracts the concrete face.
func unwrapFace(f kernel.Face) *face { return f.(*face) }

// MakeLine creates a straight edge between two points.
func (k *Kernel) MakeLine(p1, p2 v3.Vec) (kernel.Edge, error) {
	a, b := k.newVertex(p1), k.newVertex(p2)
	if a.key == b.key {
		return nil, &kernel.ConstructionError{Op: "MakeLine", Reason: "zero-length edge"}
	}
	return newEdge(a, b), nil
}

// MakePolygon creates a wire through the given points. The wire is
// closed when the first and last point coincide on the precision grid.
func (k *Kernel) MakePolygon(pts []v3.Vec) (kernel.Wire, error) {
	if len(pts) < 2 {
		return nil, &kernel.ConstructionError{Op: "MakePolygon", Reason: "need at least two points"}
	}
	verts := make([]*vertex, len(pts))
	for i, p := range pts {
		verts[i] = k.newVertex(p)
	}
	closed := verts[0].key == verts[len(verts)-1].key
	if closed {
		verts = verts[:len(verts)-1]
		if len(verts) < 3 {
			return nil, &kernel.ConstructionError{Op: "MakePolygon", Reason: "closed polygon needs at least three distinct points"}
		}
	}
	w := &wire{verts: verts, closed: closed}
	for i := 0; i < len(verts)-1; i++ {
		if verts[i].key == verts[i+1].key {
			return nil, &kernel.ConstructionError{Op: "MakePolygon", Reason: "coincident consecutive points"}
		}
		w.edges = append(w.edges, newEdge(verts[i], verts[i+1]))
	}
	if closed {
		w.edges = append(w.edges, newEdge(verts[len(verts)-1], verts[0]))
	}
	return w, nil
}

// chainLink is an edge in a wire chain with its traversal direction.
type chainLink struct {
	e       *edge
	forward bool // traversed a to b in chain order
}

// growChain pulls edges from pool onto both ends of a chain seeded
// with the pool's first edge. It returns the chain links in walk
// order, the chain's endpoint keys, and the edges it could not reach.
// The pool's backing array is consumed.
func growChain(pool []*edge) (chain []chainLink, start, end gridKey, rest []*edge) {
	chain = []chainLink{{e: pool[0], forward: true}}
	start, end = pool[0].a.key, pool[0].b.key
	rest = pool[1:]
	for {
		attached := false
		for i, e := range rest {
			if far, ok := e.otherEnd(end); ok {
				chain = append(chain, chainLink{e: e, forward: e.a.key == end})
				end = far
			} else if far, ok := e.otherEnd(start); ok {
				chain = append([]chainLink{{e: e, forward: e.b.key == start}}, chain...)
				start = far
			} else {
				continue
			}
			rest = append(rest[:i], rest[i+1:]...)
			attached = true
			break
		}
		if !attached {
			return chain, start, end, rest
		}
	}
}

// MakeWire chains edges that share endpoints into a single wire. The
// edges may arrive in any order and orientation; construction fails
// when some edge cannot be connected to the chain.
func (k *Kernel) MakeWire(edges []kernel.Edge) (kernel.Wire, error) {
	if len(edges) == 0 {
		return nil, &kernel.ConstructionError{Op: "MakeWire", Reason: "no edges"}
	}
	pool := make([]*edge, len(edges))
	for i, e := range edges {
		pool[i] = e.(*edge)
	}
	chain, start, end, rest := growChain(pool)
	if len(rest) > 0 {
		return nil, &kernel.ConstructionError{Op: "MakeWire", Reason: "edges do not form a connected chain"}
	}

	closed := start == end && len(chain) > 1
	verts := make([]*vertex, 0, len(chain)+1)
	if chain[0].forward {
		verts = append(verts, chain[0].e.a)
	} else {
		verts = append(verts, chain[0].e.b)
	}
	for _, l := range chain {
		if l.forward {
			verts = append(verts, l.e.b)
		} else {
			verts = append(verts, l.e.a)
		}
	}
	if closed {
		verts = verts[:len(verts)-1]
	}
	es := make([]*edge, len(chain))
	for i, l := range chain {
		es[i] = l.e
	}
	return &wire{edges: es, verts: verts, closed: closed}, nil
}

// containsBox reports whether inner lies within outer, allowing tol
// slack on every side.
func containsBox(outer, inner sdf.Box3, tol float64) bool {
	return inner.Min.X >= outer.Min.X-tol &&
		inner.Min.Y >= outer.Min.Y-tol &&
		inner.Min.Z >= outer.Min.Z-tol &&
		inner.Max.X <= outer.Max.X+tol &&
		inner.Max.Y <= outer.Max.Y+tol &&
		inner.Max.Z <= outer.Max.Z+tol
}

// MakeFace builds a planar face from closed wires. The first wire is
// the outer boundary; any further wires are holes and must lie inside
// it. Every point must sit on the outer wire's plane. The face normal
// follows the outer wire winding.
func (k *Kernel) MakeFace(wires ...kernel.Wire) (kernel.Face, error) {
	if len(wires) == 0 {
		return nil, &kernel.ConstructionError{Op: "MakeFace", Reason: "no wires"}
	}
	ws := make([]*wire, len(wires))
	for i, w := range wires {
		ws[i] = unwrapWire(w)
		if !ws[i].closed {
			return nil, &kernel.ConstructionError{Op: "MakeFace", Reason: "open wire"}
		}
	}
	outer := ws[0]
	n := vecutil.Newell(outer.points())
	if n.Length() <= k.tol {
		return nil, &kernel.ConstructionError{Op: "MakeFace", Reason: "degenerate outer boundary"}
	}
	normal := n.Normalize()
	ref := outer.verts[0].p
	for _, w := range ws {
		for _, v := range w.verts {
			if math.Abs(v.p.Sub(ref).Dot(normal)) > k.tol {
				return nil, &kernel.ConstructionError{Op: "MakeFace", Reason: "points are not coplanar"}
			}
		}
	}
	ob := outer.bounds()
	for _, h := range ws[1:] {
		if !containsBox(ob, h.bounds(), k.tol) {
			return nil, &kernel.ConstructionError{Op: "MakeFace", Reason: "hole outside the outer boundary"}
		}
	}
	f := &face{outer: outer, holes: ws[1:], normal: normal, tol: k.tol}
	f.hash = faceHashOf(f.allEdges())
	return f, nil
}

// MakeShell assembles faces into a shell. Closedness is computed from
// edge sharing: the shell is closed when every edge is used by
// exactly two faces.
func (k *Kernel) MakeShell(faces []kernel.Face) (kernel.Shape, error) {
	if len(faces) == 0 {
		return nil, &kernel.ConstructionError{Op: "MakeShell", Reason: "no faces"}
	}
	fs := make([]*face, len(faces))
	for i, f := range faces {
		fs[i] = unwrapFace(f)
	}
	return newFaceGroup(fs), nil
}

// MakeSolid builds a solid from a closed shell.
func (k *Kernel) MakeSolid(shell kernel.Shape) (kernel.Shape, error) {
	g, ok := shell.(*faceGroup)
	if !ok {
		return nil, &kernel.ConstructionError{Op: "MakeSolid", Reason: "shape is not a shell"}
	}
	if !g.closed {
		return nil, &kernel.ConstructionError{Op: "MakeSolid", Reason: "shell is not closed"}
	}
	return &faceGroup{faces: g.faces, edges: g.edges, closed: true}, nil
}

// MakeCompound groups faces without any connectivity requirement.
func (k *Kernel) MakeCompound(faces []kernel.Face) kernel.Shape {
	fs := make([]*face, len(faces))
	for i, f := range faces {
		fs[i] = unwrapFace(f)
	}
	return newFaceGroup(fs)
}

// SortEdges reorders an unordered edge set so that connected edges
// appear consecutively in walk order. Edges keep their own parameter
// orientation. An edge that cannot attach to the current chain starts
// a new one, so the result always holds every input edge.
func (k *Kernel) SortEdges(edges []kernel.Edge) []kernel.Edge {
	pool := make([]*edge, len(edges))
	for i, e := range edges {
		pool[i] = e.(*edge)
	}
	out := make([]kernel.Edge, 0, len(edges))
	for len(pool) > 0 {
		chain, _, _, rest := growChain(pool)
		for _, l := range chain {
			out = append(out, l.e)
		}
		pool = rest
	}
	return out
}
