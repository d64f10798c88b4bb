package faces

import (
	"github.com/tessadri/facekit/pkg/kernel"
)

// Bind stitches two wires into a single face. Two closed wires become
// a face with the smaller wire as a hole in the larger one. Otherwise
// the wires are bridged start to start and end to end and the
// combined loop is filled. Bind returns nil when a wire is missing or
// the kernel cannot build the face, logging the reason.
func (o *Ops) Bind(w1, w2 kernel.Wire) kernel.Face {
	if w1 == nil || w2 == nil {
		o.log.Warn("unable to bind wires", "reason", "missing wire")
		return nil
	}

	if w1.IsClosed() && w2.IsClosed() {
		// The larger wire is the outer boundary. On equal diagonals
		// the second wire wins, as the comparison is strict.
		outer, inner := w2, w1
		if w1.BoundsDiagonal() > w2.BoundsDiagonal() {
			outer, inner = w1, w2
		}
		f, err := o.k.MakeFace(outer, inner)
		if err != nil {
			o.log.Warn("unable to bind wires", "error", err)
			return nil
		}
		return f
	}

	v1, v2 := w1.Vertices(), w2.Vertices()
	bridgeStart, err := o.k.MakeLine(v1[0].Point(), v2[0].Point())
	if err != nil {
		o.log.Warn("unable to bind wires", "error", err)
		return nil
	}
	bridgeEnd, err := o.k.MakeLine(v1[len(v1)-1].Point(), v2[len(v2)-1].Point())
	if err != nil {
		o.log.Warn("unable to bind wires", "error", err)
		return nil
	}

	edges := make([]kernel.Edge, 0, len(w1.Edges())+len(w2.Edges())+2)
	edges = append(edges, w1.Edges()...)
	edges = append(edges, bridgeStart)
	edges = append(edges, w2.Edges()...)
	edges = append(edges, bridgeEnd)

	w, err := o.k.MakeWire(edges)
	if err != nil {
		o.log.Warn("unable to bind wires", "error", err)
		return nil
	}
	f, err := o.k.MakeFace(w)
	if err != nil {
		o.log.Warn("unable to bind wires", "error", err)
		return nil
	}
	return f
}
