package faces

import (
	"github.com/tessadri/facekit/pkg/kernel"
)

// Concatenate merges the faces of a shape into a single face built
// from the shape's outer boundary. When the boundary does not close,
// the joined boundary wire is returned instead. When the kernel
// cannot join or fill the boundary at all, the input shape is
// returned unchanged and the failure is logged.
func (o *Ops) Concatenate(shape kernel.Shape) kernel.Shape {
	bound := o.k.SortEdges(o.Boundary(shape))
	w, err := o.k.MakeWire(bound)
	if err != nil {
		o.log.Warn("unable to join boundary into a wire", "error", err)
		return shape
	}
	if !w.IsClosed() {
		return w
	}
	f, err := o.k.MakeFace(w)
	if err != nil {
		o.log.Warn("unable to build a face from the boundary", "error", err)
		return shape
	}
	return f
}
