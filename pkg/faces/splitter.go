package faces

import (
	"github.com/tessadri/facekit/pkg/kernel"
)

// RemoveSplitter rebuilds the faces of a shape as one face without
// the interior edges left behind by face splitting. Only edges used
// by a single face survive; the kernel joins them into the outer
// loop. RemoveSplitter returns nil when the surviving edges do not
// form a single valid face, such as when the shape is closed or its
// faces are not coplanar.
func (o *Ops) RemoveSplitter(shape kernel.Shape) kernel.Face {
	groups, order := edgeObjects(shape.Faces())
	var outer []kernel.Edge
	for _, h := range order {
		if es := groups[h]; len(es) == 1 {
			outer = append(outer, es[0])
		}
	}

	w, err := o.k.MakeWire(outer)
	if err != nil {
		return nil
	}
	f, err := o.k.MakeFace(w)
	if err != nil {
		return nil
	}
	if !f.IsValid() {
		return nil
	}
	return f
}
