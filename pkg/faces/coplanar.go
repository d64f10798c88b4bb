package faces

import (
	"github.com/tessadri/facekit/pkg/kernel"
	"github.com/tessadri/facekit/pkg/vecutil"
)

// coplanarBatchMin is the vertex count above which deviation testing
// switches to the SIMD batch path.
const coplanarBatchMin = 64

// IsCoplanar reports whether all faces lie on the plane of the first
// face. A vertex deviates by the length of its chord from the first
// face's first vertex projected onto the reference normal; deviations
// are rounded to the configured precision before comparing against
// tolerance. Fewer than two faces are trivially coplanar.
func (o *Ops) IsCoplanar(faces []kernel.Face, tolerance float64) bool {
	if len(faces) < 2 {
		return true
	}
	base := faces[0].NormalAt(0, 0)
	origin := faces[0].Vertices()[0].Point()

	total := 0
	for _, f := range faces[1:] {
		total += len(f.Vertices())
	}
	if total >= coplanarBatchMin {
		return o.isCoplanarBatch(faces, tolerance, total)
	}

	for _, f := range faces[1:] {
		for _, v := range f.Vertices() {
			chord := v.Point().Sub(origin)
			dist := vecutil.Project(chord, base)
			if vecutil.Round(dist.Length(), o.digits) > tolerance {
				return false
			}
		}
	}
	return true
}

// isCoplanarBatch gathers the chords into SoA buffers and reduces the
// worst plane offset in one pass. Rounding is monotonic, so comparing
// the rounded maximum matches the per-vertex early exit of the scalar
// path.
func (o *Ops) isCoplanarBatch(faces []kernel.Face, tolerance float64, total int) bool {
	base := faces[0].NormalAt(0, 0)
	nl := base.Length()
	if nl == 0 {
		// Projection onto a zero normal is zero for every vertex.
		return true
	}
	origin := faces[0].Vertices()[0].Point()

	xs := make([]float64, 0, total)
	ys := make([]float64, 0, total)
	zs := make([]float64, 0, total)
	for _, f := range faces[1:] {
		for _, v := range f.Vertices() {
			p := v.Point().Sub(origin)
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			zs = append(zs, p.Z)
		}
	}

	worst := BaseMaxAbsDotConstBatch(base.X, base.Y, base.Z, xs, ys, zs) / nl
	return vecutil.Round(worst, o.digits) <= tolerance
}
