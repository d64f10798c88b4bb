// Package vecutil provides the small vector helpers shared by the
// geometry utilities: projections, decimal rounding at the suite
// precision, and polygon normals.
package vecutil

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Precision is the default number of decimal digits geometric
// comparisons are rounded to.
const Precision = 6

// Project returns the projection of u onto v. Projecting onto the
// zero vector yields the zero vector.
func Project(u, v v3.Vec) v3.Vec {
	d := v.Dot(v)
	if d == 0 {
		return v3.Vec{}
	}
	return v.MulScalar(u.Dot(v) / d)
}

// Round rounds x to the given number of decimal digits, halves away
// from zero.
func Round(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}

// Newell returns the Newell normal of the polygon described by pts in
// order. The result is unnormalized; its length is twice the polygon
// area, so a near-zero result means a degenerate polygon. A
// counterclockwise loop in the XY plane yields a normal along +Z.
func Newell(pts []v3.Vec) v3.Vec {
	var n v3.Vec
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}
