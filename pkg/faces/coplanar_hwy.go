package faces

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
)

// Plane offset triage
// Coplanarity testing boils down to "how far does the worst vertex
// stray from a constant plane". That is the dot product of a constant
// normal against a stream of chord vectors followed by a max
// reduction over the magnitudes.

// BaseMaxAbsDotConstBatch returns the largest |A.X*bx[i] + A.Y*by[i] +
// A.Z*bz[i]| over a set of vectors B (stored in SoA layout).
func BaseMaxAbsDotConstBatch[T hwy.Floats](
	ax, ay, az T,
	bx, by, bz []T,
) T {
	size := min(len(bx), len(by), len(bz))

	vAx := hwy.Set(ax)
	vAy := hwy.Set(ay)
	vAz := hwy.Set(az)

	vMax := hwy.Zero[T]()

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vBx := hwy.Load(bx[offset:])
			vBy := hwy.Load(by[offset:])
			vBz := hwy.Load(bz[offset:])

			dot := hwy.Mul(vAx, vBx)
			dot = hwy.FMA(vAy, vBy, dot)
			dot = hwy.FMA(vAz, vBz, dot)

			vMax = hwy.Max(vMax, hwy.Max(dot, hwy.Neg(dot)))
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			vBx := hwy.MaskLoad(mask, bx[offset:])
			vBy := hwy.MaskLoad(mask, by[offset:])
			vBz := hwy.MaskLoad(mask, bz[offset:])

			dot := hwy.Mul(vAx, vBx)
			dot = hwy.FMA(vAy, vBy, dot)
			dot = hwy.FMA(vAz, vBz, dot)

			abs := hwy.Max(dot, hwy.Neg(dot))
			// Masked-out lanes hold zero, which can never win the
			// max against |dot| >= 0, so no re-masking is needed.
			vMax = hwy.Max(vMax, abs)
		},
	)

	return hwy.ReduceMax(vMax)
}
