package faces

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/tessadri/facekit/pkg/kernel"
)

func TestIsCoplanarTrivialCases(t *testing.T) {
	o, k := testOps()
	if !o.IsCoplanar(nil, 0) {
		t.Error("empty face list should be coplanar")
	}
	one := []kernel.Face{mustSquare(t, k, 0, 0)}
	if !o.IsCoplanar(one, 0) {
		t.Error("a single face should be coplanar")
	}
}

func TestIsCoplanarSamePlane(t *testing.T) {
	o, k := testOps()
	faces := []kernel.Face{
		mustSquare(t, k, 0, 0),
		mustSquare(t, k, 3, 0),
		mustSquare(t, k, 0, 3),
	}
	if !o.IsCoplanar(faces, 0) {
		t.Error("translated faces on z=0 should be coplanar at zero tolerance")
	}
}

func TestIsCoplanarOffsetPlane(t *testing.T) {
	o, k := testOps()
	faces := []kernel.Face{
		mustSquare(t, k, 0, 0),
		mustQuad(t, k,
			v3.Vec{X: 3, Z: 0.001}, v3.Vec{X: 4, Z: 0.001},
			v3.Vec{X: 4, Y: 1, Z: 0.001}, v3.Vec{X: 3, Y: 1, Z: 0.001}),
	}
	if o.IsCoplanar(faces, 0) {
		t.Error("offset face should fail at zero tolerance")
	}
	if !o.IsCoplanar(faces, 0.01) {
		t.Error("offset face should pass inside tolerance")
	}
}

func TestIsCoplanarTiltedFace(t *testing.T) {
	o, k := testOps()
	// Planar but tilted: two of its vertices sit 0.002 above z=0.
	faces := []kernel.Face{
		mustSquare(t, k, 0, 0),
		mustQuad(t, k,
			v3.Vec{X: 3, Y: 0, Z: 0}, v3.Vec{X: 4, Y: 0, Z: 0},
			v3.Vec{X: 4, Y: 1, Z: 0.002}, v3.Vec{X: 3, Y: 1, Z: 0.002}),
	}
	if o.IsCoplanar(faces, 0) {
		t.Error("tilted face should fail at zero tolerance")
	}
}

func TestIsCoplanarRoundsSubPrecisionNoise(t *testing.T) {
	// Deviations below the rounding precision vanish before the
	// tolerance comparison.
	o, k := testOps()
	faces := []kernel.Face{
		mustSquare(t, k, 0, 0),
		mustSquare(t, k, 3, 0),
	}
	if !o.IsCoplanar(faces, 0) {
		t.Fatal("baseline should be coplanar")
	}
	// Precision 2 treats a 0.001 offset as zero.
	coarse := New(o.k, WithPrecision(2))
	off := []kernel.Face{
		mustSquare(t, k, 0, 0),
		mustQuad(t, k,
			v3.Vec{X: 3, Z: 0.001}, v3.Vec{X: 4, Z: 0.001},
			v3.Vec{X: 4, Y: 1, Z: 0.001}, v3.Vec{X: 3, Y: 1, Z: 0.001}),
	}
	if !coarse.IsCoplanar(off, 0) {
		t.Error("deviation below the rounding precision should be ignored")
	}
}

// batchFaces builds enough coplanar squares to cross the SIMD batch
// threshold, optionally ending with one face offset in z.
func batchFaces(t *testing.T, o *Ops, offset float64) []kernel.Face {
	t.Helper()
	k := o.k
	var faces []kernel.Face
	for i := 0; i < 20; i++ {
		x := float64(i * 2)
		z := 0.0
		if offset != 0 && i == 19 {
			z = offset
		}
		w, err := k.MakePolygon([]v3.Vec{
			{X: x, Z: z}, {X: x + 1, Z: z}, {X: x + 1, Y: 1, Z: z}, {X: x, Y: 1, Z: z}, {X: x, Z: z},
		})
		if err != nil {
			t.Fatal(err)
		}
		f, err := k.MakeFace(w)
		if err != nil {
			t.Fatal(err)
		}
		faces = append(faces, f)
	}
	return faces
}

func TestIsCoplanarBatchPath(t *testing.T) {
	// 20 faces carry 76 vertices past the first face, which is over
	// the batch threshold.
	o, _ := testOps()

	if !o.IsCoplanar(batchFaces(t, o, 0), 0) {
		t.Error("coplanar batch should pass")
	}
	if o.IsCoplanar(batchFaces(t, o, 0.001), 0) {
		t.Error("offset face in batch should fail")
	}
	if !o.IsCoplanar(batchFaces(t, o, 0.001), 0.01) {
		t.Error("offset face in batch should pass inside tolerance")
	}
}

func TestBaseMaxAbsDotConstBatch(t *testing.T) {
	// Compare the batched reduction against a plain loop, with a
	// length that exercises the masked tail.
	bx := []float64{1, -2, 3, 0.5, -0.25, 7, -6}
	by := []float64{0, 1, -1, 2, 3, -2, 0.5}
	bz := []float64{2, 0, 1, -1, 0.5, 0, -3}
	ax, ay, az := 0.3, -1.2, 0.8

	want := 0.0
	for i := range bx {
		d := math.Abs(ax*bx[i] + ay*by[i] + az*bz[i])
		if d > want {
			want = d
		}
	}

	got := BaseMaxAbsDotConstBatch(ax, ay, az, bx, by, bz)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("batch max |dot| = %v, want %v", got, want)
	}
}

func TestBaseMaxAbsDotConstBatchEmpty(t *testing.T) {
	if got := BaseMaxAbsDotConstBatch[float64](1, 2, 3, nil, nil, nil); got != 0 {
		t.Errorf("empty batch = %v, want 0", got)
	}
}
