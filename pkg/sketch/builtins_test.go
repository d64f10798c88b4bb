package sketch

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/tessadri/facekit/pkg/kernel/planar"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessComments(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "double semicolon comment",
			input:  `;; comment text`,
			expect: `// comment text`,
		},
		{
			name:   "trailing comment",
			input:  `(quad a b c d) ; one face`,
			expect: `(quad a b c d) // one face`,
		},
		{
			name:   "semicolon in string preserved",
			input:  `"text with ; inside"`,
			expect: `"text with ; inside"`,
		},
		{
			name:   "semicolon in backtick string preserved",
			input:  "`raw ; text`",
			expect: "`raw ; text`",
		},
		{
			name:   "escaped quote does not end string",
			input:  `"say \"hi\" ; still inside"`,
			expect: `"say \"hi\" ; still inside"`,
		},
		{
			name:   "comment between expressions",
			input:  "(def x 1)\n; note\n(def y 2)",
			expect: "(def x 1)\n// note\n(def y 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Single quad test
// ---------------------------------------------------------------------------

func TestSingleQuad(t *testing.T) {
	eng := NewEngine(planar.New())

	source := `
(quad (vec3 0 0 0) (vec3 1 0 0) (vec3 1 1 0) (vec3 0 1 0))
`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(faces))
	}

	f := faces[0]
	if len(f.Edges()) != 4 {
		t.Errorf("expected 4 edges, got %d", len(f.Edges()))
	}
	if n := f.NormalAt(0.5, 0.5); n.Z != 1 {
		t.Errorf("expected +Z normal for counterclockwise corners, got %v", n)
	}
}

// ---------------------------------------------------------------------------
// Wire and face test
// ---------------------------------------------------------------------------

func TestWireAndFace(t *testing.T) {
	eng := NewEngine(planar.New())

	source := `
(def outer (wire (vec3 0 0 0) (vec3 4 0 0) (vec3 4 4 0) (vec3 0 4 0) (vec3 0 0 0)))
(face outer)
`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(faces))
	}
	if len(faces[0].Edges()) != 4 {
		t.Errorf("expected 4 edges, got %d", len(faces[0].Edges()))
	}
}

// ---------------------------------------------------------------------------
// Face with hole test
// ---------------------------------------------------------------------------

func TestFaceWithHole(t *testing.T) {
	eng := NewEngine(planar.New())

	source := `
(def outer (wire (vec3 0 0 0) (vec3 4 0 0) (vec3 4 4 0) (vec3 0 4 0) (vec3 0 0 0)))
(def hole  (wire (vec3 1 1 0) (vec3 2 1 0) (vec3 2 2 0) (vec3 1 2 0) (vec3 1 1 0)))
(face outer hole)
`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(faces))
	}

	// Outer ring and hole ring together.
	if len(faces[0].Edges()) != 8 {
		t.Errorf("expected 8 edges, got %d", len(faces[0].Edges()))
	}
}

// ---------------------------------------------------------------------------
// Corner coordinate test
// ---------------------------------------------------------------------------

func TestQuadCornerValues(t *testing.T) {
	eng := NewEngine(planar.New())

	source := `
(quad (vec3 10.5 20.25 0) (vec3 11.5 20.25 0) (vec3 11.5 21.25 0) (vec3 10.5 21.25 0))
`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(faces))
	}

	verts := faces[0].Vertices()
	if len(verts) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(verts))
	}
	want := v3.Vec{X: 10.5, Y: 20.25, Z: 0}
	if got := verts[0].Point(); got != want {
		t.Errorf("first corner: expected %v, got %v", want, got)
	}
}

// ---------------------------------------------------------------------------
// Variable reference test
// ---------------------------------------------------------------------------

func TestVariableDimensions(t *testing.T) {
	eng := NewEngine(planar.New())

	source := `
(def s 2)
(quad (vec3 0 0 0) (vec3 s 0 0) (vec3 s s 0) (vec3 0 s 0))
`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(faces))
	}

	verts := faces[0].Vertices()
	if len(verts) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(verts))
	}
	want := v3.Vec{X: 2, Y: 2, Z: 0}
	if got := verts[2].Point(); got != want {
		t.Errorf("far corner: expected %v (from variable), got %v", want, got)
	}
}

// ---------------------------------------------------------------------------
// Construction order test
// ---------------------------------------------------------------------------

func TestFacesCollectedInConstructionOrder(t *testing.T) {
	eng := NewEngine(planar.New())

	source := `
(quad (vec3 0 0 0) (vec3 1 0 0) (vec3 1 1 0) (vec3 0 1 0))
(quad (vec3 1 0 0) (vec3 2 0 0) (vec3 2 1 0) (vec3 1 1 0))
(quad (vec3 2 0 0) (vec3 3 0 0) (vec3 3 1 0) (vec3 2 1 0))
`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(faces) != 3 {
		t.Fatalf("expected 3 faces, got %d", len(faces))
	}

	for i, f := range faces {
		if x := f.Vertices()[0].Point().X; x != float64(i) {
			t.Errorf("face %d: expected first corner at x=%d, got x=%f", i, i, x)
		}
	}
}

// ---------------------------------------------------------------------------
// Binding a face does not double-collect
// ---------------------------------------------------------------------------

func TestFaceBoundToVariableCollectsOnce(t *testing.T) {
	eng := NewEngine(planar.New())

	source := `
(def f (quad (vec3 0 0 0) (vec3 1 0 0) (vec3 1 1 0) (vec3 0 1 0)))
`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(faces))
	}
}

// ---------------------------------------------------------------------------
// Construction error tests
// ---------------------------------------------------------------------------

func TestOpenWireRejectedByFace(t *testing.T) {
	eng := NewEngine(planar.New())

	// First and last points differ, so the wire stays open.
	source := `(face (wire (vec3 0 0 0) (vec3 1 0 0) (vec3 1 1 0)))`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(faces) != 0 {
		t.Fatal("expected no faces when the outer wire is open")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for open wire")
	}
	if evalErrs[0].Message == "" {
		t.Error("eval error should have a non-empty message")
	}
}

func TestCollinearQuadRejected(t *testing.T) {
	eng := NewEngine(planar.New())

	// All four corners on one line enclose no area.
	source := `(quad (vec3 0 0 0) (vec3 1 0 0) (vec3 2 0 0) (vec3 3 0 0))`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(faces) != 0 {
		t.Fatal("expected no faces for a collinear boundary")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for collinear boundary")
	}
}

func TestVec3WrongArity(t *testing.T) {
	eng := NewEngine(planar.New())

	source := `(vec3 1 2)`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(faces) != 0 {
		t.Fatal("expected no faces")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for wrong arity")
	}
}

// ---------------------------------------------------------------------------
// Comments in source test
// ---------------------------------------------------------------------------

func TestCommentsInSource(t *testing.T) {
	eng := NewEngine(planar.New())

	source := `
;; a unit square
(quad (vec3 0 0 0) (vec3 1 0 0) (vec3 1 1 0) (vec3 0 1 0)) ; one face
`
	faces, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(faces))
	}
}
