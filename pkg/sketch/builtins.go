package sketch

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/tessadri/facekit/pkg/kernel"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites Lisp-style ; line comments into the // form
// zygomys understands. String literal boundaries are respected so a ;
// inside a string survives untouched.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source))
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments. Extra ; characters
		// (;; style) collapse into a single marker.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing kernel values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a point so it can be passed between builtins.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpWire wraps a kernel.Wire so it can be returned from `wire`
// and consumed by `face`.
type sexpWire struct {
	wire kernel.Wire
}

func (w *sexpWire) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(wire %d points)", len(w.wire.Vertices()))
}
func (w *sexpWire) Type() *zygo.RegisteredType { return nil }

// sexpFace wraps a kernel.Face.
type sexpFace struct {
	face kernel.Face
}

func (f *sexpFace) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(face %d edges)", len(f.face.Edges()))
}
func (f *sexpFace) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a point from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toWire extracts a kernel.Wire from a sexpWire.
func toWire(s zygo.Sexp) (kernel.Wire, error) {
	if w, ok := s.(*sexpWire); ok {
		return w.wire, nil
	}
	return nil, fmt.Errorf("expected wire, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builder accumulates the faces constructed during one evaluation.
type builder struct {
	k     kernel.Kernel
	faces []kernel.Face
}

// registerBuiltins installs the sketch DSL builtins into a zygomys
// environment. The builtins construct geometry through the builder's
// kernel; `face` and `quad` append each finished face to the builder in
// construction order.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: v3.Vec{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (wire (vec3 0 0 0) (vec3 1 0 0) ...)
	//
	// The wire is closed when the first and last points coincide; the
	// duplicated closing point is consumed by the kernel.
	// -----------------------------------------------------------------------
	env.AddFunction("wire", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("wire requires at least 2 points, got %d", len(args))
		}

		pts := make([]v3.Vec, 0, len(args))
		for i, a := range args {
			p, err := toVec3(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("wire: point %d: %w", i+1, err)
			}
			pts = append(pts, p)
		}

		w, err := b.k.MakePolygon(pts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("wire: %w", err)
		}

		return &sexpWire{wire: w}, nil
	})

	// -----------------------------------------------------------------------
	// (face outer hole1 hole2 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("face", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("face requires an outer wire")
		}

		wires := make([]kernel.Wire, 0, len(args))
		for i, a := range args {
			w, err := toWire(a)
			if err != nil {
				if i == 0 {
					return zygo.SexpNull, fmt.Errorf("face: outer: %w", err)
				}
				return zygo.SexpNull, fmt.Errorf("face: hole %d: %w", i, err)
			}
			wires = append(wires, w)
		}

		f, err := b.k.MakeFace(wires...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("face: %w", err)
		}
		b.faces = append(b.faces, f)

		return &sexpFace{face: f}, nil
	})

	// -----------------------------------------------------------------------
	// (quad (vec3 0 0 0) (vec3 1 0 0) (vec3 1 1 0) (vec3 0 1 0))
	//
	// Sugar for a closed four-sided face; the boundary is closed back to
	// the first corner automatically.
	// -----------------------------------------------------------------------
	env.AddFunction("quad", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("quad requires exactly 4 corner points, got %d", len(args))
		}

		pts := make([]v3.Vec, 0, 5)
		for i, a := range args {
			p, err := toVec3(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("quad: corner %d: %w", i+1, err)
			}
			pts = append(pts, p)
		}
		pts = append(pts, pts[0])

		w, err := b.k.MakePolygon(pts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("quad: %w", err)
		}
		f, err := b.k.MakeFace(w)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("quad: %w", err)
		}
		b.faces = append(b.faces, f)

		return &sexpFace{face: f}, nil
	})
}
