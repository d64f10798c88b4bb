// Package faces provides topology utilities for sets of faces: outer
// boundary extraction, coplanarity testing, merging of adjacent
// coplanar faces, wire binding and splitter removal. Geometric
// construction is delegated to an injected kernel; this package
// contributes the edge-identity bookkeeping and connectivity logic on
// top of it.
package faces

import (
	"io"
	"log/slog"

	"github.com/tessadri/facekit/pkg/kernel"
	"github.com/tessadri/facekit/pkg/vecutil"
)

// Ops bundles the face utilities around an injected kernel. Methods
// hold no state between calls, so an Ops is safe for concurrent use
// whenever its kernel is.
type Ops struct {
	k      kernel.Kernel
	log    *slog.Logger
	digits int
}

// Option configures an Ops.
type Option func(*Ops)

// WithLogger sets the logger for operation diagnostics. A nil logger
// keeps the default, which discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *Ops) {
		if l != nil {
			o.log = l
		}
	}
}

// WithPrecision sets the number of decimal digits deviations are
// rounded to before tolerance comparisons.
func WithPrecision(digits int) Option {
	return func(o *Ops) { o.digits = digits }
}

// New returns an Ops working through the given kernel.
func New(k kernel.Kernel, opts ...Option) *Ops {
	o := &Ops{
		k:      k,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		digits: vecutil.Precision,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
