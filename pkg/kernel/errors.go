package kernel

import "fmt"

// ConstructionError reports a geometric construction the kernel could
// not complete, such as chaining disconnected edges into a wire or
// building a face from a non-planar loop. Callers that degrade
// gracefully detect it with errors.As.
type ConstructionError struct {
	Op     string // kernel operation that failed, e.g. "MakeWire"
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("kernel: %s: %s", e.Op, e.Reason)
}
