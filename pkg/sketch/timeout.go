package sketch

import (
	"fmt"
	"time"

	"github.com/tessadri/facekit/pkg/kernel"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// evalResult carries one evaluation outcome through the result channel.
type evalResult struct {
	faces  []kernel.Face
	errors []EvalError
	err    error
}

// wait blocks for the result of the evaluation started as generation
// gen, giving up after EvalTimeout. After a timeout the evaluation
// goroutine may still be running, so a result arriving for a
// superseded generation is discarded rather than handed to the wrong
// caller.
func (e *Engine) wait(ch <-chan evalResult, gen uint64) ([]kernel.Face, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		e.mu.Lock()
		current := e.generation
		e.mu.Unlock()
		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.faces, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}
