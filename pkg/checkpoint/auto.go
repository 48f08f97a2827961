package checkpoint

import "context"

// AutoEngine is the non-interactive policy: a pure function of the
// AutoApprove flag. No other input is consulted.
type AutoEngine struct {
	// AutoApprove yields Continue for every checkpoint; false yields Abort
	AutoApprove bool
}

// NewAutoEngine creates a non-interactive engine.
func NewAutoEngine(autoApprove bool) *AutoEngine {
	return &AutoEngine{AutoApprove: autoApprove}
}

// Decide returns Continue or Abort regardless of phase content.
func (e *AutoEngine) Decide(ctx context.Context, req *Request) (*Result, error) {
	if e.AutoApprove {
		return &Result{
			Decision: Continue,
			Feedback: "auto-approved (non-interactive mode)",
		}, nil
	}
	return &Result{
		Decision: Abort,
		Feedback: "aborted (non-interactive mode without auto-approve)",
	}, nil
}
