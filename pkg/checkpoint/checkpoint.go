// Package checkpoint implements the decision point inserted between
// pipeline phases: an operator (or a non-interactive policy) chooses how
// the workflow proceeds.
package checkpoint

import "context"

// Decision is the outcome of a checkpoint.
type Decision string

const (
	// Continue proceeds to the next phase
	Continue Decision = "continue"

	// Retry redoes the current phase with modifications
	Retry Decision = "retry"

	// Modify pauses the workflow for out-of-band edits
	Modify Decision = "modify"

	// Abort ends the workflow
	Abort Decision = "abort"
)

// Request carries what the engine presents for a decision.
type Request struct {
	// Phase is the name of the phase that just completed
	Phase string

	// Data is the combined output data of the phase
	Data map[string]interface{}

	// Artifacts lists files produced by the phase
	Artifacts []string

	// Suggestions are generated hints, e.g. "2 error(s) occurred"
	Suggestions []string
}

// Result is the decision plus any operator input that came with it.
type Result struct {
	// Decision is one of Continue, Retry, Modify, Abort
	Decision Decision

	// Feedback is free-text operator feedback (Retry and Abort)
	Feedback string

	// Modifications is structured data derived from the feedback:
	// user_feedback, area, timestamp
	Modifications map[string]interface{}
}

// Engine obtains one decision for a completed phase.
type Engine interface {
	Decide(ctx context.Context, req *Request) (*Result, error)
}
