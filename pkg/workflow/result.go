package workflow

import (
	"time"

	"github.com/slideforge/slideforge/pkg/skill"
)

// PhaseResult aggregates one phase's skill executions.
//
// Invariant: Success is true iff at least one output succeeded and the
// phase-level error list (registration/instantiation failures, not
// skill-level failures) is empty.
type PhaseResult struct {
	// Phase identifies the phase
	Phase Phase

	// Success is the aggregate outcome per the invariant above
	Success bool

	// Outputs are the skill outputs in execution order
	Outputs []*skill.Output

	// Artifacts is the concatenation of all output artifacts
	Artifacts []string

	// Errors are phase-level errors: unregistered skills, factory failures
	Errors []string

	// Warnings are non-fatal notes, e.g. a retry limit being reached
	Warnings []string
}

// CombinedData merges the data maps of all outputs, later skills winning.
func (r *PhaseResult) CombinedData() map[string]interface{} {
	data := make(map[string]interface{})
	for _, out := range r.Outputs {
		for k, v := range out.Data {
			data[k] = v
		}
	}
	return data
}

// evaluate applies the phase success invariant.
func (r *PhaseResult) evaluate() {
	anySuccess := false
	for _, out := range r.Outputs {
		if out.Success {
			anySuccess = true
			break
		}
	}
	r.Success = anySuccess && len(r.Errors) == 0
}

// WorkflowResult is the overall outcome of one orchestrator call. It is
// owned by the caller and not retained by the orchestrator.
type WorkflowResult struct {
	// WorkflowID identifies this run
	WorkflowID string

	// Success is the overall outcome
	Success bool

	// Paused is set when a Modify decision suspended the run
	Paused bool

	// Phases are the per-phase results in execution order
	Phases []*PhaseResult

	// Artifacts is the final concatenated artifact list
	Artifacts []string

	// Duration is the total wall-clock time of the call
	Duration time.Duration

	// Metadata records which phase failed, aborted, or paused the run
	Metadata map[string]interface{}
}
