package workflow

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"

	"github.com/slideforge/slideforge/pkg/detect"
)

// PhaseForStep maps a detected artifact step to the first phase that
// still needs to run. The second return is false when every phase is
// already complete.
func PhaseForStep(step int) (Phase, bool) {
	switch {
	case step < detect.StepResearch:
		return PhaseResearch, true
	case step < detect.StepOutline:
		return PhaseOutline, true
	case step < detect.StepPresentation:
		return PhaseContent, true
	case step < detect.StepPackaged:
		return PhaseAssembly, true
	default:
		return PhaseAssembly, false
	}
}

// Resume reconstructs pipeline progress and continues the run from the
// first incomplete phase, with the full checkpoint semantics of Execute.
//
// Progress is the later of what the artifact scan proves and what the
// persisted state (when present at statePath) claims: artifacts on disk
// are the ground truth, but a saved state can only move the starting
// point forward, never back before proven artifacts.
func (o *Orchestrator) Resume(ctx context.Context, projectDir, statePath string, input map[string]interface{}) (*WorkflowResult, error) {
	scan := detect.NewDetector(projectDir).Scan()

	start, remaining := PhaseForStep(scan.CurrentStep)

	if statePath != "" {
		saved, err := LoadState(statePath)
		switch {
		case err == nil:
			if last, ok := saved.LastSuccessfulPhase(); ok {
				if next := last + 1; next > start {
					start = next
					remaining = next <= PhaseAssembly
				}
			}
		case errors.Is(err, os.ErrNotExist):
			// No saved state; the scan alone decides.
		default:
			return nil, err
		}
	}

	if !remaining {
		res := &WorkflowResult{
			WorkflowID: uuid.NewString(),
			Success:    true,
			Duration:   0,
			Metadata: map[string]interface{}{
				"resumed":      true,
				"current_step": scan.CurrentStep,
				"note":         "all phases already complete",
			},
		}
		return res, nil
	}

	// Seed the run with what the scan knows about existing artifacts.
	seeded := cloneMap(input)
	seeded["resume_step"] = scan.CurrentStep
	for name, info := range scan.Artifacts {
		if info.IsValid {
			seeded["artifact_"+name] = info.Path
		}
	}

	res, err := o.executeFrom(ctx, start, seeded)
	if err != nil {
		return nil, err
	}
	res.Metadata["resumed"] = true
	res.Metadata["resumed_from_phase"] = start.String()
	res.Metadata["detected_step"] = scan.CurrentStep
	return res, nil
}
