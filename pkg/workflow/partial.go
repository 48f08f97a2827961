package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slideforge/slideforge/pkg/tracing"
)

// ExecuteRange runs the inclusive sub-sequence of phases from start to
// end with the same per-phase logic as Execute but no checkpoints. A
// start phase that comes after the end phase is a ConfigError and no
// skills are executed.
func (o *Orchestrator) ExecuteRange(ctx context.Context, start, end Phase, input map[string]interface{}) (*WorkflowResult, error) {
	if start > end {
		return nil, &ConfigError{
			Msg: fmt.Sprintf("start phase %q comes after end phase %q", start, end),
		}
	}
	if start < PhaseResearch || end > PhaseAssembly {
		return nil, &ConfigError{
			Msg: fmt.Sprintf("phase range %q..%q is outside the pipeline", start, end),
		}
	}

	started := time.Now()
	res := &WorkflowResult{
		WorkflowID: uuid.NewString(),
		Metadata:   make(map[string]interface{}),
	}
	res.Metadata["partial"] = true
	res.Metadata["start_phase"] = start.String()
	res.Metadata["end_phase"] = end.String()

	wfContext := cloneMap(input)

	if err := o.hooks.OnWorkflowStart(ctx, res.WorkflowID, input); err != nil {
		return nil, fmt.Errorf("workflow start hook error: %w", err)
	}
	tracing.WorkflowStart(ctx, res.WorkflowID, phaseNames(Phases()[int(start):int(end)+1]))

	for _, phase := range Phases()[int(start) : int(end)+1] {
		if err := o.hooks.OnPhaseStart(ctx, phase); err != nil {
			return nil, fmt.Errorf("phase start hook error: %w", err)
		}

		pr := o.runPhase(ctx, phase, wfContext)
		res.Phases = append(res.Phases, pr)

		if err := o.hooks.OnPhaseEnd(ctx, phase, pr); err != nil {
			return nil, fmt.Errorf("phase end hook error: %w", err)
		}

		if !pr.Success {
			res.Metadata["failed_phase"] = phase.String()
			return o.finish(ctx, res, started, false), nil
		}

		mergeMaps(wfContext, pr.CombinedData())
	}

	return o.finish(ctx, res, started, true), nil
}
