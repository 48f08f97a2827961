package workflow

import (
	"context"

	"github.com/slideforge/slideforge/pkg/checkpoint"
)

// Hooks defines lifecycle hooks for a workflow run.
type Hooks interface {
	// OnWorkflowStart is called when the run starts
	OnWorkflowStart(ctx context.Context, workflowID string, input map[string]interface{}) error

	// OnPhaseStart is called before a phase runs
	OnPhaseStart(ctx context.Context, phase Phase) error

	// OnPhaseEnd is called after a phase completes
	OnPhaseEnd(ctx context.Context, phase Phase, result *PhaseResult) error

	// OnCheckpoint is called after a checkpoint decision is obtained
	OnCheckpoint(ctx context.Context, phase Phase, decision *checkpoint.Result) error

	// OnWorkflowEnd is called when the run ends
	OnWorkflowEnd(ctx context.Context, result *WorkflowResult) error
}

// DefaultHooks provides a no-op implementation of Hooks.
type DefaultHooks struct{}

// OnWorkflowStart is called when the run starts
func (h *DefaultHooks) OnWorkflowStart(ctx context.Context, workflowID string, input map[string]interface{}) error {
	return nil
}

// OnPhaseStart is called before a phase runs
func (h *DefaultHooks) OnPhaseStart(ctx context.Context, phase Phase) error {
	return nil
}

// OnPhaseEnd is called after a phase completes
func (h *DefaultHooks) OnPhaseEnd(ctx context.Context, phase Phase, result *PhaseResult) error {
	return nil
}

// OnCheckpoint is called after a checkpoint decision is obtained
func (h *DefaultHooks) OnCheckpoint(ctx context.Context, phase Phase, decision *checkpoint.Result) error {
	return nil
}

// OnWorkflowEnd is called when the run ends
func (h *DefaultHooks) OnWorkflowEnd(ctx context.Context, result *WorkflowResult) error {
	return nil
}
