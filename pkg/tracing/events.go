package tracing

import (
	"context"
	"time"
)

// WorkflowStart records the beginning of a workflow run
func WorkflowStart(ctx context.Context, workflowID string, phases []string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypeWorkflowStart,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"workflow_id": workflowID,
			"phases":      phases,
		},
	})
}

// WorkflowEnd records the end of a workflow run
func WorkflowEnd(ctx context.Context, workflowID string, success bool, duration time.Duration) {
	RecordEventContext(ctx, Event{
		Type:      EventTypeWorkflowEnd,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"workflow_id": workflowID,
			"success":     success,
			"duration_ms": duration.Milliseconds(),
		},
	})
}

// PhaseStart records a phase start event
func PhaseStart(ctx context.Context, phase string, skills []string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypePhaseStart,
		Phase:     phase,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"skills": skills,
		},
	})
}

// PhaseEnd records a phase end event
func PhaseEnd(ctx context.Context, phase string, success bool, errors []string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypePhaseEnd,
		Phase:     phase,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"success": success,
			"errors":  errors,
		},
	})
}

// SkillStart records a skill execution start
func SkillStart(ctx context.Context, phase, skillID string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypeSkillStart,
		Phase:     phase,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"skill_id": skillID,
		},
	})
}

// SkillResult records a skill execution result
func SkillResult(ctx context.Context, phase, skillID string, success bool, status string, artifacts []string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypeSkillResult,
		Phase:     phase,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"skill_id":  skillID,
			"success":   success,
			"status":    status,
			"artifacts": artifacts,
		},
	})
}

// Checkpoint records a checkpoint decision
func Checkpoint(ctx context.Context, phase string, decision string, feedback string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypeCheckpoint,
		Phase:     phase,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"decision": decision,
			"feedback": feedback,
		},
	})
}

// StateSaved records a state persistence event
func StateSaved(ctx context.Context, path string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypeStateSaved,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"path": path,
		},
	})
}

// Error records an error event
func Error(ctx context.Context, phase string, message string, err error) {
	event := Event{
		Type:      EventTypeError,
		Phase:     phase,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"message": message,
		},
	}
	if err != nil {
		event.Error = err.Error()
	}
	RecordEventContext(ctx, event)
}
