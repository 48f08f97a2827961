// Package tracing records structured pipeline events to a JSONL file so a
// run can be inspected after the fact.
package tracing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Event types recorded during a workflow run.
const (
	EventTypeWorkflowStart = "workflow_start"
	EventTypeWorkflowEnd   = "workflow_end"
	EventTypePhaseStart    = "phase_start"
	EventTypePhaseEnd      = "phase_end"
	EventTypeSkillStart    = "skill_start"
	EventTypeSkillResult   = "skill_result"
	EventTypeCheckpoint    = "checkpoint"
	EventTypeStateSaved    = "state_saved"
	EventTypeError         = "error"
)

// Event is a trace event
type Event struct {
	Type      string                 `json:"type"`
	Phase     string                 `json:"phase,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// Tracer is the interface for tracing
type Tracer interface {
	// RecordEvent records an event
	RecordEvent(ctx context.Context, event Event)

	// Flush flushes any buffered events
	Flush() error

	// Close closes the tracer
	Close() error
}

// FileTracer appends JSONL events to a file under the project directory.
type FileTracer struct {
	filePath string
	file     *os.File
	mu       sync.Mutex
}

// NewFileTracer creates a tracer writing to
// <dir>/.slideforge/trace_<workflowID>.jsonl.
func NewFileTracer(dir, workflowID string) (*FileTracer, error) {
	// Sanitize the id so it is safe as a filename
	sanitized := strings.NewReplacer("/", "_", "\\", "_", "..", "_", ":", "_").Replace(workflowID)

	traceDir := filepath.Join(dir, ".slideforge")
	if err := os.MkdirAll(traceDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}

	filePath := filepath.Join(traceDir, fmt.Sprintf("trace_%s.jsonl", sanitized))
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file %s: %w", filePath, err)
	}

	return &FileTracer{
		filePath: filePath,
		file:     file,
	}, nil
}

// Path returns the trace file location.
func (t *FileTracer) Path() string { return t.filePath }

// RecordEvent records an event to the file
func (t *FileTracer) RecordEvent(ctx context.Context, event Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal event: %v\n", err)
		return
	}

	if _, err := t.file.Write(append(data, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write event: %v\n", err)
	}
}

// Flush flushes any buffered events
func (t *FileTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.file.Sync()
}

// Close closes the tracer
func (t *FileTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.file.Close()
}

// NoopTracer is a tracer that does nothing
type NoopTracer struct{}

// RecordEvent does nothing
func (t *NoopTracer) RecordEvent(ctx context.Context, event Event) {}

// Flush does nothing
func (t *NoopTracer) Flush() error { return nil }

// Close does nothing
func (t *NoopTracer) Close() error { return nil }
