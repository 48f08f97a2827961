package tracing_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slideforge/slideforge/pkg/tracing"
)

func TestFileTracerWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	tracer, err := tracing.NewFileTracer(dir, "wf-123")
	require.NoError(t, err)
	defer tracer.Close()

	ctx := tracing.WithTracer(context.Background(), tracer)
	tracing.WorkflowStart(ctx, "wf-123", []string{"research", "outline"})
	tracing.SkillStart(ctx, "research", "web_research")
	tracing.WorkflowEnd(ctx, "wf-123", true, 250*time.Millisecond)
	require.NoError(t, tracer.Flush())

	f, err := os.Open(tracer.Path())
	require.NoError(t, err)
	defer f.Close()

	var events []tracing.Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev tracing.Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev), "every line is a standalone JSON document")
		events = append(events, ev)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, events, 3)
	assert.Equal(t, tracing.EventTypeWorkflowStart, events[0].Type)
	assert.Equal(t, tracing.EventTypeSkillStart, events[1].Type)
	assert.Equal(t, "research", events[1].Phase)
	assert.Equal(t, tracing.EventTypeWorkflowEnd, events[2].Type)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestFileTracerSanitizesWorkflowID(t *testing.T) {
	dir := t.TempDir()
	tracer, err := tracing.NewFileTracer(dir, "../../evil/id")
	require.NoError(t, err)
	defer tracer.Close()

	assert.NotContains(t, tracer.Path(), "..")
	assert.FileExists(t, tracer.Path())
}

func TestGetTracerDefaultsToNoop(t *testing.T) {
	tracer := tracing.GetTracer(context.Background())
	require.NotNil(t, tracer)

	// Recording through a bare context must be safe
	assert.NotPanics(t, func() {
		tracing.Error(context.Background(), "research", "nothing listening", nil)
	})
}
