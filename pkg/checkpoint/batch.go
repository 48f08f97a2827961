package checkpoint

import (
	"context"
	"fmt"
	"sync"
)

// BatchEngine defers individual decisions: checkpoint calls are queued and
// answered with Continue (labeled "batched") until the queue reaches the
// configured size, at which point the queued summaries are merged and one
// decision from the wrapped engine covers the whole batch.
type BatchEngine struct {
	mu    sync.Mutex
	inner Engine
	size  int
	queue []*Request
}

// NewBatchEngine wraps an engine with batching. A size below 1 is treated
// as 1, which degenerates to the wrapped engine.
func NewBatchEngine(inner Engine, size int) *BatchEngine {
	if size < 1 {
		size = 1
	}
	return &BatchEngine{inner: inner, size: size}
}

// Decide queues the request. When the queue reaches the batch size the
// merged batch is submitted to the wrapped engine and the queue cleared;
// otherwise an immediate Continue is returned.
func (e *BatchEngine) Decide(ctx context.Context, req *Request) (*Result, error) {
	e.mu.Lock()
	e.queue = append(e.queue, req)
	if len(e.queue) < e.size {
		e.mu.Unlock()
		return &Result{
			Decision: Continue,
			Feedback: fmt.Sprintf("batched (%d of %d)", len(e.queue), e.size),
		}, nil
	}
	batch := e.takeLocked()
	e.mu.Unlock()

	return e.inner.Decide(ctx, merge(batch))
}

// Flush submits any queued checkpoints for a single decision. With an
// empty queue it returns Continue without consulting the wrapped engine.
func (e *BatchEngine) Flush(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	if len(e.queue) == 0 {
		e.mu.Unlock()
		return &Result{Decision: Continue}, nil
	}
	batch := e.takeLocked()
	e.mu.Unlock()

	return e.inner.Decide(ctx, merge(batch))
}

// Pending reports how many checkpoints are queued.
func (e *BatchEngine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *BatchEngine) takeLocked() []*Request {
	batch := e.queue
	e.queue = nil
	return batch
}

// merge combines queued phase summaries into one request covering the
// whole batch.
func merge(batch []*Request) *Request {
	merged := &Request{
		Data: make(map[string]interface{}),
	}
	phases := make([]string, 0, len(batch))
	for _, req := range batch {
		phases = append(phases, req.Phase)
		for k, v := range req.Data {
			merged.Data[k] = v
		}
		merged.Artifacts = append(merged.Artifacts, req.Artifacts...)
		for _, s := range req.Suggestions {
			merged.Suggestions = append(merged.Suggestions, fmt.Sprintf("%s: %s", req.Phase, s))
		}
	}
	merged.Phase = joinPhases(phases)
	return merged
}

func joinPhases(phases []string) string {
	switch len(phases) {
	case 0:
		return ""
	case 1:
		return phases[0]
	}
	out := phases[0]
	for _, p := range phases[1:] {
		out += " + " + p
	}
	return out
}
