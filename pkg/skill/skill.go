// Package skill defines the contract every pluggable pipeline unit must
// satisfy, and the uniform entry point the orchestrator uses to execute one.
package skill

import "context"

// Skill is the capability interface for a pluggable pipeline unit.
//
// A skill instance is transient: it is created by its factory for a single
// invocation with a configuration snapshot, executed once through Run, and
// then discarded.
type Skill interface {
	// ID returns the immutable identifier of the skill
	ID() string

	// Name returns the human-readable display name
	Name() string

	// Description returns a short description of what the skill does
	Description() string

	// Version returns the skill version
	Version() string

	// Validate checks the input before execution. It returns false and a
	// list of problems when the input is unusable.
	Validate(input *Input) (bool, []string)

	// Execute performs the skill's work. Errors are returned as values;
	// Run converts them into failure outputs, they never propagate.
	Execute(ctx context.Context, input *Input) (*Output, error)
}

// Dependent is implemented by skills that require other skills to have
// run before them. The registry resolves the declared identifiers into
// an execution order.
type Dependent interface {
	// Dependencies returns the identifiers of required skills
	Dependencies() []string
}

// Initializer is implemented by skills that need one-time setup.
// Initialize must be idempotent; Run invokes it before the first execution.
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Finalizer is implemented by skills that hold resources. Cleanup is
// best-effort: Run invokes it on every exit path and a cleanup error is
// logged, never allowed to override the primary result.
type Finalizer interface {
	Cleanup(ctx context.Context) error
}

// Factory creates a new skill instance with the given configuration
// snapshot. The registry owns factories; instances are per-invocation.
type Factory func(config map[string]interface{}) Skill
