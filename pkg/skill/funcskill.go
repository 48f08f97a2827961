package skill

import "context"

// ExecuteFunc is the work function behind a FuncSkill.
type ExecuteFunc func(ctx context.Context, input *Input) (*Output, error)

// ValidateFunc checks an input before execution.
type ValidateFunc func(input *Input) (bool, []string)

// FuncSkill adapts plain functions to the Skill contract so hosts and
// tests can build skills without a dedicated type.
type FuncSkill struct {
	id          string
	name        string
	description string
	version     string

	dependencies []string
	validate     ValidateFunc
	execute      ExecuteFunc
	initialize   func(ctx context.Context) error
	cleanup      func(ctx context.Context) error
}

// NewFuncSkill creates a function-backed skill with the given identifier.
func NewFuncSkill(id, description string, execute ExecuteFunc) *FuncSkill {
	return &FuncSkill{
		id:          id,
		name:        id,
		description: description,
		version:     "0.1.0",
		execute:     execute,
	}
}

// WithName sets the display name.
func (f *FuncSkill) WithName(name string) *FuncSkill {
	f.name = name
	return f
}

// WithVersion sets the version.
func (f *FuncSkill) WithVersion(version string) *FuncSkill {
	f.version = version
	return f
}

// WithDependencies declares required skill identifiers.
func (f *FuncSkill) WithDependencies(ids ...string) *FuncSkill {
	f.dependencies = append(f.dependencies, ids...)
	return f
}

// WithValidator sets the input validator.
func (f *FuncSkill) WithValidator(v ValidateFunc) *FuncSkill {
	f.validate = v
	return f
}

// WithInitializer sets the one-time setup function.
func (f *FuncSkill) WithInitializer(fn func(ctx context.Context) error) *FuncSkill {
	f.initialize = fn
	return f
}

// WithCleanup sets the best-effort cleanup function.
func (f *FuncSkill) WithCleanup(fn func(ctx context.Context) error) *FuncSkill {
	f.cleanup = fn
	return f
}

func (f *FuncSkill) ID() string          { return f.id }
func (f *FuncSkill) Name() string        { return f.name }
func (f *FuncSkill) Description() string { return f.description }
func (f *FuncSkill) Version() string     { return f.version }

// Dependencies returns the declared skill identifiers.
func (f *FuncSkill) Dependencies() []string { return f.dependencies }

// Validate runs the configured validator, accepting everything by default.
func (f *FuncSkill) Validate(input *Input) (bool, []string) {
	if f.validate == nil {
		return true, nil
	}
	return f.validate(input)
}

// Execute runs the work function.
func (f *FuncSkill) Execute(ctx context.Context, input *Input) (*Output, error) {
	if f.execute == nil {
		return NewOutput(), nil
	}
	return f.execute(ctx, input)
}

// Initialize runs the configured setup function.
func (f *FuncSkill) Initialize(ctx context.Context) error {
	if f.initialize == nil {
		return nil
	}
	return f.initialize(ctx)
}

// Cleanup runs the configured cleanup function.
func (f *FuncSkill) Cleanup(ctx context.Context) error {
	if f.cleanup == nil {
		return nil
	}
	return f.cleanup(ctx)
}
