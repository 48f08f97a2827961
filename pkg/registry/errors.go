package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for registry failures. Callers match with errors.Is and
// recover the details with errors.As on the typed wrappers below.
var (
	ErrDuplicate         = errors.New("skill already registered")
	ErrInvalidSkill      = errors.New("invalid skill")
	ErrNotFound          = errors.New("skill not registered")
	ErrCycle             = errors.New("dependency cycle detected")
	ErrMissingDependency = errors.New("missing dependency")
)

// DuplicateError reports a second registration of an identifier without
// the override flag.
type DuplicateError struct {
	ID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicate.Error(), e.ID)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// InvalidSkillError reports a factory whose product does not satisfy the
// skill contract.
type InvalidSkillError struct {
	Reason string
}

func (e *InvalidSkillError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidSkill.Error(), e.Reason)
}

func (e *InvalidSkillError) Unwrap() error { return ErrInvalidSkill }

// NotFoundError reports a lookup of an unregistered identifier and lists
// what is currently registered.
type NotFoundError struct {
	ID         string
	Registered []string
}

func (e *NotFoundError) Error() string {
	if len(e.Registered) == 0 {
		return fmt.Sprintf("%s: %q (registry is empty)", ErrNotFound.Error(), e.ID)
	}
	return fmt.Sprintf("%s: %q (registered: %s)", ErrNotFound.Error(), e.ID, strings.Join(e.Registered, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// CycleError reports a dependency cycle, naming the path that closes it.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycle.Error(), strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// MissingDependencyError reports a declared dependency that is not
// registered.
type MissingDependencyError struct {
	ID         string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s: skill %q depends on unregistered %q", ErrMissingDependency.Error(), e.ID, e.Dependency)
}

func (e *MissingDependencyError) Unwrap() error { return ErrMissingDependency }
