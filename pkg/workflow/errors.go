package workflow

import (
	"errors"
	"fmt"
)

// Sentinel errors for orchestrator-level failures.
var (
	// ErrConfig marks an invalid workflow configuration, e.g. a partial
	// run whose start phase comes after its end phase
	ErrConfig = errors.New("invalid workflow configuration")

	// ErrPersistence marks a corrupt or unreadable state file
	ErrPersistence = errors.New("workflow state persistence failed")
)

// ConfigError reports an invalid orchestrator configuration. No skills
// are executed when one is raised.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfig.Error(), e.Msg)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// PersistenceError reports a failed state save or load.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence.Error(), e.Path, e.Err)
}

// Unwrap exposes the underlying cause so callers can match conditions
// like os.ErrNotExist.
func (e *PersistenceError) Unwrap() error { return e.Err }

// Is additionally matches the ErrPersistence sentinel.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
