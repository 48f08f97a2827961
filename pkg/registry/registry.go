// Package registry holds skill factories keyed by identifier and resolves
// dependency order between them.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/slideforge/slideforge/pkg/skill"
)

// Metadata describes a registered skill. Entries are created at
// registration time and immutable thereafter except via explicit
// re-registration with override.
type Metadata struct {
	ID           string
	Name         string
	Description  string
	Version      string
	Dependencies []string

	factory skill.Factory
}

// Registry owns skill metadata entries. It is an explicit value passed to
// the orchestrator by injection, never a package singleton. Mutation is
// guarded so concurrent hosts are safe by construction.
type Registry struct {
	mu     sync.RWMutex
	skills map[string]*Metadata
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		skills: make(map[string]*Metadata),
	}
}

// Register probes the factory's product for identity and dependencies and
// inserts a metadata entry. It fails with DuplicateError when the
// identifier already exists and override is false, and with
// InvalidSkillError when the product does not satisfy the contract.
func (r *Registry) Register(factory skill.Factory, override bool) error {
	if factory == nil {
		return &InvalidSkillError{Reason: "nil factory"}
	}

	// Probe instance: read identity and dependencies only
	probe := factory(nil)
	if probe == nil {
		return &InvalidSkillError{Reason: "factory returned nil"}
	}
	id := probe.ID()
	if id == "" {
		return &InvalidSkillError{Reason: "skill has an empty identifier"}
	}

	meta := &Metadata{
		ID:          id,
		Name:        probe.Name(),
		Description: probe.Description(),
		Version:     probe.Version(),
		factory:     factory,
	}
	if dep, ok := probe.(skill.Dependent); ok {
		meta.Dependencies = append([]string(nil), dep.Dependencies()...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.skills[id]; exists && !override {
		return &DuplicateError{ID: id}
	}
	r.skills[id] = meta
	return nil
}

// Unregister removes an entry and reports whether it existed.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.skills[id]
	delete(r.skills, id)
	return existed
}

// Get instantiates a new skill with the given configuration snapshot. A
// factory that panics during instantiation is reported as an
// InvalidSkillError, never allowed to unwind into the caller.
func (r *Registry) Get(id string, config map[string]interface{}) (s skill.Skill, err error) {
	r.mu.RLock()
	meta, ok := r.skills[id]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{ID: id, Registered: r.List()}
	}

	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			err = &InvalidSkillError{Reason: fmt.Sprintf("factory for %q panicked: %v", id, rec)}
		}
	}()
	return meta.factory(config), nil
}

// Lookup returns the metadata entry for an identifier.
func (r *Registry) Lookup(id string) (*Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.skills[id]
	return meta, ok
}

// List returns the registered identifiers, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.skills))
	for id := range r.skills {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsRegistered reports whether an identifier is registered.
func (r *Registry) IsRegistered(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.skills[id]
	return ok
}

// Clear removes all entries. Intended for tests and explicit teardown.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.skills = make(map[string]*Metadata)
}
