package registry

// ResolveDependencies returns an execution order for the given skill in
// which every dependency precedes its dependent, ending with the skill
// itself.
//
// The traversal is a depth-first walk with two sets: "visiting" tracks the
// current recursion chain so a revisit inside it is reported as a
// CycleError naming the cycle, and "done" memoizes completed nodes so each
// identifier is processed once. Total work is O(V+E) even with diamond
// dependencies.
func (r *Registry) ResolveDependencies(id string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.skills[id]; !ok {
		return nil, &NotFoundError{ID: id, Registered: r.listLocked()}
	}

	res := &resolver{
		skills:   r.skills,
		visiting: make(map[string]bool),
		done:     make(map[string]bool),
	}
	if err := res.visit(id); err != nil {
		return nil, err
	}
	return res.order, nil
}

func (r *Registry) listLocked() []string {
	ids := make([]string, 0, len(r.skills))
	for id := range r.skills {
		ids = append(ids, id)
	}
	return ids
}

type resolver struct {
	skills   map[string]*Metadata
	visiting map[string]bool
	done     map[string]bool
	chain    []string
	order    []string
}

func (res *resolver) visit(id string) error {
	if res.done[id] {
		return nil
	}
	if res.visiting[id] {
		return &CycleError{Path: cyclePath(res.chain, id)}
	}

	meta, ok := res.skills[id]
	if !ok {
		// The caller exists; only reachable for declared dependencies.
		parent := ""
		if n := len(res.chain); n > 0 {
			parent = res.chain[n-1]
		}
		return &MissingDependencyError{ID: parent, Dependency: id}
	}

	res.visiting[id] = true
	res.chain = append(res.chain, id)

	for _, dep := range meta.Dependencies {
		if err := res.visit(dep); err != nil {
			return err
		}
	}

	res.chain = res.chain[:len(res.chain)-1]
	delete(res.visiting, id)

	// Post-order append: dependencies land before their dependent.
	res.done[id] = true
	res.order = append(res.order, id)
	return nil
}

// cyclePath trims the chain to the segment that closes the cycle and
// repeats the offending id at the end for readability.
func cyclePath(chain []string, id string) []string {
	start := 0
	for i, v := range chain {
		if v == id {
			start = i
			break
		}
	}
	path := append([]string(nil), chain[start:]...)
	return append(path, id)
}
