package workflow

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
)

// SavedState is the persisted workflow-state file shape.
type SavedState struct {
	WorkflowID      string       `json:"workflow_id"`
	CompletedPhases []SavedPhase `json:"completed_phases"`
}

// SavedPhase is one phase entry in the persisted state.
type SavedPhase struct {
	Phase     string   `json:"phase"`
	Success   bool     `json:"success"`
	Artifacts []string `json:"artifacts"`
	Errors    []string `json:"errors"`
}

// SaveState serializes the phase results to path. The write is atomic:
// a temp file in the same directory is renamed over the target.
func SaveState(workflowID string, phases []*PhaseResult, path string) error {
	state := SavedState{
		WorkflowID:      workflowID,
		CompletedPhases: make([]SavedPhase, 0, len(phases)),
	}
	for _, pr := range phases {
		if pr == nil {
			continue
		}
		sp := SavedPhase{
			Phase:     pr.Phase.String(),
			Success:   pr.Success,
			Artifacts: pr.Artifacts,
			Errors:    pr.Errors,
		}
		if sp.Artifacts == nil {
			sp.Artifacts = []string{}
		}
		if sp.Errors == nil {
			sp.Errors = []string{}
		}
		state.CompletedPhases = append(state.CompletedPhases, sp)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	if err := writeFileAtomic(path, append(data, '\n'), 0o644); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}

// LoadState deserializes a persisted workflow state. A corrupt file is a
// PersistenceError, never a panic.
func LoadState(path string) (*SavedState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PersistenceError{Path: path, Err: err}
	}
	defer f.Close()

	var state SavedState
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&state); err != nil {
		return nil, &PersistenceError{Path: path, Err: err}
	}
	// Reject trailing junk after the document
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, &PersistenceError{Path: path, Err: errors.New("trailing content after state document")}
	}

	for _, sp := range state.CompletedPhases {
		if _, err := ParsePhase(sp.Phase); err != nil {
			return nil, &PersistenceError{Path: path, Err: err}
		}
	}
	return &state, nil
}

// LastSuccessfulPhase returns the latest phase recorded as successful.
func (s *SavedState) LastSuccessfulPhase() (Phase, bool) {
	found := false
	var last Phase
	for _, sp := range s.CompletedPhases {
		if !sp.Success {
			continue
		}
		p, err := ParsePhase(sp.Phase)
		if err != nil {
			continue
		}
		if !found || p > last {
			last = p
			found = true
		}
	}
	return last, found
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
