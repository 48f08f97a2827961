// Package workflow drives the fixed phase sequence of the content
// pipeline: it runs each phase's skills in order, checkpoints between
// phases, and supports partial execution, persistence, and resumption.
package workflow

import "fmt"

// Phase is one stage of the fixed pipeline ordering.
type Phase int

// The fixed, totally ordered phase enumeration. Phases always execute in
// this order.
const (
	PhaseResearch Phase = iota
	PhaseOutline
	PhaseContent
	PhaseAssembly
)

// Phases returns the full ordered phase sequence.
func Phases() []Phase {
	return []Phase{PhaseResearch, PhaseOutline, PhaseContent, PhaseAssembly}
}

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseResearch:
		return "research"
	case PhaseOutline:
		return "outline"
	case PhaseContent:
		return "content"
	case PhaseAssembly:
		return "assembly"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ParsePhase maps a phase name back to its value.
func ParsePhase(name string) (Phase, error) {
	for _, p := range Phases() {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase: %q", name)
}

// DefaultPhaseSkills is the reference pipeline's skill-id list per phase.
// Hosts override it through the orchestrator options.
func DefaultPhaseSkills() map[Phase][]string {
	return map[Phase][]string{
		PhaseResearch: {"web_research", "insight_extraction"},
		PhaseOutline:  {"outline_generation"},
		PhaseContent:  {"content_drafting", "content_optimization"},
		PhaseAssembly: {"image_generation", "visual_validation", "pptx_assembly"},
	}
}
