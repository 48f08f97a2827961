// Package detect reconstructs pipeline progress from artifacts already on
// disk, so a crashed or stopped run can resume without in-memory state.
package detect

import (
	"time"
)

// Pipeline step numbers detected from artifacts. Steps are finer-grained
// than phases; gaps are steps that leave no artifact of their own.
const (
	StepNone           = 0
	StepResearch       = 2
	StepInsights       = 3
	StepOutline        = 4
	StepPresentation   = 5
	StepOptimized      = 6
	StepImagesPartial  = 7
	StepImagesComplete = 8
	StepPackaged       = 11
	TotalSteps         = 11
)

// Artifact type keys used in State.Artifacts.
const (
	ArtifactResearch     = "research"
	ArtifactInsights     = "insights"
	ArtifactOutline      = "outline"
	ArtifactPresentation = "presentation"
	ArtifactOptimized    = "optimized"
	ArtifactImages       = "images"
	ArtifactPackage      = "package"
)

// ArtifactInfo is the result of one artifact check. It is produced fresh
// on every scan and never mutated.
type ArtifactInfo struct {
	// Path is the resolved path that was checked
	Path string

	// Exists reports whether the artifact is present
	Exists bool

	// IsValid reports whether the artifact passed its validity rule.
	// An invalid artifact never advances the detected step.
	IsValid bool

	// ModTime is the artifact's modification time, when it exists
	ModTime time.Time

	// Metadata carries free-form details such as item counts
	Metadata map[string]interface{}

	// Error records a parse failure; checks never raise
	Error string
}

// State is the reconstructed pipeline position for a project directory.
type State struct {
	// CurrentStep is the maximum step among valid artifacts, 0..TotalSteps
	CurrentStep int

	// LastCompletedPhase names the last phase whose artifacts are complete
	LastCompletedPhase string

	// Artifacts maps artifact type to its check result
	Artifacts map[string]ArtifactInfo

	// NextStep is a human-readable suggestion for what to run next
	NextStep string

	// CanResume reports whether any valid progress was found
	CanResume bool
}

// Detector scans a project directory for known artifacts.
type Detector struct {
	dir string
}

// NewDetector creates a detector for the given project directory.
func NewDetector(dir string) *Detector {
	return &Detector{dir: dir}
}

// Scan evaluates the fixed artifact table. Every check is independent and
// side-effect-free; parse failures are recorded on the ArtifactInfo and
// never returned as errors.
func (d *Detector) Scan() *State {
	state := &State{
		Artifacts: make(map[string]ArtifactInfo),
	}

	research := d.checkResearch()
	insights := d.checkInsights()
	outline := d.checkOutline()
	presentation := d.checkPresentation()
	optimized := d.checkOptimized()
	images := d.checkImages(slideCount(presentation))
	pkg := d.checkPackage()

	state.Artifacts[ArtifactResearch] = research
	state.Artifacts[ArtifactInsights] = insights
	state.Artifacts[ArtifactOutline] = outline
	state.Artifacts[ArtifactPresentation] = presentation
	state.Artifacts[ArtifactOptimized] = optimized
	state.Artifacts[ArtifactImages] = images
	state.Artifacts[ArtifactPackage] = pkg

	step := StepNone
	advance := func(info ArtifactInfo, s int) {
		if info.IsValid && s > step {
			step = s
		}
	}
	advance(research, StepResearch)
	advance(insights, StepInsights)
	advance(outline, StepOutline)
	advance(presentation, StepPresentation)
	advance(optimized, StepOptimized)
	if images.IsValid {
		if imagesComplete(images) {
			advance(images, StepImagesComplete)
		} else {
			advance(images, StepImagesPartial)
		}
	}
	advance(pkg, StepPackaged)

	state.CurrentStep = step
	state.CanResume = step > StepNone
	state.LastCompletedPhase = phaseForStep(step)
	state.NextStep = Suggest(state)

	return state
}

// phaseForStep names the last pipeline phase fully covered by the step.
func phaseForStep(step int) string {
	switch {
	case step >= StepPackaged:
		return "assembly"
	case step >= StepPresentation:
		return "content"
	case step >= StepOutline:
		return "outline"
	case step >= StepResearch:
		return "research"
	default:
		return ""
	}
}

func slideCount(presentation ArtifactInfo) int {
	if !presentation.IsValid {
		return 0
	}
	if n, ok := presentation.Metadata["slide_count"].(int); ok {
		return n
	}
	return 0
}

func imagesComplete(images ArtifactInfo) bool {
	complete, ok := images.Metadata["complete"].(bool)
	return ok && complete
}
