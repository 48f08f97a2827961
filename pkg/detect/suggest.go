package detect

import "fmt"

// Suggest maps the detected step to a human-readable next command. The
// table covers the gaps between artifact-producing steps; the image steps
// suggest finishing generation unless the set is already complete.
func Suggest(state *State) string {
	switch state.CurrentStep {
	case StepNone:
		return "no pipeline artifacts found; start with `slideforge run`"
	case StepResearch:
		return "research complete; continue with insight extraction"
	case StepInsights:
		return "insights ready; generate the outline"
	case StepOutline:
		return "outline ready; draft the presentation content"
	case StepPresentation:
		return "presentation drafted; run content optimization"
	case StepOptimized:
		return "optimized content ready; generate slide images"
	case StepImagesPartial, StepImagesComplete, 9, 10:
		images := state.Artifacts[ArtifactImages]
		if imagesComplete(images) {
			return "image set complete; assemble the presentation package"
		}
		have, _ := images.Metadata["image_count"].(int)
		want, _ := images.Metadata["expected_count"].(int)
		if want > 0 {
			return fmt.Sprintf("continue image generation (%d of %d images present)", have, want)
		}
		return "continue image generation"
	case StepPackaged:
		return "pipeline complete; the package is ready"
	default:
		return "continue the pipeline with `slideforge resume`"
	}
}
