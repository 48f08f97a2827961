package detect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slideforge/slideforge/pkg/detect"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestScanEmptyDirectory(t *testing.T) {
	state := detect.NewDetector(t.TempDir()).Scan()

	assert.Equal(t, detect.StepNone, state.CurrentStep)
	assert.False(t, state.CanResume)
	assert.Empty(t, state.LastCompletedPhase)
	assert.Contains(t, state.NextStep, "no pipeline artifacts")
}

func TestScanResearchOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "research.json", `{"topic":"go","sources":[{"url":"a"},{"url":"b"}]}`)

	state := detect.NewDetector(dir).Scan()

	assert.Equal(t, detect.StepResearch, state.CurrentStep)
	assert.True(t, state.CanResume)
	assert.Equal(t, "research", state.LastCompletedPhase)

	info := state.Artifacts[detect.ArtifactResearch]
	assert.True(t, info.IsValid)
	assert.Equal(t, 2, info.Metadata["source_count"])
}

func TestScanCorruptResearchDoesNotAdvance(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "research.json", `{"sources": [truncated`)

	state := detect.NewDetector(dir).Scan()

	info := state.Artifacts[detect.ArtifactResearch]
	assert.True(t, info.Exists)
	assert.False(t, info.IsValid)
	assert.NotEmpty(t, info.Error)
	assert.Equal(t, detect.StepNone, state.CurrentStep)
	assert.False(t, state.CanResume)
}

func TestScanResearchMissingList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "research.json", `{"topic":"go"}`)

	state := detect.NewDetector(dir).Scan()

	info := state.Artifacts[detect.ArtifactResearch]
	assert.False(t, info.IsValid)
	assert.Contains(t, info.Error, "sources")
}

func TestScanOutlineMarkdownFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "research.json", `{"sources":[{}]}`)
	writeFile(t, dir, "insights.json", `{"insights":[{}]}`)
	writeFile(t, dir, "outline.md", "# Deck\n\n## Intro\n\n## Findings\n\n## Wrap-up\n")

	state := detect.NewDetector(dir).Scan()

	assert.Equal(t, detect.StepOutline, state.CurrentStep)
	assert.Equal(t, "outline", state.LastCompletedPhase)
	assert.Equal(t, 3, state.Artifacts[detect.ArtifactOutline].Metadata["slide_count"])
}

func TestScanOutlineJSONPreferred(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "outline.json", `{"slides":[{},{}]}`)
	writeFile(t, dir, "outline.md", "## Only one heading\n")

	state := detect.NewDetector(dir).Scan()

	info := state.Artifacts[detect.ArtifactOutline]
	assert.True(t, info.IsValid)
	assert.Equal(t, 2, info.Metadata["slide_count"])
	assert.Equal(t, filepath.Join(dir, "outline.json"), info.Path)
}

func TestScanEmptyOutlineMarkdownInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "outline.md", "# Title only, no slides\n")

	state := detect.NewDetector(dir).Scan()

	info := state.Artifacts[detect.ArtifactOutline]
	assert.True(t, info.Exists)
	assert.False(t, info.IsValid)
}

func TestScanImagesPartial(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "presentation.md", "## One\n\n## Two\n\n## Three\n")
	writeFile(t, dir, "presentation_optimized.md", "## One\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "images"), 0o755))
	writeFile(t, dir, filepath.Join("images", "slide_1.png"), "fake")

	state := detect.NewDetector(dir).Scan()

	assert.Equal(t, detect.StepImagesPartial, state.CurrentStep)
	info := state.Artifacts[detect.ArtifactImages]
	assert.Equal(t, 1, info.Metadata["image_count"])
	assert.Equal(t, 3, info.Metadata["expected_count"])
	assert.Equal(t, false, info.Metadata["complete"])
	assert.Contains(t, state.NextStep, "1 of 3")
}

func TestScanImagesComplete(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "presentation.md", "## One\n\n## Two\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "images"), 0o755))
	writeFile(t, dir, filepath.Join("images", "slide_1.png"), "fake")
	writeFile(t, dir, filepath.Join("images", "slide_2.jpg"), "fake")
	writeFile(t, dir, filepath.Join("images", "notes.txt"), "ignored")

	state := detect.NewDetector(dir).Scan()

	assert.Equal(t, detect.StepImagesComplete, state.CurrentStep)
	info := state.Artifacts[detect.ArtifactImages]
	assert.Equal(t, 2, info.Metadata["image_count"])
	assert.Equal(t, true, info.Metadata["complete"])
	assert.Contains(t, state.NextStep, "assemble")
}

func TestScanEmptyImagesDirInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "images"), 0o755))

	state := detect.NewDetector(dir).Scan()

	info := state.Artifacts[detect.ArtifactImages]
	assert.True(t, info.Exists)
	assert.False(t, info.IsValid)
	assert.Equal(t, detect.StepNone, state.CurrentStep)
}

func TestScanPackaged(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "deck.pptx", "binary")

	state := detect.NewDetector(dir).Scan()

	assert.Equal(t, detect.StepPackaged, state.CurrentStep)
	assert.Equal(t, "assembly", state.LastCompletedPhase)
	assert.Contains(t, state.NextStep, "complete")
}

func TestScanTakesMaximumValidStep(t *testing.T) {
	// A later artifact dominates an earlier one even with gaps between
	dir := t.TempDir()
	writeFile(t, dir, "research.json", `{"sources":[{}]}`)
	writeFile(t, dir, "presentation.md", "## One\n")

	state := detect.NewDetector(dir).Scan()

	assert.Equal(t, detect.StepPresentation, state.CurrentStep)
	assert.Equal(t, "content", state.LastCompletedPhase)
}

func TestSuggestEveryStepHasText(t *testing.T) {
	for step := 0; step <= detect.TotalSteps; step++ {
		state := &detect.State{
			CurrentStep: step,
			Artifacts:   map[string]detect.ArtifactInfo{},
		}
		assert.NotEmpty(t, detect.Suggest(state), "step %d", step)
	}
}
