package workflow_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slideforge/slideforge/pkg/detect"
	"github.com/slideforge/slideforge/pkg/registry"
	"github.com/slideforge/slideforge/pkg/skill"
	"github.com/slideforge/slideforge/pkg/workflow"
)

func TestPhaseForStep(t *testing.T) {
	cases := []struct {
		step      int
		want      workflow.Phase
		remaining bool
	}{
		{0, workflow.PhaseResearch, true},
		{1, workflow.PhaseResearch, true},
		{2, workflow.PhaseOutline, true},
		{3, workflow.PhaseOutline, true},
		{4, workflow.PhaseContent, true},
		{5, workflow.PhaseAssembly, true},
		{6, workflow.PhaseAssembly, true},
		{8, workflow.PhaseAssembly, true},
		{10, workflow.PhaseAssembly, true},
		{11, workflow.PhaseAssembly, false},
	}
	for _, tc := range cases {
		phase, remaining := workflow.PhaseForStep(tc.step)
		assert.Equal(t, tc.want, phase, "step %d", tc.step)
		assert.Equal(t, tc.remaining, remaining, "step %d", tc.step)
	}
}

func TestResumeSkipsCompletedPhases(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "research.json"), []byte(`{"sources":[{}]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "insights.json"), []byte(`{"insights":[{}]}`), 0o644))

	reg := registry.New()
	orch := workflow.NewOrchestrator(reg)

	var seen map[string]interface{}
	register(t, reg, "capture", func(ctx context.Context, input *skill.Input) (*skill.Output, error) {
		if seen == nil {
			seen = input.Data
		}
		return skill.NewOutput(), nil
	})
	for _, phase := range workflow.Phases() {
		orch.WithPhaseSkills(phase, "capture")
	}

	res, err := orch.Resume(context.Background(), dir, "", map[string]interface{}{"topic": "go"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Len(t, res.Phases, 3, "research is already done; outline onwards runs")
	assert.Equal(t, workflow.PhaseOutline, res.Phases[0].Phase)
	assert.Equal(t, true, res.Metadata["resumed"])
	assert.Equal(t, "outline", res.Metadata["resumed_from_phase"])
	assert.Equal(t, detect.StepInsights, res.Metadata["detected_step"])

	// The first resumed skill sees the scan's findings
	require.NotNil(t, seen)
	assert.Equal(t, detect.StepInsights, seen["resume_step"])
	assert.Equal(t, filepath.Join(dir, "research.json"), seen["artifact_research"])
	assert.Equal(t, "go", seen["topic"])
}

func TestResumeSavedStateMovesStartForward(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "research.json"), []byte(`{"sources":[{}]}`), 0o644))

	statePath := filepath.Join(dir, ".slideforge", "state.json")
	require.NoError(t, workflow.SaveState("earlier-run", []*workflow.PhaseResult{
		{Phase: workflow.PhaseResearch, Success: true},
		{Phase: workflow.PhaseOutline, Success: true},
		{Phase: workflow.PhaseContent, Success: true},
	}, statePath))

	_, orch := pipelineRegistry(t)
	res, err := orch.Resume(context.Background(), dir, statePath, nil)
	require.NoError(t, err)

	assert.True(t, res.Success)
	require.Len(t, res.Phases, 1, "only assembly remains per the saved state")
	assert.Equal(t, workflow.PhaseAssembly, res.Phases[0].Phase)
	assert.Equal(t, "assembly", res.Metadata["resumed_from_phase"])
}

func TestResumeMissingStateFileTolerated(t *testing.T) {
	dir := t.TempDir()
	_, orch := pipelineRegistry(t)

	res, err := orch.Resume(context.Background(), dir, filepath.Join(dir, "absent.json"), nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, res.Phases, 4, "an empty project resumes from the beginning")
}

func TestResumeCorruptStateFileFails(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(statePath, []byte("{broken"), 0o644))

	_, orch := pipelineRegistry(t)
	_, err := orch.Resume(context.Background(), dir, statePath, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, workflow.ErrPersistence)
}

func TestResumeEverythingComplete(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deck.pptx"), []byte("binary"), 0o644))

	reg := registry.New()
	orch := workflow.NewOrchestrator(reg)

	res, err := orch.Resume(context.Background(), dir, "", nil)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Empty(t, res.Phases, "no phase runs when the package already exists")
	assert.Equal(t, true, res.Metadata["resumed"])
	assert.Equal(t, detect.StepPackaged, res.Metadata["current_step"])
}
