package checkpoint_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slideforge/slideforge/pkg/checkpoint"
)

func TestAutoEngineApprove(t *testing.T) {
	engine := checkpoint.NewAutoEngine(true)

	// The decision is independent of phase content
	for _, req := range []*checkpoint.Request{
		{Phase: "research"},
		{Phase: "assembly", Artifacts: []string{"deck.pptx"}, Suggestions: []string{"3 error(s) occurred"}},
	} {
		res, err := engine.Decide(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, checkpoint.Continue, res.Decision)
		assert.NotEmpty(t, res.Feedback)
	}
}

func TestAutoEngineReject(t *testing.T) {
	engine := checkpoint.NewAutoEngine(false)

	res, err := engine.Decide(context.Background(), &checkpoint.Request{Phase: "outline"})
	require.NoError(t, err)
	assert.Equal(t, checkpoint.Abort, res.Decision)
}

func TestInteractiveEmptyInputContinues(t *testing.T) {
	var out bytes.Buffer
	engine := checkpoint.NewInteractiveEngine(strings.NewReader("\n"), &out)

	res, err := engine.Decide(context.Background(), &checkpoint.Request{
		Phase:     "research",
		Artifacts: []string{"research.json"},
		Data:      map[string]interface{}{"sources": 12},
	})
	require.NoError(t, err)
	assert.Equal(t, checkpoint.Continue, res.Decision)
	assert.Contains(t, out.String(), "research.json")
}

func TestInteractiveRetryCollectsFeedback(t *testing.T) {
	var out bytes.Buffer
	input := strings.NewReader("r\nthe outline structure needs fewer sections\n")
	engine := checkpoint.NewInteractiveEngine(input, &out)

	res, err := engine.Decide(context.Background(), &checkpoint.Request{Phase: "outline"})
	require.NoError(t, err)

	assert.Equal(t, checkpoint.Retry, res.Decision)
	assert.Equal(t, "the outline structure needs fewer sections", res.Feedback)
	require.NotNil(t, res.Modifications)
	assert.Equal(t, res.Feedback, res.Modifications["user_feedback"])
	assert.Equal(t, checkpoint.AreaOutline, res.Modifications["area"])
	assert.NotEmpty(t, res.Modifications["timestamp"])
}

func TestInteractiveAbortCollectsReason(t *testing.T) {
	var out bytes.Buffer
	engine := checkpoint.NewInteractiveEngine(strings.NewReader("a\nwrong topic entirely\n"), &out)

	res, err := engine.Decide(context.Background(), &checkpoint.Request{Phase: "content"})
	require.NoError(t, err)
	assert.Equal(t, checkpoint.Abort, res.Decision)
	assert.Equal(t, "wrong topic entirely", res.Feedback)
}

func TestInteractiveModify(t *testing.T) {
	var out bytes.Buffer
	engine := checkpoint.NewInteractiveEngine(strings.NewReader("m\n"), &out)

	res, err := engine.Decide(context.Background(), &checkpoint.Request{Phase: "content"})
	require.NoError(t, err)
	assert.Equal(t, checkpoint.Modify, res.Decision)
}

func TestInteractiveUnknownChoiceContinues(t *testing.T) {
	var out bytes.Buffer
	engine := checkpoint.NewInteractiveEngine(strings.NewReader("zzz\n"), &out)

	res, err := engine.Decide(context.Background(), &checkpoint.Request{Phase: "content"})
	require.NoError(t, err)
	assert.Equal(t, checkpoint.Continue, res.Decision)
}

func TestInteractiveSummaryTruncatesOnRuneBoundary(t *testing.T) {
	var out bytes.Buffer
	engine := checkpoint.NewInteractiveEngine(strings.NewReader("\n"), &out)

	long := strings.Repeat("日", 120)
	_, err := engine.Decide(context.Background(), &checkpoint.Request{
		Phase: "content",
		Data:  map[string]interface{}{"draft": long},
	})
	require.NoError(t, err)

	rendered := out.String()
	assert.True(t, utf8.ValidString(rendered), "truncation must not split a rune")
	assert.Contains(t, rendered, strings.Repeat("日", 80)+"...")
	assert.NotContains(t, rendered, strings.Repeat("日", 81))
}

func TestClassifyArea(t *testing.T) {
	cases := []struct {
		feedback string
		want     string
	}{
		{"find better sources", checkpoint.AreaResearch},
		{"restructure the outline", checkpoint.AreaOutline},
		{"the slide text reads poorly", checkpoint.AreaContent},
		{"images look too dark", checkpoint.AreaImages},
		{"just not what I wanted", checkpoint.AreaGeneral},
		{"IMAGES need a consistent style", checkpoint.AreaImages},
		{"more insights from the research", checkpoint.AreaResearch},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, checkpoint.ClassifyArea(tc.feedback), "feedback: %q", tc.feedback)
	}
}
