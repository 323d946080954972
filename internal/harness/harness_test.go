package harness

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/storytime/internal/story"
	"github.com/roach88/storytime/internal/workflow"
)

func TestRun_Scenarios(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		scenario, err := LoadScenario(file)
		require.NoError(t, err)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Trace, len(scenario.Steps))
		})
	}
}

func TestRun_CreateFlowFinalState(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/create_story.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	assert.Equal(t, []string{"Existing", "My Story"}, result.Final.Titles)
	assert.Equal(t, 1, result.Final.Writes, "setup write is not counted")
	assert.Equal(t, "/stories/story-My%20Story", result.Final.Path)
}

func TestRun_ExpectMismatchFailsResult(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "expects success for a blank title",
		Steps: []Step{
			{Action: ActionSelect, Segment: "add"},
			{Action: ActionChooseManual},
			{Action: ActionSubmit, Title: " ", Expect: &ExpectClause{Outcome: OutcomeOK, View: "story"}},
		},
		Assertions: []Assertion{{Type: AssertWrites}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], `expected outcome "ok", got "E201"`)
	assert.Contains(t, result.Errors[1], `expected view "story", got "create"`)
}

func TestRun_AssertionFailureFailsResult(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong titles",
		Description: "asserts a story that was never created",
		Setup:       []SeedStory{{Title: "A"}},
		Steps:       []Step{{Action: ActionSelect, Segment: "home"}},
		Assertions: []Assertion{
			{Type: AssertStories, Titles: []string{"A", "B"}},
			{Type: AssertPath, Path: "/stories/home"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Assertion failed: stories")
}

func TestRun_UnavailableActionAborts(t *testing.T) {
	scenario := &Scenario{
		Name:        "save on welcome",
		Description: "no story is open",
		Steps:       []Step{{Action: ActionSave}},
		Assertions:  []Assertion{{Type: AssertWrites}},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUnavailable))
	assert.Contains(t, err.Error(), "steps[0] save")
	assert.Contains(t, err.Error(), "welcome view")
}

func TestRun_StartPathOpensEditor(t *testing.T) {
	scenario := &Scenario{
		Name:        "direct link",
		Description: "starting on a story path opens its editor",
		Path:        "/stories/story-Deep%20Link",
		Setup:       []SeedStory{{Title: "Deep Link", Paragraphs: []string{"one", "two"}}},
		Steps: []Step{
			{Action: ActionRemoveBlock, Block: 1},
			{Action: ActionSave, Expect: &ExpectClause{Outcome: OutcomeOK}},
		},
		Assertions: []Assertion{
			{Type: AssertStoryText, Title: "Deep Link", Block: 1, Text: "two"},
			{Type: AssertWrites, Count: 1},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_DocumentErrorIsOutcome(t *testing.T) {
	scenario := &Scenario{
		Name:        "out of range",
		Description: "document errors are reported as step outcomes",
		Path:        "/stories/story-A",
		Setup:       []SeedStory{{Title: "A"}},
		Steps: []Step{
			{Action: ActionSetText, Block: 7, Text: "x", Expect: &ExpectClause{Outcome: OutcomeError}},
			{Action: ActionInsertBlock, Block: 1, Type: "image", Expect: &ExpectClause{Outcome: OutcomeError}},
		},
		Assertions: []Assertion{{Type: AssertWrites}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestSeedStories(t *testing.T) {
	seeded := seedStories([]SeedStory{
		{Title: "Plain"},
		{Title: "Full", Paragraphs: []string{"a", "b"}},
	})

	require.Len(t, seeded, 2)
	assert.Equal(t, story.New("Plain"), seeded[0])
	require.Len(t, seeded[1].Content, 3)
	assert.Equal(t, "Full", seeded[1].Content[0].Text())
	assert.Equal(t, "b", seeded[1].Content[2].Text())
}

func TestStepArgs(t *testing.T) {
	assert.Nil(t, stepArgs(Step{Action: ActionSave}))
	assert.Equal(t, map[string]any{"block": int64(0)}, stepArgs(Step{Action: ActionSetText}))
	assert.Equal(t,
		map[string]any{"block": int64(2), "text": "x", "type": "heading"},
		stepArgs(Step{Action: ActionInsertBlock, Block: 2, Text: "x", Type: "heading"}))
	assert.Equal(t, map[string]any{"segment": "add"}, stepArgs(Step{Action: ActionSelect, Segment: "add"}))
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeOK, outcomeOf(nil))
	assert.Equal(t, story.ErrCodeMissingTitle, outcomeOf(story.NewMissingTitleError()))
	assert.Equal(t, story.ErrCodeDuplicateTitle, outcomeOf(story.NewDuplicateTitleError("x")))
	assert.Equal(t, OutcomeError, outcomeOf(workflow.ErrNotManual))
}

func TestSnapshot_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/browse.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := Snapshot(scenario, first)
	require.NoError(t, err)
	b, err := Snapshot(scenario, second)
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
	assert.True(t, strings.HasPrefix(string(a), `{"final":`))
	assert.NotContains(t, string(a), `"session"`)
}
