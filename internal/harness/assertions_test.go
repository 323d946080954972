package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/storytime/internal/story"
	"github.com/roach88/storytime/internal/testutil"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Action: ActionSubmit, Outcome: "E201"},
		{Seq: 2, Action: ActionSubmit, Outcome: "E202"},
		{Seq: 3, Action: ActionSubmit, Outcome: OutcomeOK},
		{Seq: 4, Action: ActionSave, Outcome: OutcomeOK},
	}
}

func TestAssertTraceContains(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceContains(trace, Assertion{Action: ActionSubmit, Outcome: "E202"}))
	assert.NoError(t, assertTraceContains(trace, Assertion{Action: ActionSave}))

	err := assertTraceContains(trace, Assertion{Action: ActionSave, Outcome: "E201"})
	require.Error(t, err)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceContains, ae.Type)
	assert.Contains(t, err.Error(), "Full trace:")
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Action: ActionSubmit, Count: 3}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Action: ActionSubmit, Outcome: OutcomeOK, Count: 1}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Action: ActionBack, Count: 0}))

	err := assertTraceCount(trace, Assertion{Action: ActionSave, Count: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected: 2 occurrences of save")
	assert.Contains(t, err.Error(), "Actual: 1 occurrences")
}

func TestAssertTitles(t *testing.T) {
	assert.NoError(t, assertTitles(AssertStories, []string{"a", "b"}, []string{"a", "b"}))
	assert.NoError(t, assertTitles(AssertStories, nil, []string{}))
	assert.Error(t, assertTitles(AssertStories, []string{"b", "a"}, []string{"a", "b"}))
}

func TestAssertStoryText(t *testing.T) {
	stories, _ := testutil.NewMemoryStories(t, story.New("Title"))
	ctx := context.Background()

	assert.NoError(t, assertStoryText(ctx, stories, Assertion{Title: "Title", Block: 0, Text: "Title"}))
	assert.NoError(t, assertStoryText(ctx, stories, Assertion{Title: "Title", Block: 1, Text: ""}))

	err := assertStoryText(ctx, stories, Assertion{Title: "Missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not stored")

	err = assertStoryText(ctx, stories, Assertion{Title: "Title", Block: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "story has 2 blocks")

	err = assertStoryText(ctx, stories, Assertion{Title: "Title", Block: 0, Text: "Other"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Title"`)
}

func TestEvaluateAssertions(t *testing.T) {
	stories, _ := testutil.NewMemoryStories(t, story.New("A"))
	result := NewResult()
	result.Trace = sampleTrace()
	result.Final = FinalState{
		Titles: []string{"A"},
		Menu:   []string{"Add a new story", "A"},
		Path:   "/stories/story-A",
		Writes: 1,
	}
	actx := &AssertionContext{Ctx: context.Background(), Stories: stories}

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertStories, Titles: []string{"A"}},
		{Type: AssertMenu, Titles: []string{"Add a new story", "A"}},
		{Type: AssertPath, Path: "/stories/story-A"},
		{Type: AssertWrites, Count: 1},
		{Type: AssertStoryText, Title: "A", Text: "A"},
		{Type: AssertTraceContains, Action: ActionSave},
		{Type: AssertTraceCount, Action: ActionSubmit, Count: 3},
	}, actx)
	assert.Empty(t, errs)

	errs = EvaluateAssertions(result, []Assertion{
		{Type: AssertPath, Path: "/"},
		{Type: AssertWrites, Count: 0},
		{Type: "bogus"},
	}, actx)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[2], `unknown assertion type "bogus"`)

	errs = EvaluateAssertions(result, []Assertion{{Type: AssertStoryText, Title: "A"}}, nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires collection context")
}
