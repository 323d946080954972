package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/storytime/internal/nav"
	"github.com/roach88/storytime/internal/story"
	"github.com/roach88/storytime/internal/testutil"
	"github.com/roach88/storytime/internal/workflow"
)

func newTestShell(t *testing.T, seed ...story.Story) *Shell {
	t.Helper()
	stories, _ := testutil.NewMemoryStories(t, seed...)
	opts := workflow.Options{
		Logger:   testutil.DiscardLogger(),
		Sessions: testutil.NewFixedSessionGenerator("shell"),
	}
	s, err := NewShell(context.Background(), stories, nav.NewRouter("/"), opts)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func segments(items []nav.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Segment
	}
	return out
}

func TestShell_InitialNavigation(t *testing.T) {
	s := newTestShell(t, story.New("Draft"))

	section := nav.StoriesSection(s.Navigation())
	assert.Equal(t, []string{"add", "story-Draft"}, segments(section))
}

func TestShell_OpenDefaultIsWelcome(t *testing.T) {
	s := newTestShell(t)

	screen, err := s.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, nav.ViewWelcome, screen.View.Kind)
	assert.Nil(t, screen.Creator)
	assert.Nil(t, screen.Editor)
}

func TestShell_CreateThenEdit(t *testing.T) {
	s := newTestShell(t)
	ctx := context.Background()

	s.Select(nav.SegmentAdd)
	screen, err := s.Open(ctx)
	require.NoError(t, err)
	require.NotNil(t, screen.Creator)

	screen.Creator.ChooseManual()
	_, err = screen.Creator.Submit(ctx, "Draft")
	require.NoError(t, err)

	// Menu rebuilt from the saved collection; router moved to the story.
	assert.Equal(t, []string{"add", "story-Draft"}, segments(nav.StoriesSection(s.Navigation())))
	assert.Equal(t, "story-Draft", s.Router().Segment())

	screen, err = s.Open(ctx)
	require.NoError(t, err)
	require.NotNil(t, screen.Editor)
	assert.Equal(t, "Draft", screen.Editor.Title())

	require.NoError(t, screen.Editor.Document().SetText(0, "Final"))
	require.NoError(t, screen.Editor.Save(ctx))
	screen.Editor.Close()

	assert.Equal(t, []string{"add", "story-Final"}, segments(nav.StoriesSection(s.Navigation())))
	assert.Equal(t, "story-Final", s.Router().Segment())
}

func TestShell_OpenMissingStory(t *testing.T) {
	s := newTestShell(t)

	s.Select(nav.StorySegment("Ghost"))
	screen, err := s.Open(context.Background())
	require.NoError(t, err)

	assert.Equal(t, nav.ViewStoryNotFound, screen.View.Kind)
	assert.Equal(t, "Ghost", screen.View.Title)
	assert.Nil(t, screen.Editor)
}

func TestShell_CloseStopsRebuilding(t *testing.T) {
	stories, _ := testutil.NewMemoryStories(t)
	s, err := NewShell(context.Background(), stories, nav.NewRouter("/"), workflow.Options{Logger: testutil.DiscardLogger()})
	require.NoError(t, err)

	s.Close()
	require.NoError(t, stories.Save(context.Background(), []story.Story{story.New("late")}))

	assert.Equal(t, []string{"add"}, segments(nav.StoriesSection(s.Navigation())))
}
