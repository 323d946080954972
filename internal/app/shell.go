// Package app wires the story collection, the router and the navigation
// tree together and opens the workflow for whatever segment is selected.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/roach88/storytime/internal/nav"
	"github.com/roach88/storytime/internal/store"
	"github.com/roach88/storytime/internal/story"
	"github.com/roach88/storytime/internal/workflow"
)

// Screen is what the shell shows for the current segment. At most one of
// Creator and Editor is set, matching View.Kind.
type Screen struct {
	View    nav.View
	Creator *workflow.Creator
	Editor  *workflow.Editor
}

// Shell is the dashboard: it keeps the navigation tree in step with the
// collection and routes segment selections to workflows.
type Shell struct {
	stories *store.Stories
	router  *nav.Router
	opts    workflow.Options

	mu   sync.Mutex
	tree []nav.Item

	unsubscribe func()
}

// NewShell loads the collection once to build the initial tree and then
// rebuilds it after every Save.
func NewShell(ctx context.Context, stories *store.Stories, router *nav.Router, opts workflow.Options) (*Shell, error) {
	initial, err := stories.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("new shell: %w", err)
	}
	s := &Shell{
		stories: stories,
		router:  router,
		opts:    opts,
		tree:    nav.Build(initial),
	}
	s.unsubscribe = stories.Subscribe(s.rebuild)
	return s, nil
}

func (s *Shell) rebuild(all []story.Story) {
	tree := nav.Build(all)
	s.mu.Lock()
	s.tree = tree
	s.mu.Unlock()
}

// Navigation returns the current navigation tree.
func (s *Shell) Navigation() []nav.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]nav.Item(nil), s.tree...)
}

// Router returns the shell's router.
func (s *Shell) Router() *nav.Router {
	return s.router
}

// Select navigates to a segment of the stories section.
func (s *Shell) Select(segment string) {
	if title, ok := nav.StoryTitle(segment); ok {
		s.router.Navigate(nav.StoryPath(title))
		return
	}
	s.router.Navigate("/" + nav.SegmentStories + "/" + segment)
}

// Open resolves the router's current segment against a fresh read of the
// collection and builds the screen for it, constructing the workflow the
// view needs.
func (s *Shell) Open(ctx context.Context) (Screen, error) {
	all, err := s.stories.Load(ctx)
	if err != nil {
		return Screen{}, fmt.Errorf("open: %w", err)
	}

	view := nav.Resolve(s.router.Segment(), all)
	screen := Screen{View: view}
	switch view.Kind {
	case nav.ViewCreate:
		screen.Creator = workflow.NewCreator(s.stories, s.router, s.opts)
	case nav.ViewStory:
		screen.Editor = workflow.NewEditor(view.Story, s.stories, s.router, s.opts)
	}
	return screen, nil
}

// Close stops tracking collection changes.
func (s *Shell) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
