package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/storytime/internal/nav"
	"github.com/roach88/storytime/internal/store"
	"github.com/roach88/storytime/internal/story"
)

// Mode is the state of the creation flow.
type Mode string

const (
	ModeChoose Mode = "choose"
	ModeAI     Mode = "ai"
	ModeManual Mode = "manual"
)

// ErrNotManual is returned by Submit outside ModeManual.
var ErrNotManual = errors.New("submit requires manual mode")

// Creator runs the "add a new story" flow.
type Creator struct {
	stories   *store.Stories
	navigator nav.Navigator
	logger    *slog.Logger

	mode  Mode
	input string
	err   error
}

// NewCreator returns a creation flow in ModeChoose.
func NewCreator(stories *store.Stories, navigator nav.Navigator, opts Options) *Creator {
	session := opts.sessions().Generate()
	return &Creator{
		stories:   stories,
		navigator: navigator,
		logger:    opts.logger().With("flow", "create", "session", session),
		mode:      ModeChoose,
	}
}

// Mode returns the current state.
func (c *Creator) Mode() Mode {
	return c.mode
}

// Input returns the pending title text.
func (c *Creator) Input() string {
	return c.input
}

// SetInput replaces the pending title text.
func (c *Creator) SetInput(title string) {
	c.input = title
}

// CanSubmit reports whether the add button is enabled: the flow is in
// manual mode and the trimmed input is non-empty.
func (c *Creator) CanSubmit() bool {
	return c.mode == ModeManual && strings.TrimSpace(c.input) != ""
}

// Err returns the validation error from the last submit, if any.
func (c *Creator) Err() error {
	return c.err
}

// ChooseAI enters the AI generation stub.
func (c *Creator) ChooseAI() {
	c.mode = ModeAI
}

// ChooseManual enters title entry.
func (c *Creator) ChooseManual() {
	c.mode = ModeManual
}

// Back returns to ModeChoose, dropping any displayed error.
func (c *Creator) Back() {
	c.mode = ModeChoose
	c.err = nil
}

// Submit creates a story titled title (trimmed).
//
// On a validation failure the error is returned and kept for display;
// the collection and the flow state are left as they were. On success
// exactly one Store write happens, the input is cleared, the flow returns
// to ModeChoose and the navigator is sent to the new story.
func (c *Creator) Submit(ctx context.Context, title string) (story.Story, error) {
	if c.mode != ModeManual {
		return story.Story{}, ErrNotManual
	}
	c.input = title

	title = strings.TrimSpace(title)
	if title == "" {
		c.err = story.NewMissingTitleError()
		c.logger.Debug("submit rejected", "error", c.err)
		return story.Story{}, c.err
	}

	existing, err := c.stories.Load(ctx)
	if err != nil {
		return story.Story{}, fmt.Errorf("submit: %w", err)
	}
	if err := story.ValidateTitle(title, existing, ""); err != nil {
		c.err = err
		c.logger.Debug("submit rejected", "title", title, "error", err)
		return story.Story{}, err
	}

	created := story.New(title)
	if err := c.stories.Save(ctx, append(existing, created)); err != nil {
		return story.Story{}, fmt.Errorf("submit: %w", err)
	}

	c.input = ""
	c.err = nil
	c.mode = ModeChoose

	c.logger.Info("story created", "title", title, "count", len(existing)+1)
	c.navigator.Navigate(nav.StoryPath(title))

	return created, nil
}
