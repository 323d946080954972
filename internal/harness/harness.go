package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/storytime/internal/app"
	"github.com/roach88/storytime/internal/nav"
	"github.com/roach88/storytime/internal/store"
	"github.com/roach88/storytime/internal/story"
	"github.com/roach88/storytime/internal/testutil"
	"github.com/roach88/storytime/internal/workflow"
)

// DefaultPath is the router's starting pathname when a scenario sets none.
const DefaultPath = "/"

// Harness replays one scenario against a fresh in-memory collection.
type Harness struct {
	slot    *store.MemorySlot
	stories *store.Stories
	shell   *app.Shell
	screen  app.Screen
	logger  *slog.Logger

	baseline int // slot writes performed by setup
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs on a fresh MemorySlot for isolation, with a fixed
// session ID so traces are reproducible.
//
// Execution flow:
// 1. Seed the collection from Setup in one write
// 2. Open the shell at the scenario's starting path
// 3. Replay the steps, checking expect clauses
// 4. Evaluate assertions against the trace and final state
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with workflow logging sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	ctx := context.Background()

	slot := store.NewMemorySlot()
	stories := store.NewStories(slot, store.DefaultKey, logger)
	if len(scenario.Setup) > 0 {
		if err := stories.Save(ctx, seedStories(scenario.Setup)); err != nil {
			return nil, fmt.Errorf("failed to execute setup: %w", err)
		}
	}

	path := scenario.Path
	if path == "" {
		path = DefaultPath
	}
	opts := workflow.Options{
		Logger:   logger,
		Sessions: testutil.NewFixedSessionGenerator(scenario.Session),
	}
	shell, err := app.NewShell(ctx, stories, nav.NewRouter(path), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open shell: %w", err)
	}
	defer shell.Close()

	h := &Harness{
		slot:     slot,
		stories:  stories,
		shell:    shell,
		logger:   logger,
		baseline: slot.Writes(),
	}
	if err := h.open(ctx); err != nil {
		return nil, err
	}
	defer h.closeScreen()

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, i, step, result); err != nil {
			return nil, fmt.Errorf("failed to execute steps: %w", err)
		}
	}

	final, err := h.finalState(ctx)
	if err != nil {
		return nil, err
	}
	result.Final = final

	actx := &AssertionContext{Ctx: ctx, Stories: stories}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

// seedStories builds the setup collection.
func seedStories(seeds []SeedStory) []story.Story {
	out := make([]story.Story, 0, len(seeds))
	for _, seed := range seeds {
		s := story.New(seed.Title)
		if len(seed.Paragraphs) > 0 {
			s.Content = s.Content[:1]
			for _, p := range seed.Paragraphs {
				s.Content = append(s.Content, paragraph(p))
			}
		}
		out = append(out, s)
	}
	return out
}

func paragraph(text string) story.Block {
	return story.Block{
		Type:    story.BlockParagraph,
		Content: []story.InlineContent{{Type: story.InlineText, Text: text, Styles: story.Styles{}}},
	}
}

// executeStep performs one step, records it and checks its expect clause.
//
// A step that needs a screen the user is not looking at (submitting from
// the welcome page, saving with no story open) aborts the run: the
// scenario itself is wrong.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) error {
	router := h.shell.Router()
	before := router.Pathname()

	stepErr := h.perform(ctx, step)
	if errors.Is(stepErr, errUnavailable) {
		return fmt.Errorf("steps[%d] %s: %w", i, step.Action, stepErr)
	}

	// Navigation re-renders the page, as the dashboard does.
	if step.Action == ActionSelect || router.Pathname() != before {
		if err := h.open(ctx); err != nil {
			return fmt.Errorf("steps[%d] %s: %w", i, step.Action, err)
		}
	}

	event := TraceEvent{
		Action:  step.Action,
		Args:    stepArgs(step),
		Outcome: outcomeOf(stepErr),
		View:    string(h.screen.View.Kind),
		Path:    router.Pathname(),
	}
	result.AddTrace(event)

	if step.Expect != nil {
		if step.Expect.Outcome != event.Outcome {
			result.AddError(fmt.Sprintf("steps[%d] %s: expected outcome %q, got %q (%v)",
				i, step.Action, step.Expect.Outcome, event.Outcome, stepErr))
		}
		if step.Expect.View != "" && step.Expect.View != event.View {
			result.AddError(fmt.Sprintf("steps[%d] %s: expected view %q, got %q",
				i, step.Action, step.Expect.View, event.View))
		}
	}

	h.logger.Info("step completed",
		"step", i,
		"action", step.Action,
		"outcome", event.Outcome,
		"path", event.Path,
	)
	return nil
}

// errUnavailable marks a step the current screen cannot perform.
var errUnavailable = errors.New("action not available")

// perform runs the step against the current screen and returns the
// workflow's answer to the user.
func (h *Harness) perform(ctx context.Context, step Step) error {
	if step.Action == ActionSelect {
		h.shell.Select(step.Segment)
		return nil
	}

	if c := h.screen.Creator; c != nil {
		switch step.Action {
		case ActionChooseManual:
			c.ChooseManual()
			return nil
		case ActionChooseAI:
			c.ChooseAI()
			return nil
		case ActionBack:
			c.Back()
			return nil
		case ActionInput:
			c.SetInput(step.Text)
			return nil
		case ActionSubmit:
			_, err := c.Submit(ctx, step.Title)
			return err
		}
	}

	if e := h.screen.Editor; e != nil {
		doc := e.Document()
		switch step.Action {
		case ActionSetText:
			return doc.SetText(step.Block, step.Text)
		case ActionInsertBlock:
			b := paragraph(step.Text)
			if step.Type != "" {
				b.Type = step.Type
			}
			return doc.InsertBlock(step.Block, b)
		case ActionAppendParagraph:
			return doc.AppendParagraph(step.Text)
		case ActionRemoveBlock:
			return doc.RemoveBlock(step.Block)
		case ActionSave:
			return e.Save(ctx)
		}
	}

	return fmt.Errorf("%w on the %s view", errUnavailable, h.screen.View.Kind)
}

// open rebuilds the screen for the router's current segment.
func (h *Harness) open(ctx context.Context) error {
	h.closeScreen()
	screen, err := h.shell.Open(ctx)
	if err != nil {
		return err
	}
	h.screen = screen
	return nil
}

func (h *Harness) closeScreen() {
	if h.screen.Editor != nil {
		h.screen.Editor.Close()
	}
	h.screen = app.Screen{}
}

func (h *Harness) finalState(ctx context.Context) (FinalState, error) {
	all, err := h.stories.Load(ctx)
	if err != nil {
		return FinalState{}, fmt.Errorf("failed to read final state: %w", err)
	}
	menu := []string{}
	for _, item := range nav.StoriesSection(h.shell.Navigation()) {
		menu = append(menu, item.Title)
	}
	return FinalState{
		Titles: story.Titles(all),
		Menu:   menu,
		Path:   h.shell.Router().Pathname(),
		Writes: h.slot.Writes() - h.baseline,
	}, nil
}

// stepArgs returns the step's inputs as trace arguments, or nil when the
// action takes none.
func stepArgs(step Step) map[string]any {
	args := map[string]any{}
	if step.Segment != "" {
		args["segment"] = step.Segment
	}
	if step.Title != "" {
		args["title"] = step.Title
	}
	if step.Text != "" {
		args["text"] = step.Text
	}
	switch step.Action {
	case ActionSetText, ActionInsertBlock, ActionRemoveBlock:
		args["block"] = int64(step.Block)
	}
	if step.Type != "" {
		args["type"] = step.Type
	}
	if len(args) == 0 {
		return nil
	}
	return args
}

// outcomeOf maps a workflow error to its trace outcome.
func outcomeOf(err error) string {
	if err == nil {
		return OutcomeOK
	}
	var ve *story.ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return OutcomeError
}
