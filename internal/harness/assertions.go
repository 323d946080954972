package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/storytime/internal/store"
	"github.com/roach88/storytime/internal/story"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %v -> %s (%s %s)\n",
				event.Seq, event.Action, event.Args, event.Outcome, event.View, event.Path)
		}
	}

	return buf.String()
}

// assertTraceContains checks that some step with the action ended with the
// expected outcome. An empty outcome matches any.
func assertTraceContains(trace []TraceEvent, assertion Assertion) error {
	for _, event := range trace {
		if matchEvent(event, assertion) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("step %s with outcome %q", assertion.Action, assertion.Outcome),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceCount checks how many steps with the action ended with the
// expected outcome.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if matchEvent(event, assertion) {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Action),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

func matchEvent(event TraceEvent, assertion Assertion) bool {
	if event.Action != assertion.Action {
		return false
	}
	return assertion.Outcome == "" || event.Outcome == assertion.Outcome
}

// assertTitles compares an ordered title list.
func assertTitles(kind string, want, got []string) error {
	if want == nil {
		want = []string{}
	}
	if slices.Equal(want, got) {
		return nil
	}
	return &AssertionError{
		Type:     kind,
		Expected: fmt.Sprintf("%q", want),
		Actual:   fmt.Sprintf("%q", got),
	}
}

// assertStoryText reads the stored story and compares one block's text.
func assertStoryText(ctx context.Context, stories *store.Stories, assertion Assertion) error {
	all, err := stories.Load(ctx)
	if err != nil {
		return fmt.Errorf("story_text: %w", err)
	}

	s, ok := story.Find(all, assertion.Title)
	if !ok {
		return &AssertionError{
			Type:     AssertStoryText,
			Expected: fmt.Sprintf("story %q", assertion.Title),
			Actual:   fmt.Sprintf("not stored; titles are %q", story.Titles(all)),
		}
	}
	if assertion.Block >= len(s.Content) {
		return &AssertionError{
			Type:     AssertStoryText,
			Expected: fmt.Sprintf("block %d of %q", assertion.Block, assertion.Title),
			Actual:   fmt.Sprintf("story has %d blocks", len(s.Content)),
		}
	}
	if got := s.Content[assertion.Block].Text(); got != assertion.Text {
		return &AssertionError{
			Type:     AssertStoryText,
			Expected: fmt.Sprintf("block %d of %q reads %q", assertion.Block, assertion.Title, assertion.Text),
			Actual:   fmt.Sprintf("%q", got),
		}
	}
	return nil
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Ctx     context.Context
	Stories *store.Stories
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides collection access for story_text assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		case AssertStories:
			err = assertTitles(AssertStories, assertion.Titles, result.Final.Titles)
		case AssertMenu:
			err = assertTitles(AssertMenu, assertion.Titles, result.Final.Menu)
		case AssertPath:
			if result.Final.Path != assertion.Path {
				err = &AssertionError{Type: AssertPath, Expected: assertion.Path, Actual: result.Final.Path}
			}
		case AssertWrites:
			if result.Final.Writes != assertion.Count {
				err = &AssertionError{
					Type:     AssertWrites,
					Expected: fmt.Sprintf("%d writes", assertion.Count),
					Actual:   fmt.Sprintf("%d writes", result.Final.Writes),
				}
			}
		case AssertStoryText:
			if actx == nil || actx.Stories == nil {
				err = fmt.Errorf("assertion[%d]: story_text requires collection context", i)
			} else {
				err = assertStoryText(actx.Ctx, actx.Stories, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}
