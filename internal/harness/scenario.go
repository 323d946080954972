package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// A scenario replays one UI session against the workflows: it seeds the
// collection, performs steps the way a user would (select a menu entry,
// type a title, edit a block, save) and asserts on the resulting trace
// and final state.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Session is the fixed session ID handed to every workflow.
	// If empty, defaults to "test-session-default".
	Session string `yaml:"session,omitempty"`

	// Path is the router's starting pathname. Defaults to "/".
	Path string `yaml:"path,omitempty"`

	// Setup lists stories stored before the first step, in order.
	// They are written in a single Store write.
	Setup []SeedStory `yaml:"setup,omitempty"`

	// Steps is the session to replay.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// SeedStory is a stored story built from a title and plain paragraphs.
// Without paragraphs it gets the creation skeleton's empty paragraph.
type SeedStory struct {
	Title      string   `yaml:"title"`
	Paragraphs []string `yaml:"paragraphs,omitempty"`
}

// Step is one user action.
type Step struct {
	// Action is one of the Action* constants.
	Action string `yaml:"action"`

	// Segment is the menu entry to select (select).
	Segment string `yaml:"segment,omitempty"`

	// Title is the submitted title (submit).
	Title string `yaml:"title,omitempty"`

	// Text is the typed text (input, set_text, insert_block, append_paragraph).
	Text string `yaml:"text,omitempty"`

	// Block is the block index (set_text, insert_block, remove_block).
	Block int `yaml:"block,omitempty"`

	// Type is the block type to insert (insert_block). Defaults to paragraph.
	Type string `yaml:"type,omitempty"`

	// Expect validates the step's outcome. If nil, any outcome is accepted.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// Outcome is "ok", "error", or a validation error code such as "E202".
	Outcome string `yaml:"outcome"`

	// View is the expected view kind after the step, if set.
	View string `yaml:"view,omitempty"`
}

// Step actions.
const (
	ActionSelect          = "select"
	ActionChooseManual    = "choose_manual"
	ActionChooseAI        = "choose_ai"
	ActionBack            = "back"
	ActionInput           = "input"
	ActionSubmit          = "submit"
	ActionSetText         = "set_text"
	ActionInsertBlock     = "insert_block"
	ActionAppendParagraph = "append_paragraph"
	ActionRemoveBlock     = "remove_block"
	ActionSave            = "save"
)

// Assertion validates the trace or the final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "stories": stored titles equal Titles, in order
	// - "story_text": block Block of the story Title has text Text
	// - "path": the router pathname equals Path
	// - "menu": the stories section lists Titles, in order
	// - "writes": the steps performed exactly Count Store writes
	// - "trace_contains": a step with Action has outcome Outcome
	// - "trace_count": Action appears exactly Count times with outcome Outcome
	Type string `yaml:"type"`

	Titles  []string `yaml:"titles,omitempty"`
	Title   string   `yaml:"title,omitempty"`
	Block   int      `yaml:"block,omitempty"`
	Text    string   `yaml:"text,omitempty"`
	Path    string   `yaml:"path,omitempty"`
	Count   int      `yaml:"count,omitempty"`
	Action  string   `yaml:"action,omitempty"`
	Outcome string   `yaml:"outcome,omitempty"`
}

// Assertion type constants.
const (
	AssertStories       = "stories"
	AssertStoryText     = "story_text"
	AssertPath          = "path"
	AssertMenu          = "menu"
	AssertWrites        = "writes"
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict decoding catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, seed := range s.Setup {
		if seed.Title == "" {
			return fmt.Errorf("setup[%d]: title is required", i)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks the fields each action needs.
func validateStep(index int, step *Step) error {
	switch step.Action {
	case "":
		return fmt.Errorf("steps[%d]: action is required", index)
	case ActionSelect:
		if step.Segment == "" {
			return fmt.Errorf("steps[%d]: segment is required for select", index)
		}
	case ActionChooseManual, ActionChooseAI, ActionBack, ActionInput, ActionSubmit,
		ActionSetText, ActionAppendParagraph, ActionSave:
	case ActionInsertBlock, ActionRemoveBlock:
		if step.Block < 0 {
			return fmt.Errorf("steps[%d]: block must be non-negative for %s", index, step.Action)
		}
	default:
		return fmt.Errorf("steps[%d]: unknown action %q", index, step.Action)
	}

	if step.Expect != nil && step.Expect.Outcome == "" {
		return fmt.Errorf("steps[%d].expect: outcome is required", index)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertStories, AssertMenu:
	case AssertStoryText:
		if a.Title == "" {
			return fmt.Errorf("assertions[%d]: title is required for story_text", index)
		}
	case AssertPath:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for path", index)
		}
	case AssertWrites:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for writes", index)
		}
	case AssertTraceContains:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_contains", index)
		}
	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
