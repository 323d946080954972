// Package schema validates story collections read from outside the store
// against an embedded CUE schema.
//
// The schema (story.cue) accepts the persisted JSON layout: an array of
// {title, content} records whose blocks and inline styles are limited to
// what the editor schema allows. Every violation is reported with the JSON
// path it was found at.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/storytime/internal/story"
)

//go:embed story.cue
var schemaSource string

// Violations lists every schema error found in one document.
type Violations []*story.ValidationError

// Error implements the error interface.
func (v Violations) Error() string {
	if len(v) == 1 {
		return v[0].Error()
	}
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d schema violations:\n  %s", len(v), strings.Join(msgs, "\n  "))
}

// Unwrap exposes each violation to errors.Is and errors.As.
func (v Violations) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// Validator checks documents against the compiled schema.
type Validator struct {
	ctx     *cue.Context
	stories cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	compiled := ctx.CompileString(schemaSource, cue.Filename("story.cue"))
	if err := compiled.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	def := compiled.LookupPath(cue.ParsePath("#Stories"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Stories: %w", err)
	}
	return &Validator{ctx: ctx, stories: def}, nil
}

// ValidateStories checks that data is a JSON story collection and decodes
// it. Syntax errors are returned as-is; schema failures are returned as
// Violations.
func (v *Validator) ValidateStories(filename string, data []byte) ([]story.Story, error) {
	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	value := v.ctx.BuildExpr(expr)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("build %s: %w", filename, err)
	}

	unified := v.stories.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, toViolations(err)
	}

	var stories []story.Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return stories, nil
}

// toViolations converts CUE errors to validation errors keyed by path.
func toViolations(err error) Violations {
	var out Violations
	for _, e := range errors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "document"
		}
		format, args := e.Msg()
		out = append(out, &story.ValidationError{
			Code:    story.ErrCodeSchema,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}
	if len(out) == 0 {
		out = Violations{{Code: story.ErrCodeSchema, Field: "document", Message: err.Error()}}
	}
	return out
}
