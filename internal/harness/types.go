package harness

// Step outcomes that are not validation error codes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// TraceEvent records one replayed step and what the user saw afterwards.
type TraceEvent struct {
	Seq     int64          `json:"seq"`
	Action  string         `json:"action"`
	Args    map[string]any `json:"args,omitempty"`
	Outcome string         `json:"outcome"`
	View    string         `json:"view"`
	Path    string         `json:"path"`
}

// FinalState is the state left behind by a scenario.
type FinalState struct {
	Titles []string `json:"titles"`
	Menu   []string `json:"menu"`
	Path   string   `json:"path"`
	Writes int      `json:"writes"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expect clause and assertion matched.
	Pass bool `json:"pass"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the collection, menu and router state after the last step.
	Final FinalState `json:"final"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step event, numbering it from 1.
func (r *Result) AddTrace(event TraceEvent) {
	event.Seq = int64(len(r.Trace) + 1)
	r.Trace = append(r.Trace, event)
}
