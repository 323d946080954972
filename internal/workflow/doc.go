// Package workflow implements the two UI flows that change the story
// collection.
//
// Creator walks choose → ai | manual and submits a new story with the
// two-block skeleton. Editor owns one story's Document: it normalizes the
// document on every change and writes it back on explicit Save.
//
// Both flows receive their collaborators explicitly:
//   - *store.Stories: the persisted collection, re-read before validating
//   - nav.Navigator: where to go after a successful submit or rename
//   - SessionGenerator: a correlation ID for log lines
//
// Validation failures are returned as *story.ValidationError and kept as
// the flow's current error for display. No other error class originates
// here; store failures are passed through wrapped.
package workflow
