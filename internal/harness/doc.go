// Package harness replays recorded UI sessions against the story workflows.
//
// A scenario seeds the collection, drives the shell the way a user drives
// the dashboard (select a menu entry, choose manual entry, submit a title,
// edit blocks, save) and asserts on the outcome of every step and on the
// final state.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	session: fixed-session-id
//	setup:
//	  - title: Existing
//	    paragraphs: ["first paragraph"]
//	steps:
//	  - action: select
//	    segment: add
//	  - action: choose_manual
//	  - action: submit
//	    title: My Story
//	    expect: { outcome: ok, view: story }
//	  - action: set_text
//	    block: 0
//	    text: ""
//	  - action: save
//	    expect: { outcome: E201 }
//	assertions:
//	  - type: stories
//	    titles: [Existing, My Story]
//	  - type: path
//	    path: /stories/story-My%20Story
//
// # Assertion Types
//
//   - stories: stored titles, in order
//   - story_text: text of one block of a stored story
//   - path: the router's final pathname
//   - menu: entries of the "My Stories" section, in order
//   - writes: number of Store writes made by the steps
//   - trace_contains: some step with an action had an outcome
//   - trace_count: how many steps with an action had an outcome
//
// # Deterministic Testing
//
// Every scenario runs on its own in-memory slot with a fixed session ID,
// so the same scenario always yields the same trace. Traces are compared
// against golden files as canonical JSON.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/create.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, msg := range result.Errors {
//	    log.Println(msg)
//	}
package harness
