package testutil

// FixedSessionGenerator returns the same session ID every time.
//
// This enables deterministic log output and golden snapshot comparison:
// the same scenario with the same generator produces byte-identical
// snapshots no matter how many workflow sessions it opens.
//
// Thread-safety: FixedSessionGenerator is stateless and safe for concurrent use.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a new fixed session ID generator.
//
// If id is empty, Generate() returns "test-session-default".
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedSessionGenerator{id: id}
}

// Generate returns the fixed session ID.
//
// Implements workflow.SessionGenerator interface.
func (g *FixedSessionGenerator) Generate() string {
	return g.id
}
