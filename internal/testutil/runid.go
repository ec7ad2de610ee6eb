package testutil

// FixedRunID generates the same run ID every time.
//
// Unlike engine.FixedGenerator, which returns IDs in sequence and panics when
// they run out, FixedRunID can back any number of runs. Golden snapshots of
// CLI output stay byte-identical across reruns.
//
// FixedRunID is stateless and safe for concurrent use.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a fixed run ID generator.
// If id is empty, Generate returns "test-run-default".
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run ID.
//
// Implements engine.RunIDGenerator.
func (g *FixedRunID) Generate() string {
	return g.id
}
