package ir

// Version constants for the data model and the scoring engine.
const (
	// IRVersion is the canonical record schema version.
	IRVersion = "1"

	// EngineVersion is the connective engine version.
	EngineVersion = "0.1.0"
)
