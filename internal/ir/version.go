package ir

// Version constants for the graph schema and engine.
const (
	// GraphSchemaVersion is the IR schema version for compiled graphs.
	GraphSchemaVersion = "1"

	// EngineVersion is the DCR engine version.
	EngineVersion = "0.1.0"
)
