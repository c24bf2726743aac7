package ir

const (
	// IRVersion is the scenario and trace schema version.
	IRVersion = "1"

	// ToolVersion is recorded with every journaled run.
	ToolVersion = "0.1.0"
)
