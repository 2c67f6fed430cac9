package ir

// Version constants for the IR schema and the pattern catalog.
const (
	// IRVersion is the IR schema version embedded in rendered provenance
	// comments and batch-compilation reports.
	IRVersion = "1"

	// PatternVersion is the version of the compiled-in pattern catalog
	// (see internal/catalog). Bumped whenever a pattern's extraction
	// semantics change, so provenance reports can distinguish "same text,
	// different catalog" from "same text, same catalog".
	PatternVersion = "1"
)
