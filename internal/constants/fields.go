package constants

// Structured log field names used throughout the application
const (
	// FieldSource is the directive source being loaded
	FieldSource = "source"

	// FieldLine is the 1-based directive line number
	FieldLine = "line"

	// FieldTarget is an addition target as written in the source
	FieldTarget = "target"

	// FieldPath is a resolved filesystem path
	FieldPath = "path"

	// FieldPattern is an exclusion pattern
	FieldPattern = "pattern"

	// FieldCoordinate is a parsed artifact coordinate
	FieldCoordinate = "coordinate"
)
