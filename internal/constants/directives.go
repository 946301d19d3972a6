package constants

// Directive line markers. A line without a recognized marker is an addition.
const (
	// CommentMarker starts a line that is ignored.
	CommentMarker = "#"

	// AdditionMarker optionally starts an addition line.
	AdditionMarker = "+"

	// ExclusionMarker starts an exclusion line.
	ExclusionMarker = "-"
)
