package provisioning

import (
	"errors"
	"fmt"
)

const maxLineBytes = 1024 * 1024

var (
	// ErrSourceRead reports that the directive source could not be opened or read to the end.
	ErrSourceRead = errors.New("directive source read failed")
	// ErrTargetResolution reports that the resolver rejected an addition target.
	ErrTargetResolution = errors.New("target resolution failed")
	// ErrInvalidLocation reports a resolved path that cannot become a file location.
	ErrInvalidLocation = errors.New("invalid location")
	// ErrNotLocal reports a candidate that does not name a local file.
	ErrNotLocal = errors.New("location is not a local file")
)

// ResolveError describes the addition target that stopped a load.
type ResolveError struct {
	Err    error
	Target string
	Line   int
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: line %d %q: %v", ErrTargetResolution, e.Line, e.Target, e.Err)
}

// Unwrap exposes both the sentinel and the resolver's own error to errors.Is.
func (e *ResolveError) Unwrap() []error {
	return []error{ErrTargetResolution, e.Err}
}
