package provisioning

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/wizzomafizzo/provisioner/internal/constants"
)

// Kind classifies one line of a directive source.
type Kind uint8

const (
	// KindBlank is an empty line after trimming.
	KindBlank Kind = iota
	// KindComment is a line starting with "#".
	KindComment
	// KindAddition adds a resolved target to the location set.
	KindAddition
	// KindExclusion rejects candidates whose name starts with the pattern.
	KindExclusion
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindAddition:
		return "addition"
	case KindExclusion:
		return "exclusion"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Directive is one classified line of a directive source.
type Directive struct {
	// Text is the trimmed line exactly as written, markers included.
	Text string
	// Target is the addition payload with a single leading "+" removed.
	// Empty for every other kind.
	Target string
	// Kind is the classification of the line.
	Kind Kind
	// Line is the 1-based line number in the source.
	Line int
}

// Pattern returns the prefix this exclusion directive matches with under mode.
func (d Directive) Pattern(mode ExclusionMode) string {
	if mode == ExclusionVerbatim {
		return d.Text
	}
	return strings.TrimPrefix(d.Text, constants.ExclusionMarker)
}

// Classify turns one raw source line into a directive.
func Classify(line string, lineNo int) Directive {
	text := strings.TrimSpace(line)
	d := Directive{Text: text, Line: lineNo}

	switch {
	case text == "":
		d.Kind = KindBlank
	case strings.HasPrefix(text, constants.CommentMarker):
		d.Kind = KindComment
	case strings.HasPrefix(text, constants.ExclusionMarker):
		d.Kind = KindExclusion
	default:
		d.Kind = KindAddition
		d.Target = strings.TrimPrefix(text, constants.AdditionMarker)
	}

	return d
}

// newLineScanner returns a scanner that tolerates long classpath entries.
func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLineBytes)
	return s
}

// ParseDirectives classifies every line of r without resolving anything.
//
// Blank and comment lines are returned too so callers can show the whole
// source; the returned error is the scan error, if any, and the directives
// read before it are still returned.
func ParseDirectives(r io.Reader) ([]Directive, error) {
	s := newLineScanner(r)
	directives := make([]Directive, 0, 16)

	lineNo := 0
	for s.Scan() {
		lineNo++
		directives = append(directives, Classify(s.Text(), lineNo))
	}

	if err := s.Err(); err != nil {
		return directives, fmt.Errorf("%w: line %d: %w", ErrSourceRead, lineNo+1, err)
	}

	return directives, nil
}
