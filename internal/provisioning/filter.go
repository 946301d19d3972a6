package provisioning

import (
	"fmt"
	"slices"
	"strings"
)

// ExclusionMode selects how exclusion directive text becomes a match prefix.
type ExclusionMode uint8

const (
	// ExclusionStripped matches with the text after the leading "-".
	ExclusionStripped ExclusionMode = iota
	// ExclusionVerbatim matches with the full directive text, "-" included.
	ExclusionVerbatim
)

// ParseExclusionMode accepts "stripped", "verbatim" or "" (stripped).
func ParseExclusionMode(s string) (ExclusionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stripped":
		return ExclusionStripped, nil
	case "verbatim":
		return ExclusionVerbatim, nil
	default:
		return 0, fmt.Errorf("unknown exclusion mode %q: must be one of: stripped, verbatim", s)
	}
}

func (m ExclusionMode) String() string {
	if m == ExclusionVerbatim {
		return "verbatim"
	}
	return "stripped"
}

type filterKind uint8

const (
	filterNone filterKind = iota
	filterPrefixes
)

// Filter decides whether a file name is excluded. The zero value excludes nothing.
type Filter struct {
	prefixes []string
	kind     filterKind
}

// NewPrefixFilter excludes names starting with any of prefixes.
// An empty prefix list yields the exclude-nothing filter.
func NewPrefixFilter(prefixes []string) Filter {
	if len(prefixes) == 0 {
		return Filter{}
	}
	return Filter{kind: filterPrefixes, prefixes: slices.Clone(prefixes)}
}

// Excludes reports whether name starts with one of the filter prefixes.
func (f Filter) Excludes(name string) bool {
	if f.kind == filterNone {
		return false
	}
	for _, p := range f.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Prefixes returns a copy of the match prefixes, nil for the exclude-nothing filter.
func (f Filter) Prefixes() []string {
	return slices.Clone(f.prefixes)
}

// ExcludesNothing reports whether this is the default filter.
func (f Filter) ExcludesNothing() bool {
	return f.kind == filterNone
}
