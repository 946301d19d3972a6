package provisioning

import "net/url"

var emptySnapshot = &Snapshot{}

// Snapshot is one immutable load result: the ordered additions and the
// exclusion filter that were built together.
type Snapshot struct {
	source    string
	additions []*url.URL
	filter    Filter
}

// Source is the directive source the snapshot was loaded from.
func (s *Snapshot) Source() string {
	return s.source
}

// Additions returns copies of the addition locations in directive order.
func (s *Snapshot) Additions() []*url.URL {
	out := make([]*url.URL, len(s.additions))
	for i, loc := range s.additions {
		u := *loc
		out[i] = &u
	}
	return out
}

// Filter returns the exclusion filter.
func (s *Snapshot) Filter() Filter {
	return s.filter
}

// Accepts reports whether candidate passes the exclusion filter.
func (s *Snapshot) Accepts(candidate string) bool {
	if s.filter.ExcludesNothing() {
		return true
	}

	name, err := NameOf(candidate)
	if err != nil {
		return true
	}

	return !s.filter.Excludes(name)
}
