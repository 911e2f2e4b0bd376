package domain

import "strings"

// ExclusionSet is an immutable set of seller names whose POs never need
// declaration support. It is built once per process from the external
// reference list and shared by reference with every worker; sharing is
// safe because the set is never mutated after construction. Concurrent
// construction is benign only if every initialiser reads identical
// reference data.
type ExclusionSet struct {
	names map[string]struct{}
}

// NewExclusionSet builds a set from raw seller names. Names are trimmed
// and upper-cased so membership checks are case-insensitive; empty names
// are dropped.
func NewExclusionSet(names []string) ExclusionSet {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return ExclusionSet{names: set}
}

// Contains reports whether the given seller is excluded.
func (s ExclusionSet) Contains(seller string) bool {
	_, ok := s.names[strings.ToUpper(strings.TrimSpace(seller))]
	return ok
}

// Len returns the number of sellers in the set.
func (s ExclusionSet) Len() int {
	return len(s.names)
}
