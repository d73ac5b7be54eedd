// Package idset is the set-of-identifiers value used by the interpreter and
// the set store. Identifiers are opaque strings.
package idset

import (
	"maps"
	"slices"
)

// Set is an unordered collection of distinct identifiers.
type Set map[string]struct{}

// New returns a set holding ids.
func New(ids ...string) Set {
	s := make(Set, len(ids))
	s.Add(ids...)
	return s
}

// Add inserts ids into s.
func (s Set) Add(ids ...string) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports whether id is a member of s.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Len() int { return len(s) }

// Clone returns an independent copy. Cloning a nil set yields an empty set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Equal reports whether s and o hold the same members.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for id := range s {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order. The result is never nil.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	out = slices.AppendSeq(out, maps.Keys(s))
	slices.Sort(out)
	return out
}

// Intersect returns the members present in both a and b.
func Intersect(a, b Set) Set {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	out := make(Set, len(small))
	for id := range small {
		if large.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Union returns the members present in a or b.
func Union(a, b Set) Set {
	out := make(Set, len(a)+len(b))
	for id := range a {
		out[id] = struct{}{}
	}
	for id := range b {
		out[id] = struct{}{}
	}
	return out
}

// Difference returns the members of a that are not in b.
func Difference(a, b Set) Set {
	out := make(Set, len(a))
	for id := range a {
		if !b.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}
