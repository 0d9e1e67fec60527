package rngevent

import "sync"

// Set is a caller-owned collection of possibility events. The zero value
// is an empty, usable set. Sets returned by possible() are always fresh
// copies; walkers never hand out their internal cache (spec.md §3.4, §4.4).
type Set struct {
	byKey map[string]Possibility
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{byKey: make(map[string]Possibility)}
}

// Add inserts p, interning it so that two additions of an event with equal
// parameters are deduplicated (spec.md §3.3, §9 "Hash-consing events").
func (s *Set) Add(p Possibility) {
	if s.byKey == nil {
		s.byKey = make(map[string]Possibility)
	}
	key := intern(p)
	s.byKey[key] = p
}

// Union merges other into s in place and returns s.
func (s *Set) Union(other *Set) *Set {
	if other == nil {
		return s
	}
	for _, p := range other.byKey {
		s.Add(p)
	}
	return s
}

// Len reports the number of distinct events in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byKey)
}

// Contains reports whether an event with p's parameters is present.
func (s *Set) Contains(p Possibility) bool {
	if s == nil || s.byKey == nil {
		return false
	}
	_, ok := s.byKey[intern(p)]
	return ok
}

// ToSlice returns the set's members as a slice in unspecified order.
func (s *Set) ToSlice() []Possibility {
	if s == nil {
		return nil
	}
	out := make([]Possibility, 0, len(s.byKey))
	for _, p := range s.byKey {
		out = append(out, p)
	}
	return out
}

// Clone returns a fresh, independent copy owned by the caller.
func (s *Set) Clone() *Set {
	out := NewSet()
	if s == nil {
		return out
	}
	for k, p := range s.byKey {
		out.byKey[k] = p
	}
	return out
}

// internTable hash-conses possibility keys so that repeated construction of
// semantically identical events (e.g. the same Text("*") possibility
// produced by many Text walkers) shares one canonical key string instead of
// allocating afresh each time. This mirrors spec.md §9's intent without
// requiring events to be pointer-identical: the canonical key is what set
// membership and Clone/Union compare on.
var internTable sync.Map // string -> string

func intern(p Possibility) string {
	k := p.key()
	if v, ok := internTable.Load(k); ok {
		return v.(string)
	}
	actual, _ := internTable.LoadOrStore(k, k)
	return actual.(string)
}
