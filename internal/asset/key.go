// Package asset defines the opaque, order-able asset identity shared by
// every other package in the module.
package asset

import "sort"

// Key is an opaque identity for an asset. Two keys are equal iff their
// canonical string forms are equal; Key is comparable and map-keyable
// directly, so callers rarely need String() except to cross the cursor
// boundary (see internal/cursor).
type Key struct {
	name string
}

// New builds a Key from its canonical name. The name is used verbatim as
// the cursor map key, so callers are responsible for using a stable,
// unique identifier (e.g. a slash-joined path).
func New(name string) Key {
	return Key{name: name}
}

// String returns the canonical form used as the cursor map key.
func (k Key) String() string {
	return k.name
}

// Less reports whether k sorts before other, by canonical string. Used to
// break topological-order ties deterministically.
func (k Key) Less(other Key) bool {
	return k.name < other.name
}

// Set is an unordered collection of distinct Keys.
type Set map[Key]struct{}

// NewSet builds a Set from the given keys, de-duplicating.
func NewSet(keys ...Key) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Contains reports whether k is a member of s.
func (s Set) Contains(k Key) bool {
	_, ok := s[k]
	return ok
}

// Add inserts k into s.
func (s Set) Add(k Key) {
	s[k] = struct{}{}
}

// Sorted returns the members of s ordered by canonical string, so that
// iteration order is deterministic wherever a Set must be flattened.
func (s Set) Sorted() []Key {
	out := make([]Key, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
