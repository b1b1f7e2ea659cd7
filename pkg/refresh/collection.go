/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package refresh

import (
	"iter"

	"k8s.io/utils/ptr"
)

// Map is a read-only view over a mapping from K to Val. It is built once by
// a Processor and never mutated afterwards, so it is safe to share across
// concurrent readers without locks.
type Map[K comparable, Val any] struct {
	entries map[K]Val
}

// NewMap builds a Map view from a plain Go map. The caller must not mutate
// entries after this call; ownership passes to the Map.
func NewMap[K comparable, Val any](entries map[K]Val) *Map[K, Val] {
	if entries == nil {
		entries = map[K]Val{}
	}

	return &Map[K, Val]{entries: entries}
}

// Get returns the value for key and whether it was present.
func (m *Map[K, Val]) Get(key K) (Val, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// GetPtr returns an Option<&Val>-style pointer to the value for key, or nil
// if key is absent, using k8s.io/utils/ptr the way the rest of this stack
// plumbs optional values by pointer instead of a (value, bool) pair.
func (m *Map[K, Val]) GetPtr(key K) *Val {
	v, ok := m.entries[key]
	if !ok {
		return nil
	}

	return ptr.To(v)
}

// Len returns the number of entries.
func (m *Map[K, Val]) Len() int {
	return len(m.entries)
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, Val]) IsEmpty() bool {
	return len(m.entries) == 0
}

// All iterates over every key/value pair. Order is unspecified.
func (m *Map[K, Val]) All() iter.Seq2[K, Val] {
	return func(yield func(K, Val) bool) {
		for k, v := range m.entries {
			if !yield(k, v) {
				return
			}
		}
	}
}

// Set is a read-only view over a set of T.
type Set[T comparable] struct {
	members map[T]struct{}
}

// NewSet builds a Set view from a slice of members.
func NewSet[T comparable](members []T) *Set[T] {
	s := &Set[T]{members: make(map[T]struct{}, len(members))}

	for _, m := range members {
		s.members[m] = struct{}{}
	}

	return s
}

// Contains reports whether item is a member of the set.
func (s *Set[T]) Contains(item T) bool {
	_, ok := s.members[item]
	return ok
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return len(s.members)
}

// IsEmpty reports whether the set has no members.
func (s *Set[T]) IsEmpty() bool {
	return len(s.members) == 0
}

// All iterates over every member. Order is unspecified.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for m := range s.members {
			if !yield(m) {
				return
			}
		}
	}
}

// Object is a read-only view over a single opaque value of type T. The
// library provides only whole-value access; any field-level accessors are
// the caller's responsibility.
type Object[T any] struct {
	value *T
}

// NewObject builds an Object view wrapping value.
func NewObject[T any](value *T) *Object[T] {
	return &Object[T]{value: value}
}

// Value returns the wrapped value.
func (o *Object[T]) Value() *T {
	return o.value
}
