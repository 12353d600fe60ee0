package glint

import (
	"maps"
	"slices"
)

// State is application state that can be read by name. Implementations
// return values built through f so they expire with the frame, and must
// never return Deferred.
type State interface {
	Get(f *Frame, key string) (ValueRef, bool)
}

// Collection is application state that can be read by position.
type Collection interface {
	Index(f *Frame, i int) ValueRef
	Len() int
}

// StateFunc adapts a function to State.
type StateFunc func(f *Frame, key string) (ValueRef, bool)

// Get implements State.
func (fn StateFunc) Get(f *Frame, key string) (ValueRef, bool) {
	return fn(f, key)
}

// Map is keyed state. Values are converted with ValueOf when read.
type Map[T any] struct {
	values map[string]T
}

// NewMap creates an empty map.
func NewMap[T any]() *Map[T] {
	return &Map[T]{values: make(map[string]T)}
}

// MapOf wraps values without copying them.
func MapOf[T any](values map[string]T) *Map[T] {
	if values == nil {
		values = make(map[string]T)
	}
	return &Map[T]{values: values}
}

// Set stores v under key.
func (m *Map[T]) Set(key string, v T) *Map[T] {
	m.values[key] = v
	return m
}

// Delete removes key.
func (m *Map[T]) Delete(key string) *Map[T] {
	delete(m.values, key)
	return m
}

// Value returns the stored host value.
func (m *Map[T]) Value(key string) (T, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of keys.
func (m *Map[T]) Len() int {
	return len(m.values)
}

// Keys returns the keys in sorted order.
func (m *Map[T]) Keys() []string {
	return slices.Sorted(maps.Keys(m.values))
}

// Get implements State.
func (m *Map[T]) Get(f *Frame, key string) (ValueRef, bool) {
	v, ok := m.values[key]
	if !ok {
		return ValueRef{}, false
	}
	return ValueOf(f, v), true
}

// Scope binds one name over a parent state, as a loop variable does. Other
// names are read from the parent.
type Scope struct {
	parent State
	name   string
	value  ValueRef
}

// NewScope binds name to value over parent.
func NewScope(parent State, name string, value ValueRef) *Scope {
	return &Scope{parent: parent, name: name, value: value}
}

// Get implements State.
func (s *Scope) Get(f *Frame, key string) (ValueRef, bool) {
	if key == s.name {
		return s.value, true
	}
	if s.parent == nil {
		return ValueRef{}, false
	}
	return s.parent.Get(f, key)
}
