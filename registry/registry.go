// Package registry provides a small generic lookup table for pluggable
// components (parsers, analyses) keyed by a caller-supplied identity
// function, with an optional filter hook to mark entries as disabled.
package registry

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned by Lookup for a key with nothing registered
// under it, distinguishing "no such plugin" from "plugin disabled" (§6).
var ErrUnknownKey = errors.New("registry: unknown key")

// Registry maps keys to values, re-registration of the identical value
// under the same key is a no-op and registering a different value under
// an already-used key is an error.
type Registry[K comparable, V comparable] struct {
	items  map[K]V
	keyOf  func(V) K
	filter func(V) (bool, string)
}

// New creates a Registry using keyOf to derive a lookup key from each
// registered value. All entries are usable until SetFilter narrows that.
func New[K comparable, V comparable](keyOf func(V) K) *Registry[K, V] {
	return &Registry[K, V]{
		items: make(map[K]V),
		keyOf: keyOf,
		filter: func(V) (bool, string) {
			return true, ""
		},
	}
}

// SetFilter installs a predicate deciding whether a registered value is
// "usable": Find and All only return values for which it reports true.
// The returned string is a human-readable reason surfaced by Disabled.
func (r *Registry[K, V]) SetFilter(filter func(V) (bool, string)) {
	r.filter = filter
}

// Register adds item under its derived key. Registering the exact same
// value again under the same key is harmless; registering a different
// value under a key already in use returns an error.
func (r *Registry[K, V]) Register(item V) error {
	var zeroKey K
	key := r.keyOf(item)
	if key == zeroKey {
		return fmt.Errorf("registry: %v is not a valid key", key)
	}

	if existing, ok := r.items[key]; ok {
		if existing != item {
			return fmt.Errorf("registry: cannot register under key %v, a different value is already registered", key)
		}
		return nil
	}

	r.items[key] = item
	return nil
}

// Find returns the value registered under key, or false if there is none
// or the filter marks it unusable.
func (r *Registry[K, V]) Find(key K) (V, bool) {
	item, ok := r.items[key]
	if !ok {
		return item, false
	}
	usable, _ := r.filter(item)
	if !usable {
		var zero V
		return zero, false
	}
	return item, true
}

// Lookup is like Find but ignores the usability filter and returns
// ErrUnknownKey when key has nothing registered under it at all. Callers
// that need to distinguish "no such plugin" from "disabled plugin" (§6)
// should pair this with Disabled.
func (r *Registry[K, V]) Lookup(key K) (V, error) {
	item, ok := r.items[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrUnknownKey, key)
	}
	return item, nil
}

// Disabled reports whether key is registered but filtered out, along
// with the filter's stated reason.
func (r *Registry[K, V]) Disabled(key K) (reason string, disabled bool) {
	item, ok := r.items[key]
	if !ok {
		return "", false
	}
	usable, reason := r.filter(item)
	return reason, !usable
}

// All returns every usable registered value, in no particular order.
func (r *Registry[K, V]) All() []V {
	out := make([]V, 0, len(r.items))
	for _, item := range r.items {
		if usable, _ := r.filter(item); usable {
			out = append(out, item)
		}
	}
	return out
}
