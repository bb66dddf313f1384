package session

import (
	"iter"
	"maps"
	"slices"
)

// Attributes is an insertion-ordered mapping of session keys to values.
// The zero value is ready to use. Attributes is not safe for concurrent use.
type Attributes struct {
	keys   []string
	values map[string]any
}

// NewAttributes returns attributes populated from pairs in sorted key order.
func NewAttributes(pairs map[string]any) *Attributes {
	a := &Attributes{}
	for _, k := range slices.Sorted(maps.Keys(pairs)) {
		a.Set(k, pairs[k])
	}
	return a
}

// Get returns the value stored under key.
func (a *Attributes) Get(key string) (any, bool) {
	if a == nil || a.values == nil {
		return nil, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is present.
func (a *Attributes) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Set stores value under key. A new key is appended to the order; an existing
// key keeps its position.
func (a *Attributes) Set(key string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Delete removes key.
func (a *Attributes) Delete(key string) {
	if a == nil || a.values == nil {
		return
	}
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	a.keys = slices.DeleteFunc(a.keys, func(k string) bool { return k == key })
}

// Clear removes every key.
func (a *Attributes) Clear() {
	if a == nil {
		return
	}
	a.keys = nil
	a.values = nil
}

// Len returns the number of keys.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns the keys in insertion order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.keys)
}

// All iterates over key/value pairs in insertion order.
func (a *Attributes) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if a == nil {
			return
		}
		for _, k := range a.keys {
			if !yield(k, a.values[k]) {
				return
			}
		}
	}
}

// Merge copies every pair of other into a, in other's order.
func (a *Attributes) Merge(other *Attributes) {
	for k, v := range other.All() {
		a.Set(k, v)
	}
}

// Clone returns a copy with its own key order and map.
// Values are copied shallowly.
func (a *Attributes) Clone() *Attributes {
	c := &Attributes{}
	if a == nil || len(a.keys) == 0 {
		return c
	}
	c.keys = slices.Clone(a.keys)
	c.values = maps.Clone(a.values)
	return c
}

// Map returns the pairs as a plain map.
func (a *Attributes) Map() map[string]any {
	m := make(map[string]any, a.Len())
	for k, v := range a.All() {
		m[k] = v
	}
	return m
}
