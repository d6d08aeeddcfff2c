package container

import "sort"

// FlatMap is a sorted-slice associative container: O(log n) lookup via
// binary search, O(n) worst-case insert, but dense and cache-friendly
// for small maps (up to a few thousand entries).
type FlatMap[K comparable, V any] struct {
	keys []K
	vals []V
	less func(a, b K) bool
}

// NewFlatMap returns an empty FlatMap ordered by less.
func NewFlatMap[K comparable, V any](less func(a, b K) bool) *FlatMap[K, V] {
	return &FlatMap[K, V]{less: less}
}

func (m *FlatMap[K, V]) search(k K) int {
	return sort.Search(len(m.keys), func(i int) bool { return !m.less(m.keys[i], k) })
}

// Get returns the value for k and whether it was present.
func (m *FlatMap[K, V]) Get(k K) (V, bool) {
	i := m.search(k)
	if i < len(m.keys) && m.keys[i] == k {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

// Set inserts or overwrites the value for k.
func (m *FlatMap[K, V]) Set(k K, v V) {
	i := m.search(k)
	if i < len(m.keys) && m.keys[i] == k {
		m.vals[i] = v
		return
	}
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
	copy(m.keys[i+1:], m.keys[i:len(m.keys)-1])
	copy(m.vals[i+1:], m.vals[i:len(m.vals)-1])
	m.keys[i] = k
	m.vals[i] = v
}

// Len returns the number of entries.
func (m *FlatMap[K, V]) Len() int { return len(m.keys) }

// Each calls f for every entry in key order.
func (m *FlatMap[K, V]) Each(f func(k K, v V)) {
	for i := range m.keys {
		f(m.keys[i], m.vals[i])
	}
}
