package status

import (
	"slices"
	"sync"
	"sync/atomic"
)

// MetricMap is a named set of metric cells of type T
// Cells are created on first lookup and never removed, so callers may cache the pointer
type MetricMap[T any] struct {
	cells sync.Map
	count atomic.Int64
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{}
}

// Get returns the cell for key, allocating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	if cell, ok := m.cells.Load(key); ok {
		return cell.(*T)
	}
	cell, loaded := m.cells.LoadOrStore(key, new(T))
	if !loaded {
		m.count.Add(1)
	}
	return cell.(*T)
}

// Has reports whether key was registered
func (m *MetricMap[T]) Has(key string) bool {
	_, ok := m.cells.Load(key)
	return ok
}

// Range calls fn for each cell in key order
func (m *MetricMap[T]) Range(fn func(key string, cell *T)) {
	var keys []string
	m.cells.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	slices.Sort(keys)

	for _, k := range keys {
		if cell, ok := m.cells.Load(k); ok {
			fn(k, cell.(*T))
		}
	}
}

// Count returns the number of cells
func (m *MetricMap[T]) Count() int {
	return int(m.count.Load())
}
