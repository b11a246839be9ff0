package status

import (
	"maps"
	"math"
	"slices"
	"sync"
	"sync/atomic"
)

// MaxLabelLen bounds a Label; a match UUID is the longest value stored
const MaxLabelLen = 36

// Gauge is a float64 metric stored as its bit pattern; the zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

func (g *Gauge) Load() float64 { return math.Float64frombits(g.bits.Load()) }

// Label is a short string metric such as the match state; the zero value reads ""
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, cut to MaxLabelLen bytes
func (l *Label) Store(v string) {
	if len(v) > MaxLabelLen {
		v = v[:MaxLabelLen]
	}
	l.ptr.Store(&v)
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// MetricMap hands out one metric of type T per key
// Setup code resolves keys once and keeps the pointer; the tick never locks
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, registering it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

func (m *MetricMap[T]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

func (m *MetricMap[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Range visits the metrics in key order
func (m *MetricMap[T]) Range(fn func(key string, v *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, k := range slices.Sorted(maps.Keys(m.items)) {
		fn(k, m.items[k])
	}
}
