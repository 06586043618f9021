// Package status holds the engine's runtime metrics
// Components cache metric pointers once and write atomics on the hot path
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric keys written by the engine and its collaborators
const (
	EngineTicks        = "engine.ticks"
	EngineOverruns     = "engine.overruns"
	EngineSpriteErrors = "engine.sprite_errors"
	EngineFrameMs      = "engine.frame_ms"
	EngineState        = "engine.state"
	EngineRunID        = "engine.run_id"
	AssetReads         = "asset.reads"
	AssetHits          = "asset.hits"
)

// Registry groups metrics by value type
type Registry struct {
	Counters *MetricMap[atomic.Int64]
	Gauges   *MetricMap[AtomicFloat]
	Labels   *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Counters: NewMetricMap[atomic.Int64](),
		Gauges:   NewMetricMap[AtomicFloat](),
		Labels:   NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of registered metrics of all types
func (r *Registry) TotalCount() int {
	return r.Counters.Count() + r.Gauges.Count() + r.Labels.Count()
}

// String renders every metric as sorted key=value pairs
func (r *Registry) String() string {
	var parts []string
	r.Counters.Range(func(key string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", key, v.Load()))
	})
	r.Gauges.Range(func(key string, v *AtomicFloat) {
		parts = append(parts, fmt.Sprintf("%s=%.2f", key, v.Get()))
	})
	r.Labels.Range(func(key string, v *AtomicString) {
		parts = append(parts, fmt.Sprintf("%s=%s", key, v.Load()))
	})
	return strings.Join(parts, " ")
}
