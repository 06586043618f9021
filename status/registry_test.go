package status

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMapGetReturnsStablePointer(t *testing.T) {
	r := NewRegistry()

	a := r.Counters.Get(EngineTicks)
	b := r.Counters.Get(EngineTicks)
	assert.Same(t, a, b)

	a.Add(3)
	assert.Equal(t, int64(3), b.Load())
	assert.True(t, r.Counters.Has(EngineTicks))
	assert.False(t, r.Counters.Has(EngineOverruns))
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get(EngineFrameMs).Set(1.5)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, m.Count())
	assert.Equal(t, 1.5, m.Get(EngineFrameMs).Get())
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())

	s.Store(strings.Repeat("x", MaxStringLen+10))
	assert.Len(t, s.Load(), MaxStringLen)
}

func TestRegistryString(t *testing.T) {
	r := NewRegistry()
	r.Counters.Get(EngineTicks).Store(4)
	r.Counters.Get(AssetReads).Store(1)
	r.Gauges.Get(EngineFrameMs).Set(16.666)
	r.Labels.Get(EngineState).Store("Exit")

	assert.Equal(t, "asset.reads=1 engine.ticks=4 engine.frame_ms=16.67 engine.state=Exit", r.String())
	assert.Equal(t, 4, r.TotalCount())
}
