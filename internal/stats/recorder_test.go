package stats

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteKey(t *testing.T) {
	assert.Equal(t, "support->billing", RouteKey("support", "billing"))
}

func TestRecorder_Increments(t *testing.T) {
	r := NewRecorder()

	r.IncrementRouted()
	r.IncrementRouted()
	r.IncrementOutgoingRouted()
	r.IncrementErrors()
	r.RecordRouteHit("a", "b")
	r.RecordRouteHit("a", "b")
	r.RecordRouteHit("a", "c")

	snap := r.GetStats()
	assert.Equal(t, uint64(2), snap.MessagesRouted)
	assert.Equal(t, uint64(1), snap.OutgoingRouted)
	assert.Equal(t, uint64(1), snap.Errors)
	assert.Equal(t, uint64(2), snap.RouteHits["a->b"])
	assert.Equal(t, uint64(1), snap.RouteHits["a->c"])
}

func TestRecorder_SnapshotIsolation(t *testing.T) {
	r := NewRecorder()
	r.RecordRouteHit("a", "b")

	snap := r.GetStats()
	snap.RouteHits["a->b"] = 999
	snap.RouteHits["injected"] = 1
	snap.MessagesRouted = 42

	fresh := r.GetStats()
	assert.Equal(t, uint64(1), fresh.RouteHits["a->b"], "mutating a snapshot must not affect internal state")
	assert.NotContains(t, fresh.RouteHits, "injected")
	assert.Equal(t, uint64(0), fresh.MessagesRouted)
}

func TestRecorder_Reset(t *testing.T) {
	r := NewRecorder()
	before := r.GetStats().StartedAt

	r.IncrementRouted()
	r.IncrementOutgoingRouted()
	r.IncrementErrors()
	r.RecordRouteHit("a", "b")

	r.Reset()

	snap := r.GetStats()
	assert.Zero(t, snap.MessagesRouted)
	assert.Zero(t, snap.OutgoingRouted)
	assert.Zero(t, snap.Errors)
	assert.Empty(t, snap.RouteHits)
	assert.False(t, snap.StartedAt.Before(before), "Reset must set a new startedAt >= the previous one")
}

func TestRecorder_ConcurrentUpdates(t *testing.T) {
	r := NewRecorder()

	const goroutines = 16
	const perGoroutine = 200

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				r.IncrementRouted()
				r.IncrementOutgoingRouted()
				r.IncrementErrors()
				r.RecordRouteHit("a", "b")
				_ = r.GetStats()
			}
		}()
	}
	wg.Wait()

	snap := r.GetStats()
	require.Equal(t, uint64(goroutines*perGoroutine), snap.MessagesRouted, "no increments may be lost")
	require.Equal(t, uint64(goroutines*perGoroutine), snap.OutgoingRouted)
	require.Equal(t, uint64(goroutines*perGoroutine), snap.Errors)
	require.Equal(t, uint64(goroutines*perGoroutine), snap.RouteHits["a->b"])
}
