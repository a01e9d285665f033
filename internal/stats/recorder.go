// Package stats holds the routing counters and the route-hit ledger shared
// by both dispatchers. A Recorder is an explicit stats context owned by the
// dispatch subsystem, not an ambient singleton: each test constructs its
// own, and the process resets its recorder on shutdown.
package stats

import (
	"sync"
	"time"
)

// RouteKey builds the ledger key for a source/target pair.
func RouteKey(source, target string) string {
	return source + "->" + target
}

// Recorder tracks routed-message counters and per-route hit counts. All
// methods are safe for concurrent use from multiple in-flight dispatches.
type Recorder struct {
	mu             sync.Mutex
	routed         uint64
	outgoingRouted uint64
	errors         uint64
	routeHits      map[string]uint64
	startedAt      time.Time
}

// Snapshot is an isolated copy of the recorder's state. Mutating a snapshot
// never affects the recorder.
type Snapshot struct {
	MessagesRouted uint64
	OutgoingRouted uint64
	Errors         uint64
	RouteHits      map[string]uint64
	StartedAt      time.Time
}

// NewRecorder creates a recorder with zeroed counters and StartedAt set to
// the current time.
func NewRecorder() *Recorder {
	return &Recorder{
		routeHits: make(map[string]uint64),
		startedAt: time.Now(),
	}
}

// IncrementRouted counts one successful incoming fan-out delivery.
func (r *Recorder) IncrementRouted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routed++
}

// IncrementOutgoingRouted counts one successful outgoing channel send.
func (r *Recorder) IncrementOutgoingRouted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outgoingRouted++
}

// IncrementErrors counts one failed delivery attempt.
func (r *Recorder) IncrementErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors++
}

// RecordRouteHit increments the ledger entry for a source/target pair,
// creating it at 1 if absent.
func (r *Recorder) RecordRouteHit(source, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routeHits[RouteKey(source, target)]++
}

// GetStats returns a deep, independent copy of all counters and the
// route-hit ledger.
func (r *Recorder) GetStats() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	hits := make(map[string]uint64, len(r.routeHits))
	for k, v := range r.routeHits {
		hits[k] = v
	}

	return Snapshot{
		MessagesRouted: r.routed,
		OutgoingRouted: r.outgoingRouted,
		Errors:         r.errors,
		RouteHits:      hits,
		StartedAt:      r.startedAt,
	}
}

// Reset zeroes all counters, clears the ledger, and refreshes StartedAt.
// Callable at any time; used at shutdown and for test isolation.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routed = 0
	r.outgoingRouted = 0
	r.errors = 0
	r.routeHits = make(map[string]uint64)
	r.startedAt = time.Now()
}
