// Package middleware assembles the dispatch engine into the single handler
// registered with the conversational host: OnIncoming intercepts messages
// before a session's handler runs, OnOutgoing intercepts responses before
// delivery. Both return their text unchanged; routing is purely a side
// effect. The handler tolerates a host lacking optional capabilities.
package middleware

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	apperrors "session-router/internal/common/errors"
	"session-router/internal/common/logging"
	"session-router/internal/host"
	"session-router/internal/report"
	"session-router/internal/routing"
	"session-router/internal/stats"
)

var (
	// ErrAlreadyRunning is returned when starting a running handler
	ErrAlreadyRunning = errors.New("session router is already running")

	// ErrNotRunning is returned when stopping a stopped handler
	ErrNotRunning = errors.New("session router is not running")
)

// Handler is the routing middleware. It owns the stats recorder and both
// dispatchers, and exposes the reporting payloads built from them.
type Handler struct {
	config   routing.ConfigProvider
	incoming *routing.IncomingDispatcher
	outgoing *routing.OutgoingDispatcher
	recorder *stats.Recorder
	logger   logging.Logger

	mu      sync.Mutex
	running bool
}

// New creates a handler wired to the given configuration provider and host
// capabilities. Absent capability slots are tolerated: initialization never
// fails, and affected deliveries degrade to counted, logged failures.
func New(config routing.ConfigProvider, caps host.Capabilities) *Handler {
	logger := caps.LoggerOrDefault()
	recorder := stats.NewRecorder()

	return &Handler{
		config:   config,
		incoming: routing.NewIncomingDispatcher(config, caps.Injector, recorder, logger),
		outgoing: routing.NewOutgoingDispatcher(config, caps.Adapters, recorder, logger),
		recorder: recorder,
		logger:   logger,
	}
}

// Start marks the handler as running. Dispatch itself has no start
// precondition; the flag only feeds the status summary.
func (h *Handler) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running {
		return ErrAlreadyRunning
	}
	h.running = true
	h.logger.Info("session router started")
	return nil
}

// Stop marks the handler as stopped and resets the stats recorder.
// In-flight dispatches are not tracked or awaited.
func (h *Handler) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.running {
		return ErrNotRunning
	}
	h.running = false
	h.recorder.Reset()
	h.logger.Info("session router stopped")
	return nil
}

// Running reports whether the handler is started.
func (h *Handler) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// OnIncoming routes an incoming message and returns its text unchanged.
func (h *Handler) OnIncoming(msg routing.IncomingMessage) string {
	return h.incoming.Dispatch(msg)
}

// OnOutgoing routes an outgoing response and returns its text unchanged.
func (h *Handler) OnOutgoing(out routing.OutgoingMessage) string {
	return h.outgoing.Dispatch(out)
}

// Recorder exposes the stats context, mainly for shutdown and tests.
func (h *Handler) Recorder() *stats.Recorder {
	return h.recorder
}

// Status builds the status summary payload.
func (h *Handler) Status() report.Status {
	return report.BuildStatus(h.Running(), h.config.RouterConfig())
}

// Rules builds the rule listing payload.
func (h *Handler) Rules() report.RuleListing {
	return report.BuildRuleListing(h.config.RouterConfig())
}

// Statistics builds the counters payload from a fresh snapshot.
func (h *Handler) Statistics() report.Statistics {
	return report.BuildStatistics(h.recorder.GetStats(), time.Now())
}

// StatsJSON renders the statistics payload as JSON. This is the callable
// tool shape consumed by host tool registries. An unexpected fault while
// building the payload is caught at this boundary and reported as a generic
// internal-error payload rather than crashing the hosting process.
func (h *Handler) StatsJSON() (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("stats report failed", nil, logging.Any("panic", r))
			out = []byte(`{"error":"internal error"}`)
			err = nil
		}
	}()

	data, err := json.Marshal(h.Statistics())
	if err != nil {
		return nil, apperrors.InternalError("failed to encode statistics payload", err)
	}
	return data, nil
}
