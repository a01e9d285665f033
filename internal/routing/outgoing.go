package routing

import (
	"github.com/google/uuid"

	"session-router/internal/common/logging"
	"session-router/internal/host"
)

// OutgoingDispatcher fans a session's responses out to the channel adapters
// bound to that session, according to the configured outgoing routes.
//
// Same execution discipline as the incoming side: exhaustive evaluation in
// declared order, sequential sends, per-send failure isolation, and the
// response text always returned unchanged.
type OutgoingDispatcher struct {
	config   ConfigProvider
	adapters host.AdapterRegistry
	stats    StatsRecorder
	logger   logging.Logger
}

// NewOutgoingDispatcher creates an outgoing dispatcher. The adapter
// registry may be nil when the host lacks the capability.
func NewOutgoingDispatcher(config ConfigProvider, adapters host.AdapterRegistry, recorder StatsRecorder, logger logging.Logger) *OutgoingDispatcher {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &OutgoingDispatcher{
		config:   config,
		adapters: adapters,
		stats:    recorder,
		logger:   logger,
	}
}

// Dispatch evaluates the current outgoing routes against out, sends the
// response through every adapter satisfying a matched route's channel
// constraints, and returns the response text unchanged.
func (d *OutgoingDispatcher) Dispatch(out OutgoingMessage) string {
	dispatchID := uuid.NewString()
	cfg := d.config.RouterConfig()

	for _, rule := range cfg.OutgoingRoutes {
		if rule.SourceSession != "" && rule.SourceSession != out.Session {
			continue
		}

		if d.adapters == nil {
			d.stats.IncrementErrors()
			d.logger.Error("channel send failed", ErrAdaptersUnavailable,
				logging.String("dispatch_id", dispatchID),
				logging.String("source", out.Session),
			)
			continue
		}

		for _, adapter := range d.adapters.AdaptersForSession(out.Session) {
			ch := adapter.Channel()
			if !matchesAdapter(rule, ch.Type, ch.ID) {
				continue
			}

			if err := adapter.Send(out.Response); err != nil {
				d.stats.IncrementErrors()
				d.logger.Error("channel send failed", err,
					logging.String("dispatch_id", dispatchID),
					logging.String("source", out.Session),
					logging.String("channel_type", ch.Type),
					logging.String("channel_id", ch.ID),
				)
				continue
			}

			d.stats.IncrementOutgoingRouted()
			d.logger.Debug("response routed to channel",
				logging.String("dispatch_id", dispatchID),
				logging.String("source", out.Session),
				logging.String("channel_type", ch.Type),
				logging.String("channel_id", ch.ID),
			)
		}
	}

	return out.Response
}
