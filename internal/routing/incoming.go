package routing

import (
	"github.com/google/uuid"

	"session-router/internal/common/logging"
	"session-router/internal/host"
)

// IncomingDispatcher fans incoming messages out to other sessions according
// to the configured incoming routes.
//
// Routes are evaluated exhaustively in declared order: every matching route
// fires, not just the first. Targets within a route are processed
// sequentially so the route-hit ledger stays deterministic relative to rule
// order. A failed delivery is logged and counted, never propagated; the
// remaining targets and routes still run, and the original message text is
// always returned unchanged.
type IncomingDispatcher struct {
	config   ConfigProvider
	injector host.SessionInjector
	stats    StatsRecorder
	logger   logging.Logger
}

// NewIncomingDispatcher creates an incoming dispatcher. The injector may be
// nil when the host lacks the capability; every delivery then degrades to a
// counted, logged failure. A nil logger falls back to the global logger.
func NewIncomingDispatcher(config ConfigProvider, injector host.SessionInjector, recorder StatsRecorder, logger logging.Logger) *IncomingDispatcher {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &IncomingDispatcher{
		config:   config,
		injector: injector,
		stats:    recorder,
		logger:   logger,
	}
}

// Dispatch evaluates the current incoming routes against msg, fans matched
// messages out to target sessions, and returns the message text unchanged.
// The configuration is read fresh on every call.
func (d *IncomingDispatcher) Dispatch(msg IncomingMessage) string {
	dispatchID := uuid.NewString()
	cfg := d.config.RouterConfig()

	for _, rule := range cfg.Routes {
		if !Matches(rule, msg) {
			continue
		}

		for _, target := range rule.TargetSessions {
			// Blank targets and self-routing are always skipped.
			if target == "" || target == msg.Session {
				continue
			}

			if err := d.inject(target, msg.Message); err != nil {
				d.stats.IncrementErrors()
				d.logger.Error("session injection failed", err,
					logging.String("dispatch_id", dispatchID),
					logging.String("source", msg.Session),
					logging.String("target", target),
				)
				continue
			}

			d.stats.IncrementRouted()
			d.stats.RecordRouteHit(msg.Session, target)
			d.logger.Debug("message routed",
				logging.String("dispatch_id", dispatchID),
				logging.String("source", msg.Session),
				logging.String("target", target),
			)
		}
	}

	return msg.Message
}

func (d *IncomingDispatcher) inject(target, text string) error {
	if d.injector == nil {
		return ErrInjectorUnavailable
	}
	return d.injector.InjectIntoSession(target, text)
}
