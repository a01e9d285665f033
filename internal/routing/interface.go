// Package routing implements the rule-matching and fan-out dispatch engine
// for the session router. Declaratively configured routes describe which
// incoming messages and outgoing responses are copied to additional sessions
// or channel adapters; the dispatchers evaluate every route in declared
// order and fan matched messages out with per-target failure isolation.
package routing

import (
	"session-router/internal/stats"
)

// ChannelRef identifies the channel a message arrived on.
type ChannelRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// IncomingRoute forwards messages arriving at a session to other sessions.
// Every field is optional; an absent field is a wildcard. A route with all
// fields absent matches any message.
type IncomingRoute struct {
	// SourceSession restricts the route to messages arriving at this
	// session. Empty matches any session.
	SourceSession string `json:"sourceSession,omitempty"`

	// TargetSessions lists the sessions a matched message is injected
	// into, in order. Blank entries and the source session itself are
	// skipped.
	TargetSessions []string `json:"targetSessions,omitempty"`

	// ChannelType restricts the route to messages from channels of this
	// type. A message with no channel info never matches a set value.
	ChannelType string `json:"channelType,omitempty"`

	// ChannelID restricts the route to messages from this specific
	// channel. Same absent-channel semantics as ChannelType.
	ChannelID string `json:"channelId,omitempty"`
}

// OutgoingRoute forwards a session's responses to the channel adapters
// bound to that session. Absent fields are wildcards.
type OutgoingRoute struct {
	SourceSession string `json:"sourceSession,omitempty"`
	ChannelType   string `json:"channelType,omitempty"`
	ChannelID     string `json:"channelId,omitempty"`
}

// RouterConfig is the declarative rule set, ordered as configured.
// Both lists may be absent; an absent list is an empty rule set.
type RouterConfig struct {
	Routes         []IncomingRoute `json:"routes,omitempty"`
	OutgoingRoutes []OutgoingRoute `json:"outgoingRoutes,omitempty"`
}

// IncomingMessage is a message arriving at a session, before its handler
// runs. Channel is nil when the host did not report channel info.
type IncomingMessage struct {
	Session string      `json:"session"`
	Channel *ChannelRef `json:"channel,omitempty"`
	Message string      `json:"message"`
}

// OutgoingMessage is a session's response before delivery.
type OutgoingMessage struct {
	Session  string `json:"session"`
	Response string `json:"response"`
}

// ConfigProvider supplies the current rule set. Dispatchers pull a fresh
// config on every call so edits take effect on the next message without a
// restart; implementations must therefore be cheap and non-blocking.
type ConfigProvider interface {
	RouterConfig() RouterConfig
}

// StatsRecorder is the counter surface the dispatchers write to. Satisfied
// by *stats.Recorder; narrowed here so tests can observe recording directly.
type StatsRecorder interface {
	IncrementRouted()
	IncrementOutgoingRouted()
	IncrementErrors()
	RecordRouteHit(source, target string)
}

// Compile-time check that the real recorder satisfies the dispatch surface.
var _ StatsRecorder = (*stats.Recorder)(nil)
