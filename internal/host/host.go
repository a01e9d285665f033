// Package host defines the capability interfaces the session router consumes
// from its surrounding conversational host. The router never owns these
// collaborators; it receives them at construction time and treats every slot
// as optional. An absent capability is a normal configuration, not an error:
// dispatch degrades to a logged, counted delivery failure instead of crashing.
package host

import (
	"session-router/internal/common/logging"
)

// ChannelInfo identifies a communication surface bound to a session.
type ChannelInfo struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ChannelAdapter is a live connection to a channel that can deliver text.
type ChannelAdapter interface {
	// Channel returns the identity of the channel this adapter serves.
	Channel() ChannelInfo

	// Send delivers text to the channel. A failed send returns an error;
	// the router counts and logs it without retrying.
	Send(text string) error
}

// SessionInjector injects a message into another session's conversation,
// as if it had arrived there directly.
type SessionInjector interface {
	InjectIntoSession(targetSession, messageText string) error
}

// AdapterRegistry reports the channel adapters currently bound to a session.
type AdapterRegistry interface {
	AdaptersForSession(session string) []ChannelAdapter
}

// Capabilities is the set of host collaborators handed to the router.
// Every slot may be nil; callers check presence explicitly before use.
type Capabilities struct {
	// Injector delivers routed messages into target sessions. Required for
	// incoming fan-out to succeed; nil turns every delivery into a counted
	// failure.
	Injector SessionInjector

	// Adapters resolves the channel adapters bound to a session. Required
	// for outgoing fan-out to succeed.
	Adapters AdapterRegistry

	// Logger receives best-effort diagnostics. When nil the router falls
	// back to the process-wide logger.
	Logger logging.Logger
}

// LoggerOrDefault returns the capability logger, or the global logger when
// the host did not provide one.
func (c Capabilities) LoggerOrDefault() logging.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.GetGlobalLogger()
}
