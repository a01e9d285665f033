package routing

import "errors"

var (
	// ErrInjectorUnavailable is the delivery failure recorded when the host
	// exposes no session-injection capability
	ErrInjectorUnavailable = errors.New("session injection capability unavailable")

	// ErrAdaptersUnavailable is the delivery failure recorded when the host
	// exposes no channel adapter registry
	ErrAdaptersUnavailable = errors.New("channel adapter registry unavailable")
)
