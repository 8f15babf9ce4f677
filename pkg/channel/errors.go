package channel

import "errors"

// Channel errors.
var (
	// ErrNoTransport is returned when no transport is configured.
	ErrNoTransport = errors.New("channel: no transport configured")

	// ErrExchangeInFlight is returned when an exchange is started while
	// another is outstanding. Callers must serialize exchanges.
	ErrExchangeInFlight = errors.New("channel: exchange already in flight")
)
