// Package channel implements the sensor command channel: one opaque
// request buffer out, one response buffer back, strictly serialized.
package channel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pion/logging"

	"github.com/backkem/vfs0097/pkg/transport"
)

const (
	// BufferSize is the size of the reusable response buffer. Sensor
	// responses never exceed this bulk-transfer ceiling.
	BufferSize = 0x2000

	// DefaultExchangeTimeout bounds each write+read round trip. A timeout
	// is reported as a transport failure and is not distinguished from
	// other I/O errors.
	DefaultExchangeTimeout = 5 * time.Second
)

// Config configures a Channel.
type Config struct {
	// Transport carries the raw transfers. Required.
	Transport transport.Transport

	// Timeout overrides DefaultExchangeTimeout when non-zero.
	Timeout time.Duration

	// LoggerFactory is the factory for creating loggers.
	// If nil, the default factory is used.
	LoggerFactory logging.LoggerFactory
}

// Channel exchanges one command for one response over a Transport.
//
// The response slice returned by Exchange aliases an internal buffer that
// the next exchange overwrites. Callers that need the bytes beyond that
// point must copy them.
type Channel struct {
	transport transport.Transport
	timeout   time.Duration
	log       logging.LeveledLogger

	mu       sync.Mutex
	inFlight bool
	buf      []byte
}

// New creates a Channel over the given transport.
func New(config Config) (*Channel, error) {
	if config.Transport == nil {
		return nil, ErrNoTransport
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultExchangeTimeout
	}

	loggerFactory := config.LoggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	return &Channel{
		transport: config.Transport,
		timeout:   timeout,
		log:       loggerFactory.NewLogger("channel"),
		buf:       make([]byte, BufferSize),
	}, nil
}

// Exchange writes request and waits for the device's single response.
//
// Exactly one exchange may be outstanding: a concurrent call returns
// ErrExchangeInFlight rather than queueing behind the first. A short write
// fails the exchange; a short read does not, the response is simply the
// bytes actually received. No retries are performed at this layer.
func (c *Channel) Exchange(ctx context.Context, request []byte) ([]byte, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrExchangeInFlight
	}
	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.transport.SubmitWrite(ctx, request); err != nil {
		c.log.Errorf("write transfer: %v", err)
		return nil, fmt.Errorf("channel: write: %w", err)
	}

	n, err := c.transport.SubmitRead(ctx, c.buf)
	if err != nil {
		c.log.Errorf("read transfer: %v", err)
		return nil, fmt.Errorf("channel: read: %w", err)
	}

	return c.buf[:n], nil
}
