package transport

import (
	"context"
	"net"
	"sync"
)

// maxTransferSize bounds a single incoming transfer on an Endpoint.
const maxTransferSize = 0x2000

// Endpoint adapts a message-oriented net.Conn to the Transport interface.
// It is used with Pipe to stand in for the USB bulk endpoints in tests and
// demos.
type Endpoint struct {
	conn net.Conn

	mu     sync.Mutex
	closed bool
}

// NewEndpoint wraps conn as a Transport.
func NewEndpoint(conn net.Conn) *Endpoint {
	return &Endpoint{conn: conn}
}

// SubmitWrite writes p as a single transfer.
func (e *Endpoint) SubmitWrite(ctx context.Context, p []byte) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.mu.Unlock()

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := e.conn.Write(p)
		done <- result{n, err}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-done:
		if res.err != nil {
			return res.err
		}
		if res.n < len(p) {
			return ErrShortWrite
		}
		return nil
	}
}

// SubmitRead reads a single transfer into p, returning the number of bytes
// received. The transfer is staged through a private buffer so that a
// response arriving after ctx expires cannot scribble on p.
func (e *Endpoint) SubmitRead(ctx context.Context, p []byte) (int, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return 0, ErrClosed
	}
	e.mu.Unlock()

	type result struct {
		buf []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		buf := make([]byte, maxTransferSize)
		n, err := e.conn.Read(buf)
		done <- result{buf[:n], err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return 0, res.err
		}
		return copy(p, res.buf), nil
	}
}

// Close marks the endpoint closed and closes the underlying connection.
// In-flight transfers fail with the connection's close error.
func (e *Endpoint) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.conn.Close()
}

// Verify Endpoint implements Transport.
var _ Transport = (*Endpoint)(nil)
