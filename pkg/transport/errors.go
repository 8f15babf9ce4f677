package transport

import "errors"

// Transport errors.
var (
	// ErrClosed is returned when a transfer is submitted on a closed transport.
	ErrClosed = errors.New("transport: closed")

	// ErrShortWrite is returned when the device accepted fewer bytes than submitted.
	ErrShortWrite = errors.New("transport: short write")
)
