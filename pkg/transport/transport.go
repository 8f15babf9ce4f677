// Package transport defines the raw device transport the command channel
// runs on, plus an in-memory implementation used for testing and demos.
//
// The physical transport for the VFS0097 is a pair of USB bulk endpoints.
// That layer is deliberately outside this module: implementations submit a
// write, submit a read, and report completion, nothing more. Retry policy,
// if any, belongs to the caller.
package transport

import "context"

// Transport carries raw transfers to and from the sensor.
//
// SubmitWrite submits an outgoing transfer. A short write is always an
// error: either all of p is accepted by the device or the transfer failed.
//
// SubmitRead submits an incoming transfer into p and returns the number of
// bytes actually received. A short read is not an error; response lengths
// are not all known a priori, so the actual length is reported back.
//
// Both calls honor cancellation and deadlines on ctx. Callers serialize:
// at most one transfer per direction may be in flight at a time.
type Transport interface {
	SubmitWrite(ctx context.Context, p []byte) error
	SubmitRead(ctx context.Context, p []byte) (int, error)
}
