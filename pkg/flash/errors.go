package flash

import "errors"

// Partition errors. Both are fatal to parsing: they mean the image itself
// is malformed, as opposed to a single corrupt block, which is skipped.
var (
	// ErrTruncated is returned when the buffer ends inside a header or block.
	ErrTruncated = errors.New("flash: truncated partition")

	// ErrPartitionSize is returned when the header size field disagrees
	// with the actual byte count.
	ErrPartitionSize = errors.New("flash: partition size mismatch")
)
