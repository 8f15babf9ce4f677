package flash

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pion/logging"

	"github.com/backkem/vfs0097/pkg/crypto"
)

// Partition layout:
//
//	header:  2 reserved bytes || size:u32le || 2 reserved bytes
//	block:   id:u16le || bodySize:u16le || sha256(body) || body
//	...
//	id 0xffff terminates the stream.
//
// The header size field must equal the byte count following the header.
const (
	headerSize      = 8
	blockHeaderSize = 4 + crypto.SHA256LenBytes
)

// Parser walks a partition image and dispatches verified blocks.
type Parser struct {
	log logging.LeveledLogger
}

// NewParser creates a Parser. A nil loggerFactory selects the default
// factory.
func NewParser(loggerFactory logging.LoggerFactory) *Parser {
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &Parser{log: loggerFactory.NewLogger("flash")}
}

// Parse walks buf and dispatches each recognized, hash-verified block to
// handler, in stream order.
//
// A block whose SHA-256 does not match its stored hash is logged and
// skipped, as is a block with an unrecognized id: firmware images carry
// extra blocks this driver has no use for, and one corrupt block must not
// take down the rest of the partition. Parsing only fails outright when
// the image itself is malformed.
func (p *Parser) Parse(buf []byte, handler BlockHandler) error {
	if len(buf) < headerSize {
		return fmt.Errorf("%w: %d bytes, need at least %d for the header", ErrTruncated, len(buf), headerSize)
	}
	size := binary.LittleEndian.Uint32(buf[2:6])
	rest := buf[headerSize:]
	if int(size) != len(rest) {
		return fmt.Errorf("%w: header declares %d bytes, have %d", ErrPartitionSize, size, len(rest))
	}

	for len(rest) > 0 {
		if len(rest) < 4 {
			return fmt.Errorf("%w: %d stray bytes at end of stream", ErrTruncated, len(rest))
		}
		id := BlockID(binary.LittleEndian.Uint16(rest[0:2]))
		bodySize := int(binary.LittleEndian.Uint16(rest[2:4]))

		if id == blockTerminator {
			return nil
		}

		if len(rest) < blockHeaderSize+bodySize {
			return fmt.Errorf("%w: block %v declares %d body bytes, %d remain",
				ErrTruncated, id, bodySize, len(rest)-blockHeaderSize)
		}
		storedHash := rest[4:blockHeaderSize]
		body := rest[blockHeaderSize : blockHeaderSize+bodySize]
		rest = rest[blockHeaderSize+bodySize:]

		sum := crypto.SHA256(body)
		if !bytes.Equal(sum[:], storedHash) {
			p.log.Warnf("hash mismatch for block %v, skipping", id)
			continue
		}

		switch id {
		case BlockReserved0, BlockReserved1, BlockReserved2:
			// All zeros on provisioned devices.
		case BlockCertificate:
			handler.HandleCertificate(body)
		case BlockPrivateKey:
			handler.HandlePrivateKey(body)
		case BlockDeviceAuth:
			handler.HandleDeviceAuth(body)
		default:
			p.log.Warnf("unhandled block id %#04x (%d bytes)", uint16(id), bodySize)
		}
	}
	return nil
}
