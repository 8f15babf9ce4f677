// Package flash parses the sensor's flash key partition: a length-prefixed
// sequence of hash-protected blocks holding the device's factory
// provisioned identity (certificate, wrapped private key and
// device-authentication record).
package flash

import "fmt"

// BlockID tags a partition block.
type BlockID uint16

// Known block ids.
const (
	BlockReserved0 BlockID = 0
	BlockReserved1 BlockID = 1
	BlockReserved2 BlockID = 2

	// BlockCertificate holds the device certificate, opaque to the parser.
	BlockCertificate BlockID = 3

	// BlockPrivateKey holds the encrypted, integrity-tagged private key.
	BlockPrivateKey BlockID = 4

	// BlockDeviceAuth holds the signed key-exchange record.
	BlockDeviceAuth BlockID = 6

	// blockTerminator ends the block stream. No hash or body follows it.
	blockTerminator BlockID = 0xffff
)

// String returns the block id name.
func (id BlockID) String() string {
	switch id {
	case BlockReserved0, BlockReserved1, BlockReserved2:
		return fmt.Sprintf("Reserved(%d)", uint16(id))
	case BlockCertificate:
		return "Certificate"
	case BlockPrivateKey:
		return "PrivateKey"
	case BlockDeviceAuth:
		return "DeviceAuth"
	case blockTerminator:
		return "Terminator"
	default:
		return fmt.Sprintf("Unknown(%#04x)", uint16(id))
	}
}

// BlockHandler receives verified partition blocks. Handlers are invoked in
// stream order, once per block whose stored hash matched its body.
type BlockHandler interface {
	// HandleCertificate receives the body of a certificate block.
	HandleCertificate(body []byte)

	// HandlePrivateKey receives the body of a wrapped private-key block.
	HandlePrivateKey(body []byte)

	// HandleDeviceAuth receives the body of a device-authentication block.
	HandleDeviceAuth(body []byte)
}
