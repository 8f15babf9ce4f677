package keystore

// Derivation constants fixed by the provisioning protocol. These are
// static configuration shipped with the firmware, not secrets: host and
// sensor must feed identical bytes into the PRF for the derived keys to
// line up. Loaded once, never mutated.
var (
	preKey = []byte{
		0x71, 0x7c, 0xd7, 0x2d, 0x09, 0x62, 0xbc, 0x4a,
		0x28, 0x46, 0x13, 0x8d, 0xbb, 0x2c, 0x24, 0x19,
		0x25, 0x12, 0xa7, 0x64, 0x07, 0x06, 0x5f, 0x38,
		0x38, 0x46, 0x13, 0x9d, 0x4b, 0xec, 0x20, 0x33,
	}

	prfLabel     = []byte("GWK")
	prfLabelSign = []byte("GWK_SIGN")

	signKey = []byte{
		0x5c, 0x8d, 0x9a, 0x0f, 0x3b, 0x62, 0xe1, 0x74,
		0xc5, 0xa8, 0x9d, 0xf0, 0x02, 0xe6, 0x4b, 0x19,
		0x77, 0x3a, 0xde, 0xe0, 0x4c, 0x2f, 0x85, 0x1b,
		0xb0, 0x64, 0x3c, 0x5a, 0x9d, 0x17, 0xef, 0x28,
	}
)

// Trust anchor: the vendor's P-256 public key, big-endian affine
// coordinates. The key-exchange record in a genuine device's flash is
// signed by the matching private key at the factory.
var (
	trustAnchorX = []byte{
		0xc9, 0xf5, 0x79, 0xa5, 0x48, 0x73, 0x6f, 0x00,
		0x5d, 0x4a, 0x4a, 0xe1, 0x1a, 0x99, 0xc1, 0x50,
		0xa2, 0xf2, 0xd6, 0xb7, 0xf4, 0xe0, 0x4e, 0x4a,
		0x79, 0x7f, 0x6c, 0x82, 0x52, 0x34, 0xfd, 0xaf,
	}
	trustAnchorY = []byte{
		0x0e, 0x85, 0xf8, 0xb2, 0x51, 0xca, 0xf1, 0x64,
		0xd3, 0xc8, 0xb7, 0x7c, 0x7e, 0xfc, 0xb5, 0xd0,
		0xcb, 0xbd, 0x25, 0xaa, 0x86, 0x3a, 0x59, 0x7e,
		0xfa, 0x8b, 0xe2, 0x5a, 0x23, 0x07, 0xd2, 0x9c,
	}
)
