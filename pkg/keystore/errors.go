package keystore

import "errors"

// Keystore errors.
var (
	// ErrNoCertificate is returned when no certificate block was recovered.
	ErrNoCertificate = errors.New("keystore: no certificate recovered")

	// ErrNoPrivateKey is returned when no usable private key was recovered.
	ErrNoPrivateKey = errors.New("keystore: no private key recovered")

	// ErrNoPeerKey is returned when no key-exchange record was recovered.
	ErrNoPeerKey = errors.New("keystore: no peer key recovered")

	// ErrUntrustedPeer is returned when a peer key exists but its record
	// did not verify against the trust anchor. The key must not be used
	// for channel establishment.
	ErrUntrustedPeer = errors.New("keystore: peer key is not trusted")
)
