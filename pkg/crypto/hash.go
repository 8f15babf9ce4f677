// Package crypto provides the cryptographic primitives used by the VFS0097
// bootstrap protocol: SHA-256 and HMAC-SHA-256 helpers, the TLS 1.2
// pseudorandom function, unpadded AES-CBC decryption, and P-256 key
// reconstruction and signature verification.
package crypto

import (
	"crypto/sha256"
	"hash"
)

// SHA256LenBytes is the SHA-256 output length in bytes.
const SHA256LenBytes = 32

// SHA256 computes the SHA-256 cryptographic hash of a message.
//
// Returns a 32-byte (256-bit) hash digest.
func SHA256(message []byte) [SHA256LenBytes]byte {
	return sha256.Sum256(message)
}

// SHA256Slice computes the SHA-256 hash and returns it as a slice.
// This is a convenience function for cases where a slice is preferred.
func SHA256Slice(message []byte) []byte {
	h := sha256.Sum256(message)
	return h[:]
}

// NewSHA256 returns a new hash.Hash for computing SHA-256 digests incrementally.
func NewSHA256() hash.Hash {
	return sha256.New()
}
