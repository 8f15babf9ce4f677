// Package keystore recovers and holds the key material provisioned into a
// sensor's flash partition: the session keys derived from the install
// seed, the unwrapped device private key, the retained certificate and the
// authenticated peer key-exchange key.
package keystore

import (
	"github.com/backkem/vfs0097/pkg/crypto"
)

// SessionKeys holds the two symmetric keys derived from the install seed.
type SessionKeys struct {
	// Master decrypts the wrapped private-key block.
	Master [crypto.SHA256LenBytes]byte

	// Validation authenticates the wrapped private-key block.
	Validation [crypto.SHA256LenBytes]byte
}

// DeriveSessionKeys expands the install seed into the session keys:
//
//	master     = PRF(preKey, label, seed)
//	validation = PRF(master, labelSign, signKey)
//
// The derivation is deterministic and free of side effects; the same seed
// always yields the same keys.
func DeriveSessionKeys(seed []byte) SessionKeys {
	var keys SessionKeys
	copy(keys.Master[:], crypto.PRFSHA256(preKey, prfLabel, seed, crypto.SHA256LenBytes))
	copy(keys.Validation[:], crypto.PRFSHA256(keys.Master[:], prfLabelSign, signKey, crypto.SHA256LenBytes))
	return keys
}
