package keystore

import (
	"crypto/aes"

	"github.com/backkem/vfs0097/pkg/crypto"
)

// Wrapped private-key block layout (block id 4):
//
//	[0]       wrap version, must be 2
//	[1:0x11]  AES-CBC IV
//	[0x11:]   ciphertext
//	[len-32:] HMAC-SHA-256 tag over everything between the version byte
//	          and the tag
//
// The decrypted payload is X || Y || D, little-endian 32-byte components
// of the device's P-256 keypair.
const (
	privateKeyWrapVersion = 2

	// privateKeyCipherLen is the number of ciphertext bytes the firmware
	// decrypts: always exactly 0x70 bytes starting one block past the IV,
	// regardless of how much ciphertext follows.
	privateKeyCipherLen = 0x70

	privateKeyMinLen = 1 + aes.BlockSize + privateKeyCipherLen + crypto.SHA256LenBytes
)

// unwrapPrivateKey recovers the device keypair from a wrapped block. All
// failures are non-fatal to partition parsing: they log and leave the
// store without a private key.
func (s *Store) unwrapPrivateKey(body []byte) {
	if len(body) < privateKeyMinLen {
		s.log.Warnf("private-key block too short: %d bytes, need %d", len(body), privateKeyMinLen)
		return
	}
	if body[0] != privateKeyWrapVersion {
		s.log.Warnf("unknown private key prefix %#02x", body[0])
		return
	}

	wrapped := body[1 : len(body)-crypto.SHA256LenBytes]
	tag := body[len(body)-crypto.SHA256LenBytes:]

	calc := crypto.HMACSHA256(s.keys.Validation[:], wrapped)
	if !crypto.HMACEqual(calc[:], tag) {
		s.log.Warnf("private-key signature verification failed; " +
			"this device was probably paired with another computer")
		return
	}

	iv := wrapped[:aes.BlockSize]
	ciphertext := wrapped[aes.BlockSize : aes.BlockSize+privateKeyCipherLen]
	plain, err := crypto.AESCBCDecrypt(s.keys.Master[:], iv, ciphertext)
	if err != nil {
		s.log.Errorf("private-key decrypt: %v", err)
		return
	}

	key, err := crypto.P256KeyPairFromComponents(plain[0:0x20], plain[0x20:0x40], plain[0x40:0x60])
	if err != nil {
		s.log.Errorf("private-key reconstruction: %v", err)
		return
	}

	s.mu.Lock()
	s.privateKey = key
	s.mu.Unlock()
}
