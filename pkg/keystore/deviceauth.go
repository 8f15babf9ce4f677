package keystore

import (
	"encoding/binary"

	"github.com/backkem/vfs0097/pkg/crypto"
)

// Device-authentication record layout (block id 6):
//
//	[0x08:0x28)  peer public key X, little-endian
//	[0x4c:0x6c)  peer public key Y, little-endian
//	[0x90:0x94)  signature length, little-endian
//	[0x94:...)   ECDSA signature (ASN.1 DER) over SHA-256 of the first
//	             0x90 bytes
//	remainder    zero padding
const (
	authPeerXOffset    = 0x08
	authPeerYOffset    = 0x4c
	authKeyMaterialLen = 0x90
	authSigOffset      = authKeyMaterialLen + 4
)

// verifyDeviceAuth reconstructs the peer key-exchange key and checks the
// record's signature against the trust anchor.
//
// Like the rest of block handling this never aborts partition parsing; it
// records a verdict instead. The store's PeerKey accessor enforces the
// verdict, so an untrusted peer key cannot leak into channel
// establishment.
func (s *Store) verifyDeviceAuth(body []byte) {
	if len(body) < authSigOffset {
		s.log.Warnf("device-auth block too short: %d bytes", len(body))
		s.setVerdict(TrustError)
		return
	}

	peer, err := crypto.P256PublicKeyFromAffineLE(
		body[authPeerXOffset:authPeerXOffset+0x20],
		body[authPeerYOffset:authPeerYOffset+0x20],
	)
	if err != nil {
		s.log.Errorf("peer key reconstruction: %v", err)
		s.setVerdict(TrustError)
		return
	}
	s.mu.Lock()
	s.peerKey = peer
	s.mu.Unlock()

	sigLen := int(binary.LittleEndian.Uint32(body[authKeyMaterialLen:authSigOffset]))
	if authSigOffset+sigLen > len(body) {
		s.log.Warnf("device-auth signature length %d overruns block", sigLen)
		s.setVerdict(TrustError)
		return
	}
	sig := body[authSigOffset : authSigOffset+sigLen]

	for i, b := range body[authSigOffset+sigLen:] {
		if b != 0 {
			s.log.Warnf("expected zero at %d", authSigOffset+sigLen+i)
		}
	}

	anchor, err := crypto.P256PublicKeyFromAffine(trustAnchorX, trustAnchorY)
	if err != nil {
		// The anchor is compile-time data; this only fires on a corrupted build.
		s.log.Errorf("trust anchor: %v", err)
		s.setVerdict(TrustError)
		return
	}

	digest := crypto.SHA256(body[:authKeyMaterialLen])
	ok, err := crypto.ECDSAVerifyDigest(anchor, digest[:], sig)
	switch {
	case err != nil:
		s.log.Errorf("failed to verify device signature: %v", err)
		s.setVerdict(TrustError)
	case !ok:
		s.log.Errorf("untrusted device")
		s.setVerdict(TrustRejected)
	default:
		s.setVerdict(TrustVerified)
	}
}

func (s *Store) setVerdict(v TrustVerdict) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verdict = v
}
