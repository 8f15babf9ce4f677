package keystore

import (
	"crypto/ecdsa"
	"sync"

	"github.com/pion/logging"

	"github.com/backkem/vfs0097/pkg/flash"
)

// Store accumulates the key material recovered from a parsed flash
// partition. It implements flash.BlockHandler.
//
// Recovery is forgiving by design: a block that fails its integrity or
// crypto checks is dropped with a log line and the remaining blocks are
// still processed. Callers must therefore check what was actually
// recovered; PrivateKey and PeerKey return errors when the corresponding
// material is missing or, for the peer key, untrusted.
type Store struct {
	keys SessionKeys
	log  logging.LeveledLogger

	mu          sync.Mutex
	certificate []byte
	privateKey  *ecdsa.PrivateKey
	peerKey     *ecdsa.PublicKey
	verdict     TrustVerdict
}

// NewStore creates a Store deriving its checks from the given session
// keys. A nil loggerFactory selects the default factory.
func NewStore(keys SessionKeys, loggerFactory logging.LoggerFactory) *Store {
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &Store{
		keys: keys,
		log:  loggerFactory.NewLogger("keystore"),
	}
}

// HandleCertificate retains the certificate blob verbatim for later
// handshake use.
func (s *Store) HandleCertificate(body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.certificate = append([]byte(nil), body...)
}

// HandlePrivateKey integrity-checks, decrypts and reconstructs the wrapped
// private key.
func (s *Store) HandlePrivateKey(body []byte) {
	s.unwrapPrivateKey(body)
}

// HandleDeviceAuth verifies the signed key-exchange record against the
// trust anchor.
func (s *Store) HandleDeviceAuth(body []byte) {
	s.verifyDeviceAuth(body)
}

// SessionKeys returns the derived session keys.
func (s *Store) SessionKeys() SessionKeys {
	return s.keys
}

// Certificate returns a copy of the retained certificate.
func (s *Store) Certificate() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.certificate == nil {
		return nil, ErrNoCertificate
	}
	return append([]byte(nil), s.certificate...), nil
}

// PrivateKey returns the unwrapped device private key.
func (s *Store) PrivateKey() (*ecdsa.PrivateKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.privateKey == nil {
		return nil, ErrNoPrivateKey
	}
	return s.privateKey, nil
}

// PeerKey returns the device's ephemeral key-exchange public key.
//
// The key is only handed out when the record it came from verified
// against the trust anchor; an untrusted or unverifiable record yields
// ErrUntrustedPeer even though the key material was parseable.
func (s *Store) PeerKey() (*ecdsa.PublicKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.peerKey == nil {
		return nil, ErrNoPeerKey
	}
	if s.verdict != TrustVerified {
		return nil, ErrUntrustedPeer
	}
	return s.peerKey, nil
}

// Verdict returns the device-authenticity verdict.
func (s *Store) Verdict() TrustVerdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verdict
}

// Clear drops all recovered material. The store is not reusable for a new
// partition; derive fresh keys and create a new store instead.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.certificate {
		s.certificate[i] = 0
	}
	s.certificate = nil
	s.privateKey = nil
	s.peerKey = nil
	s.verdict = TrustUnknown
	s.keys = SessionKeys{}
}

// Verify Store implements flash.BlockHandler.
var _ flash.BlockHandler = (*Store)(nil)
