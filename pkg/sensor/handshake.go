package sensor

import (
	"context"

	"github.com/pion/logging"

	"github.com/backkem/vfs0097/pkg/channel"
	"github.com/backkem/vfs0097/pkg/keystore"
)

// HandshakeState identifies a step of the secure-channel handshake.
type HandshakeState int

const (
	HandshakeClientHello HandshakeState = iota
	HandshakeGenerateCertificate
	HandshakeClientFinished
	HandshakeDone
)

func (s HandshakeState) String() string {
	switch s {
	case HandshakeClientHello:
		return "ClientHello"
	case HandshakeGenerateCertificate:
		return "GenerateCertificate"
	case HandshakeClientFinished:
		return "ClientFinished"
	case HandshakeDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Handshake establishes the secure channel that biometric traffic runs
// over. The record layer is not implemented yet; the state machine below
// walks the intended steps, checks that the material each one will need
// was recovered, and exchanges nothing.
//
// ClientHello will send the host random and receive the device's,
// GenerateCertificate will present the recovered certificate chain signed
// with the device private key, and ClientFinished will confirm the
// transcript under the session keys.
type Handshake struct {
	channel *channel.Channel
	store   *keystore.Store
	log     logging.LeveledLogger

	state HandshakeState
}

// NewHandshake creates a Handshake drawing its material from store.
func NewHandshake(ch *channel.Channel, store *keystore.Store, log logging.LeveledLogger) *Handshake {
	return &Handshake{
		channel: ch,
		store:   store,
		log:     log,
	}
}

// State returns the current handshake state.
func (h *Handshake) State() HandshakeState {
	return h.state
}

// Run walks the handshake states. Missing material is logged, not fatal:
// the sensor remains usable for key inspection even when the flash gave
// up less than a full handshake will need.
func (h *Handshake) Run(ctx context.Context) error {
	for h.state != HandshakeDone {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch h.state {
		case HandshakeClientHello:
			if _, err := h.store.PeerKey(); err != nil {
				h.log.Warnf("handshake without a peer key: %v", err)
			}
			h.state = HandshakeGenerateCertificate

		case HandshakeGenerateCertificate:
			if _, err := h.store.Certificate(); err != nil {
				h.log.Warnf("handshake without a certificate: %v", err)
			}
			if _, err := h.store.PrivateKey(); err != nil {
				h.log.Warnf("handshake without a private key: %v", err)
			}
			h.state = HandshakeClientFinished

		case HandshakeClientFinished:
			h.state = HandshakeDone
		}
	}
	return nil
}
