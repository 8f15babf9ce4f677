// Package sensor implements the VFS0097 device lifecycle: the startup
// sequence that recovers the sensor's key material from flash and the
// skeleton of the secure-channel handshake built on top of it.
package sensor

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"sync"
	"time"

	"github.com/pion/logging"

	"github.com/backkem/vfs0097/pkg/channel"
	"github.com/backkem/vfs0097/pkg/keystore"
	"github.com/backkem/vfs0097/pkg/seed"
	"github.com/backkem/vfs0097/pkg/transport"
)

// Config configures a Device.
type Config struct {
	// Transport carries the raw transfers to the sensor. Required.
	Transport transport.Transport

	// Seed is the installation seed session keys are derived from. If
	// nil, seed.Default() is used.
	Seed []byte

	// ExchangeTimeout overrides the channel's default per-exchange
	// timeout when non-zero.
	ExchangeTimeout time.Duration

	// LoggerFactory is the factory for creating loggers.
	// If nil, the default factory is used.
	LoggerFactory logging.LoggerFactory
}

// Device is a VFS0097 sensor.
//
// Open runs the startup sequence; once it returns the recovered key
// material is available through the accessors until Close. The biometric
// operations are placeholders pending the secure-channel record layer.
type Device struct {
	config        Config
	loggerFactory logging.LoggerFactory
	log           logging.LeveledLogger

	mu     sync.Mutex
	store  *keystore.Store
	cancel context.CancelFunc
}

// New creates a Device over the given transport.
func New(config Config) (*Device, error) {
	if config.Transport == nil {
		return nil, channel.ErrNoTransport
	}
	loggerFactory := config.LoggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &Device{
		config:        config,
		loggerFactory: loggerFactory,
		log:           loggerFactory.NewLogger("sensor"),
	}, nil
}

// Open derives the session keys and runs the startup sequence. On success
// the recovered material becomes available through the accessors; on
// failure nothing is retained.
func (d *Device) Open(ctx context.Context) error {
	d.mu.Lock()
	if d.store != nil || d.cancel != nil {
		d.mu.Unlock()
		return ErrAlreadyOpen
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.mu.Unlock()
	defer func() {
		cancel()
		d.mu.Lock()
		d.cancel = nil
		d.mu.Unlock()
	}()

	installSeed := d.config.Seed
	if installSeed == nil {
		installSeed = seed.Default()
	}

	store := keystore.NewStore(keystore.DeriveSessionKeys(installSeed), d.loggerFactory)
	ch, err := channel.New(channel.Config{
		Transport:     d.config.Transport,
		Timeout:       d.config.ExchangeTimeout,
		LoggerFactory: d.loggerFactory,
	})
	if err != nil {
		return err
	}

	if err := NewSequencer(ch, store, d.loggerFactory).Run(ctx); err != nil {
		store.Clear()
		return err
	}

	d.mu.Lock()
	d.store = store
	d.mu.Unlock()
	return nil
}

// Close drops all key material recovered by Open.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.store == nil {
		return ErrNotOpen
	}
	d.store.Clear()
	d.store = nil
	return nil
}

// Cancel aborts an in-flight Open. It has no effect on an idle device.
func (d *Device) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
	}
}

func (d *Device) openStore() (*keystore.Store, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.store == nil {
		return nil, ErrNotOpen
	}
	return d.store, nil
}

// Certificate returns the sensor's enrollment certificate.
func (d *Device) Certificate() ([]byte, error) {
	store, err := d.openStore()
	if err != nil {
		return nil, err
	}
	return store.Certificate()
}

// PrivateKey returns the sensor's unwrapped private key.
func (d *Device) PrivateKey() (*ecdsa.PrivateKey, error) {
	store, err := d.openStore()
	if err != nil {
		return nil, err
	}
	return store.PrivateKey()
}

// PeerKey returns the sensor's key-exchange public key, or
// ErrUntrustedDevice when its record did not verify against the trust
// anchor.
func (d *Device) PeerKey() (*ecdsa.PublicKey, error) {
	store, err := d.openStore()
	if err != nil {
		return nil, err
	}
	key, err := store.PeerKey()
	if errors.Is(err, keystore.ErrUntrustedPeer) {
		return nil, ErrUntrustedDevice
	}
	return key, err
}

// TrustVerdict returns the device-authenticity verdict from Open.
func (d *Device) TrustVerdict() (keystore.TrustVerdict, error) {
	store, err := d.openStore()
	if err != nil {
		return keystore.TrustUnknown, err
	}
	return store.Verdict(), nil
}

// Enroll registers a new print. Matching is not implemented; the call
// completes without touching the sensor.
func (d *Device) Enroll(ctx context.Context) error {
	_, err := d.openStore()
	return err
}

// Identify matches a presented finger against the enrolled prints.
// Matching is not implemented; the call completes without touching the
// sensor.
func (d *Device) Identify(ctx context.Context) error {
	_, err := d.openStore()
	return err
}

// Verify matches a presented finger against one enrolled print. Matching
// is not implemented; the call completes without touching the sensor.
func (d *Device) Verify(ctx context.Context) error {
	_, err := d.openStore()
	return err
}

// Delete removes an enrolled print. Storage is not implemented; the call
// completes without touching the sensor.
func (d *Device) Delete(ctx context.Context) error {
	_, err := d.openStore()
	return err
}

// List returns the enrolled prints. Storage is not implemented; the list
// is always empty.
func (d *Device) List(ctx context.Context) ([][]byte, error) {
	if _, err := d.openStore(); err != nil {
		return nil, err
	}
	return [][]byte{}, nil
}
