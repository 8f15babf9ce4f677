package sensor

import (
	"context"
	"errors"
	"testing"

	"github.com/pion/logging"

	"github.com/backkem/vfs0097/pkg/flash"
	"github.com/backkem/vfs0097/pkg/keystore"
)

func newTestHandshake(t *testing.T, store *keystore.Store) *Handshake {
	t.Helper()
	log := logging.NewDefaultLoggerFactory().NewLogger("sensor")
	return NewHandshake(nil, store, log)
}

func TestHandshakeRun(t *testing.T) {
	store := keystore.NewStore(keystore.DeriveSessionKeys(seedForTests()), nil)
	if err := flash.NewParser(nil).Parse(testPartition(t), store); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	h := newTestHandshake(t, store)
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := h.State(); got != HandshakeDone {
		t.Errorf("state = %v, want %v", got, HandshakeDone)
	}
}

func TestHandshakeRunWithoutMaterial(t *testing.T) {
	// Missing material is logged, not fatal.
	store := keystore.NewStore(keystore.DeriveSessionKeys(seedForTests()), nil)

	h := newTestHandshake(t, store)
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := h.State(); got != HandshakeDone {
		t.Errorf("state = %v, want %v", got, HandshakeDone)
	}
}

func TestHandshakeCancelled(t *testing.T) {
	store := keystore.NewStore(keystore.DeriveSessionKeys(seedForTests()), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := newTestHandshake(t, store)
	if err := h.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run err = %v, want context.Canceled", err)
	}
	if got := h.State(); got == HandshakeDone {
		t.Error("cancelled handshake reached Done")
	}
}
