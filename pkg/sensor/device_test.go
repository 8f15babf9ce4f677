package sensor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/backkem/vfs0097/pkg/keystore"
	"github.com/backkem/vfs0097/pkg/transport"
)

func newScriptedDevice(t *testing.T, script []transport.Exchange) (*Device, *transport.ScriptedDevice) {
	t.Helper()

	pipe := transport.NewPipe()
	t.Cleanup(func() { pipe.Close() })

	scripted := transport.ServeScript(pipe.DeviceConn(), script)

	device, err := New(Config{
		Transport:       transport.NewEndpoint(pipe.HostConn()),
		ExchangeTimeout: 500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return device, scripted
}

func TestDeviceOpen(t *testing.T) {
	device, scripted := newScriptedDevice(t, InitExchanges(testPartition(t)))

	if err := device.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := scripted.Err(); err != nil {
		t.Errorf("device script: %v", err)
	}

	if _, err := device.Certificate(); err != nil {
		t.Errorf("Certificate: %v", err)
	}
	if _, err := device.PrivateKey(); err != nil {
		t.Errorf("PrivateKey: %v", err)
	}
	if _, err := device.PeerKey(); err != nil {
		t.Errorf("PeerKey: %v", err)
	}
	verdict, err := device.TrustVerdict()
	if err != nil {
		t.Fatalf("TrustVerdict: %v", err)
	}
	if verdict != keystore.TrustVerified {
		t.Errorf("verdict = %v, want %v", verdict, keystore.TrustVerified)
	}

	if err := device.Enroll(context.Background()); err != nil {
		t.Errorf("Enroll: %v", err)
	}
	prints, err := device.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(prints) != 0 {
		t.Errorf("List returned %d prints, want 0", len(prints))
	}

	if err := device.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := device.Certificate(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Certificate after Close: err = %v, want ErrNotOpen", err)
	}
	if err := device.Close(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("second Close: err = %v, want ErrNotOpen", err)
	}
}

func TestDeviceOpenTwice(t *testing.T) {
	device, _ := newScriptedDevice(t, InitExchanges(testPartition(t)))

	if err := device.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := device.Open(context.Background()); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("second Open: err = %v, want ErrAlreadyOpen", err)
	}
}

func TestDeviceOpenFailureRetainsNothing(t *testing.T) {
	script := InitExchanges(testPartition(t))
	script[0].Response[readyReplyLen-1] = 0x02

	device, _ := newScriptedDevice(t, script)

	if err := device.Open(context.Background()); !errors.Is(err, ErrNotProvisioned) {
		t.Fatalf("Open err = %v, want ErrNotProvisioned", err)
	}
	if _, err := device.PrivateKey(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("PrivateKey err = %v, want ErrNotOpen", err)
	}
}

func TestDeviceNotOpen(t *testing.T) {
	device, _ := newScriptedDevice(t, nil)

	if _, err := device.PrivateKey(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("PrivateKey err = %v, want ErrNotOpen", err)
	}
	if err := device.Verify(context.Background()); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Verify err = %v, want ErrNotOpen", err)
	}
}

func TestDeviceCancel(t *testing.T) {
	// No script: the device never answers, so Open blocks in the first
	// exchange until cancelled.
	pipe := transport.NewPipe()
	t.Cleanup(func() { pipe.Close() })

	device, err := New(Config{
		Transport:       transport.NewEndpoint(pipe.HostConn()),
		ExchangeTimeout: time.Minute,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	openErr := make(chan error, 1)
	go func() {
		openErr <- device.Open(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	device.Cancel()

	select {
	case err := <-openErr:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Open err = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Open did not return after Cancel")
	}

	if _, err := device.PrivateKey(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("PrivateKey err = %v, want ErrNotOpen", err)
	}
}
