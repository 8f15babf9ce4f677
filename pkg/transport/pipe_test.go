package transport

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestEndpointExchangeOverPipe(t *testing.T) {
	pipe := NewPipe()
	defer pipe.Close()

	device := ServeScript(pipe.DeviceConn(), []Exchange{
		{Request: []byte{0x01}, Response: []byte{0xaa, 0xbb, 0xcc}},
		{Request: []byte{0x02, 0x03}, Response: []byte{0xdd}},
	})

	ep := NewEndpoint(pipe.HostConn())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	buf := make([]byte, 64)
	for i, want := range [][]byte{{0xaa, 0xbb, 0xcc}, {0xdd}} {
		var req []byte
		if i == 0 {
			req = []byte{0x01}
		} else {
			req = []byte{0x02, 0x03}
		}
		if err := ep.SubmitWrite(ctx, req); err != nil {
			t.Fatalf("SubmitWrite %d: %v", i, err)
		}
		n, err := ep.SubmitRead(ctx, buf)
		if err != nil {
			t.Fatalf("SubmitRead %d: %v", i, err)
		}
		if !bytes.Equal(buf[:n], want) {
			t.Errorf("response %d = %x, want %x", i, buf[:n], want)
		}
	}

	if err := device.Err(); err != nil {
		t.Errorf("device: %v", err)
	}
	if device.Step() != 2 {
		t.Errorf("device served %d exchanges, want 2", device.Step())
	}
}

func TestEndpointShortReadReportsActualLength(t *testing.T) {
	pipe := NewPipe()
	defer pipe.Close()

	ServeScript(pipe.DeviceConn(), []Exchange{
		{Request: []byte{0x01}, Response: []byte{0x0f}},
	})

	ep := NewEndpoint(pipe.HostConn())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := ep.SubmitWrite(ctx, []byte{0x01}); err != nil {
		t.Fatalf("SubmitWrite: %v", err)
	}
	buf := make([]byte, 1024)
	n, err := ep.SubmitRead(ctx, buf)
	if err != nil {
		t.Fatalf("SubmitRead: %v", err)
	}
	if n != 1 {
		t.Errorf("n = %d, want 1", n)
	}
}

func TestEndpointReadHonorsContext(t *testing.T) {
	pipe := NewPipe()
	defer pipe.Close()

	// No device: the read can never complete.
	ep := NewEndpoint(pipe.HostConn())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ep.SubmitRead(ctx, make([]byte, 16))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestEndpointClosed(t *testing.T) {
	pipe := NewPipe()
	defer pipe.Close()

	ep := NewEndpoint(pipe.HostConn())
	if err := ep.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	ctx := context.Background()
	if err := ep.SubmitWrite(ctx, []byte{0x01}); !errors.Is(err, ErrClosed) {
		t.Errorf("SubmitWrite err = %v, want ErrClosed", err)
	}
	if _, err := ep.SubmitRead(ctx, make([]byte, 16)); !errors.Is(err, ErrClosed) {
		t.Errorf("SubmitRead err = %v, want ErrClosed", err)
	}
}

func TestScriptedDeviceRejectsDeviation(t *testing.T) {
	pipe := NewPipe()
	defer pipe.Close()

	device := ServeScript(pipe.DeviceConn(), []Exchange{
		{Request: []byte{0x01}, Response: []byte{0xaa}},
	})

	ep := NewEndpoint(pipe.HostConn())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := ep.SubmitWrite(ctx, []byte{0x99}); err != nil {
		t.Fatalf("SubmitWrite: %v", err)
	}

	select {
	case <-device.Done():
	case <-time.After(time.Second):
		t.Fatal("device did not stop on deviation")
	}
	if device.Err() == nil {
		t.Error("expected script violation error")
	}
}
