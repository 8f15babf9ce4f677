package transport

import (
	"bytes"
	"fmt"
	"net"
	"sync"
)

// Exchange is one scripted request/response pair.
type Exchange struct {
	Request  []byte
	Response []byte
}

// ScriptedDevice emulates the sensor end of a transport. It consumes a
// fixed script of exchanges in order: each received request must match the
// next scripted request exactly, and is answered with the scripted
// response. A request that deviates from the script stops the device and
// is reported through Err.
type ScriptedDevice struct {
	conn   net.Conn
	script []Exchange

	mu   sync.Mutex
	step int
	err  error

	done chan struct{}
}

// ServeScript starts serving script on the device side of a connection.
func ServeScript(conn net.Conn, script []Exchange) *ScriptedDevice {
	d := &ScriptedDevice{
		conn:   conn,
		script: script,
		done:   make(chan struct{}),
	}
	go d.serve()
	return d
}

func (d *ScriptedDevice) serve() {
	defer close(d.done)

	buf := make([]byte, maxTransferSize)
	for {
		n, err := d.conn.Read(buf)
		if err != nil {
			// The host closing the pipe is the normal way a script ends.
			return
		}
		request := buf[:n]

		d.mu.Lock()
		if d.step >= len(d.script) {
			d.err = fmt.Errorf("transport: unscripted request %x after %d exchanges", request, d.step)
			d.mu.Unlock()
			return
		}
		exchange := d.script[d.step]
		if !bytes.Equal(request, exchange.Request) {
			d.err = fmt.Errorf("transport: exchange %d: got request %x, script expects %x",
				d.step, request, exchange.Request)
			d.mu.Unlock()
			return
		}
		d.step++
		d.mu.Unlock()

		if _, err := d.conn.Write(exchange.Response); err != nil {
			d.mu.Lock()
			d.err = err
			d.mu.Unlock()
			return
		}
	}
}

// Step returns the number of exchanges served so far.
func (d *ScriptedDevice) Step() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step
}

// Err reports a script violation or device-side write failure, if any.
func (d *ScriptedDevice) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Done is closed once the device has stopped serving.
func (d *ScriptedDevice) Done() <-chan struct{} {
	return d.done
}
