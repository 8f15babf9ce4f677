package transport

import (
	"net"
	"sync"
	"time"

	"github.com/pion/transport/v3/test"
)

// PipeConfig configures a Pipe.
type PipeConfig struct {
	// AutoProcess enables automatic message delivery in a background goroutine.
	// Default: true
	AutoProcess bool

	// ProcessInterval is how often the auto-processor checks for messages.
	// Default: 1ms
	ProcessInterval time.Duration
}

// DefaultPipeConfig returns the default pipe configuration.
func DefaultPipeConfig() PipeConfig {
	return PipeConfig{
		AutoProcess:     true,
		ProcessInterval: 1 * time.Millisecond,
	}
}

// Pipe provides a bidirectional in-memory link standing in for the sensor's
// USB bulk endpoints. The host side drives an Endpoint over HostConn; the
// device side (usually a ScriptedDevice) serves DeviceConn.
//
// By default the pipe delivers messages in a background goroutine; use
// PipeConfig.AutoProcess = false and Tick/Process for manual control over
// delivery, which makes specific orderings deterministic in tests.
type Pipe struct {
	bridge *test.Bridge

	mu          sync.Mutex
	closed      bool
	autoProcess bool
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

// NewPipe creates a pipe with auto-processing enabled.
func NewPipe() *Pipe {
	return NewPipeWithConfig(DefaultPipeConfig())
}

// NewPipeWithConfig creates a pipe with the given configuration.
func NewPipeWithConfig(config PipeConfig) *Pipe {
	p := &Pipe{
		bridge:      test.NewBridge(),
		autoProcess: config.AutoProcess,
		stopCh:      make(chan struct{}),
	}

	interval := config.ProcessInterval
	if interval == 0 {
		interval = 1 * time.Millisecond
	}

	if p.autoProcess {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-p.stopCh:
					return
				case <-ticker.C:
					p.bridge.Tick()
				}
			}
		}()
	}

	return p
}

// HostConn returns the host-side connection. Each Write is delivered to the
// device side as one message; each Read returns one message.
func (p *Pipe) HostConn() net.Conn {
	return p.bridge.GetConn0()
}

// DeviceConn returns the device-side connection.
func (p *Pipe) DeviceConn() net.Conn {
	return p.bridge.GetConn1()
}

// Tick delivers one queued message in each direction (if available) and
// returns the number delivered.
func (p *Pipe) Tick() int {
	return p.bridge.Tick()
}

// Process delivers all queued messages and returns the number delivered.
func (p *Pipe) Process() int {
	count := 0
	for {
		n := p.Tick()
		if n == 0 {
			return count
		}
		count += n
	}
}

// Close closes both ends of the pipe and stops auto-processing.
func (p *Pipe) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	if p.autoProcess {
		close(p.stopCh)
	}
	p.mu.Unlock()

	p.wg.Wait()

	err0 := p.bridge.GetConn0().Close()
	err1 := p.bridge.GetConn1().Close()
	if err0 != nil {
		return err0
	}
	return err1
}
