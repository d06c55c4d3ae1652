package midi

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-phinrip/debug"
)

var ErrNotOpen = errors.New("midi: port not open")

// Sender delivers messages to an output
type Sender interface {
	Send(msg gomidi.Message) error
}

// PortAgent owns one input and one output port. Listen blocks for the next
// pulse from the input; Send writes to the output.
type PortAgent struct {
	inName, outName string
	clockOnly       bool
	timeout         time.Duration

	in   drivers.In
	out  drivers.Out
	send func(msg gomidi.Message) error
	stop func()

	pulses    chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	received atomic.Uint64
	sent     atomic.Uint64
}

// AgentOption configures a PortAgent
type AgentOption func(*PortAgent)

// ClockOnly makes Listen wait for timing clock messages and ignore the rest
func ClockOnly(on bool) AgentOption {
	return func(a *PortAgent) { a.clockOnly = on }
}

// ScanTimeout bounds the port lookup in Open
func ScanTimeout(d time.Duration) AgentOption {
	return func(a *PortAgent) { a.timeout = d }
}

// NewPortAgent creates an agent for the named ports. Either name may be
// empty to leave that direction closed.
func NewPortAgent(inName, outName string, opts ...AgentOption) *PortAgent {
	a := &PortAgent{
		inName:  inName,
		outName: outName,
		timeout: DefaultScanTimeout,
		pulses:  make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Open looks up and opens the configured ports
func (a *PortAgent) Open() error {
	ports, err := scan(a.timeout)
	if err != nil {
		return err
	}

	if a.outName != "" {
		out, err := findOut(ports.out, a.outName)
		if err != nil {
			return err
		}
		send, err := gomidi.SendTo(out)
		if err != nil {
			return fmt.Errorf("open output %q: %w", out.String(), err)
		}
		a.out = out
		a.send = send
		debug.Log("midi", "output open: %s", out.String())
	}

	if a.inName != "" {
		in, err := findIn(ports.in, a.inName)
		if err != nil {
			return err
		}
		stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
			a.deliver(msg)
		}, gomidi.UseTimeCode(), gomidi.HandleError(func(err error) {
			debug.Warn("midi input error", "port", a.inName, "err", err)
		}))
		if err != nil {
			return fmt.Errorf("open input %q: %w", in.String(), err)
		}
		a.in = in
		a.stop = stop
		debug.Log("midi", "input open: %s (clock only: %v)", in.String(), a.clockOnly)
	}
	return nil
}

// deliver hands one incoming message to Listen. It blocks until Listen
// takes it or the agent closes, so pulses are never buffered here.
// Transport messages are logged, never counted as pulses.
func (a *PortAgent) deliver(msg []byte) {
	if name, ok := Transport(msg); ok {
		debug.Log("midi", "transport %s on %s", name, a.inName)
		return
	}
	if a.clockOnly && !IsClock(msg) {
		return
	}
	a.received.Add(1)
	select {
	case a.pulses <- struct{}{}:
	case <-a.done:
	}
}

// Listen blocks until the next pulse arrives
func (a *PortAgent) Listen(ctx context.Context) error {
	select {
	case <-a.pulses:
		return nil
	case <-a.done:
		return ErrNotOpen
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send writes msg to the output port
func (a *PortAgent) Send(msg gomidi.Message) error {
	if a.send == nil {
		return ErrNotOpen
	}
	if err := a.send(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg, err)
	}
	a.sent.Add(1)
	return nil
}

// SendEvent converts and sends a channel event
func (a *PortAgent) SendEvent(e Event) error {
	msg, err := e.Message()
	if err != nil {
		return err
	}
	return a.Send(msg)
}

// Stats returns the number of pulses received and messages sent
func (a *PortAgent) Stats() (received, sent uint64) {
	return a.received.Load(), a.sent.Load()
}

// Close stops listening and releases the ports
func (a *PortAgent) Close() error {
	a.closeOnce.Do(func() {
		close(a.done)
		if a.stop != nil {
			a.stop()
		}
		if a.out != nil {
			a.out.Close()
		}
	})
	return nil
}
