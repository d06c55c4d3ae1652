// Package clip drives a clip launcher and note output from external MIDI
// clock. Each update event schedules the next update plus whatever its
// source produces for the coming interval.
package clip

import (
	"context"
	"fmt"
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-phinrip/debug"
	"go-phinrip/event"
	"go-phinrip/midi"
)

// DefaultInterval is one bar of 4/4 at 24 pulses per quarter
const DefaultInterval = midi.PulsesPerQuarter * 4

// Agent is the transport the controller runs on
type Agent interface {
	event.Pulser
	midi.Sender
}

// Snapshot is the controller state after a tick, for monitors
type Snapshot struct {
	Now      int64
	Updates  int
	Pending  int
	Sent     int
	Held     int
	LastClip *Clip
	LastSent string
	Err      error
}

type heldKey struct {
	ch, key uint8
}

// Controller schedules clip launches and notes against external clock
type Controller struct {
	agent    Agent
	queue    *event.SyncQueue
	source   Source
	interval int64

	updates  int
	endCheck func(c *Controller) bool

	sent     int
	lastClip *Clip
	lastSent string
	held     map[heldKey]bool
	err      error

	snapshots chan Snapshot
}

type Option func(*Controller)

// WithInterval sets the pulses between updates
func WithInterval(pulses int64) Option {
	return func(c *Controller) {
		if pulses > 0 {
			c.interval = pulses
		}
	}
}

// NewController creates a controller. A controller runs once.
func NewController(agent Agent, source Source, opts ...Option) *Controller {
	c := &Controller{
		agent:     agent,
		queue:     event.NewSyncQueue(agent),
		source:    source,
		interval:  DefaultInterval,
		held:      make(map[heldKey]bool),
		snapshots: make(chan Snapshot, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.queue.OnTick(func(now int64, fired int) {
		c.publish()
	})
	return c
}

// Interval returns the pulses between updates
func (c *Controller) Interval() int64 {
	return c.interval
}

// UpdateCount returns how many updates have fired
func (c *Controller) UpdateCount() int {
	return c.updates
}

// GenerateNewEvents re-arms the update, adds the source's events and stops
// the queue once the end check holds. A finished source stops the queue one
// update after it ran out, so its last notes still play.
func (c *Controller) GenerateNewEvents(firetime int64) {
	if f, ok := c.source.(Finisher); ok && f.Done() {
		debug.Info("source exhausted", "updates", c.updates)
		c.queue.Stop()
		return
	}
	c.queue.Add(NewUpdateEvent(c, firetime+c.interval))
	c.updates++
	for _, e := range c.source.Generate(firetime, c) {
		c.queue.Add(e)
	}
	debug.Log("clip", "update %d at t=%d, %d pending", c.updates, firetime, c.queue.Queue().Len())

	if c.endCheck != nil && c.endCheck(c) {
		c.queue.Stop()
	}
}

// SendClip sends the launch note for clip
func (c *Controller) SendClip(clip Clip) {
	c.send(gomidi.NoteOn(0, clip.Note(), 64))
	c.lastClip = &clip
}

func (c *Controller) send(msg gomidi.Message) {
	if c.err != nil {
		return
	}
	if err := c.agent.Send(msg); err != nil {
		c.fail(err)
		return
	}
	c.sent++
	c.lastSent = msg.String()
}

// fail records the first error and stops the loop after the current tick
func (c *Controller) fail(err error) {
	if c.err == nil {
		c.err = err
		debug.Error("live path halted", "err", err)
	}
	c.queue.Stop()
}

func (c *Controller) hold(ch, key uint8)    { c.held[heldKey{ch, key}] = true }
func (c *Controller) release(ch, key uint8) { delete(c.held, heldKey{ch, key}) }

// releaseHeld sends note-off for every note still sounding
func (c *Controller) releaseHeld() {
	keys := make([]heldKey, 0, len(c.held))
	for k := range c.held {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ch != keys[j].ch {
			return keys[i].ch < keys[j].ch
		}
		return keys[i].key < keys[j].key
	})
	for _, k := range keys {
		c.send(gomidi.NoteOff(k.ch, k.key))
		delete(c.held, k)
	}
}

// RunFor runs until more than n updates have fired
func (c *Controller) RunFor(ctx context.Context, n int) error {
	c.endCheck = func(c *Controller) bool { return c.updates > n }
	return c.run(ctx)
}

// Run runs until ctx is done, the source is exhausted or a send fails
func (c *Controller) Run(ctx context.Context) error {
	c.endCheck = nil
	return c.run(ctx)
}

func (c *Controller) run(ctx context.Context) error {
	c.queue.Add(NewUpdateEvent(c, 1))
	err := c.queue.Run(ctx)
	c.releaseHeld()
	c.publish()
	close(c.snapshots)
	if c.err != nil {
		return fmt.Errorf("live path: %w", c.err)
	}
	return err
}

// Stop halts the run after the tick in progress
func (c *Controller) Stop() {
	c.queue.Stop()
}

// EventLog returns every fired event
func (c *Controller) EventLog() []event.Record {
	return c.queue.EventLog()
}

// Updates streams a snapshot after every tick. A slow reader only sees the
// latest one. The channel closes when the run ends.
func (c *Controller) Updates() <-chan Snapshot {
	return c.snapshots
}

func (c *Controller) publish() {
	s := Snapshot{
		Now:      c.queue.CurrentTime(),
		Updates:  c.updates,
		Pending:  c.queue.Queue().Len(),
		Sent:     c.sent,
		Held:     len(c.held),
		LastClip: c.lastClip,
		LastSent: c.lastSent,
		Err:      c.err,
	}
	// keep only the latest snapshot for a slow reader
	select {
	case c.snapshots <- s:
	default:
		select {
		case <-c.snapshots:
		default:
		}
		select {
		case c.snapshots <- s:
		default:
		}
	}
}
