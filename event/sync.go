package event

import (
	"context"
	"sync/atomic"

	"go-phinrip/debug"
)

// Pulser blocks until the next external timing pulse arrives
type Pulser interface {
	Listen(ctx context.Context) error
}

// TickObserver is told about every tick after its events have fired
type TickObserver func(now int64, fired int)

// SyncQueue ticks a Queue once per external pulse
type SyncQueue struct {
	queue    *Queue
	pulser   Pulser
	running  atomic.Bool
	observer TickObserver
}

func NewSyncQueue(p Pulser) *SyncQueue {
	s := &SyncQueue{queue: NewQueue(), pulser: p}
	s.running.Store(true)
	return s
}

// OnTick registers an observer. Call before Run.
func (s *SyncQueue) OnTick(fn TickObserver) {
	s.observer = fn
}

func (s *SyncQueue) Add(e Event) {
	s.queue.Add(e)
}

// Queue returns the underlying queue
func (s *SyncQueue) Queue() *Queue {
	return s.queue
}

func (s *SyncQueue) CurrentTime() int64 {
	return s.queue.CurrentTime()
}

func (s *SyncQueue) EventLog() []Record {
	return s.queue.EventLog()
}

// Stop halts Run after the tick in progress. Run does not return until the
// pulse it is waiting on arrives.
func (s *SyncQueue) Stop() {
	s.running.Store(false)
}

func (s *SyncQueue) Running() bool {
	return s.running.Load()
}

// Run waits for a pulse, ticks, and repeats until stopped or ctx is done
func (s *SyncQueue) Run(ctx context.Context) error {
	for s.running.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.pulser.Listen(ctx); err != nil {
			return err
		}
		fired := s.queue.Tick()
		debug.LogEvery(96, "sync", "t=%d pending=%d", s.queue.CurrentTime(), s.queue.Len())
		if s.observer != nil {
			s.observer(s.queue.CurrentTime(), fired)
		}
	}
	debug.Log("sync", "stopped at t=%d", s.queue.CurrentTime())
	return nil
}
