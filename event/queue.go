package event

import (
	"container/heap"
	"fmt"
)

type item struct {
	ev  Event
	at  int64
	seq uint64
}

// eventHeap orders by firetime, then by insertion
type eventHeap []item

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(item)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = item{}
	*h = old[:n-1]
	return it
}

// Queue is a discrete-event queue. It is not safe for concurrent use.
type Queue struct {
	pending eventHeap
	seq     uint64
	now     int64
	log     []Record
}

func NewQueue() *Queue {
	return &Queue{}
}

// Add schedules e. Firetimes at or before the current time fire on the
// next tick.
func (q *Queue) Add(e Event) {
	at := e.FireTime()
	if at < 0 {
		panic(fmt.Sprintf("event: negative firetime %d", at))
	}
	heap.Push(&q.pending, item{ev: e, at: at, seq: q.seq})
	q.seq++
}

// Tick advances the clock by one
func (q *Queue) Tick() int {
	return q.Advance(1)
}

// Advance moves the clock forward by n and fires every event now due.
// The due batch is taken before any event fires, so events scheduled by
// callbacks wait for a later tick. Returns the number of events fired.
func (q *Queue) Advance(n int64) int {
	if n < 0 {
		panic(fmt.Sprintf("event: cannot advance by %d", n))
	}
	q.now += n

	var batch []Event
	for q.pending.Len() > 0 && q.pending[0].at <= q.now {
		batch = append(batch, heap.Pop(&q.pending).(item).ev)
	}

	for _, e := range batch {
		res := e.Fire()
		if res == FiredWithCallback {
			if cb := e.Callback(); cb != nil {
				cb(e)
			}
		}
		q.log = append(q.log, Record{Event: e, FiredAt: q.now, Result: res})
	}
	return len(batch)
}

// CurrentTime returns the virtual clock
func (q *Queue) CurrentTime() int64 {
	return q.now
}

// EventLog returns a copy of the fired log, in firing order
func (q *Queue) EventLog() []Record {
	return append([]Record(nil), q.log...)
}

// Len returns the number of scheduled events
func (q *Queue) Len() int {
	return q.pending.Len()
}

// NextFireTime returns the earliest scheduled firetime
func (q *Queue) NextFireTime() (int64, bool) {
	if q.pending.Len() == 0 {
		return 0, false
	}
	return q.pending[0].at, true
}
