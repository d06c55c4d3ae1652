// Package event is a discrete-event engine: time-stamped events are ordered
// on a heap and fired against a virtual clock that only moves forward.
package event

import "fmt"

// Result reports what firing an event did
type Result int

const (
	// Fired means the event ran and its callback must not run
	Fired Result = iota + 1
	// FiredWithCallback means the event ran and its callback should follow
	FiredWithCallback
)

func (r Result) String() string {
	switch r {
	case Fired:
		return "fired"
	case FiredWithCallback:
		return "fired+callback"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Callback runs after an event that fired with FiredWithCallback
type Callback func(e Event)

// Event is anything the queue can schedule
type Event interface {
	FireTime() int64
	Fire() Result
	Callback() Callback
}

// Base is embeddable scheduling state for events. Its Fire does nothing and
// asks for the callback.
type Base struct {
	At   int64
	Then Callback
}

func NewBase(at int64, then Callback) Base {
	return Base{At: at, Then: then}
}

func (b *Base) FireTime() int64    { return b.At }
func (b *Base) Callback() Callback { return b.Then }
func (b *Base) Fire() Result       { return FiredWithCallback }

func (b *Base) String() string {
	return fmt.Sprintf("[t:%08d] event", b.At)
}

// Func is an action event backed by a function
type Func struct {
	Base
	Do func()
}

// At schedules fn at firetime t
func At(t int64, fn func()) *Func {
	return &Func{Base: Base{At: t}, Do: fn}
}

func (f *Func) Fire() Result {
	if f.Do != nil {
		f.Do()
	}
	return FiredWithCallback
}

// Record is one entry of the fired log
type Record struct {
	Event   Event
	FiredAt int64
	Result  Result
}
