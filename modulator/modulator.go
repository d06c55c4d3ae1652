// Package modulator transforms notes on their way from a generator to a sink.
//
// A modulator pairs a predicate with a transform: the transform runs only
// when the predicate holds for the incoming note. Predicates and transforms
// are separate interfaces so Compose can combine them independently.
package modulator

import (
	"fmt"
	"math/rand/v2"

	"go-phinrip/note"
)

// Modulator rewrites a note, or passes it through unchanged
type Modulator interface {
	Modulate(n note.Note) (note.Note, error)
}

// Predicate decides whether a transform applies to n
type Predicate interface {
	Holds(n note.Note) bool
}

// Transform rewrites n unconditionally
type Transform interface {
	Apply(n note.Note) (note.Note, error)
}

// PredicateFunc adapts a function to Predicate
type PredicateFunc func(n note.Note) bool

func (f PredicateFunc) Holds(n note.Note) bool { return f(n) }

// TransformFunc adapts a function to Transform
type TransformFunc func(n note.Note) (note.Note, error)

func (f TransformFunc) Apply(n note.Note) (note.Note, error) { return f(n) }

// Always holds for every note
var Always Predicate = PredicateFunc(func(note.Note) bool { return true })

// Identity returns the note unchanged
var Identity Transform = TransformFunc(func(n note.Note) (note.Note, error) { return n, nil })

// Gate applies Transform when Predicate holds
type Gate struct {
	Predicate Predicate
	Transform Transform
}

func (g Gate) Modulate(n note.Note) (note.Note, error) {
	if g.Predicate == nil || g.Transform == nil || !g.Predicate.Holds(n) {
		return n, nil
	}
	return g.Transform.Apply(n)
}

// Transpose shifts pitch by a signed number of semitones
type Transpose struct {
	Semitones int
}

func (t Transpose) Holds(note.Note) bool { return true }

func (t Transpose) Apply(n note.Note) (note.Note, error) {
	return n.Transpose(t.Semitones)
}

func (t Transpose) Modulate(n note.Note) (note.Note, error) {
	return t.Apply(n)
}

func (t Transpose) String() string {
	return fmt.Sprintf("Transpose(%+d)", t.Semitones)
}

// RandomGate holds with the given probability, drawing once per note
type RandomGate struct {
	Probability float64
	rng         *rand.Rand
}

// NewRandomGate draws from rng, normally the modulators stream
func NewRandomGate(probability float64, rng *rand.Rand) *RandomGate {
	return &RandomGate{Probability: probability, rng: rng}
}

func (r *RandomGate) Holds(note.Note) bool {
	return r.rng.Float64() < r.Probability
}

// Modulate passes the note through; a RandomGate has no transform of its own
func (r *RandomGate) Modulate(n note.Note) (note.Note, error) {
	// the draw is still consumed so the modulators stream stays aligned
	// with the gate's use inside Compose
	r.Holds(n)
	return n, nil
}

// InRange holds when the pitch is within [Low, High]
type InRange struct {
	Low, High int
}

func (r InRange) Holds(n note.Note) bool {
	return n.Pitch >= r.Low && n.Pitch <= r.High
}

func (r InRange) Modulate(n note.Note) (note.Note, error) {
	return n, nil
}

// Compose applies every transform in order when all predicates hold.
// Predicates short-circuit on the first that fails.
type Compose struct {
	Transforms []Transform
	Predicates []Predicate
}

func (c Compose) Holds(n note.Note) bool {
	for _, p := range c.Predicates {
		if !p.Holds(n) {
			return false
		}
	}
	return true
}

func (c Compose) Apply(n note.Note) (note.Note, error) {
	var err error
	for _, t := range c.Transforms {
		if n, err = t.Apply(n); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (c Compose) Modulate(n note.Note) (note.Note, error) {
	if !c.Holds(n) {
		return n, nil
	}
	return c.Apply(n)
}

// Chain applies modulators in list order
type Chain []Modulator

func (c Chain) Modulate(n note.Note) (note.Note, error) {
	var err error
	for i, m := range c {
		if n, err = m.Modulate(n); err != nil {
			return n, fmt.Errorf("modulator %d: %w", i, err)
		}
	}
	return n, nil
}
