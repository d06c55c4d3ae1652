// Package generator produces untimed note sequences for the step builder and
// the clip controller.
package generator

import (
	"fmt"

	"go-phinrip/faults"
	"go-phinrip/markov"
	"go-phinrip/note"
)

var (
	ErrEmptyNoteList         = faults.New(faults.KindConfiguration, "note list is empty")
	ErrUnknownGeneratorClass = faults.New(faults.KindConfiguration, "unknown generator class")
	ErrMissingField          = faults.New(faults.KindConfiguration, "missing required field")
)

// Generator yields notes one at a time. ok=false means the generator is
// permanently exhausted; that is not an error.
type Generator interface {
	Next() (n note.Note, ok bool, err error)
}

// historyLimit caps the diagnostic history kept per generator
const historyLimit = 4096

type history struct {
	notes []note.Note
}

func (h *history) record(n note.Note) {
	if len(h.notes) >= historyLimit {
		copy(h.notes, h.notes[1:])
		h.notes = h.notes[:len(h.notes)-1]
	}
	h.notes = append(h.notes, n)
}

// History returns the notes emitted so far, oldest first
func (h *history) History() []note.Note {
	return append([]note.Note(nil), h.notes...)
}

// Arpeggiator cycles through a fixed note list
type Arpeggiator struct {
	history
	notes []note.Note
	idx   int
}

func NewArpeggiator(notes []note.Note) (*Arpeggiator, error) {
	if len(notes) == 0 {
		return nil, ErrEmptyNoteList
	}
	return &Arpeggiator{notes: append([]note.Note(nil), notes...)}, nil
}

func (a *Arpeggiator) Next() (note.Note, bool, error) {
	n := a.notes[a.idx]
	a.idx++
	if a.idx >= len(a.notes) {
		a.idx = 0
	}
	a.record(n)
	return n, true, nil
}

// MarkovSequence emits the payload of each node a walker lands on
type MarkovSequence struct {
	history
	walker *markov.Walker[note.Note]
}

func NewMarkovSequence(w *markov.Walker[note.Note]) *MarkovSequence {
	return &MarkovSequence{walker: w}
}

func (m *MarkovSequence) Next() (note.Note, bool, error) {
	node, err := m.walker.Step()
	if err != nil {
		return note.Note{}, false, err
	}
	m.record(node.Payload)
	return node.Payload, true, nil
}

// Walker exposes the underlying walker
func (m *MarkovSequence) Walker() *markov.Walker[note.Note] {
	return m.walker
}

// Bounded passes through at most a fixed number of notes
type Bounded struct {
	gen       Generator
	remaining int
}

// Take bounds g to n notes
func Take(g Generator, n int) *Bounded {
	if n < 0 {
		n = 0
	}
	return &Bounded{gen: g, remaining: n}
}

func (b *Bounded) Next() (note.Note, bool, error) {
	if b.remaining <= 0 {
		return note.Note{}, false, nil
	}
	n, ok, err := b.gen.Next()
	if err != nil {
		return note.Note{}, false, err
	}
	if !ok {
		b.remaining = 0
		return note.Note{}, false, nil
	}
	b.remaining--
	return n, true, nil
}

// Remaining returns how many notes may still be produced
func (b *Bounded) Remaining() int {
	return b.remaining
}

// Chain drains each generator in order
type Chain struct {
	gens []Generator
	idx  int
}

func NewChain(gens ...Generator) *Chain {
	return &Chain{gens: gens}
}

func (c *Chain) Next() (note.Note, bool, error) {
	for c.idx < len(c.gens) {
		n, ok, err := c.gens[c.idx].Next()
		if err != nil {
			return note.Note{}, false, fmt.Errorf("generator %d: %w", c.idx, err)
		}
		if ok {
			return n, true, nil
		}
		c.idx++
	}
	return note.Note{}, false, nil
}

// Len returns the number of chained generators
func (c *Chain) Len() int {
	return len(c.gens)
}
