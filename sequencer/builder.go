package sequencer

import (
	"fmt"

	"go-phinrip/debug"
	"go-phinrip/generator"
	"go-phinrip/modulator"
)

// Builder pulls notes from a generator through a modulator chain and lays
// them out as steps
type Builder struct {
	gen      generator.Generator
	mods     modulator.Chain
	settings Settings
	channel  int
}

func NewBuilder(gen generator.Generator, mods modulator.Chain, settings Settings) *Builder {
	return &Builder{gen: gen, mods: mods, settings: settings}
}

// SetChannel sets the MIDI channel of generated steps
func (b *Builder) SetChannel(ch int) {
	b.channel = ch
}

func (b *Builder) Settings() Settings {
	return b.settings
}

// GenerateSteps renders up to n notes. It stops early when the generator is
// exhausted and never pads with rests.
func (b *Builder) GenerateSteps(n int) (*Sequence, error) {
	seq, err := NewSequence(b.settings)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		nt, ok, err := b.gen.Next()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		if !ok {
			debug.Log("builder", "generator exhausted after %d of %d steps", i, n)
			break
		}
		nt, err = b.mods.Modulate(nt)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		if err := seq.AddNote(nt.Pitch, nt.Velocity, b.channel); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	debug.Log("builder", "generated %d steps", seq.Len())
	return seq, nil
}
