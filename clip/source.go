package clip

import (
	"fmt"
	"math"
	"math/rand/v2"

	"go-phinrip/event"
	"go-phinrip/faults"
	"go-phinrip/generator"
	"go-phinrip/midi"
	"go-phinrip/modulator"
	"go-phinrip/note"
	"go-phinrip/phrandom"
)

// Grid of the clip launcher
const (
	SceneCount = 8
	TrackCount = 8
	// noteBase is the note of track 0 scene 0
	noteBase = 10
)

// DefaultDelta is the offset from an update to the events it schedules
const DefaultDelta = 10

var ErrInvalidGrid = faults.New(faults.KindValidation, "clip grid does not fit the note range")

// Clip addresses one slot of the launcher grid
type Clip struct {
	Track int
	Scene int
}

// Note is the MIDI note that launches the clip
func (c Clip) Note() uint8 {
	return uint8(c.Track*SceneCount + c.Scene + noteBase)
}

func (c Clip) String() string {
	return fmt.Sprintf("[Track %d:Scene %d]", c.Track, c.Scene)
}

// Source produces the events for one update
type Source interface {
	Generate(firetime int64, c *Controller) []event.Event
}

// Finisher is a Source that can run out
type Finisher interface {
	Done() bool
}

// RandomClipGenerator launches one random clip per update
type RandomClipGenerator struct {
	Tracks int
	Scenes int
	Delta  int64
	rng    *rand.Rand
}

// NewRandomClipGenerator draws from the default stream of rc
func NewRandomClipGenerator(rc *phrandom.Context, tracks, scenes int) (*RandomClipGenerator, error) {
	if tracks < 1 || scenes < 1 || scenes > SceneCount || (tracks-1)*SceneCount+scenes-1+noteBase > 127 {
		return nil, fmt.Errorf("%w: %d tracks x %d scenes", ErrInvalidGrid, tracks, scenes)
	}
	return &RandomClipGenerator{
		Tracks: tracks,
		Scenes: scenes,
		Delta:  DefaultDelta,
		rng:    rc.Stream(phrandom.Default),
	}, nil
}

func (g *RandomClipGenerator) Generate(firetime int64, c *Controller) []event.Event {
	clip := Clip{
		Track: g.rng.IntN(g.Tracks),
		Scene: g.rng.IntN(g.Scenes),
	}
	return []event.Event{NewLaunchClipEvent(c, clip, firetime+g.Delta)}
}

// NoteSource plays a note generator on a fixed step grid
type NoteSource struct {
	gen       generator.Generator
	mods      modulator.Chain
	stepTicks int64
	Delta     int64
	Channel   uint8
	done      bool
}

// NewNoteSource plays gen through mods, one note every stepTicks pulses
func NewNoteSource(gen generator.Generator, mods modulator.Chain, stepTicks int64) (*NoteSource, error) {
	if stepTicks <= 0 {
		return nil, faults.Validation("step of %d ticks", stepTicks)
	}
	return &NoteSource{gen: gen, mods: mods, stepTicks: stepTicks, Delta: DefaultDelta}, nil
}

func (s *NoteSource) Done() bool {
	return s.done
}

func (s *NoteSource) Generate(firetime int64, c *Controller) []event.Event {
	if s.done {
		return nil
	}
	count := c.Interval() / s.stepTicks
	if count < 1 {
		count = 1
	}
	var out []event.Event
	for i := int64(0); i < count; i++ {
		n, ok, err := s.gen.Next()
		if err != nil {
			c.fail(err)
			s.done = true
			return out
		}
		if !ok {
			s.done = true
			return out
		}
		if n, err = s.mods.Modulate(n); err != nil {
			c.fail(err)
			s.done = true
			return out
		}
		at := firetime + s.Delta + i*s.stepTicks
		out = append(out, NewNoteEvent(c, n, s.Channel, at, s.noteTicks(n)))
	}
	return out
}

// noteTicks is the note's own length in pulses, or one step when it has none
func (s *NoteSource) noteTicks(n note.Note) int64 {
	if n.Length <= 0 {
		return s.stepTicks
	}
	return max(1, int64(math.Round(n.Length*midi.PulsesPerQuarter)))
}
