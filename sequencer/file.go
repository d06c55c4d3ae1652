package sequencer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"go-phinrip/faults"
	"go-phinrip/note"
)

const (
	TicksPerQuarter  = 480
	DefaultBPM       = 120
	DefaultTrackName = "Step Sequence"
)

var (
	ErrUnsupportedTimeSignature = faults.New(faults.KindValidation, "unsupported time signature")
	ErrInvalidTempo             = faults.New(faults.KindValidation, "tempo must be positive")
	ErrInvalidChannel           = faults.New(faults.KindValidation, "channel outside 0-15")
)

// TimeSignature is numerator over denominator, e.g. 6/8
type TimeSignature struct {
	Num   int
	Denom int
}

var (
	FourFour = TimeSignature{4, 4}
	SixEight = TimeSignature{6, 8}
)

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Num, ts.Denom)
}

// Supported reports whether the sink can render ts
func (ts TimeSignature) Supported() bool {
	return ts == FourFour || ts == SixEight
}

// ParseTimeSignature parses "6/8"
func ParseTimeSignature(s string) (TimeSignature, error) {
	num, denom, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return TimeSignature{}, fmt.Errorf("%w: %q", ErrUnsupportedTimeSignature, s)
	}
	n, err1 := strconv.Atoi(strings.TrimSpace(num))
	d, err2 := strconv.Atoi(strings.TrimSpace(denom))
	if err1 != nil || err2 != nil {
		return TimeSignature{}, fmt.Errorf("%w: %q", ErrUnsupportedTimeSignature, s)
	}
	return TimeSignature{n, d}, nil
}

// Settings are the per-file rendering parameters
type Settings struct {
	BPM           float64
	TimeSignature TimeSignature
	StepLength    StepLength
	TrackName     string
	// Metadata is written as a text meta event, usually the seed line
	Metadata string
}

func DefaultSettings() Settings {
	return Settings{
		BPM:           DefaultBPM,
		TimeSignature: FourFour,
		StepLength:    Eighth,
		TrackName:     DefaultTrackName,
	}
}

// Sequence is a single-track list of fixed-length steps
type Sequence struct {
	settings  Settings
	stepTicks int
	steps     []Step
}

func NewSequence(settings Settings) (*Sequence, error) {
	if !settings.TimeSignature.Supported() {
		return nil, fmt.Errorf("%w: %s; supported signatures are 4/4 and 6/8",
			ErrUnsupportedTimeSignature, settings.TimeSignature)
	}
	if !(settings.BPM > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTempo, settings.BPM)
	}
	ticks, err := settings.StepLength.Ticks(TicksPerQuarter)
	if err != nil {
		return nil, err
	}
	return &Sequence{settings: settings, stepTicks: ticks}, nil
}

func (s *Sequence) AddStep(step Step) {
	s.steps = append(s.steps, step)
}

// AddNote appends a note step after validating its values
func (s *Sequence) AddNote(pitch, velocity, channel int) error {
	if channel < 0 || channel > 15 {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, channel)
	}
	if _, err := note.New(pitch, velocity); err != nil {
		return err
	}
	s.AddStep(NoteStep(pitch, velocity, channel))
	return nil
}

// AddNoteName appends a note step from a name like "C#4"
func (s *Sequence) AddNoteName(name string, velocity, channel int) error {
	pitch, err := note.ToMIDI(name)
	if err != nil {
		return err
	}
	return s.AddNote(pitch, velocity, channel)
}

func (s *Sequence) AddRest() {
	s.AddStep(RestStep())
}

// Steps returns a copy of the steps
func (s *Sequence) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

func (s *Sequence) Len() int {
	return len(s.steps)
}

func (s *Sequence) Settings() Settings {
	return s.settings
}

// StepTicks returns the length of one step in ticks
func (s *Sequence) StepTicks() int {
	return s.stepTicks
}

// Track renders the steps as an SMF track. Rests accumulate into the delta
// of the next note-on; a trailing rest goes on the end-of-track event.
func (s *Sequence) Track() smf.Track {
	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(s.settings.TrackName))
	if s.settings.Metadata != "" {
		track.Add(0, smf.MetaText(s.settings.Metadata))
	}
	ts := s.settings.TimeSignature
	track.Add(0, smf.MetaTimeSig(uint8(ts.Num), uint8(ts.Denom), 24, 8))
	track.Add(0, smf.MetaTempo(s.settings.BPM))

	step := uint32(s.stepTicks)
	var rest uint32
	for _, st := range s.steps {
		if st.IsRest() {
			rest += step
			continue
		}
		ch, key := uint8(st.Channel), uint8(st.Pitch)
		track.Add(rest, midi.NoteOn(ch, key, uint8(st.Velocity)))
		track.Add(step, midi.NoteOff(ch, key))
		rest = 0
	}
	track.Close(rest)
	return track
}

// SMF returns the sequence as an in-memory file
func (s *Sequence) SMF() (*smf.SMF, error) {
	f := smf.New()
	f.TimeFormat = smf.MetricTicks(TicksPerQuarter)
	if err := f.Add(s.Track()); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Sequence) WriteTo(w io.Writer) (int64, error) {
	f, err := s.SMF()
	if err != nil {
		return 0, err
	}
	return f.WriteTo(w)
}

// Save writes the file to path
func (s *Sequence) Save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	if _, err := s.WriteTo(w); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
