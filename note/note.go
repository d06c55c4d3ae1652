package note

import (
	"fmt"

	"go-phinrip/faults"
)

// DefaultVelocity is used when a note is built from a name alone
const DefaultVelocity = 96

// Sentinel errors
var (
	ErrInvalidNoteName = faults.New(faults.KindValidation, "invalid note name")
	ErrInvalidVelocity = faults.New(faults.KindValidation, "velocity outside 0-127")
	ErrPitchOutOfRange = faults.New(faults.KindValidation, "pitch outside 0-127")
)

// Note is a resolved MIDI note
type Note struct {
	Name     string  // source name, empty when built from a number
	Pitch    int     // 0-127
	Velocity int     // 0-127
	Length   float64 // beats, 0 = use the step length
}

// New builds a note from a MIDI pitch number
func New(pitch, velocity int) (Note, error) {
	if pitch < 0 || pitch > 127 {
		return Note{}, fmt.Errorf("%w: %d", ErrPitchOutOfRange, pitch)
	}
	if velocity < 0 || velocity > 127 {
		return Note{}, fmt.Errorf("%w: %d", ErrInvalidVelocity, velocity)
	}
	return Note{Pitch: pitch, Velocity: velocity}, nil
}

// Named builds a note from a name like "C#4" with the default velocity
func Named(name string) (Note, error) {
	return NamedWithVelocity(name, DefaultVelocity)
}

// NamedWithVelocity builds a note from a name and velocity
func NamedWithVelocity(name string, velocity int) (Note, error) {
	pitch, err := ToMIDI(name)
	if err != nil {
		return Note{}, err
	}
	n, err := New(pitch, velocity)
	if err != nil {
		return Note{}, err
	}
	n.Name = name
	return n, nil
}

// MustNamed is Named for literals, panics on error
func MustNamed(name string) Note {
	n, err := Named(name)
	if err != nil {
		panic(err)
	}
	return n
}

// Transpose returns the note shifted by semi semitones
func (n Note) Transpose(semi int) (Note, error) {
	p := n.Pitch + semi
	if p < 0 || p > 127 {
		return n, fmt.Errorf("%w: %s%+d", ErrPitchOutOfRange, n, semi)
	}
	n.Pitch = p
	n.Name = ""
	return n, nil
}

// WithLength returns the note with a length in beats
func (n Note) WithLength(beats float64) Note {
	n.Length = beats
	return n
}

// PitchName returns the sharp spelling of the pitch, e.g. "C#4"
func (n Note) PitchName() string {
	return PitchName(n.Pitch)
}

func (n Note) String() string {
	name := n.Name
	if name == "" {
		name = n.PitchName()
	}
	return fmt.Sprintf("Note('%s', %d)", name, n.Velocity)
}
