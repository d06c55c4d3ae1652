package note

import (
	"fmt"
	"strconv"
	"strings"
)

// letterOffsets maps note letters to semitones above C
var letterOffsets = map[byte]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ToMIDI converts a name like "C#4" or "Eb3" to its MIDI number. C4 is 60.
func ToMIDI(name string) (int, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
	}

	letter := strings.ToUpper(name[:1])[0]
	offset, ok := letterOffsets[letter]
	if !ok {
		return 0, fmt.Errorf("%w: unknown letter %q in %q", ErrInvalidNoteName, name[:1], name)
	}

	rest := name[1:]
	if len(rest) > 0 {
		switch rest[0] {
		case '#':
			offset++
			rest = rest[1:]
		case 'b':
			offset--
			rest = rest[1:]
		}
	}

	if !validOctave(rest) {
		return 0, fmt.Errorf("%w: invalid octave in %q", ErrInvalidNoteName, name)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid octave in %q", ErrInvalidNoteName, name)
	}

	if octave < -1 || octave > 9 {
		return 0, fmt.Errorf("%w: %q resolves outside MIDI range 0-127", ErrInvalidNoteName, name)
	}
	pitch := (octave+1)*12 + offset
	if pitch < 0 || pitch > 127 {
		return 0, fmt.Errorf("%w: %q resolves outside MIDI range 0-127", ErrInvalidNoteName, name)
	}
	return pitch, nil
}

// validOctave accepts an optional leading '-' followed by digits
func validOctave(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// PitchName returns the sharp spelling of a MIDI number
func PitchName(pitch int) string {
	if pitch < 0 || pitch > 127 {
		return fmt.Sprintf("?%d", pitch)
	}
	return fmt.Sprintf("%s%d", sharpNames[pitch%12], pitch/12-1)
}
