package note

import (
	"fmt"
	"sort"
	"strings"

	"go-phinrip/faults"
)

// ErrUnknownScale is returned when a scale name is not in the table
var ErrUnknownScale = faults.New(faults.KindConfiguration, "unknown scale")

type ScaleType int

const (
	ScaleChromatic ScaleType = iota
	ScaleMajor
	ScaleMinor
	ScalePentatonic
	ScaleDorian
	ScalePhrygian
	ScaleLydian
	ScaleMixolydian
	ScaleLocrian
	ScaleHarmonicMinor
	ScaleMelodicMinor
	ScaleBlues
	ScaleWholeTone
	ScaleDimHalfWhole
	ScaleDimWholeHalf
	ScaleHungarianMinor
	ScaleDoubleHarmonic
	ScalePhrygianDominant
	ScaleHirajoshi
	ScaleInSen
	ScaleYo
	ScaleBhairavi
	ScaleCount
)

// Intervals are semitones above the root within one octave
var scaleIntervals = map[ScaleType][]int{
	ScaleChromatic:        {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
	ScaleMajor:            {0, 2, 4, 5, 7, 9, 11},
	ScaleMinor:            {0, 2, 3, 5, 7, 8, 10},
	ScalePentatonic:       {0, 2, 4, 7, 9},
	ScaleDorian:           {0, 2, 3, 5, 7, 9, 10},
	ScalePhrygian:         {0, 1, 3, 5, 7, 8, 10},
	ScaleLydian:           {0, 2, 4, 6, 7, 9, 11},
	ScaleMixolydian:       {0, 2, 4, 5, 7, 9, 10},
	ScaleLocrian:          {0, 1, 3, 5, 6, 8, 10},
	ScaleHarmonicMinor:    {0, 2, 3, 5, 7, 8, 11},
	ScaleMelodicMinor:     {0, 2, 3, 5, 7, 9, 11},
	ScaleBlues:            {0, 3, 5, 6, 7, 10},
	ScaleWholeTone:        {0, 2, 4, 6, 8, 10},
	ScaleDimHalfWhole:     {0, 1, 3, 4, 6, 7, 9, 10},
	ScaleDimWholeHalf:     {0, 2, 3, 5, 6, 8, 9, 11},
	ScaleHungarianMinor:   {0, 2, 3, 6, 7, 8, 11},
	ScaleDoubleHarmonic:   {0, 1, 4, 5, 7, 8, 11},
	ScalePhrygianDominant: {0, 1, 4, 5, 7, 8, 10},
	ScaleHirajoshi:        {0, 2, 3, 7, 8},
	ScaleInSen:            {0, 1, 5, 7, 10},
	ScaleYo:               {0, 2, 5, 7, 9},
	ScaleBhairavi:         {0, 1, 3, 5, 7, 8, 10},
}

var scaleNames = []string{
	"chromatic", "major", "minor", "pentatonic",
	"dorian", "phrygian", "lydian", "mixolydian", "locrian",
	"harmonic-minor", "melodic-minor", "blues", "whole-tone",
	"dim-half-whole", "dim-whole-half", "hungarian-minor", "double-harmonic",
	"phrygian-dominant", "hirajoshi", "in-sen", "yo", "bhairavi",
}

func (s ScaleType) String() string {
	if s < 0 || s >= ScaleCount {
		return fmt.Sprintf("ScaleType(%d)", int(s))
	}
	return scaleNames[s]
}

// Intervals returns a copy of the scale's interval table
func (s ScaleType) Intervals() []int {
	return append([]int(nil), scaleIntervals[s]...)
}

// Degree returns the pitch of a scale degree above root. Degrees past the
// table wrap into the next octave.
func (s ScaleType) Degree(root, degree int) int {
	iv := scaleIntervals[s]
	oct := degree / len(iv)
	idx := degree % len(iv)
	if idx < 0 {
		idx += len(iv)
		oct--
	}
	return root + oct*12 + iv[idx]
}

// Pitches returns every in-range pitch of the scale from root over octaves,
// ending on the root an octave up
func (s ScaleType) Pitches(root, octaves int) []int {
	n := len(scaleIntervals[s]) * octaves
	out := make([]int, 0, n+1)
	for d := 0; d <= n; d++ {
		p := s.Degree(root, d)
		if p < 0 || p > 127 {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LookupScale finds a scale by name, case-insensitive. Spaces and
// underscores are treated as dashes.
func LookupScale(name string) (ScaleType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)
	for i, n := range scaleNames {
		if n == key {
			return ScaleType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScale, name)
}

// ScaleNames returns the known scale names sorted
func ScaleNames() []string {
	out := append([]string(nil), scaleNames...)
	sort.Strings(out)
	return out
}
