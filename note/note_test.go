package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-phinrip/faults"
)

func TestToMIDI(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"C4", 60},
		{"C#4", 61},
		{"Db4", 61},
		{"c4", 60},
		{"A4", 69},
		{"C-1", 0},
		{"G9", 127},
		{"B-1", 11},
		{"Eb3", 51},
		{" E3 ", 52},
		{"A2", 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMIDI(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToMIDIRejects(t *testing.T) {
	for _, name := range []string{
		"",
		"C",
		"H4",
		"G#9",
		"Cb-1",
		"C+4",
		"CB4",
		"C#",
		"C--1",
		"C4x",
		"C10",
		"C-2",
		"C4611686018427387908",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ToMIDI(name)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidNoteName)
			assert.True(t, faults.IsValidation(err))
		})
	}
}

func TestNamedKeepsSourceName(t *testing.T) {
	n, err := Named("Eb3")
	require.NoError(t, err)
	assert.Equal(t, 51, n.Pitch)
	assert.Equal(t, DefaultVelocity, n.Velocity)
	assert.Equal(t, "Note('Eb3', 96)", n.String())
}

func TestNewValidatesRanges(t *testing.T) {
	_, err := New(128, 64)
	assert.ErrorIs(t, err, ErrPitchOutOfRange)

	_, err = New(60, -1)
	assert.ErrorIs(t, err, ErrInvalidVelocity)

	_, err = NamedWithVelocity("C4", 200)
	assert.ErrorIs(t, err, ErrInvalidVelocity)

	n, err := New(61, 100)
	require.NoError(t, err)
	assert.Equal(t, "Note('C#4', 100)", n.String())
}

func TestTransposeNeverClamps(t *testing.T) {
	n := MustNamed("G9")
	_, err := n.Transpose(1)
	assert.ErrorIs(t, err, ErrPitchOutOfRange)

	up, err := MustNamed("C4").Transpose(7)
	require.NoError(t, err)
	assert.Equal(t, 67, up.Pitch)
	assert.Equal(t, "G4", up.PitchName())

	down, err := MustNamed("C-1").Transpose(-1)
	assert.Error(t, err)
	assert.Equal(t, 0, down.Pitch)
}

func TestPitchName(t *testing.T) {
	assert.Equal(t, "C-1", PitchName(0))
	assert.Equal(t, "C4", PitchName(60))
	assert.Equal(t, "G9", PitchName(127))
}

func TestScales(t *testing.T) {
	s, err := LookupScale("Harmonic Minor")
	require.NoError(t, err)
	assert.Equal(t, ScaleHarmonicMinor, s)
	assert.Equal(t, "harmonic-minor", s.String())

	assert.Equal(t, []int{60, 62, 64, 65, 67, 69, 71, 72}, ScaleMajor.Pitches(60, 1))
	assert.Equal(t, 74, ScaleMajor.Degree(60, 8))
	assert.Equal(t, 59, ScaleMajor.Degree(60, -1))

	_, err = LookupScale("nope")
	assert.ErrorIs(t, err, ErrUnknownScale)
	assert.True(t, faults.IsConfiguration(err))

	assert.Len(t, ScaleNames(), int(ScaleCount))
}
