package sequencer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-phinrip/faults"
	"go-phinrip/generator"
	"go-phinrip/modulator"
	"go-phinrip/note"
	"go-phinrip/phrandom"
)

func TestStepLengthTicks(t *testing.T) {
	tests := []struct {
		l    StepLength
		want int
	}{
		{Whole, 1920},
		{Half, 960},
		{Quarter, 480},
		{Eighth, 240},
		{Sixteenth, 120},
	}
	for _, tt := range tests {
		got, err := tt.l.Ticks(TicksPerQuarter)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.l.String())
	}

	_, err := Sixteenth.Ticks(1)
	assert.ErrorIs(t, err, ErrEmptyStep)

	l, err := ParseStepLength("sixteenth")
	require.NoError(t, err)
	assert.Equal(t, Sixteenth, l)
	assert.Equal(t, 0.25, l.Quarters())

	_, err = ParseStepLength("dotted")
	assert.ErrorIs(t, err, ErrUnknownStepLength)
}

func TestUnsupportedTimeSignature(t *testing.T) {
	s := DefaultSettings()
	s.TimeSignature = TimeSignature{3, 4}
	_, err := NewSequence(s)
	assert.ErrorIs(t, err, ErrUnsupportedTimeSignature)
	assert.True(t, faults.IsValidation(err))

	s = DefaultSettings()
	s.BPM = 0
	_, err = NewSequence(s)
	assert.ErrorIs(t, err, ErrInvalidTempo)
}

func TestAddNoteValidates(t *testing.T) {
	seq, err := NewSequence(DefaultSettings())
	require.NoError(t, err)

	assert.ErrorIs(t, seq.AddNote(128, 96, 0), note.ErrPitchOutOfRange)
	assert.ErrorIs(t, seq.AddNote(60, 96, 16), ErrInvalidChannel)
	assert.ErrorIs(t, seq.AddNoteName("H2", 96, 0), note.ErrInvalidNoteName)
	require.NoError(t, seq.AddNoteName("C#4", 96, 0))

	steps := seq.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, 61, steps[0].Pitch)
}

func sampleSequence(t *testing.T) *Sequence {
	t.Helper()
	s := DefaultSettings()
	s.TimeSignature = SixEight
	s.BPM = 100
	s.TrackName = "Sample"
	s.Metadata = "phrandom seed: 7"
	seq, err := NewSequence(s)
	require.NoError(t, err)

	require.NoError(t, seq.AddNoteName("C4", 96, 0))
	seq.AddRest()
	require.NoError(t, seq.AddNote(64, 80, 0))
	seq.AddRest()
	seq.AddRest()
	return seq
}

func TestTrackDeltas(t *testing.T) {
	track := sampleSequence(t).Track()

	deltas := make([]uint32, len(track))
	for i, ev := range track {
		deltas[i] = ev.Delta
	}
	// name, text, timesig, tempo, on, off, on, off, end of track
	assert.Equal(t, []uint32{0, 0, 0, 0, 0, 240, 240, 240, 480}, deltas)

	var ch, key, vel uint8
	require.True(t, track[6].Message.GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, uint8(64), key)
	assert.Equal(t, uint8(80), vel)
}

func TestWriteAndReadMetadata(t *testing.T) {
	seq := sampleSequence(t)
	path := filepath.Join(t.TempDir(), "sample.mid")
	require.NoError(t, seq.Save(path))

	md, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, 1, md.Tracks)
	assert.Equal(t, TicksPerQuarter, md.TicksPerQuarter)
	assert.Equal(t, "Sample", md.TrackName)
	assert.Equal(t, []string{"phrandom seed: 7"}, md.Text)
	assert.Equal(t, SixEight, md.TimeSignature)
	assert.InDelta(t, 100, md.BPM, 0.01)
	assert.Equal(t, 2, md.Notes)
	assert.Equal(t, int64(5*240), md.Ticks)
}

func arp(t *testing.T, names ...string) *generator.Arpeggiator {
	t.Helper()
	ns := make([]note.Note, len(names))
	for i, n := range names {
		ns[i] = note.MustNamed(n)
	}
	a, err := generator.NewArpeggiator(ns)
	require.NoError(t, err)
	return a
}

func TestBuilderStopsAtExhaustion(t *testing.T) {
	b := NewBuilder(generator.Take(arp(t, "A2", "C3", "E3"), 3), nil, DefaultSettings())
	seq, err := b.GenerateSteps(10)
	require.NoError(t, err)
	require.Equal(t, 3, seq.Len())
	for _, st := range seq.Steps() {
		assert.False(t, st.IsRest())
	}
}

func TestBuilderAppliesModulators(t *testing.T) {
	b := NewBuilder(arp(t, "C4", "E4"), modulator.Chain{modulator.Transpose{Semitones: 12}}, DefaultSettings())
	b.SetChannel(2)
	seq, err := b.GenerateSteps(4)
	require.NoError(t, err)

	var pitches []int
	for _, st := range seq.Steps() {
		pitches = append(pitches, st.Pitch)
		assert.Equal(t, 2, st.Channel)
	}
	assert.Equal(t, []int{72, 76, 72, 76}, pitches)
}

func TestBuilderPropagatesModulatorErrors(t *testing.T) {
	b := NewBuilder(arp(t, "G9"), modulator.Chain{modulator.Transpose{Semitones: 1}}, DefaultSettings())
	_, err := b.GenerateSteps(1)
	assert.ErrorIs(t, err, note.ErrPitchOutOfRange)
}

const markovDoc = `{
  "sequence-gen": [
    {
      "cls": "MarkovSequence",
      "nmap": {"note_C3": "C3", "note_E3": "E3", "note_G3": "G3"},
      "transition_map": [
        ["note_C3", "note_E3", 4],
        ["note_C3", "note_G3", 1],
        ["note_E3", "note_G3", 2],
        ["note_E3", "note_C3", 1],
        ["note_G3", "note_C3", 3]
      ],
      "notecount": 24
    },
    {"cls": "Arpeggiator", "notes": ["A2", "C3", "E3"], "notecount": 8}
  ],
  "modulators": [{"cls": "Transpose", "semi": 12}],
  "bpm": 96,
  "time_signature": [6, 8],
  "step_length": "sixteenth",
  "track_name": "Markov"
}`

func render(t *testing.T, seed int64) []byte {
	t.Helper()
	doc, err := ParseDocument([]byte(markovDoc))
	require.NoError(t, err)
	b, err := doc.Build(generator.DefaultRegistry(), modulator.DefaultRegistry(), phrandom.New(seed))
	require.NoError(t, err)
	seq, err := b.GenerateSteps(doc.StepCount())
	require.NoError(t, err)
	require.Equal(t, 32, seq.Len())

	var buf bytes.Buffer
	_, err = seq.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDocumentRendersReproducibly(t *testing.T) {
	first := render(t, 42)
	assert.Equal(t, first, render(t, 42))
	assert.NotEqual(t, first, render(t, 43))

	md, err := ReadMetadataFrom(bytes.NewReader(first))
	require.NoError(t, err)
	assert.Equal(t, "Markov", md.TrackName)
	assert.Equal(t, []string{"phrandom seed: 42"}, md.Text)
	assert.Equal(t, SixEight, md.TimeSignature)
	assert.Equal(t, 32, md.Notes)
	assert.Equal(t, int64(32*120), md.Ticks)
}

const numberWalkDoc = `{
  "sequence-gen": [
    {
      "cls": "MarkovSequence",
      "nmap": {"one": "C4", "two": "E4", "three": "G4", "four": "C5"},
      "transition_map": [
        ["one", "two", 1],
        ["two", "three", 8],
        ["two", "one", 2],
        ["three", "one", 8],
        ["three", "two", 1],
        ["three", "four", 1],
        ["four", "one", 1]
      ],
      "start": "one"
    }
  ]
}`

func renderWalk(t *testing.T, seed int64) ([]byte, []Step) {
	t.Helper()
	doc, err := ParseDocument([]byte(numberWalkDoc))
	require.NoError(t, err)
	b, err := doc.Build(generator.DefaultRegistry(), modulator.DefaultRegistry(), phrandom.New(seed))
	require.NoError(t, err)
	seq, err := b.GenerateSteps(128)
	require.NoError(t, err)
	require.Equal(t, 128, seq.Len())

	var buf bytes.Buffer
	_, err = seq.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes(), seq.Steps()
}

func TestMarkovWalkIsByteIdentical(t *testing.T) {
	first, steps := renderWalk(t, 2024)
	again, _ := renderWalk(t, 2024)
	assert.Equal(t, first, again)

	other, _ := renderWalk(t, 2025)
	assert.NotEqual(t, first, other)

	seen := map[int]bool{}
	for _, s := range steps {
		seen[s.Pitch] = true
	}
	for p := range seen {
		assert.Contains(t, []int{60, 64, 67, 72}, p)
	}
	assert.True(t, seen[64], "one only leads to two")
}

func TestDocumentSettingsAndCount(t *testing.T) {
	doc, err := ParseDocument([]byte(markovDoc))
	require.NoError(t, err)
	assert.Equal(t, 32, doc.StepCount())

	s, err := doc.Settings()
	require.NoError(t, err)
	assert.Equal(t, 96.0, s.BPM)
	assert.Equal(t, Sixteenth, s.StepLength)

	doc2, err := ParseDocument([]byte(`{"sequence-gen":[{"cls":"Arpeggiator","notes":["C4"]}],"time_signature":"4/4"}`))
	require.NoError(t, err)
	assert.Zero(t, doc2.StepCount())
	s, err = doc2.Settings()
	require.NoError(t, err)
	assert.Equal(t, FourFour, s.TimeSignature)
	assert.Equal(t, Eighth, s.StepLength)
}

func TestDocumentErrors(t *testing.T) {
	_, err := ParseDocument([]byte(`{"sequence-gen": []}`))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = ParseDocument([]byte(`{not json`))
	assert.True(t, faults.IsConfiguration(err))

	doc, err := ParseDocument([]byte(`{"sequence-gen":[{"cls":"Arpeggiator","notes":["C4"]}],"time_signature":[3,4]}`))
	require.NoError(t, err)
	_, err = doc.Build(generator.DefaultRegistry(), modulator.DefaultRegistry(), phrandom.New(1))
	assert.ErrorIs(t, err, ErrUnsupportedTimeSignature)

	doc, err = ParseDocument([]byte(`{"sequence-gen":[{"cls":"Bogus"}]}`))
	require.NoError(t, err)
	_, err = doc.Build(generator.DefaultRegistry(), modulator.DefaultRegistry(), phrandom.New(1))
	assert.ErrorIs(t, err, generator.ErrUnknownGeneratorClass)

	_, err = LoadDocument(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, faults.IsConfiguration(err))
}

func TestLoadDocumentFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markov.json")
	require.NoError(t, os.WriteFile(path, []byte(markovDoc), 0644))
	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Len(t, doc.Generators, 2)

	out, err := doc.Marshal()
	require.NoError(t, err)
	again, err := ParseDocument(out)
	require.NoError(t, err)
	assert.Equal(t, doc.StepCount(), again.StepCount())
	assert.Equal(t, SixEight, TimeSignature(*again.TimeSignature))
}
