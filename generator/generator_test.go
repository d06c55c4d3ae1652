package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-phinrip/faults"
	"go-phinrip/note"
	"go-phinrip/phrandom"
)

func names(t *testing.T, g Generator, n int) []string {
	t.Helper()
	var out []string
	for i := 0; i < n; i++ {
		nt, ok, err := g.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		out = append(out, nt.PitchName())
	}
	return out
}

func notes(names ...string) []note.Note {
	out := make([]note.Note, len(names))
	for i, n := range names {
		out[i] = note.MustNamed(n)
	}
	return out
}

func TestArpeggiatorWraps(t *testing.T) {
	arp, err := NewArpeggiator(notes("A2", "C3", "E3", "A3"))
	require.NoError(t, err)

	assert.Equal(t, []string{"A2", "C3", "E3", "A3", "A2"}, names(t, arp, 5))
	assert.Len(t, arp.History(), 5)
}

func TestArpeggiatorRejectsEmpty(t *testing.T) {
	_, err := NewArpeggiator(nil)
	assert.ErrorIs(t, err, ErrEmptyNoteList)
}

func TestTakeBoundsAndStaysExhausted(t *testing.T) {
	arp, err := NewArpeggiator(notes("C4", "D4"))
	require.NoError(t, err)

	b := Take(arp, 3)
	assert.Equal(t, []string{"C4", "D4", "C4"}, names(t, b, 10))
	for i := 0; i < 3; i++ {
		_, ok, err := b.Next()
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Zero(t, b.Remaining())
}

func TestChainDrainsInOrder(t *testing.T) {
	a, _ := NewArpeggiator(notes("C4"))
	b, _ := NewArpeggiator(notes("E4", "G4"))
	c := NewChain(Take(a, 2), Take(b, 3))

	assert.Equal(t, []string{"C4", "C4", "E4", "G4", "E4"}, names(t, c, 10))
	_, ok, err := c.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChainOfNothingIsExhausted(t *testing.T) {
	_, ok, err := NewChain().Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

type failing struct{}

func (failing) Next() (note.Note, bool, error) {
	return note.Note{}, false, errors.New("boom")
}

func TestChainPropagatesErrors(t *testing.T) {
	_, _, err := NewChain(failing{}).Next()
	assert.EqualError(t, err, "generator 0: boom")
}

func markovSpec() Spec {
	return Spec{
		Class: ClassMarkovSequence,
		NoteMap: map[string]string{
			"one":   "C3",
			"two":   "E3",
			"three": "G3",
		},
		Transitions: []Transition{
			{"one", "two", 2},
			{"one", "three", 1},
			{"two", "three", 1},
			{"three", "one", 1},
			{"three", "two", 1},
		},
		NoteCount: 16,
	}
}

func TestMarkovSequenceReproducible(t *testing.T) {
	reg := DefaultRegistry()
	build := func() []string {
		g, err := reg.Build(markovSpec(), phrandom.New(42))
		require.NoError(t, err)
		return names(t, g, 64)
	}
	first := build()
	assert.Len(t, first, 64)
	assert.Equal(t, first, build())
	for _, n := range first {
		assert.Contains(t, []string{"C3", "E3", "G3"}, n)
	}
}

func TestMarkovSequenceFromOneOnlyReachesSuccessors(t *testing.T) {
	g, err := DefaultRegistry().Build(markovSpec(), phrandom.New(1))
	require.NoError(t, err)
	first, ok, err := g.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, []string{"E3", "G3"}, first.PitchName())
}

func TestMarkovSequenceDeadEnd(t *testing.T) {
	spec := Spec{
		Class:       ClassMarkovSequence,
		NoteMap:     map[string]string{"a": "C4", "b": "D4"},
		Transitions: []Transition{{"a", "b", 1}},
	}
	g, err := DefaultRegistry().Build(spec, phrandom.New(1))
	require.NoError(t, err)

	_, ok, err := g.Next()
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = g.Next()
	assert.True(t, faults.IsEmptyTransition(err))
}

func TestRegistryErrors(t *testing.T) {
	reg := DefaultRegistry()
	rc := phrandom.New(1)

	_, err := reg.Build(Spec{Class: "Nope"}, rc)
	assert.ErrorIs(t, err, ErrUnknownGeneratorClass)
	assert.True(t, faults.IsConfiguration(err))

	_, err = reg.Build(Spec{Class: ClassArpeggiator}, rc)
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = reg.Build(Spec{Class: ClassMarkovSequence, NoteMap: map[string]string{"a": "C4"}}, rc)
	assert.ErrorIs(t, err, ErrMissingField)

	spec := markovSpec()
	spec.Start = "missing"
	_, err = reg.Build(spec, rc)
	assert.True(t, faults.IsConfiguration(err))

	spec = markovSpec()
	spec.NoteMap["one"] = "X9"
	_, err = reg.Build(spec, rc)
	assert.ErrorIs(t, err, note.ErrInvalidNoteName)

	assert.Equal(t, []string{ClassArpeggiator, ClassMarkovSequence}, reg.Classes())
}

func TestSpecDecodesTransitionTriples(t *testing.T) {
	raw := `{"cls":"MarkovSequence","nmap":{"note_C3":"C3","note_D3":"D3"},
		"transition_map":[["note_C3","note_D3",4],["note_D3","note_C3",0.5]],"notecount":8}`
	var spec Spec
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))
	assert.Equal(t, []Transition{{"note_C3", "note_D3", 4}, {"note_D3", "note_C3", 0.5}}, spec.Transitions)
	assert.Equal(t, 8, spec.NoteCount)

	out, err := json.Marshal(spec.Transitions[0])
	require.NoError(t, err)
	assert.JSONEq(t, `["note_C3","note_D3",4]`, string(out))

	err = json.Unmarshal([]byte(`{"cls":"MarkovSequence","transition_map":[["a","b"]]}`), &spec)
	assert.Error(t, err)
}

func TestArpeggiatorFromSpecUsesVelocity(t *testing.T) {
	g, err := DefaultRegistry().Build(Spec{Class: ClassArpeggiator, Notes: []string{"C4"}, Velocity: 70}, phrandom.New(1))
	require.NoError(t, err)
	n, ok, err := g.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 70, n.Velocity)
}
