package midi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestMatchPort(t *testing.T) {
	names := []string{"Midi Through:0", "Launchpad X:LPX MIDI 1", "IAC Driver Bus 1", "iac driver bus 10"}

	i, ok := matchPort(names, "iac driver bus 10")
	require.True(t, ok)
	assert.Equal(t, 3, i, "exact match wins over an earlier substring match")

	i, ok = matchPort(names, "launchpad")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = matchPort(names, "Digitakt")
	assert.False(t, ok)
}

func TestEventMessage(t *testing.T) {
	msg, err := Event{Type: NoteOn, Channel: 0, Note: 26, Velocity: 64}.Message()
	require.NoError(t, err)

	var ch, key, vel uint8
	require.True(t, msg.GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, []uint8{0, 26, 64}, []uint8{ch, key, vel})

	msg, err = Event{Type: NoteOff, Channel: 1, Note: 60}.Message()
	require.NoError(t, err)
	assert.True(t, msg.GetNoteOff(&ch, &key, &vel))

	_, err = Event{Type: 0xE0}.Message()
	assert.Error(t, err)
}

func TestIsClock(t *testing.T) {
	assert.True(t, IsClock([]byte{0xF8}))
	assert.False(t, IsClock([]byte{0xFA}))
	assert.False(t, IsClock(gomidi.NoteOn(0, 60, 100)))
	assert.False(t, IsClock(nil))
}

func TestListenReceivesDeliveredPulse(t *testing.T) {
	a := NewPortAgent("", "", ClockOnly(true))
	defer a.Close()

	go func() {
		a.deliver(gomidi.NoteOn(0, 60, 100))
		a.deliver([]byte{Clock})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Listen(ctx))

	received, sent := a.Stats()
	assert.Equal(t, uint64(1), received)
	assert.Zero(t, sent)
}

func TestTransport(t *testing.T) {
	for msg, want := range map[uint8]string{Start: "start", Continue: "continue", Stop: "stop"} {
		name, ok := Transport([]byte{msg})
		assert.True(t, ok)
		assert.Equal(t, want, name)
	}
	_, ok := Transport([]byte{Clock})
	assert.False(t, ok)
	_, ok = Transport(gomidi.NoteOn(0, 60, 100))
	assert.False(t, ok)
}

func TestTransportIsNotAPulse(t *testing.T) {
	a := NewPortAgent("", "", ClockOnly(false))
	defer a.Close()

	go func() {
		a.deliver([]byte{Start})
		a.deliver([]byte{Stop})
		a.deliver([]byte{Clock})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Listen(ctx))

	received, _ := a.Stats()
	assert.Equal(t, uint64(1), received)
}

func TestListenHonoursContextAndClose(t *testing.T) {
	a := NewPortAgent("", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Listen(ctx), context.DeadlineExceeded)

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
	assert.ErrorIs(t, a.Listen(context.Background()), ErrNotOpen)
}

func TestSendWithoutOutput(t *testing.T) {
	a := NewPortAgent("", "")
	assert.ErrorIs(t, a.Send(gomidi.NoteOn(0, 60, 1)), ErrNotOpen)
	assert.ErrorIs(t, a.SendEvent(Event{Type: NoteOn, Note: 60}), ErrNotOpen)
}
