package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
)

// System real-time messages
const (
	Clock    uint8 = 0xF8
	Start    uint8 = 0xFA
	Continue uint8 = 0xFB
	Stop     uint8 = 0xFC
)

// PulsesPerQuarter is the MIDI clock rate
const PulsesPerQuarter = 24

// Event is a channel message the live path sends
type Event struct {
	Type     uint8 // NoteOn, NoteOff, CC
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// Message converts the event to a wire message
func (e Event) Message() (gomidi.Message, error) {
	switch e.Type {
	case NoteOn:
		return gomidi.NoteOn(e.Channel, e.Note, e.Velocity), nil
	case NoteOff:
		return gomidi.NoteOff(e.Channel, e.Note), nil
	case CC:
		return gomidi.ControlChange(e.Channel, e.Note, e.Velocity), nil
	}
	return nil, fmt.Errorf("midi: unsupported event type %#x", e.Type)
}

func (e Event) String() string {
	switch e.Type {
	case NoteOn:
		return fmt.Sprintf("note-on ch%d %d vel %d", e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return fmt.Sprintf("note-off ch%d %d", e.Channel, e.Note)
	case CC:
		return fmt.Sprintf("cc ch%d %d=%d", e.Channel, e.Note, e.Velocity)
	}
	return fmt.Sprintf("event %#x", e.Type)
}

// Transport names a Start, Continue or Stop message
func Transport(msg []byte) (string, bool) {
	if len(msg) != 1 {
		return "", false
	}
	switch msg[0] {
	case Start:
		return "start", true
	case Continue:
		return "continue", true
	case Stop:
		return "stop", true
	}
	return "", false
}

// IsClock reports whether msg is a timing clock pulse
func IsClock(msg []byte) bool {
	return len(msg) == 1 && msg[0] == Clock
}
