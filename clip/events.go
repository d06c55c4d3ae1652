package clip

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-phinrip/event"
	"go-phinrip/note"
)

// UpdateEvent asks the controller for the next batch of events and
// schedules its own successor
type UpdateEvent struct {
	event.Base
	c *Controller
}

func NewUpdateEvent(c *Controller, at int64) *UpdateEvent {
	return &UpdateEvent{Base: event.NewBase(at, nil), c: c}
}

func (u *UpdateEvent) Fire() event.Result {
	u.c.GenerateNewEvents(u.At)
	return event.Fired
}

func (u *UpdateEvent) String() string {
	return fmt.Sprintf("[t:%08d] update", u.At)
}

// LaunchClipEvent sends a clip launch
type LaunchClipEvent struct {
	event.Base
	c    *Controller
	Clip Clip
}

func NewLaunchClipEvent(c *Controller, clip Clip, at int64) *LaunchClipEvent {
	return &LaunchClipEvent{Base: event.NewBase(at, nil), c: c, Clip: clip}
}

func (l *LaunchClipEvent) Fire() event.Result {
	l.c.SendClip(l.Clip)
	return event.FiredWithCallback
}

func (l *LaunchClipEvent) String() string {
	return fmt.Sprintf("[t:%08d] launched %s", l.At, l.Clip)
}

// NoteEvent sends a note-on; its callback schedules the matching note-off
// Length ticks later
type NoteEvent struct {
	event.Base
	c       *Controller
	Note    note.Note
	Channel uint8
	Length  int64
}

func NewNoteEvent(c *Controller, n note.Note, channel uint8, at, length int64) *NoteEvent {
	e := &NoteEvent{Base: event.NewBase(at, nil), c: c, Note: n, Channel: channel, Length: length}
	e.Then = func(event.Event) {
		c.queue.Add(NewNoteOffEvent(c, n.Pitch, channel, at+length))
	}
	return e
}

func (e *NoteEvent) Fire() event.Result {
	key := uint8(e.Note.Pitch)
	e.c.send(gomidi.NoteOn(e.Channel, key, uint8(e.Note.Velocity)))
	e.c.hold(e.Channel, key)
	return event.FiredWithCallback
}

func (e *NoteEvent) String() string {
	return fmt.Sprintf("[t:%08d] %s ch%d for %d", e.At, e.Note, e.Channel, e.Length)
}

// NoteOffEvent releases a note
type NoteOffEvent struct {
	event.Base
	c       *Controller
	Pitch   int
	Channel uint8
}

func NewNoteOffEvent(c *Controller, pitch int, channel uint8, at int64) *NoteOffEvent {
	return &NoteOffEvent{Base: event.NewBase(at, nil), c: c, Pitch: pitch, Channel: channel}
}

func (e *NoteOffEvent) Fire() event.Result {
	key := uint8(e.Pitch)
	e.c.send(gomidi.NoteOff(e.Channel, key))
	e.c.release(e.Channel, key)
	return event.Fired
}

func (e *NoteOffEvent) String() string {
	return fmt.Sprintf("[t:%08d] note-off %s ch%d", e.At, note.PitchName(e.Pitch), e.Channel)
}
