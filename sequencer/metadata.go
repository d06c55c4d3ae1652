package sequencer

import (
	"bufio"
	"io"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// Metadata summarizes a rendered step sequence file
type Metadata struct {
	Tracks          int
	TicksPerQuarter int
	TrackName       string
	Text            []string
	TimeSignature   TimeSignature
	BPM             float64
	Notes           int
	// Ticks is the length of the longest track
	Ticks int64
}

// ReadMetadata reads the meta events and note count of an SMF on disk
func ReadMetadata(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMetadataFrom(bufio.NewReader(f))
}

func ReadMetadataFrom(r io.Reader) (*Metadata, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, err
	}

	md := &Metadata{Tracks: len(s.Tracks)}
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		md.TicksPerQuarter = int(mt.Resolution())
	}

	for _, track := range s.Tracks {
		var abs int64
		for _, ev := range track {
			abs += int64(ev.Delta)

			var text string
			var bpm float64
			var num, denom, cpc, dsq uint8
			var ch, key, vel uint8
			switch {
			case ev.Message.GetMetaTrackName(&text):
				if md.TrackName == "" {
					md.TrackName = text
				}
			case ev.Message.GetMetaText(&text):
				md.Text = append(md.Text, text)
			case ev.Message.GetMetaTempo(&bpm):
				md.BPM = bpm
			case ev.Message.GetMetaTimeSig(&num, &denom, &cpc, &dsq):
				md.TimeSignature = TimeSignature{int(num), int(denom)}
			case ev.Message.GetNoteOn(&ch, &key, &vel):
				if vel > 0 {
					md.Notes++
				}
			}
		}
		if abs > md.Ticks {
			md.Ticks = abs
		}
	}
	return md, nil
}
