package sequencer

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	"go-phinrip/faults"
	"go-phinrip/generator"
	"go-phinrip/modulator"
	"go-phinrip/phrandom"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrEmptyDocument = faults.New(faults.KindConfiguration, "document has no sequence-gen entries")

// Signature is a time signature as written in documents: [6, 8] or "6/8"
type Signature TimeSignature

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal([]int{s.Num, s.Denom})
}

func (s *Signature) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("%w: %s", ErrUnsupportedTimeSignature, string(data))
		}
		*s = Signature{pair[0], pair[1]}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedTimeSignature, string(data))
	}
	ts, err := ParseTimeSignature(text)
	if err != nil {
		return err
	}
	*s = Signature(ts)
	return nil
}

// Document is a JSON sequence description
type Document struct {
	Generators    []generator.Spec `json:"sequence-gen"`
	Modulators    []modulator.Spec `json:"modulators,omitempty"`
	BPM           float64          `json:"bpm,omitempty"`
	TimeSignature *Signature       `json:"time_signature,omitempty"`
	StepLength    string           `json:"step_length,omitempty"`
	TrackName     string           `json:"track_name,omitempty"`
}

// ParseDocument decodes and checks a document
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		if faults.KindOf(err) != faults.KindUnknown {
			return nil, err
		}
		return nil, faults.Wrap(faults.KindConfiguration, "invalid sequence document", err)
	}
	if len(doc.Generators) == 0 {
		return nil, ErrEmptyDocument
	}
	return &doc, nil
}

// LoadDocument reads a document from disk
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, faults.Wrap(faults.KindConfiguration, "cannot read "+path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// StepCount is the sum of every generator's notecount
func (d *Document) StepCount() int {
	total := 0
	for _, g := range d.Generators {
		if g.NoteCount > 0 {
			total += g.NoteCount
		}
	}
	return total
}

// Settings resolves the document's rendering settings over the defaults
func (d *Document) Settings() (Settings, error) {
	s := DefaultSettings()
	if d.BPM != 0 {
		s.BPM = d.BPM
	}
	if d.TimeSignature != nil {
		s.TimeSignature = TimeSignature(*d.TimeSignature)
	}
	if d.StepLength != "" {
		l, err := ParseStepLength(d.StepLength)
		if err != nil {
			return s, err
		}
		s.StepLength = l
	}
	if d.TrackName != "" {
		s.TrackName = d.TrackName
	}
	return s, nil
}

// Build constructs a builder from the document
func (d *Document) Build(gens *generator.Registry, mods *modulator.Registry, rc *phrandom.Context) (*Builder, error) {
	settings, err := d.Settings()
	if err != nil {
		return nil, err
	}
	settings.Metadata = rc.Metadata()
	if _, err := NewSequence(settings); err != nil {
		return nil, err
	}

	gen, modChain, err := d.Sources(gens, mods, rc)
	if err != nil {
		return nil, err
	}
	return NewBuilder(gen, modChain, settings), nil
}

// Sources builds the document's generators and modulators. Each generator
// with a notecount is bounded to it; generators are chained in document order.
func (d *Document) Sources(gens *generator.Registry, mods *modulator.Registry, rc *phrandom.Context) (generator.Generator, modulator.Chain, error) {
	chain := make([]generator.Generator, 0, len(d.Generators))
	for i, spec := range d.Generators {
		g, err := gens.Build(spec, rc)
		if err != nil {
			return nil, nil, fmt.Errorf("sequence-gen %d: %w", i, err)
		}
		if spec.NoteCount > 0 {
			g = generator.Take(g, spec.NoteCount)
		}
		chain = append(chain, g)
	}

	modChain, err := mods.BuildChain(d.Modulators, rc)
	if err != nil {
		return nil, nil, err
	}
	return generator.NewChain(chain...), modChain, nil
}

// Marshal encodes the document with indentation
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
