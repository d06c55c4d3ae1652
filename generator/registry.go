package generator

import (
	"fmt"
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"go-phinrip/faults"
	"go-phinrip/markov"
	"go-phinrip/note"
	"go-phinrip/phrandom"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Class tags understood by DefaultRegistry
const (
	ClassArpeggiator    = "Arpeggiator"
	ClassMarkovSequence = "MarkovSequence"
)

// Transition is one [from, to, weight] triple of a transition map
type Transition struct {
	From   string
	To     string
	Weight float64
}

func (t Transition) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.From, t.To, t.Weight})
}

func (t *Transition) UnmarshalJSON(data []byte) error {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return faults.Wrap(faults.KindConfiguration, "transition must be a [from, to, weight] array", err)
	}
	if len(raw) != 3 {
		return faults.Configuration("transition %s: want 3 elements, got %d", string(data), len(raw))
	}
	from, ok1 := raw[0].(string)
	to, ok2 := raw[1].(string)
	weight, ok3 := raw[2].(float64)
	if !ok1 || !ok2 || !ok3 {
		return faults.Configuration("transition %s: want [string, string, number]", string(data))
	}
	*t = Transition{From: from, To: to, Weight: weight}
	return nil
}

// Spec describes one generator entry of a sequence document
type Spec struct {
	Class       string            `json:"cls"`
	NoteMap     map[string]string `json:"nmap,omitempty"`
	Transitions []Transition      `json:"transition_map,omitempty"`
	Notes       []string          `json:"notes,omitempty"`
	NoteCount   int               `json:"notecount,omitempty"`
	Start       string            `json:"start,omitempty"`
	Velocity    int               `json:"velocity,omitempty"`
}

func (s Spec) velocity() int {
	if s.Velocity == 0 {
		return note.DefaultVelocity
	}
	return s.Velocity
}

// Constructor builds a generator from its spec
type Constructor func(spec Spec, rc *phrandom.Context) (Generator, error)

// Registry maps class tags to constructors
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// DefaultRegistry returns a registry with the built-in generator classes
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ClassArpeggiator, buildArpeggiator)
	r.Register(ClassMarkovSequence, buildMarkovSequence)
	return r
}

// Register adds or replaces the constructor for class
func (r *Registry) Register(class string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[class] = ctor
}

// Classes returns the registered tags sorted
func (r *Registry) Classes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ctors))
	for c := range r.ctors {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Build constructs the generator named by spec.Class
func (r *Registry) Build(spec Spec, rc *phrandom.Context) (Generator, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[spec.Class]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGeneratorClass, spec.Class)
	}
	return ctor(spec, rc)
}

func buildArpeggiator(spec Spec, _ *phrandom.Context) (Generator, error) {
	if len(spec.Notes) == 0 {
		return nil, fmt.Errorf("%w: %s needs \"notes\"", ErrMissingField, spec.Class)
	}
	notes := make([]note.Note, 0, len(spec.Notes))
	for _, name := range spec.Notes {
		n, err := note.NamedWithVelocity(name, spec.velocity())
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return NewArpeggiator(notes)
}

func buildMarkovSequence(spec Spec, rc *phrandom.Context) (Generator, error) {
	if len(spec.NoteMap) == 0 {
		return nil, fmt.Errorf("%w: %s needs \"nmap\"", ErrMissingField, spec.Class)
	}
	if len(spec.Transitions) == 0 {
		return nil, fmt.Errorf("%w: %s needs \"transition_map\"", ErrMissingField, spec.Class)
	}

	g := markov.NewGraph[note.Note](rc.Stream(phrandom.Markov))
	labels := make([]string, 0, len(spec.NoteMap))
	for label := range spec.NoteMap {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		n, err := note.NamedWithVelocity(spec.NoteMap[label], spec.velocity())
		if err != nil {
			return nil, fmt.Errorf("nmap %q: %w", label, err)
		}
		if _, err := g.AddNode(label, n); err != nil {
			return nil, err
		}
	}
	for _, t := range spec.Transitions {
		if err := g.AddTransition(t.From, t.To, t.Weight); err != nil {
			return nil, err
		}
	}

	start := spec.Start
	if start == "" {
		start = spec.Transitions[0].From
	}
	w, err := g.Walker(start)
	if err != nil {
		return nil, err
	}
	return NewMarkovSequence(w), nil
}
