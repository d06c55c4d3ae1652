package modulator

import (
	"fmt"
	"sort"
	"sync"

	"go-phinrip/faults"
	"go-phinrip/phrandom"
)

var (
	ErrUnknownModulatorClass = faults.New(faults.KindConfiguration, "unknown modulator class")
	ErrInvalidProbability    = faults.New(faults.KindValidation, "probability outside 0-1")
	ErrNotComposable         = faults.New(faults.KindConfiguration, "modulator cannot be used here")
)

const (
	ClassTranspose  = "Transpose"
	ClassRandomGate = "RandomGate"
	ClassInRange    = "InRange"
	ClassCompose    = "Compose"
)

// DefaultProbability is used by RandomGate specs that omit "prob"
const DefaultProbability = 0.5

// Spec describes one modulator entry of a sequence document
type Spec struct {
	Class       string   `json:"cls"`
	Semitones   int      `json:"semi,omitempty"`
	Probability *float64 `json:"prob,omitempty"`
	Low         *int     `json:"low,omitempty"`
	High        *int     `json:"high,omitempty"`
	Transforms  []Spec   `json:"mods,omitempty"`
	Predicates  []Spec   `json:"preds,omitempty"`
}

type Constructor func(spec Spec, r *Registry, rc *phrandom.Context) (Modulator, error)

// Registry maps class tags to constructors
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// DefaultRegistry returns a registry with the built-in modulator classes
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ClassTranspose, buildTranspose)
	r.Register(ClassRandomGate, buildRandomGate)
	r.Register(ClassInRange, buildInRange)
	r.Register(ClassCompose, buildCompose)
	return r
}

func (r *Registry) Register(class string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[class] = ctor
}

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

// Build constructs the modulator named by spec.Class
func (r *Registry) Build(spec Spec, rc *phrandom.Context) (Modulator, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[spec.Class]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModulatorClass, spec.Class)
	}
	return ctor(spec, r, rc)
}

// BuildChain builds every spec in order
func (r *Registry) BuildChain(specs []Spec, rc *phrandom.Context) (Chain, error) {
	chain := make(Chain, 0, len(specs))
	for i, s := range specs {
		m, err := r.Build(s, rc)
		if err != nil {
			return nil, fmt.Errorf("modulator %d: %w", i, err)
		}
		chain = append(chain, m)
	}
	return chain, nil
}

func buildTranspose(spec Spec, _ *Registry, _ *phrandom.Context) (Modulator, error) {
	return Transpose{Semitones: spec.Semitones}, nil
}

func buildRandomGate(spec Spec, _ *Registry, rc *phrandom.Context) (Modulator, error) {
	p := DefaultProbability
	if spec.Probability != nil {
		p = *spec.Probability
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProbability, p)
	}
	return NewRandomGate(p, rc.Stream(phrandom.Modulators)), nil
}

func buildInRange(spec Spec, _ *Registry, _ *phrandom.Context) (Modulator, error) {
	r := InRange{Low: 0, High: 127}
	if spec.Low != nil {
		r.Low = *spec.Low
	}
	if spec.High != nil {
		r.High = *spec.High
	}
	if r.Low > r.High {
		return nil, faults.Validation("InRange low %d above high %d", r.Low, r.High)
	}
	return r, nil
}

func buildCompose(spec Spec, r *Registry, rc *phrandom.Context) (Modulator, error) {
	c := Compose{}
	for _, s := range spec.Transforms {
		m, err := r.Build(s, rc)
		if err != nil {
			return nil, err
		}
		t, ok := m.(Transform)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no transform", ErrNotComposable, s.Class)
		}
		c.Transforms = append(c.Transforms, t)
	}
	for _, s := range spec.Predicates {
		m, err := r.Build(s, rc)
		if err != nil {
			return nil, err
		}
		p, ok := m.(Predicate)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no predicate", ErrNotComposable, s.Class)
		}
		c.Predicates = append(c.Predicates, p)
	}
	return c, nil
}
