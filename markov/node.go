// Package markov implements weighted-choice nodes and a walker that moves
// through them one random transition at a time.
package markov

import (
	"fmt"
	"math"
	"math/rand/v2"

	"go-phinrip/faults"
)

var (
	ErrNonPositiveWeight = faults.New(faults.KindValidation, "transition weight must be positive")
	ErrNoOutgoingEdges   = faults.New(faults.KindEmptyTransition, "node has no outgoing transitions")
	ErrUnknownNode       = faults.New(faults.KindConfiguration, "unknown node")
	ErrDuplicateNode     = faults.New(faults.KindConfiguration, "duplicate node")
)

// Edge is one weighted transition
type Edge[T any] struct {
	Target *Node[T]
	Weight float64
}

// Node is a weighted-choice node carrying an optional payload.
// Edges keep insertion order; total is recomputed on every add.
type Node[T any] struct {
	Label   string
	Payload T

	edges []Edge[T]
	total float64
	rng   *rand.Rand
}

// NewNode creates a node drawing from rng
func NewNode[T any](label string, payload T, rng *rand.Rand) *Node[T] {
	return &Node[T]{Label: label, Payload: payload, rng: rng}
}

// AddTransition appends an edge to target with the given weight
func (n *Node[T]) AddTransition(target *Node[T], weight float64) error {
	if target == nil {
		return fmt.Errorf("%w: nil target from %q", ErrUnknownNode, n.Label)
	}
	if !(weight > 0) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: %q -> %q weight %v", ErrNonPositiveWeight, n.Label, target.Label, weight)
	}
	n.edges = append(n.edges, Edge[T]{Target: target, Weight: weight})
	n.total = 0
	for _, e := range n.edges {
		n.total += e.Weight
	}
	return nil
}

// Edges returns a copy of the outgoing edges in insertion order
func (n *Node[T]) Edges() []Edge[T] {
	return append([]Edge[T](nil), n.edges...)
}

// TotalWeight returns the sum of all edge weights
func (n *Node[T]) TotalWeight() float64 {
	return n.total
}

// Choose picks the first edge whose cumulative weight strictly exceeds
// u*total, for a draw u in [0,1)
func (n *Node[T]) Choose(u float64) (*Node[T], error) {
	if len(n.edges) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoOutgoingEdges, n.Label)
	}
	threshold := u * n.total
	cum := 0.0
	for _, e := range n.edges {
		cum += e.Weight
		if cum > threshold {
			return e.Target, nil
		}
	}
	// rounding can leave u*total at the very top of the range
	return n.edges[len(n.edges)-1].Target, nil
}

// Next draws from the node's stream and returns the chosen target
func (n *Node[T]) Next() (*Node[T], error) {
	if len(n.edges) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoOutgoingEdges, n.Label)
	}
	return n.Choose(n.rng.Float64())
}

func (n *Node[T]) String() string {
	return fmt.Sprintf("Node(%s, %d edges)", n.Label, len(n.edges))
}
