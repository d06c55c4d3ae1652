package markov

import (
	"fmt"
	"math/rand/v2"
)

// Graph indexes nodes by label. Every node shares the graph's stream.
type Graph[T any] struct {
	nodes map[string]*Node[T]
	order []string
	rng   *rand.Rand
}

func NewGraph[T any](rng *rand.Rand) *Graph[T] {
	return &Graph[T]{
		nodes: make(map[string]*Node[T]),
		rng:   rng,
	}
}

// AddNode registers a node under label
func (g *Graph[T]) AddNode(label string, payload T) (*Node[T], error) {
	if _, ok := g.nodes[label]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, label)
	}
	n := NewNode(label, payload, g.rng)
	g.nodes[label] = n
	g.order = append(g.order, label)
	return n, nil
}

// AddTransition links two registered nodes
func (g *Graph[T]) AddTransition(from, to string, weight float64) error {
	src, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, from)
	}
	dst, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, to)
	}
	return src.AddTransition(dst, weight)
}

// Node returns the node registered under label
func (g *Graph[T]) Node(label string) (*Node[T], bool) {
	n, ok := g.nodes[label]
	return n, ok
}

// Labels returns node labels in registration order
func (g *Graph[T]) Labels() []string {
	return append([]string(nil), g.order...)
}

func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// Walker returns a walker starting at the labelled node
func (g *Graph[T]) Walker(start string) (*Walker[T], error) {
	n, ok := g.nodes[start]
	if !ok {
		return nil, fmt.Errorf("%w: start %q", ErrUnknownNode, start)
	}
	return NewWalker(n), nil
}
