package markov

// Walker moves through a graph of nodes. It never terminates on its own.
type Walker[T any] struct {
	current *Node[T]
	history []*Node[T]
}

func NewWalker[T any](start *Node[T]) *Walker[T] {
	return &Walker[T]{current: start}
}

// Current returns the node the walker is on
func (w *Walker[T]) Current() *Node[T] {
	return w.current
}

// History returns the visited nodes, oldest first, excluding Current
func (w *Walker[T]) History() []*Node[T] {
	return append([]*Node[T](nil), w.history...)
}

// Step moves to a random successor of the current node and returns it.
// On error the walker stays where it was.
func (w *Walker[T]) Step() (*Node[T], error) {
	next, err := w.current.Next()
	if err != nil {
		return nil, err
	}
	w.history = append(w.history, w.current)
	w.current = next
	return next, nil
}

// Run steps n times and returns the nodes landed on
func (w *Walker[T]) Run(n int) ([]*Node[T], error) {
	out := make([]*Node[T], 0, n)
	for i := 0; i < n; i++ {
		next, err := w.Step()
		if err != nil {
			return out, err
		}
		out = append(out, next)
	}
	return out, nil
}
