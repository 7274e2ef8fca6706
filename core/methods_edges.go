// File: methods_edges.go
// Role: Edge lifecycle & queries.
//
// Determinism:
//   - Edges() lists sources in Vertices() order, then targets in insertion order.
//
// Concurrency:
//   - Mutators take mu for writing; queries take it for reading.

package core

import "fmt"

// AddEdge adds the directed edge from→to carrying value.
//
// Implementation:
//   - Stage 1: Validate value (ErrInvalidEdgeValue for an uncomparable label
//     or a cost that is NaN or infinite).
//   - Stage 2: Under mu, verify both endpoints (ErrMissingVertex).
//   - Stage 3: Reject an existing from→to edge (ErrDuplicateRelation).
//   - Stage 4: Append to the outgoing order and record the incoming index.
//
// Complexity:
//   - Time O(1) amortized, Space O(1).
func (g *Graph) AddEdge(from, to string, value EdgeValue) error {
	if err := value.validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkEndpoints(from, to); err != nil {
		return err
	}
	if _, dup := g.out[from].values[to]; dup {
		return fmt.Errorf("%w: %q -> %q", ErrDuplicateRelation, from, to)
	}
	g.attach(from, to, value)

	return nil
}

// AddRelation adds from→to and, when bidirectional, to→from with the same
// value. Both directions are checked before anything is written, so a
// failure leaves the graph unchanged. A bidirectional self-loop is stored once.
//
// Complexity:
//   - Time O(1) amortized, Space O(1).
func (g *Graph) AddRelation(from, to string, value EdgeValue, bidirectional bool) error {
	if err := value.validate(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkEndpoints(from, to); err != nil {
		return err
	}
	if _, dup := g.out[from].values[to]; dup {
		return fmt.Errorf("%w: %q -> %q", ErrDuplicateRelation, from, to)
	}
	mirror := bidirectional && from != to
	if mirror {
		if _, dup := g.out[to].values[from]; dup {
			return fmt.Errorf("%w: %q -> %q", ErrDuplicateRelation, to, from)
		}
	}

	g.attach(from, to, value)
	if mirror {
		g.attach(to, from, value)
	}

	return nil
}

// HasEdge reports whether the directed edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	adj, ok := g.out[from]
	if !ok {
		return false
	}
	_, ok = adj.values[to]

	return ok
}

// EdgeValue returns the value stored on from→to.
func (g *Graph) EdgeValue(from, to string) (EdgeValue, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	adj, ok := g.out[from]
	if !ok {
		return EdgeValue{}, false
	}
	v, ok := adj.values[to]

	return v, ok
}

// RemoveRelation deletes from→to and, when bidirectional, to→from. Both
// directions are checked before anything is removed, so a failure leaves the
// graph unchanged. A bidirectional self-loop is removed once.
//
// Errors:
//   - ErrMissingVertex: if either endpoint does not exist.
//   - ErrNoEdge: if a requested direction is absent.
func (g *Graph) RemoveRelation(from, to string, bidirectional bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkEndpoints(from, to); err != nil {
		return err
	}
	if _, ok := g.out[from].values[to]; !ok {
		return fmt.Errorf("%w: %q -> %q", ErrNoEdge, from, to)
	}
	mirror := bidirectional && from != to
	if mirror {
		if _, ok := g.out[to].values[from]; !ok {
			return fmt.Errorf("%w: %q -> %q", ErrNoEdge, to, from)
		}
	}

	g.detach(from, to)
	if mirror {
		g.detach(to, from)
	}

	return nil
}

// Edges returns every directed edge. Sources follow Vertices() order and each
// source's targets follow insertion order.
// Complexity: O(V log V + E).
func (g *Graph) Edges() []Edge {
	ids := g.Vertices()

	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.edges)
	for _, from := range ids {
		adj, ok := g.out[from]
		if !ok {
			continue
		}
		for _, to := range adj.order {
			out = append(out, Edge{From: from, To: to, Value: adj.values[to]})
		}
	}

	return out
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edges
}

// checkEndpoints assumes mu is held.
func (g *Graph) checkEndpoints(from, to string) error {
	if _, ok := g.vertices[from]; !ok {
		return fmt.Errorf("%w: %q", ErrMissingVertex, from)
	}
	if _, ok := g.vertices[to]; !ok {
		return fmt.Errorf("%w: %q", ErrMissingVertex, to)
	}

	return nil
}

// attach assumes mu is held for writing and from→to is absent.
func (g *Graph) attach(from, to string, value EdgeValue) {
	adj := g.out[from]
	adj.order = append(adj.order, to)
	adj.values[to] = value
	g.in[to][from] = struct{}{}
	g.edges++
}

// detach assumes mu is held for writing and from→to is present.
func (g *Graph) detach(from, to string) {
	adj := g.out[from]
	delete(adj.values, to)
	for i, id := range adj.order {
		if id == to {
			adj.order = append(adj.order[:i], adj.order[i+1:]...)
			break
		}
	}
	if src, ok := g.in[to]; ok {
		delete(src, from)
	}
	g.edges--
}
