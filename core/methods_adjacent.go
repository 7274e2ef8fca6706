// File: methods_adjacent.go
// Role: Neighborhood APIs (Neighbors, NeighborIDs).
//
// Determinism:
//   - Neighbors() and NeighborIDs() follow edge insertion order.
//
// Concurrency:
//   - Read operations hold mu for reading and return independent slices.

package core

import "fmt"

// Neighbor is one outgoing edge seen from its source vertex.
type Neighbor struct {
	ID    string
	Value EdgeValue
}

// Neighbors returns the outgoing edges of id in insertion order.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//   - ErrUnknownVertex: if the vertex does not exist.
//
// Complexity:
//   - Time O(d), Space O(d).
func (g *Graph) Neighbors(id string) ([]Neighbor, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	adj, ok := g.out[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}
	res := make([]Neighbor, len(adj.order))
	for i, to := range adj.order {
		res[i] = Neighbor{ID: to, Value: adj.values[to]}
	}

	return res, nil
}

// NeighborIDs returns the targets of id's outgoing edges in insertion order.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	adj, ok := g.out[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVertex, id)
	}

	return append([]string(nil), adj.order...), nil
}
