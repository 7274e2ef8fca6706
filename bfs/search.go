package bfs

import (
	"fmt"

	"github.com/katalvlaran/relgraph/core"
)

// BreadthFirstSearch returns the IDs reachable from start in visit order.
//
// The loop runs while the queue is non-empty or fewer than limit vertices
// have been recorded, so limit is a floor on the result size and never a
// cap. An empty queue means the reachable set is exhausted and the search
// stops even if the floor was not reached.
//
// Errors:
//   - ErrGraphNil, ErrBadLimit (limit < 0), core.ErrUnknownVertex.
//
// Complexity: O(V + E).
func BreadthFirstSearch(g *core.Graph, start string, limit int) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadLimit, limit)
	}
	if !g.HasVertex(start) {
		return nil, fmt.Errorf("bfs: start %q: %w", start, core.ErrUnknownVertex)
	}

	w := newWalker(g, DefaultOptions())
	w.enqueue(start, 0, "")
	for len(w.queue) > 0 || len(w.res.Order) < limit {
		if len(w.queue) == 0 {
			break
		}
		if err := w.step(); err != nil {
			return nil, err
		}
	}

	return w.res.Order, nil
}

// FindShortestPath returns a fewest-hop path from a to b, inclusive.
//
// The search stops as soon as a dequeued vertex has b among its neighbours,
// so ties between equally short paths are broken by edge insertion order.
// a == b yields [a].
//
// Errors:
//   - ErrGraphNil, core.ErrUnknownVertex (either endpoint), ErrNoPath.
//
// Complexity: O(V + E).
func FindShortestPath(g *core.Graph, a, b string) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	for _, id := range []string{a, b} {
		if !g.HasVertex(id) {
			return nil, fmt.Errorf("bfs: endpoint %q: %w", id, core.ErrUnknownVertex)
		}
	}
	if a == b {
		return []string{a}, nil
	}

	parent := map[string]string{}
	visited := map[string]bool{a: true}
	queue := []string{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		ids, err := g.NeighborIDs(cur)
		if err != nil {
			return nil, fmt.Errorf("bfs: neighbors of %q: %w", cur, err)
		}
		for _, nb := range ids {
			if nb == b {
				parent[b] = cur
				return tracePath(parent, b), nil
			}
			if !visited[nb] {
				visited[nb] = true
				parent[nb] = cur
				queue = append(queue, nb)
			}
		}
	}

	return nil, fmt.Errorf("%w: %q to %q", ErrNoPath, a, b)
}
