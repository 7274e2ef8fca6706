// Package dijkstra implements Dijkstra's shortest-path algorithm over the
// cost-valued edges of a core.Graph.
//
// Dijkstra computes the minimum-cost path from a single source vertex to all
// other reachable vertices in a graph with non-negative edge costs.
// It processes vertices in order of increasing distance using a min-heap
// priority queue, relaxing edges and updating distances accordingly.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E), the heap may hold one entry per relaxation.
//
// Notes on implementation choices:
//
//   - Edges are validated as they are relaxed: a label-valued or negative
//     edge reachable from the source fails the run. Unreachable parts of the
//     graph may carry labels.
//   - A popped entry whose distance exceeds the current best for its vertex
//     is stale and skipped; there is no decrease-key.
//   - Edges with cost ≥ InfEdgeThreshold are impassable walls. Stored costs
//     are always finite, so the default threshold walls nothing off.
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/relgraph/core"
)

// Dijkstra computes shortest distances from start to every vertex of g.
//
// Returns:
//
//   - dist: vertex ID → minimum distance; +Inf for unreachable vertices.
//   - prev: predecessor map when WithReturnPath is set, nil otherwise.
//     prev[v] == u means the shortest path to v goes through u.
//   - err:  ErrNilGraph, ErrVertexNotFound, option errors,
//     core.ErrInvalidEdgeValue or ErrNegativeWeight.
func Dijkstra(g *core.Graph, start string, opts ...Option) (map[string]float64, map[string]string, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, nil, cfg.err
	}
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !g.HasVertex(start) {
		return nil, nil, fmt.Errorf("%w: %q", ErrVertexNotFound, start)
	}

	vertices := g.Vertices()
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(map[string]float64, len(vertices)),
		pq:      make(nodePQ, 0, len(vertices)),
	}
	if cfg.ReturnPath {
		r.prev = make(map[string]string, len(vertices))
	}
	for _, v := range vertices {
		r.dist[v] = math.Inf(1)
	}
	r.dist[start] = 0
	heap.Push(&r.pq, &nodeItem{id: start, dist: 0})

	if err := r.process(); err != nil {
		return nil, nil, err
	}

	return r.dist, r.prev, nil
}

// PathTo reconstructs the path start → dest from a predecessor map
// returned with WithReturnPath. Returns ErrUnreachable when dest is not
// connected to start.
func PathTo(prev map[string]string, start, dest string) ([]string, error) {
	path := []string{dest}
	for cur := dest; cur != start; {
		p, ok := prev[cur]
		if !ok || p == "" {
			return nil, fmt.Errorf("%w: %q from %q", ErrUnreachable, dest, start)
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Graph
	options Options
	dist    map[string]float64
	prev    map[string]string
	pq      nodePQ
}

// process pops the closest vertex until the heap empties or the closest
// entry lies beyond MaxDistance.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if item.dist > r.dist[item.id] {
			continue // stale
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		if err := r.relax(item.id, item.dist); err != nil {
			return err
		}
	}

	return nil
}

// relax examines each edge out of u and improves its targets' distances.
func (r *runner) relax(u string, du float64) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %q: %w", u, err)
	}
	for _, nb := range neighbors {
		w, ok := nb.Value.AsCost()
		if !ok {
			return fmt.Errorf("%w: edge %s→%s carries label %v", core.ErrInvalidEdgeValue, u, nb.ID, nb.Value)
		}
		if w < 0 {
			return fmt.Errorf("%w: edge %s→%s weight=%g", ErrNegativeWeight, u, nb.ID, w)
		}
		if w >= r.options.InfEdgeThreshold {
			continue
		}
		nd := du + w
		if nd > r.options.MaxDistance || nd >= r.dist[nb.ID] {
			continue
		}
		r.dist[nb.ID] = nd
		if r.prev != nil {
			r.prev[nb.ID] = u
		}
		heap.Push(&r.pq, &nodeItem{id: nb.ID, dist: nd})
	}

	return nil
}

// nodeItem represents a vertex and its tentative distance from the source.
type nodeItem struct {
	id   string
	dist float64
}

// nodePQ is a min-heap of *nodeItem ordered by dist, then id.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
