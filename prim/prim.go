// Package prim provides Prim's and Kruskal's minimum spanning tree
// algorithms over the cost-valued edges of a core.Graph.
//
// Prim grows a tree from one start vertex (random unless WithRoot is given)
// using a min-heap of candidate edges ordered by (cost, from, to). Edges are
// followed in their stored direction, so on a graph built with mirrored
// edges it yields the undirected MST of the start vertex's component. Only
// vertices reachable from the start are spanned.
package prim

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/relgraph/core"
)

// Prim computes a minimum spanning tree rooted at the start vertex.
//
// Error Conditions:
//   - ErrEmptyGraph          : g is nil or has no vertices.
//   - core.ErrUnknownVertex  : WithRoot names a vertex that does not exist.
//   - core.ErrInvalidEdgeValue: an edge met during the growth carries a label.
//
// Steps:
//  1. Pick the start vertex and mark it visited.
//  2. Push every edge out of the start into the heap.
//  3. Pop the smallest (cost, from, to); skip it if `to` is visited.
//  4. Otherwise record from→to, mark `to` visited and push its edges to
//     unvisited targets.
//
// Complexity: O(E log E) time, O(V + E) memory.
func Prim(g *core.Graph, opts ...Option) (Tree, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	if g == nil {
		return nil, ErrEmptyGraph
	}
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return nil, ErrEmptyGraph
	}

	start := o.Root
	if start == "" {
		start = vertices[o.pick(len(vertices))]
	} else if !g.HasVertex(start) {
		return nil, fmt.Errorf("prim: root %q: %w", start, core.ErrUnknownVertex)
	}

	tree := make(Tree)
	visited := map[string]bool{start: true}
	pq := &edgePQ{}
	if err := pushEdges(g, pq, start, visited); err != nil {
		return nil, err
	}
	for pq.Len() > 0 {
		e := heap.Pop(pq).(candidate)
		if visited[e.to] {
			continue
		}
		visited[e.to] = true
		tree.add(e.from, e.to)
		if err := pushEdges(g, pq, e.to, visited); err != nil {
			return nil, err
		}
	}

	return tree, nil
}

// pushEdges pushes every edge out of id whose target is not yet visited.
func pushEdges(g *core.Graph, pq *edgePQ, id string, visited map[string]bool) error {
	nbs, err := g.Neighbors(id)
	if err != nil {
		return err
	}
	for _, nb := range nbs {
		if visited[nb.ID] {
			continue
		}
		w, ok := nb.Value.AsCost()
		if !ok {
			return fmt.Errorf("%w: edge %s→%s carries label %v", core.ErrInvalidEdgeValue, id, nb.ID, nb.Value)
		}
		heap.Push(pq, candidate{cost: w, from: id, to: nb.ID})
	}

	return nil
}

// candidate is one heap entry.
type candidate struct {
	cost     float64
	from, to string
}

// edgePQ implements heap.Interface for a min-heap of candidates ordered by
// cost, then from, then to.
type edgePQ []candidate

func (pq edgePQ) Len() int { return len(pq) }
func (pq edgePQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.from != b.from {
		return a.from < b.from
	}

	return a.to < b.to
}
func (pq edgePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(candidate)) }
func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	*pq = old[:n-1]

	return e
}
