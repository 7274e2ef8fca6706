package prim

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/relgraph/core"
)

// Kruskal computes a minimum spanning tree over all vertices,
// treating every edge as undirected. Mirrored pairs (a→b, b→a) therefore
// count once. Self-loops are ignored.
//
// Returns the chosen edges in selection order and their total cost.
//
// Errors:
//   - ErrEmptyGraph: g is nil or has no vertices.
//   - core.ErrInvalidEdgeValue: any edge carries a label.
//   - ErrDisconnected: fewer than |V|-1 edges could be chosen.
//
// Complexity: O(E log E + α(V)·E).
func Kruskal(g *core.Graph) ([]core.Edge, float64, error) {
	if g == nil {
		return nil, 0, ErrEmptyGraph
	}
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return nil, 0, ErrEmptyGraph
	}
	if len(vertices) == 1 {
		return []core.Edge{}, 0, nil
	}

	all := g.Edges()
	edges := make([]core.Edge, 0, len(all))
	for _, e := range all {
		if _, ok := e.Value.AsCost(); !ok {
			return nil, 0, fmt.Errorf("%w: edge %s→%s carries label %v", core.ErrInvalidEdgeValue, e.From, e.To, e.Value)
		}
		if e.From == e.To {
			continue
		}
		edges = append(edges, e)
	}
	sort.SliceStable(edges, func(i, j int) bool {
		wi, _ := edges[i].Value.AsCost()
		wj, _ := edges[j].Value.AsCost()
		return wi < wj
	})

	// union-find with path halving and union by rank
	parent := make(map[string]string, len(vertices))
	rank := make(map[string]int, len(vertices))
	for _, v := range vertices {
		parent[v] = v
	}
	find := func(u string) string {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}
		return u
	}
	union := func(u, v string) {
		ru, rv := find(u), find(v)
		if rank[ru] < rank[rv] {
			parent[ru] = rv
			return
		}
		parent[rv] = ru
		if rank[ru] == rank[rv] {
			rank[ru]++
		}
	}

	var (
		mst   []core.Edge
		total float64
	)
	for _, e := range edges {
		if find(e.From) == find(e.To) {
			continue
		}
		union(e.From, e.To)
		w, _ := e.Value.AsCost()
		mst = append(mst, e)
		total += w
		if len(mst) == len(vertices)-1 {
			break
		}
	}
	if len(mst) < len(vertices)-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, total, nil
}
