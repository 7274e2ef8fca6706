// Package dfs implements depth-first traversal on core.Graph.
//
// Key features:
//   - Walk(g, seeds, opts...): explicit-stack traversal from several seeds
//     with a pre-visited set and an edge hook.
//   - TopologicalSort(g, opts...): reverse post-order over all vertices,
//     failing on cycles.
//
// Walk pushes every target of an expanded vertex and checks the visited set
// on pop, so each vertex is expanded at most once while OnEdge still sees
// every outgoing edge of every expanded vertex. Relation queries that count
// edges rely on this.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V + E) for the stack.
//
// Errors:
//
//   - ErrGraphNil               if g is nil.
//   - core.ErrUnknownVertex     if a seed is missing.
//   - ErrCycleDetected          from TopologicalSort.
//   - context.Canceled          if ctx is done.
//   - any error returned by OnVisit.
package dfs

import (
	"fmt"

	"github.com/katalvlaran/relgraph/core"
)

// walker encapsulates state during Walk.
type walker struct {
	graph *core.Graph
	opts  Options
	stack []string
	res   *Result
}

// Walk expands every vertex reachable from seeds, depth-first, using an
// explicit stack. Seeds are pushed in order, so the last seed is expanded
// first.
func Walk(g *core.Graph, seeds []string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	for _, id := range seeds {
		if !g.HasVertex(id) {
			return nil, fmt.Errorf("dfs: seed %q: %w", id, core.ErrUnknownVertex)
		}
	}

	w := &walker{
		graph: g,
		opts:  o,
		stack: append(make([]string, 0, len(seeds)), seeds...),
		res: &Result{
			Order:   make([]string, 0, len(seeds)),
			Visited: make(map[string]bool, len(o.PreVisited)+len(seeds)),
		},
	}
	for _, id := range o.PreVisited {
		w.res.Visited[id] = true
	}

	return w.res, w.loop()
}

func (w *walker) loop() error {
	for len(w.stack) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		id := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if w.res.Visited[id] {
			continue
		}
		w.res.Visited[id] = true
		w.res.Order = append(w.res.Order, id)

		if w.opts.OnVisit != nil {
			if err := w.opts.OnVisit(id); err != nil {
				return fmt.Errorf("dfs: OnVisit hook for %q: %w", id, err)
			}
		}

		nbs, err := w.graph.Neighbors(id)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
		}
		for _, nb := range nbs {
			if w.opts.OnEdge != nil {
				w.opts.OnEdge(id, nb)
			}
			w.stack = append(w.stack, nb.ID)
		}
	}

	return nil
}
