// Package bfs provides breadth-first search over a core.Graph.
//
// What
//
//   - BreadthFirstSearch: visit order from one start vertex, with a
//     floor-style limit.
//   - FindShortestPath: a fewest-hop path between two vertices,
//     reconstructed from parent links.
//   - Walk: one multi-source traversal with a shared visited set and
//     OnVisit / OnEdge hooks. Association aggregation is built on it.
//
// Determinism
//
//	core.Graph.Neighbors returns edges in insertion order and every
//	function here enqueues in that order, so results are reproducible for a
//	given sequence of mutations.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	order, err := bfs.BreadthFirstSearch(g, "a", 0)
//	path, err := bfs.FindShortestPath(g, "a", "d")
//
//	res, err := bfs.Walk(g, seeds,
//	    bfs.WithOnEdge(func(from string, to core.Neighbor) { /* ... */ }),
//	)
//
// Errors
//
//   - ErrGraphNil            if the graph pointer is nil.
//   - core.ErrUnknownVertex  if a start, endpoint or seed does not exist.
//   - ErrBadLimit            if the limit is negative.
//   - ErrNoPath              if the destination is unreachable.
//   - ErrOptionViolation     if an Option is invalid (e.g. negative MaxDepth).
//   - Wrapped OnVisit errors and context errors.
package bfs
