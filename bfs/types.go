// Package bfs provides tunable options and error definitions
// for breadth‐first search over a core.Graph.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/relgraph/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrBadLimit is returned when BreadthFirstSearch receives a negative limit.
	ErrBadLimit = errors.New("bfs: limit cannot be negative")

	// ErrNoPath is returned when the destination is unreachable.
	ErrNoPath = errors.New("bfs: no path")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures Walk via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when Walk is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize a walk.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when a vertex is dequeued. If it returns an error,
	// the walk aborts and propagates that error.
	OnVisit func(id string, depth int) error

	// OnEdge is called for every outgoing edge of every visited vertex,
	// including edges into vertices that were already seen.
	OnEdge func(from string, to core.Neighbor)

	// MaxDepth, if > 0, stops enqueueing beyond this depth.
	MaxDepth int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a background context, no-op hooks
// and no depth limit.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(string, int) error { return nil },
		OnEdge:  func(string, core.Neighbor) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the walk.
func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithOnEdge registers a callback for every outgoing edge of a visited vertex.
func WithOnEdge(fn func(from string, to core.Neighbor)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEdge = fn
		}
	}
}

// WithMaxDepth stops the walk at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result holds the outcome of a walk:
//   - Order: vertices visited, in visit sequence.
//   - Depth: map from vertex ID to its hop distance from the nearest seed.
//   - Parent: map from vertex ID to its predecessor; seeds have none.
type Result struct {
	Order  []string
	Depth  map[string]int
	Parent map[string]string
}

// PathTo reconstructs the path from the seed that reached dest to dest.
// Returns ErrNoPath if dest was not reached.
func (r *Result) PathTo(dest string) ([]string, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("%w: to %q", ErrNoPath, dest)
	}

	return tracePath(r.Parent, dest), nil
}

// tracePath follows parent links back from dest and returns the path in
// forward order.
func tracePath(parent map[string]string, dest string) []string {
	path := []string{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
