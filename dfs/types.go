// Package dfs defines types and options for stack-based depth-first
// traversal, including cancellation, a pre-visited set and edge hooks.
package dfs

import (
	"context"
	"errors"

	"github.com/katalvlaran/relgraph/core"
)

// VertexState represents the visitation state of a vertex during TopologicalSort.
const (
	White = iota // White: the vertex has not been visited yet.
	Gray         // Gray: the vertex is on the current path.
	Black        // Black: the vertex and all its descendants have been fully explored.
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to Walk or
	// TopologicalSort.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrCycleDetected indicates that TopologicalSort met a back-edge.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrNeighborFetch indicates a failure to retrieve neighbors from the graph.
	ErrNeighborFetch = errors.New("dfs: failed to fetch neighbors")
)

// Option configures optional behavior of Walk.
type Option func(*Options)

// Options holds configurable parameters for Walk.
type Options struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// PreVisited IDs are treated as already expanded: they are never visited
	// and never expanded, though edges into them are still reported.
	PreVisited []string

	// OnVisit, if non-nil, is invoked when a vertex is popped for expansion.
	// Returning an error aborts the walk with that error.
	OnVisit func(id string) error

	// OnEdge, if non-nil, is invoked for every outgoing edge of an expanded vertex.
	OnEdge func(from string, to core.Neighbor)
}

// DefaultOptions returns Options with a background context and no hooks.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the context used for cancellation checks.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithPreVisited marks ids as visited before the walk starts.
func WithPreVisited(ids ...string) Option {
	return func(o *Options) {
		o.PreVisited = append(o.PreVisited, ids...)
	}
}

// WithOnVisit registers a pre-order hook.
func WithOnVisit(fn func(id string) error) Option {
	return func(o *Options) {
		o.OnVisit = fn
	}
}

// WithOnEdge registers an edge hook.
func WithOnEdge(fn func(from string, to core.Neighbor)) Option {
	return func(o *Options) {
		o.OnEdge = fn
	}
}

// Result holds the outcome of a Walk.
type Result struct {
	// Order lists expanded vertices in pop order.
	Order []string

	// Visited contains every expanded vertex plus the pre-visited ones.
	Visited map[string]bool
}
