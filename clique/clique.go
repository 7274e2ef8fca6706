// Package clique provides a best-effort clique heuristic over a core.Graph.
//
// The heuristic is approximate: it picks one seed vertex, then
// walks the remaining vertices in sorted order and admits a vertex as soon as
// any of its outgoing edges lands on a vertex already admitted. The result is
// a connected-ish neighbourhood of the seed, not a clique in the strict sense,
// and it is not a maximum-clique solver.
//
// Complexity: O(V log V + E).
package clique

import (
	"errors"
	"math/rand/v2"

	"github.com/katalvlaran/relgraph/core"
)

// ErrEmptyGraph indicates Clique was called on a nil or empty graph.
var ErrEmptyGraph = errors.New("clique: graph has no vertices")

// Options configures Clique.
type Options struct {
	// Rand picks the seed vertex when Seed is empty. Nil uses the global source.
	Rand *rand.Rand

	// Seed fixes the seed vertex.
	Seed string
}

// Option configures Options.
type Option func(*Options)

// WithRand sets the random source used to pick the seed vertex.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) { o.Rand = r }
}

// WithSeed fixes the seed vertex.
func WithSeed(id string) Option {
	return func(o *Options) { o.Seed = id }
}

// Clique returns the admitted vertex set.
//
// Errors:
//   - ErrEmptyGraph: g is nil or has no vertices.
//   - core.ErrUnknownVertex: WithSeed names a missing vertex.
func Clique(g *core.Graph, opts ...Option) (map[string]struct{}, error) {
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

	seed := o.Seed
	switch {
	case seed != "" && !g.HasVertex(seed):
		return nil, core.ErrUnknownVertex
	case seed == "" && o.Rand != nil:
		seed = vertices[o.Rand.IntN(len(vertices))]
	case seed == "":
		seed = vertices[rand.IntN(len(vertices))]
	}

	set := map[string]struct{}{seed: {}}
	for _, id := range vertices {
		if id == seed {
			continue
		}
		ids, err := g.NeighborIDs(id)
		if err != nil {
			return nil, err
		}
		for _, nb := range ids {
			if _, in := set[nb]; in {
				set[id] = struct{}{}
				break
			}
		}
	}

	return set, nil
}
