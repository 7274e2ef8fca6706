// Package prim defines configuration options and sentinel errors for
// minimum spanning tree computation over cost-valued edges.
package prim

import (
	"errors"
	"math/rand/v2"
	"sort"
)

// ErrEmptyGraph indicates that an MST was requested on a graph with no vertices.
var ErrEmptyGraph = errors.New("prim: graph has no vertices")

// ErrDisconnected indicates that Kruskal could not span every vertex.
var ErrDisconnected = errors.New("prim: graph is disconnected")

// Tree maps each parent vertex to the set of children it reached in the MST.
// Leaves appear only as children.
type Tree map[string]map[string]struct{}

// add records parent→child.
func (t Tree) add(parent, child string) {
	kids, ok := t[parent]
	if !ok {
		kids = make(map[string]struct{})
		t[parent] = kids
	}
	kids[child] = struct{}{}
}

// Children returns the children of parent sorted ascending.
func (t Tree) Children(parent string) []string {
	out := make([]string, 0, len(t[parent]))
	for c := range t[parent] {
		out = append(out, c)
	}
	sort.Strings(out)

	return out
}

// Size returns the number of tree edges.
func (t Tree) Size() int {
	n := 0
	for _, kids := range t {
		n += len(kids)
	}

	return n
}

// Options configures Prim.
type Options struct {
	// Rand picks the start vertex when Root is empty. Nil uses the global source.
	Rand *rand.Rand

	// Root fixes the start vertex.
	Root string
}

// Option configures Options.
type Option func(*Options)

// WithRand sets the random source used to pick the start vertex.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) {
		o.Rand = r
	}
}

// WithRoot fixes the start vertex and disables the random pick.
func WithRoot(root string) Option {
	return func(o *Options) {
		o.Root = root
	}
}

func (o Options) pick(n int) int {
	if o.Rand != nil {
		return o.Rand.IntN(n)
	}

	return rand.IntN(n)
}
