package store

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/relgraph/core"
	"github.com/katalvlaran/relgraph/dfs"
)

// Node is the namespace view of one arena vertex. Nodes are created only by
// Collection.Insert, Database.Insert and Database.InsertAt.
type Node struct {
	key        string
	collection string
	ref        string
	db         *Database
}

// ID returns the node's key within its container.
func (n *Node) ID() string { return n.key }

// Collection returns the owning collection name, or "" at the top level.
func (n *Node) Collection() string { return n.collection }

// Ref returns the node's arena vertex ID.
func (n *Node) Ref() string { return n.ref }

// Address returns the node's namespace address.
func (n *Node) Address() Ref { return Ref{Key: n.key, Collection: n.collection} }

// String renders the namespace address.
func (n *Node) String() string { return n.Address().String() }

// Payload returns the stored payload by reference, or nil once the node has
// been removed.
func (n *Node) Payload() map[string]any {
	v, ok := n.db.Graph().Vertex(n.ref)
	if !ok {
		return nil
	}

	return v.Payload
}

// RelateTo creates self→target carrying label. With bidirectional it also
// creates target→self; both directions are checked before either is
// written.
//
// Labels must be nil, strings, booleans or finite built-in numbers, so that
// a snapshot restores them with the same Go type (see core.EncodableLabel).
//
// Errors: ErrNotFound (nil or foreign target), core.ErrDuplicateRelation,
// core.ErrInvalidEdgeValue, core.ErrMissingVertex (a removed endpoint).
func (n *Node) RelateTo(target *Node, label any, bidirectional bool) error {
	return n.relate(target, core.Label(label), bidirectional)
}

// RelateToCost is RelateTo with a numeric cost instead of a label.
func (n *Node) RelateToCost(target *Node, cost float64, bidirectional bool) error {
	return n.relate(target, core.Cost(cost), bidirectional)
}

// Unrelate removes self→target whatever it carries. With bidirectional it
// also removes target→self, and a missing direction removes neither.
//
// Errors: ErrNotFound (nil or foreign target), core.ErrNoEdge,
// core.ErrMissingVertex (a removed endpoint).
func (n *Node) Unrelate(target *Node, bidirectional bool) error {
	if target == nil || target.db != n.db {
		return fmt.Errorf("%w: relation target is not a node of this database", ErrNotFound)
	}
	if err := n.db.Graph().RemoveRelation(n.ref, target.ref, bidirectional); err != nil {
		return fmt.Errorf("store: unrelate %s → %s: %w", n, target, err)
	}

	return nil
}

func (n *Node) relate(target *Node, v core.EdgeValue, bidirectional bool) error {
	if target == nil || target.db != n.db {
		return fmt.Errorf("%w: relation target is not a node of this database", ErrNotFound)
	}
	if label, ok := v.AsLabel(); ok && !core.EncodableLabel(label) {
		return fmt.Errorf("store: relate %s → %s: %w: label of type %T cannot be persisted",
			n, target, core.ErrInvalidEdgeValue, label)
	}
	if err := n.db.Graph().AddRelation(n.ref, target.ref, v, bidirectional); err != nil {
		return fmt.Errorf("store: relate %s → %s: %w", n, target, err)
	}

	return nil
}

// Relations returns the outgoing relations in insertion order.
func (n *Node) Relations() []Relation {
	nbs, err := n.db.Graph().Neighbors(n.ref)
	if err != nil {
		return nil
	}
	n.db.mu.RLock()
	defer n.db.mu.RUnlock()

	out := make([]Relation, 0, len(nbs))
	for _, nb := range nbs {
		if t, ok := n.db.byRef[nb.ID]; ok {
			out = append(out, Relation{Target: t, Value: nb.Value})
		}
	}

	return out
}

// RelatedBy yields the direct targets whose edge equals Label(label), in
// insertion order. The sequence is lazy: each range re-reads the current
// relations, and stopping early is honoured.
func (n *Node) RelatedBy(label any) iter.Seq[*Node] {
	want := core.Label(label)

	return func(yield func(*Node) bool) {
		for _, r := range n.Relations() {
			if r.Value.Equal(want) && !yield(r.Target) {
				return
			}
		}
	}
}

// RelatedDifference counts indirect label2 relations reachable through the
// direct label1 relations of n.
//
// Phase 1 takes the direct label1 targets as the frontier; an empty frontier
// returns an empty map without traversing. Phase 2 walks depth-first from the
// frontier with n pre-visited and, for every label2 edge out of an expanded
// node whose target is neither n nor in the frontier, counts one for that
// target.
func (n *Node) RelatedDifference(label1, label2 any) (map[*Node]int, error) {
	g := n.db.Graph()
	nbs, err := g.Neighbors(n.ref)
	if err != nil {
		return nil, fmt.Errorf("store: related difference of %s: %w", n, err)
	}

	direct := map[string]bool{n.ref: true}
	var frontier []string
	for _, nb := range nbs {
		if nb.Value.HasLabel(label1) {
			frontier = append(frontier, nb.ID)
			direct[nb.ID] = true
		}
	}
	result := make(map[*Node]int)
	if len(frontier) == 0 {
		return result, nil
	}

	indirect := core.Label(label2)
	counts := make(map[string]int)
	_, err = dfs.Walk(g, frontier,
		dfs.WithPreVisited(n.ref),
		dfs.WithOnEdge(func(_ string, to core.Neighbor) {
			if to.Value.Equal(indirect) && !direct[to.ID] {
				counts[to.ID]++
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("store: related difference of %s: %w", n, err)
	}

	n.db.mu.RLock()
	defer n.db.mu.RUnlock()
	for ref, c := range counts {
		if t, ok := n.db.byRef[ref]; ok {
			result[t] = c
		}
	}

	return result, nil
}
