package store

import (
	"fmt"

	"github.com/katalvlaran/relgraph/bfs"
	"github.com/katalvlaran/relgraph/core"
)

// Associations groups every relation reachable from the collections by its
// edge value.
//
// The walk is seeded with every node of every collection, collections in
// creation order and nodes in insertion order, and shares one visited set.
// Each visited node contributes all of its outgoing relations, and their
// targets are visited whatever namespace they live in. Top-level nodes
// contribute only when some collection node reaches them. A failed walk is
// returned wrapped and no partial grouping is reported.
func (d *Database) Associations() (map[core.EdgeValue][]Association, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var seeds []string
	for _, name := range d.order {
		for _, n := range d.collections[name].ns.list() {
			seeds = append(seeds, n.ref)
		}
	}

	out := make(map[core.EdgeValue][]Association)
	if len(seeds) == 0 {
		return out, nil
	}
	_, err := bfs.Walk(d.graph, seeds, bfs.WithOnEdge(func(from string, to core.Neighbor) {
		src, dst := d.byRef[from], d.byRef[to.ID]
		if src == nil || dst == nil {
			return
		}
		out[to.Value] = append(out[to.Value], Association{From: src, To: dst})
	}))
	if err != nil {
		return nil, fmt.Errorf("store: associations: %w", err)
	}

	return out, nil
}

// NumAssociations is the total number of pairs Associations returns.
func (d *Database) NumAssociations() (int, error) {
	assoc, err := d.Associations()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, pairs := range assoc {
		total += len(pairs)
	}

	return total, nil
}
