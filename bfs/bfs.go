package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/relgraph/core"
)

// queueItem pairs a vertex ID with its BFS depth and its parent's ID.
type queueItem struct {
	id     string
	depth  int
	parent string // empty for seeds
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *core.Graph
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *Result
}

// Walk runs one breadth-first search seeded with every ID in seeds, sharing
// a single visited set across all of them: a vertex reachable from several
// seeds is expanded once. Duplicate seeds are ignored.
//
// Returns ErrGraphNil, core.ErrUnknownVertex for a missing seed,
// ErrOptionViolation for bad options, ctx errors or any OnVisit error.
func Walk(g *core.Graph, seeds []string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	for _, id := range seeds {
		if !g.HasVertex(id) {
			return nil, fmt.Errorf("bfs: seed %q: %w", id, core.ErrUnknownVertex)
		}
	}

	w := newWalker(g, o)
	for _, id := range seeds {
		if !w.visited[id] {
			w.enqueue(id, 0, "")
		}
	}

	return w.res, w.loop()
}

func newWalker(g *core.Graph, o Options) *walker {
	n := g.VertexCount()

	return &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &Result{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}
}

// enqueue marks id visited at depth d, records its parent,
// and adds it to the queue.
func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d, parent: parent})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.step(); err != nil {
			return err
		}
	}

	return nil
}

// step dequeues, visits and expands one vertex.
func (w *walker) step() error {
	select {
	case <-w.ctx.Done():
		return w.ctx.Err()
	default:
	}

	item := w.queue[0]
	w.queue = w.queue[1:]
	w.res.Order = append(w.res.Order, item.id)
	if err := w.opts.OnVisit(item.id, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
	}

	return w.expand(item)
}

// expand reports every outgoing edge of item and enqueues unseen targets
// within MaxDepth.
func (w *walker) expand(item queueItem) error {
	neighbors, err := w.graph.Neighbors(item.id)
	if err != nil {
		return fmt.Errorf("bfs: neighbors of %q: %w", item.id, err)
	}
	next := item.depth + 1
	for _, nb := range neighbors {
		w.opts.OnEdge(item.id, nb)
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		if !w.visited[nb.ID] {
			w.enqueue(nb.ID, next, item.id)
		}
	}

	return nil
}
