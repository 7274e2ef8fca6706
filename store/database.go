package store

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/katalvlaran/relgraph/core"
)

const defaultMaxKeyAttempts = 16

// Database owns the top-level namespace, the named collections and the one
// core.Graph arena every node lives in.
//
// mu guards the namespaces and the ref registry. It is always taken before
// the graph's own lock and never held while user callbacks run.
type Database struct {
	mu sync.RWMutex

	newKey         func() string
	maxKeyAttempts int
	graphOpts      []core.GraphOption

	graph       *core.Graph
	top         *namespace
	collections map[string]*Collection
	order       []string         // collection names in creation order
	byRef       map[string]*Node // arena ID → node
}

// NewDatabase returns an empty database.
func NewDatabase(opts ...Option) *Database {
	d := &Database{
		newKey:         core.NewID,
		maxKeyAttempts: defaultMaxKeyAttempts,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.graph = core.NewGraph(d.graphOpts...)
	d.top = newNamespace()
	d.collections = make(map[string]*Collection)
	d.byRef = make(map[string]*Node)

	return d
}

// Graph returns the arena. Algorithms from bfs, dfs, dijkstra, prim and
// clique run on it directly, addressing vertices by Node.Ref.
func (d *Database) Graph() *core.Graph {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.graph
}

// Add creates an empty collection.
//
// Errors: ErrInvalidName when name has fewer than MinNameLen characters,
// ErrDuplicateCollection when it already exists.
func (d *Database) Add(name string) (*Collection, error) {
	if utf8.RuneCountInString(name) < MinNameLen {
		return nil, fmt.Errorf("%w: %q must have at least %d characters", ErrInvalidName, name, MinNameLen)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.collections[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateCollection, name)
	}
	c := &Collection{name: name, ns: newNamespace(), db: d}
	d.collections[name] = c
	d.order = append(d.order, name)

	return c, nil
}

// Insert creates a top-level node. See Collection.Insert for key rules.
func (d *Database) Insert(payload any, key string) (*Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.insertLocked(d.top, "", payload, key)
}

// InsertAt creates a node in the named collection, or at the top level when
// collection is empty. An unknown collection yields ErrNotFound.
func (d *Database) InsertAt(collection string, payload any, key string) (*Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ns, err := d.namespaceLocked(collection)
	if err != nil {
		return nil, err
	}

	return d.insertLocked(ns, collection, payload, key)
}

func (d *Database) insertLocked(ns *namespace, collection string, payload any, key string) (*Node, error) {
	data, err := core.NewPayload(payload)
	if err != nil {
		return nil, err
	}
	if key != "" {
		if ns.has(key) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, Ref{Key: key, Collection: collection})
		}
	} else {
		key, err = core.GenerateID(d.newKey, d.maxKeyAttempts, ns.has)
		if err != nil {
			return nil, fmt.Errorf("store: generate key: %w", err)
		}
	}

	ref, err := d.graph.AddVertex(data)
	if err != nil {
		return nil, fmt.Errorf("store: allocate vertex: %w", err)
	}
	n := &Node{key: key, collection: collection, ref: ref, db: d}
	ns.add(n)
	d.byRef[ref] = n

	return n, nil
}

// Remove deletes the top-level node and/or the collection called name.
//
// KindAny removes whichever of the two exist and fails with ErrNotFound only
// when neither does. KindNode and KindCollection touch only their own map and
// fail with ErrNotFound when name is absent from it.
func (d *Database) Remove(name string, kind Kind) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	inNodes := d.top.has(name)
	_, inColl := d.collections[name]

	switch kind {
	case KindAny:
		if !inNodes && !inColl {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if inNodes {
			if err := d.removeNodeLocked(d.top, "", name); err != nil {
				return err
			}
		}
		if inColl {
			d.removeCollectionLocked(name)
		}
	case KindNode:
		if !inNodes {
			return fmt.Errorf("%w: node %q", ErrNotFound, name)
		}
		return d.removeNodeLocked(d.top, "", name)
	case KindCollection:
		if !inColl {
			return fmt.Errorf("%w: collection %q", ErrNotFound, name)
		}
		d.removeCollectionLocked(name)
	default:
		return fmt.Errorf("store: remove %q: unsupported kind %v", name, kind)
	}

	return nil
}

// RemoveNode deletes one node from a collection, or from the top level when
// collection is empty.
func (d *Database) RemoveNode(collection, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ns, err := d.namespaceLocked(collection)
	if err != nil {
		return err
	}

	return d.removeNodeLocked(ns, collection, key)
}

func (d *Database) removeNodeLocked(ns *namespace, collection, key string) error {
	n, ok := ns.get(key)
	if !ok {
		return fmt.Errorf("%w: node %q", ErrNotFound, Ref{Key: key, Collection: collection})
	}
	if err := d.graph.RemoveVertex(n.ref); err != nil {
		return fmt.Errorf("store: remove %s: %w", n, err)
	}
	ns.remove(key)
	delete(d.byRef, n.ref)

	return nil
}

func (d *Database) removeCollectionLocked(name string) {
	c := d.collections[name]
	for _, n := range c.ns.list() {
		// Every ref in a namespace is registered in the arena.
		_ = d.graph.RemoveVertex(n.ref)
		delete(d.byRef, n.ref)
	}
	delete(d.collections, name)
	for i, cur := range d.order {
		if cur == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Wipe removes every collection and every top-level node. Wiping an empty
// database is a no-op.
func (d *Database) Wipe() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, name := range append([]string(nil), d.order...) {
		d.removeCollectionLocked(name)
	}
	for _, key := range d.top.keys() {
		_ = d.removeNodeLocked(d.top, "", key)
	}
}

// NumNodes counts top-level nodes plus the nodes of every collection.
func (d *Database) NumNodes() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	total := d.top.len()
	for _, c := range d.collections {
		total += c.ns.len()
	}

	return total
}

// Collection looks up a collection by name.
func (d *Database) Collection(name string) (*Collection, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.collections[name]
	return c, ok
}

// Collections returns the collections in creation order.
func (d *Database) Collections() []*Collection {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Collection, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.collections[name])
	}

	return out
}

// Node looks up a top-level node by key.
func (d *Database) Node(key string) (*Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.top.get(key)
}

// Nodes returns the top-level nodes in insertion order.
func (d *Database) Nodes() []*Node {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.top.list()
}

// NodeByRef maps an arena vertex ID back to its node.
func (d *Database) NodeByRef(ref string) (*Node, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n, ok := d.byRef[ref]
	return n, ok
}

// Resolve finds the node addressed by r.
func (d *Database) Resolve(r Ref) (*Node, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.resolveLocked(r)
}

func (d *Database) resolveLocked(r Ref) (*Node, error) {
	ns, err := d.namespaceLocked(r.Collection)
	if err != nil {
		return nil, err
	}
	n, ok := ns.get(r.Key)
	if !ok {
		return nil, fmt.Errorf("%w: node %q", ErrNotFound, r)
	}

	return n, nil
}

// Relate resolves both addresses and calls RelateTo.
func (d *Database) Relate(from, to Ref, label any, bidirectional bool) error {
	src, err := d.Resolve(from)
	if err != nil {
		return err
	}
	dst, err := d.Resolve(to)
	if err != nil {
		return err
	}

	return src.RelateTo(dst, label, bidirectional)
}

// Unrelate resolves both addresses and calls Unrelate.
func (d *Database) Unrelate(from, to Ref, bidirectional bool) error {
	src, err := d.Resolve(from)
	if err != nil {
		return err
	}
	dst, err := d.Resolve(to)
	if err != nil {
		return err
	}

	return src.Unrelate(dst, bidirectional)
}

// namespaceLocked maps "" to the top level and any other name to its
// collection.
func (d *Database) namespaceLocked(collection string) (*namespace, error) {
	if collection == "" {
		return d.top, nil
	}
	c, ok := d.collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: collection %q", ErrNotFound, collection)
	}

	return c.ns, nil
}
