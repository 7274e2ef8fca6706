package store

import "fmt"

// Collection is a named namespace of nodes inside a Database.
type Collection struct {
	name string
	ns   *namespace
	db   *Database
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Insert creates a node from payload. A non-empty key must be unused in this
// collection (ErrDuplicateKey); an empty key is generated and re-rolled on
// collision.
func (c *Collection) Insert(payload any, key string) (*Node, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if err := c.attached(); err != nil {
		return nil, err
	}

	return c.db.insertLocked(c.ns, c.name, payload, key)
}

// Remove deletes the node with the given key and every relation into or
// out of it.
func (c *Collection) Remove(key string) error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if err := c.attached(); err != nil {
		return err
	}

	return c.db.removeNodeLocked(c.ns, c.name, key)
}

// Node looks up a node by key.
func (c *Collection) Node(key string) (*Node, bool) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	return c.ns.get(key)
}

// Nodes returns the nodes in insertion order.
func (c *Collection) Nodes() []*Node {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	return c.ns.list()
}

// Len returns the number of nodes.
func (c *Collection) Len() int {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	return c.ns.len()
}

// attached reports ErrNotFound once the collection was removed from its
// database. Callers hold db.mu.
func (c *Collection) attached() error {
	if cur, ok := c.db.collections[c.name]; !ok || cur != c {
		return fmt.Errorf("%w: collection %q was removed", ErrNotFound, c.name)
	}

	return nil
}
