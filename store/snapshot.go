package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/katalvlaran/relgraph/core"
)

// Snapshot is the full structural state of a Database. Relations name their
// target by arena ref, so they survive across namespaces.
type Snapshot struct {
	Nodes       []NodeRecord       `json:"nodes"`
	Collections []CollectionRecord `json:"collections"`
}

// CollectionRecord is one collection and its nodes in insertion order.
type CollectionRecord struct {
	Name  string       `json:"name"`
	Nodes []NodeRecord `json:"nodes"`
}

// NodeRecord is one node with its payload and outgoing relations.
type NodeRecord struct {
	Key       string           `json:"key"`
	Ref       string           `json:"ref"`
	Data      map[string]any   `json:"data"`
	Relations []RelationRecord `json:"relations,omitempty"`
}

// UnmarshalJSON decodes a record and restores integer payload values as
// int64 instead of float64, so large integers keep their precision. Other
// numbers decode as float64.
func (r *NodeRecord) UnmarshalJSON(data []byte) error {
	type plain NodeRecord
	var p plain
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return err
	}
	for k, v := range p.Data {
		p.Data[k] = restoreNumbers(v)
	}
	*r = NodeRecord(p)

	return nil
}

// restoreNumbers replaces json.Number values, at any depth, with int64 when
// the literal is an integer in range and float64 otherwise.
func restoreNumbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	case map[string]any:
		for k, e := range x {
			x[k] = restoreNumbers(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = restoreNumbers(e)
		}
		return x
	default:
		return v
	}
}

// RelationRecord is one outgoing edge.
type RelationRecord struct {
	To    string         `json:"to"`
	Value core.EdgeValue `json:"value"`
}

// Snapshot captures the current state. Payload maps are shared with the
// live database, not copied.
func (d *Database) Snapshot() *Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := &Snapshot{
		Nodes:       d.recordsLocked(d.top),
		Collections: make([]CollectionRecord, 0, len(d.order)),
	}
	for _, name := range d.order {
		s.Collections = append(s.Collections, CollectionRecord{
			Name:  name,
			Nodes: d.recordsLocked(d.collections[name].ns),
		})
	}

	return s
}

func (d *Database) recordsLocked(ns *namespace) []NodeRecord {
	out := make([]NodeRecord, 0, ns.len())
	for _, n := range ns.list() {
		rec := NodeRecord{Key: n.key, Ref: n.ref}
		if v, ok := d.graph.Vertex(n.ref); ok {
			rec.Data = v.Payload
		}
		nbs, _ := d.graph.Neighbors(n.ref)
		for _, nb := range nbs {
			rec.Relations = append(rec.Relations, RelationRecord{To: nb.ID, Value: nb.Value})
		}
		out = append(out, rec)
	}

	return out
}

// Restore replaces the whole state of d with s. The new state is built
// aside and swapped in only when every record is valid; on error d is left
// untouched. Nodes handed out before Restore no longer belong to d.
func (d *Database) Restore(s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("store: restore: nil snapshot")
	}

	g := core.NewGraph(d.graphOpts...)
	top := newNamespace()
	collections := make(map[string]*Collection, len(s.Collections))
	order := make([]string, 0, len(s.Collections))
	byRef := make(map[string]*Node)

	load := func(ns *namespace, collection string, recs []NodeRecord) error {
		for _, rec := range recs {
			if rec.Key == "" {
				return fmt.Errorf("store: restore %q: empty node key", collection)
			}
			if ns.has(rec.Key) {
				return fmt.Errorf("%w: %q", ErrDuplicateKey, Ref{Key: rec.Key, Collection: collection})
			}
			data := rec.Data
			if data == nil {
				data = map[string]any{}
			}
			if err := g.InsertVertex(rec.Ref, data); err != nil {
				return fmt.Errorf("store: restore %q: %w", Ref{Key: rec.Key, Collection: collection}, err)
			}
			n := &Node{key: rec.Key, collection: collection, ref: rec.Ref, db: d}
			ns.add(n)
			byRef[rec.Ref] = n
		}

		return nil
	}

	if err := load(top, "", s.Nodes); err != nil {
		return err
	}
	for _, cr := range s.Collections {
		if utf8.RuneCountInString(cr.Name) < MinNameLen {
			return fmt.Errorf("%w: %q", ErrInvalidName, cr.Name)
		}
		if _, ok := collections[cr.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateCollection, cr.Name)
		}
		c := &Collection{name: cr.Name, ns: newNamespace(), db: d}
		if err := load(c.ns, cr.Name, cr.Nodes); err != nil {
			return err
		}
		collections[cr.Name] = c
		order = append(order, cr.Name)
	}

	link := func(recs []NodeRecord) error {
		for _, rec := range recs {
			for _, rel := range rec.Relations {
				if err := g.AddEdge(rec.Ref, rel.To, rel.Value); err != nil {
					return fmt.Errorf("store: restore relation %s → %s: %w", rec.Ref, rel.To, err)
				}
			}
		}

		return nil
	}
	if err := link(s.Nodes); err != nil {
		return err
	}
	for _, cr := range s.Collections {
		if err := link(cr.Nodes); err != nil {
			return err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.graph, d.top, d.collections, d.order, d.byRef = g, top, collections, order, byRef

	return nil
}
