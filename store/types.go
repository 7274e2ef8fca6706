// Package store layers named namespaces over one core.Graph arena.
//
// A Database holds top-level nodes and named Collections of nodes. Every
// node is one arena vertex: the namespace gives it a key that is unique
// within its container, the arena gives it a ref that is unique across the
// whole database. Relations live in the arena and may cross namespaces.
//
// Errors:
//
//	ErrInvalidName         – collection name shorter than MinNameLen.
//	ErrDuplicateCollection – collection name already in use.
//	ErrDuplicateKey        – node key already present in its container.
//	ErrNotFound            – name, key, collection or node does not exist.
//
// Payload, relation and ID errors from core (ErrInvalidPayload,
// ErrDuplicateRelation, ErrInvalidEdgeValue, ErrDuplicateID) pass through
// wrapped.
package store

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/relgraph/core"
)

// Sentinel errors for namespace operations.
var (
	// ErrInvalidName indicates a collection name that is too short.
	ErrInvalidName = errors.New("store: invalid collection name")

	// ErrDuplicateCollection indicates the collection already exists.
	ErrDuplicateCollection = errors.New("store: collection already exists")

	// ErrDuplicateKey indicates the key is taken within its container.
	ErrDuplicateKey = errors.New("store: duplicate key")

	// ErrNotFound indicates the requested entry does not exist.
	ErrNotFound = errors.New("store: not found")
)

// MinNameLen is the minimum collection name length in characters.
const MinNameLen = 3

// Kind selects which map Database.Remove targets.
type Kind uint8

const (
	// KindAny removes a matching top-level node and a matching collection.
	KindAny Kind = iota

	// KindNode removes only a top-level node.
	KindNode

	// KindCollection removes only a collection.
	KindCollection
)

// String returns "any", "node" or "collection".
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindNode:
		return "node"
	case KindCollection:
		return "collection"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind maps "", "any", "node" and "collection" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "any":
		return KindAny, nil
	case "node":
		return KindNode, nil
	case "collection":
		return KindCollection, nil
	default:
		return KindAny, fmt.Errorf("store: unknown kind %q", s)
	}
}

// Ref addresses a node by key within a container; Collection "" means top level.
type Ref struct {
	Key        string `json:"key" yaml:"key"`
	Collection string `json:"belongs_to,omitempty" yaml:"belongs_to,omitempty"`
}

// String renders "collection/key" or "key".
func (r Ref) String() string {
	if r.Collection == "" {
		return r.Key
	}

	return r.Collection + "/" + r.Key
}

// Relation is one outgoing edge of a node.
type Relation struct {
	Target *Node
	Value  core.EdgeValue
}

// Association is one relation seen in aggregate.
type Association struct {
	From *Node
	To   *Node
}

// Option configures a Database.
type Option func(*Database)

// WithKeyGenerator replaces the generator for node keys that the caller
// leaves empty. A nil generator is ignored.
func WithKeyGenerator(gen func() string) Option {
	return func(d *Database) {
		if gen != nil {
			d.newKey = gen
		}
	}
}

// WithMaxKeyAttempts bounds re-rolls of colliding generated keys.
func WithMaxKeyAttempts(n int) Option {
	return func(d *Database) {
		if n > 0 {
			d.maxKeyAttempts = n
		}
	}
}

// WithGraphOptions forwards options to the underlying core.Graph.
func WithGraphOptions(opts ...core.GraphOption) Option {
	return func(d *Database) {
		d.graphOpts = append(d.graphOpts, opts...)
	}
}
