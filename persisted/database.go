// Package persisted wraps a store.Database so that every successful
// mutation is followed by a full snapshot save.
//
// A failed save never undoes the in-memory change and is never returned as
// the mutation's error. It is logged, counted in Metrics, and kept for
// SaveErr until a later save succeeds.
package persisted

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/relgraph/snapshot"
	"github.com/katalvlaran/relgraph/store"
)

const defaultSaveTimeout = 30 * time.Second

// Option configures a Database.
type Option func(*Database)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(d *Database) {
		if l != nil {
			d.log = l
		}
	}
}

// WithMetrics replaces the default metrics.
func WithMetrics(m *Metrics) Option {
	return func(d *Database) {
		if m != nil {
			d.metrics = m
		}
	}
}

// WithSaveTimeout bounds each save triggered by a mutation.
func WithSaveTimeout(t time.Duration) Option {
	return func(d *Database) {
		if t > 0 {
			d.saveTimeout = t
		}
	}
}

// WithStoreOptions forwards options to the wrapped store.Database.
func WithStoreOptions(opts ...store.Option) Option {
	return func(d *Database) {
		d.storeOpts = append(d.storeOpts, opts...)
	}
}

// Database is a store.Database with write-through snapshots.
type Database struct {
	// mu serializes mutation plus save, so saved snapshots follow the
	// order of mutations.
	mu sync.Mutex

	db          *store.Database
	st          snapshot.Store
	log         *zap.Logger
	metrics     *Metrics
	saveTimeout time.Duration
	storeOpts   []store.Option

	errMu   sync.RWMutex
	saveErr error
}

// Open loads the last snapshot from st, or starts empty and writes an
// initial snapshot when st holds none. The returned Database owns st.
func Open(ctx context.Context, st snapshot.Store, opts ...Option) (*Database, error) {
	d := &Database{
		st:          st,
		log:         zap.NewNop(),
		saveTimeout: defaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.metrics == nil {
		d.metrics = NewMetrics("relgraph")
	}
	d.db = store.NewDatabase(d.storeOpts...)

	snap, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("persisted: load snapshot: %w", err)
	}
	if snap != nil {
		if err = d.db.Restore(snap); err != nil {
			return nil, fmt.Errorf("persisted: restore snapshot: %w", err)
		}
		d.log.Info("snapshot restored",
			zap.Int("nodes", d.db.NumNodes()),
			zap.Int("collections", len(snap.Collections)))
		d.updateGauges()

		return d, nil
	}

	if err = d.st.Save(ctx, d.db.Snapshot()); err != nil {
		return nil, fmt.Errorf("persisted: initial snapshot: %w", err)
	}
	d.log.Info("started with an empty database")
	d.updateGauges()

	return d, nil
}

// Store returns the wrapped database for reads and queries. Mutations made
// through it directly are not saved until the next mutation of d or Save.
func (d *Database) Store() *store.Database { return d.db }

// Metrics returns the adapter's collectors.
func (d *Database) Metrics() *Metrics { return d.metrics }

// SaveErr returns the error of the most recent save, or nil when it
// succeeded.
func (d *Database) SaveErr() error {
	d.errMu.RLock()
	defer d.errMu.RUnlock()

	return d.saveErr
}

// Add creates a collection and saves.
func (d *Database) Add(name string) (*store.Collection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, err := d.db.Add(name)
	if err != nil {
		return nil, err
	}
	d.save("add")

	return c, nil
}

// Insert creates a top-level node and saves.
func (d *Database) Insert(payload any, key string) (*store.Node, error) {
	return d.InsertAt("", payload, key)
}

// InsertAt creates a node in collection (or the top level) and saves.
func (d *Database) InsertAt(collection string, payload any, key string) (*store.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.db.InsertAt(collection, payload, key)
	if err != nil {
		return nil, err
	}
	d.save("insert")

	return n, nil
}

// Remove deletes a top-level node and/or collection and saves.
func (d *Database) Remove(name string, kind store.Kind) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.db.Remove(name, kind); err != nil {
		return err
	}
	d.save("remove")

	return nil
}

// RemoveNode deletes one node and saves.
func (d *Database) RemoveNode(collection, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.db.RemoveNode(collection, key); err != nil {
		return err
	}
	d.save("remove_node")

	return nil
}

// Relate creates a labelled relation and saves.
func (d *Database) Relate(from, to store.Ref, label any, bidirectional bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.db.Relate(from, to, label, bidirectional); err != nil {
		return err
	}
	d.save("relate")

	return nil
}

// Unrelate removes a relation and saves.
func (d *Database) Unrelate(from, to store.Ref, bidirectional bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.db.Unrelate(from, to, bidirectional); err != nil {
		return err
	}
	d.save("unrelate")

	return nil
}

// Wipe empties the database and saves.
func (d *Database) Wipe() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.db.Wipe()
	d.save("wipe")
}

// Save writes a snapshot now and returns its error.
func (d *Database) Save(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.saveContext(ctx, "save")
}

// Close closes the snapshot store.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.st.Close()
}

// save runs after a successful mutation; callers hold d.mu.
func (d *Database) save(op string) {
	ctx, cancel := context.WithTimeout(context.Background(), d.saveTimeout)
	defer cancel()
	_ = d.saveContext(ctx, op)
}

func (d *Database) saveContext(ctx context.Context, op string) error {
	start := time.Now()
	err := d.st.Save(ctx, d.db.Snapshot())
	d.metrics.SaveDuration.Observe(time.Since(start).Seconds())

	d.errMu.Lock()
	d.saveErr = err
	d.errMu.Unlock()

	if err != nil {
		d.metrics.Saves.WithLabelValues(op, "error").Inc()
		d.log.Error("snapshot save failed", zap.String("operation", op), zap.Error(err))

		return err
	}
	d.metrics.Saves.WithLabelValues(op, "ok").Inc()
	d.log.Debug("snapshot saved", zap.String("operation", op), zap.Duration("took", time.Since(start)))
	d.updateGauges()

	return nil
}

func (d *Database) updateGauges() {
	d.metrics.Nodes.Set(float64(d.db.NumNodes()))
	d.metrics.Collections.Set(float64(len(d.db.Collections())))
}
