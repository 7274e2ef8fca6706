package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/katalvlaran/relgraph/store"
)

// keyPrefix namespaces the two documents inside a shared badger database.
const keyPrefix = "relgraph/snapshot/"

// BadgerConfig holds configuration for a BadgerStore.
type BadgerConfig struct {
	// Path is the badger directory. Ignored when InMemory is true.
	Path string

	// InMemory keeps everything in RAM.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Logger receives badger's internal log lines. Nil silences them.
	Logger *zap.Logger
}

// badgerLogger adapts zap to badger.Logger.
type badgerLogger struct {
	sugar *zap.SugaredLogger
}

func (l badgerLogger) Errorf(format string, args ...any)   { l.sugar.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...any) { l.sugar.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...any)    { l.sugar.Infof(format, args...) }
func (l badgerLogger) Debugf(format string, args ...any)   { l.sugar.Debugf(format, args...) }

// BadgerStore keeps both documents in one badger database and writes them in
// a single transaction.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (and creates) the badger database described by cfg.
func NewBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("snapshot: badger store needs a path")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("snapshot: create badger directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(badgerLogger{sugar: cfg.Logger.Named("badger").Sugar()})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open badger: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// Load implements Store.
func (b *BadgerStore) Load(ctx context.Context) (*store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var nodes, collections []byte
	err := b.db.View(func(txn *badger.Txn) error {
		var err error
		if nodes, err = getDoc(txn, NodesDoc); err != nil {
			return err
		}
		collections, err = getDoc(txn, CollectionsDoc)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: badger load: %w", err)
	}

	return decode(nodes, collections)
}

func getDoc(txn *badger.Txn, doc string) ([]byte, error) {
	item, err := txn.Get([]byte(keyPrefix + doc))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item.ValueCopy(nil)
}

// Save implements Store.
func (b *BadgerStore) Save(ctx context.Context, s *store.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	nodes, collections, err := encode(s)
	if err != nil {
		return err
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyPrefix+NodesDoc), nodes); err != nil {
			return err
		}

		return txn.Set([]byte(keyPrefix+CollectionsDoc), collections)
	})
	if err != nil {
		return fmt.Errorf("snapshot: badger save: %w", err)
	}

	return nil
}

// Close implements Store.
func (b *BadgerStore) Close() error {
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("snapshot: close badger: %w", err)
	}

	return nil
}
