package snapshot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config selects and configures a backend.
type Config struct {
	// Backend is one of BackendFile, BackendBadger, BackendSQLite, BackendMemory.
	Backend string

	// Dir is the FileStore directory and the badger directory.
	Dir string

	// SQLitePath is the SQLiteStore database file.
	SQLitePath string

	// SyncWrites is forwarded to badger.
	SyncWrites bool

	// Logger is used by Open and handed to badger.
	Logger *zap.Logger
}

// Open builds the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var (
		st  Store
		err error
	)
	switch cfg.Backend {
	case BackendFile, "":
		st, err = NewFileStore(cfg.Dir)
	case BackendBadger:
		st, err = NewBadgerStore(BadgerConfig{Path: cfg.Dir, SyncWrites: cfg.SyncWrites, Logger: cfg.Logger})
	case BackendSQLite:
		st, err = NewSQLiteStore(ctx, cfg.SQLitePath)
	case BackendMemory:
		st = NewMemoryStore()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	log.Info("snapshot store opened",
		zap.String("backend", cfg.Backend),
		zap.String("dir", cfg.Dir),
		zap.String("sqlite_path", cfg.SQLitePath))

	return st, nil
}
