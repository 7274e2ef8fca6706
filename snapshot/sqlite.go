package snapshot

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/katalvlaran/relgraph/store"
)

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA synchronous = NORMAL",
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	name       TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// SQLiteStore keeps each document as one row of the snapshots table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path, applies pragmas and creates the
// table if needed. Use ":memory:" for a throwaway database.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open sqlite: %w", err)
	}
	// one connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: connect sqlite: %w", err)
	}
	for _, stmt := range append(sqlitePragmas, sqliteSchema) {
		if _, err = db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("snapshot: prepare sqlite: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) (*store.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, body FROM snapshots WHERE name IN (?, ?)`, NodesDoc, CollectionsDoc)
	if err != nil {
		return nil, fmt.Errorf("snapshot: sqlite load: %w", err)
	}
	defer rows.Close()

	docs := make(map[string][]byte, 2)
	for rows.Next() {
		var (
			name string
			body []byte
		)
		if err = rows.Scan(&name, &body); err != nil {
			return nil, fmt.Errorf("snapshot: sqlite scan: %w", err)
		}
		docs[name] = body
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot: sqlite load: %w", err)
	}

	return decode(docs[NodesDoc], docs[CollectionsDoc])
}

// Save implements Store. Both rows are replaced in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap *store.Snapshot) error {
	nodes, collections, err := encode(snap)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot: sqlite begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const upsert = `
		INSERT INTO snapshots (name, body, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`
	for _, doc := range []struct {
		name string
		body []byte
	}{{NodesDoc, nodes}, {CollectionsDoc, collections}} {
		if _, err = tx.ExecContext(ctx, upsert, doc.name, doc.body); err != nil {
			return fmt.Errorf("snapshot: sqlite save %s: %w", doc.name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("snapshot: sqlite commit: %w", err)
	}

	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
