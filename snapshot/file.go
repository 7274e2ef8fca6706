package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/katalvlaran/relgraph/store"
)

// FileStore keeps nodes.json and collections.json in Dir.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("snapshot: file store needs a directory")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("snapshot: create directory %s: %w", dir, err)
	}

	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the two documents.
func (f *FileStore) Dir() string { return f.dir }

func (f *FileStore) path(doc string) string {
	return filepath.Join(f.dir, doc+".json")
}

// Load implements Store.
func (f *FileStore) Load(ctx context.Context) (*store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	nodes, err := f.read(NodesDoc)
	if err != nil {
		return nil, err
	}
	collections, err := f.read(CollectionsDoc)
	if err != nil {
		return nil, err
	}

	return decode(nodes, collections)
}

func (f *FileStore) read(doc string) ([]byte, error) {
	b, err := os.ReadFile(f.path(doc))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", doc, err)
	}

	return b, nil
}

// Save implements Store. Each document is written to a temporary file and
// renamed over the old one.
func (f *FileStore) Save(ctx context.Context, s *store.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	nodes, collections, err := encode(s)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err = f.write(NodesDoc, nodes); err != nil {
		return err
	}

	return f.write(CollectionsDoc, collections)
}

func (f *FileStore) write(doc string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, doc+"-*.tmp")
	if err != nil {
		return fmt.Errorf("snapshot: write %s: %w", doc, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: write %s: %w", doc, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", doc, err)
	}
	if err = os.Rename(tmp.Name(), f.path(doc)); err != nil {
		return fmt.Errorf("snapshot: replace %s: %w", doc, err)
	}

	return nil
}

// Close implements Store; a FileStore holds no open handles.
func (f *FileStore) Close() error { return nil }
