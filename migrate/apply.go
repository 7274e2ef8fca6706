package migrate

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/relgraph/store"
)

// Target receives the import. Both *store.Database and *persisted.Database
// satisfy it.
type Target interface {
	Add(name string) (*store.Collection, error)
	InsertAt(collection string, payload any, key string) (*store.Node, error)
	Relate(from, to store.Ref, label any, bidirectional bool) error
}

// Report counts what Apply wrote before it finished or stopped.
type Report struct {
	CollectionsCreated int `json:"collections_created"`
	CollectionsExisted int `json:"collections_existed"`
	Nodes              int `json:"nodes"`
	Relations          int `json:"relations"`
}

// Apply validates doc and writes it into t. On error the returned Report
// describes the partial import that stays in place.
func Apply(ctx context.Context, t Target, doc *Document, log *zap.Logger) (Report, error) {
	var rep Report
	if log == nil {
		log = zap.NewNop()
	}
	if err := Validate(doc); err != nil {
		return rep, err
	}

	for _, name := range doc.Collections {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		_, err := t.Add(name)
		switch {
		case err == nil:
			rep.CollectionsCreated++
		case errors.Is(err, store.ErrDuplicateCollection):
			rep.CollectionsExisted++
		default:
			return rep, fmt.Errorf("migrate: collection %q: %w", name, err)
		}
	}
	log.Debug("collections ready",
		zap.Int("created", rep.CollectionsCreated),
		zap.Int("existed", rep.CollectionsExisted))

	for i, n := range doc.Nodes {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if _, err := t.InsertAt(n.BelongsTo, n.Data, n.Key); err != nil {
			return rep, fmt.Errorf("migrate: nodes[%d] %q: %w", i, store.Ref{Key: n.Key, Collection: n.BelongsTo}, err)
		}
		rep.Nodes++
	}
	log.Debug("nodes inserted", zap.Int("count", rep.Nodes))

	for i, r := range doc.Relations {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if err := t.Relate(r.From.Ref(), r.To.Ref(), r.By, r.Bidirectional); err != nil {
			return rep, fmt.Errorf("migrate: relations[%d] %s -%s-> %s: %w", i, r.From.Ref(), r.By, r.To.Ref(), err)
		}
		rep.Relations++
	}
	log.Info("import applied",
		zap.Int("collections_created", rep.CollectionsCreated),
		zap.Int("nodes", rep.Nodes),
		zap.Int("relations", rep.Relations))

	return rep, nil
}
