package store_test

import (
	"testing"

	"github.com/katalvlaran/relgraph/core"
	"github.com/katalvlaran/relgraph/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_Names(t *testing.T) {
	db := store.NewDatabase()

	_, err := db.Add("ab")
	assert.ErrorIs(t, err, store.ErrInvalidName)
	_, err = db.Add("äöü")
	assert.NoError(t, err, "length counts characters, not bytes")

	c, err := db.Add("people")
	require.NoError(t, err)
	assert.Equal(t, "people", c.Name())

	_, err = db.Add("people")
	assert.ErrorIs(t, err, store.ErrDuplicateCollection)

	var names []string
	for _, c := range db.Collections() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"äöü", "people"}, names)
}

func TestInsert_GeneratedKeysAreUnique(t *testing.T) {
	db := store.NewDatabase()
	c, err := db.Add("things")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		n, err := c.Insert(map[string]any{"i": i}, "")
		require.NoError(t, err)
		assert.Len(t, n.ID(), 32)
		assert.False(t, seen[n.ID()], "key %s generated twice", n.ID())
		seen[n.ID()] = true
	}
	assert.Equal(t, 200, c.Len())
	assert.Equal(t, 200, db.NumNodes())
}

func TestInsert_RerollsCollidingKey(t *testing.T) {
	db := store.NewDatabase(store.WithKeyGenerator(sequenceKeys("k1", "k1", "k2")))

	n1, err := db.Insert(map[string]any{}, "")
	require.NoError(t, err)
	n2, err := db.Insert(map[string]any{}, "")
	require.NoError(t, err)

	assert.Equal(t, "k1", n1.ID())
	assert.Equal(t, "k2", n2.ID())
}

func TestInsert_ExhaustedKeyAttempts(t *testing.T) {
	db := store.NewDatabase(
		store.WithKeyGenerator(func() string { return "same" }),
		store.WithMaxKeyAttempts(3),
	)
	_, err := db.Insert(map[string]any{}, "")
	require.NoError(t, err)

	_, err = db.Insert(map[string]any{}, "")
	assert.ErrorIs(t, err, core.ErrDuplicateID)
	assert.Equal(t, 1, db.NumNodes())
}

func TestInsert_DuplicateKeyLeavesCountUnchanged(t *testing.T) {
	db := store.NewDatabase()
	mustAdd(t, db, "people")
	mustInsert(t, db, "people", "ann")

	_, err := db.InsertAt("people", map[string]any{"name": "other"}, "ann")
	require.ErrorIs(t, err, store.ErrDuplicateKey)
	assert.Equal(t, 1, db.NumNodes())
	assert.Equal(t, 1, db.Graph().VertexCount())

	// the same key is free in another container
	mustInsert(t, db, "", "ann")
	assert.Equal(t, 2, db.NumNodes())
}

func TestInsert_Errors(t *testing.T) {
	db := store.NewDatabase()

	_, err := db.Insert([]int{1}, "x")
	assert.ErrorIs(t, err, core.ErrInvalidPayload)
	_, err = db.Insert(nil, "x")
	assert.ErrorIs(t, err, core.ErrInvalidPayload)
	_, err = db.InsertAt("nope", map[string]any{}, "x")
	assert.ErrorIs(t, err, store.ErrNotFound)

	n, err := db.Insert(map[string]string{"a": "b"}, "typed")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "b"}, n.Payload())
	assert.Equal(t, 1, db.NumNodes())
}

func TestInsert_PayloadIsShared(t *testing.T) {
	db := store.NewDatabase()
	data := map[string]any{"v": 1}
	n, err := db.Insert(data, "n")
	require.NoError(t, err)

	data["v"] = 2
	assert.Equal(t, 2, n.Payload()["v"])
}

func TestRemove_Kinds(t *testing.T) {
	db := store.NewDatabase()
	mustAdd(t, db, "dup")
	mustInsert(t, db, "", "dup")
	mustInsert(t, db, "dup", "inner")

	assert.ErrorIs(t, db.Remove("missing", store.KindAny), store.ErrNotFound)

	require.NoError(t, db.Remove("dup", store.KindNode))
	_, ok := db.Node("dup")
	assert.False(t, ok)
	_, ok = db.Collection("dup")
	assert.True(t, ok, "KindNode must not touch collections")
	assert.ErrorIs(t, db.Remove("dup", store.KindNode), store.ErrNotFound)

	require.NoError(t, db.Remove("dup", store.KindCollection))
	assert.Equal(t, 0, db.NumNodes())
	assert.Equal(t, 0, db.Graph().VertexCount())

	mustAdd(t, db, "both")
	mustInsert(t, db, "", "both")
	require.NoError(t, db.Remove("both", store.KindAny))
	_, ok = db.Node("both")
	assert.False(t, ok)
	_, ok = db.Collection("both")
	assert.False(t, ok)
}

func TestRemove_DropsRelations(t *testing.T) {
	db := store.NewDatabase()
	a := mustInsert(t, db, "", "a")
	b := mustInsert(t, db, "", "b")
	require.NoError(t, a.RelateTo(b, LabelX, true))

	require.NoError(t, db.RemoveNode("", "b"))
	assert.Empty(t, a.Relations())
	assert.Nil(t, b.Payload())
	assert.Equal(t, 0, db.Graph().EdgeCount())
	assert.ErrorIs(t, db.RemoveNode("", "b"), store.ErrNotFound)
}

func TestCollection_Detached(t *testing.T) {
	db := store.NewDatabase()
	c, err := db.Add("gone")
	require.NoError(t, err)
	require.NoError(t, db.Remove("gone", store.KindCollection))

	_, err = c.Insert(map[string]any{}, "x")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, c.Remove("x"), store.ErrNotFound)
}

func TestCollection_InsertionOrder(t *testing.T) {
	db := store.NewDatabase()
	c, err := db.Add("ordered")
	require.NoError(t, err)
	for _, k := range []string{"z", "a", "m"} {
		_, err = c.Insert(map[string]any{}, k)
		require.NoError(t, err)
	}
	require.NoError(t, c.Remove("a"))

	assert.Equal(t, []string{"z", "m"}, keys(c.Nodes()))
	n, ok := c.Node("m")
	require.True(t, ok)
	assert.Equal(t, "ordered", n.Collection())
}

func TestWipe_Idempotent(t *testing.T) {
	db := store.NewDatabase()
	mustAdd(t, db, "one", "two")
	a := mustInsert(t, db, "one", "a")
	b := mustInsert(t, db, "two", "b")
	mustInsert(t, db, "", "top")
	require.NoError(t, a.RelateTo(b, LabelX, false))

	db.Wipe()
	assert.Equal(t, 0, db.NumNodes())
	assert.Empty(t, db.Collections())
	assert.Equal(t, 0, db.Graph().VertexCount())
	assert.Equal(t, 0, numAssociations(t, db))

	db.Wipe()
	assert.Equal(t, 0, db.NumNodes())
}

func TestRelate_ByRef(t *testing.T) {
	db := store.NewDatabase()
	mustAdd(t, db, "people")
	mustInsert(t, db, "people", "ann")
	mustInsert(t, db, "", "acme")

	ann := store.Ref{Key: "ann", Collection: "people"}
	acme := store.Ref{Key: "acme"}
	require.NoError(t, db.Relate(ann, acme, "WORKS_AT", false))
	assert.ErrorIs(t, db.Relate(ann, acme, "WORKS_AT", false), core.ErrDuplicateRelation)
	assert.ErrorIs(t, db.Relate(ann, store.Ref{Key: "nobody"}, "X", false), store.ErrNotFound)
	assert.ErrorIs(t, db.Relate(store.Ref{Key: "x", Collection: "nope"}, acme, "X", false), store.ErrNotFound)

	n, err := db.Resolve(ann)
	require.NoError(t, err)
	assert.Equal(t, "people/ann", n.String())
}

func TestAssociations_AcrossCollections(t *testing.T) {
	db := store.NewDatabase()
	mustAdd(t, db, "col1", "col2")
	a := mustInsert(t, db, "col1", "a")
	b := mustInsert(t, db, "col1", "b")
	c := mustInsert(t, db, "col2", "c")
	require.NoError(t, a.RelateTo(b, LabelX, false))
	require.NoError(t, b.RelateTo(c, LabelY, false))

	got, err := db.Associations()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []store.Association{{From: a, To: b}}, got[core.Label(LabelX)])
	assert.Equal(t, []store.Association{{From: b, To: c}}, got[core.Label(LabelY)])
	assert.Equal(t, 2, numAssociations(t, db))
}

func TestAssociations_FollowsTopLevelTargets(t *testing.T) {
	db := store.NewDatabase()
	mustAdd(t, db, "col")
	a := mustInsert(t, db, "col", "a")
	top := mustInsert(t, db, "", "top")
	other := mustInsert(t, db, "", "other")
	lonely := mustInsert(t, db, "", "lonely")
	require.NoError(t, a.RelateTo(top, LabelX, false))
	require.NoError(t, top.RelateTo(other, LabelX, false))
	require.NoError(t, lonely.RelateTo(a, LabelY, false))

	got, err := db.Associations()
	require.NoError(t, err)
	assert.Equal(t, []store.Association{{From: a, To: top}, {From: top, To: other}}, got[core.Label(LabelX)])
	assert.Empty(t, got[core.Label(LabelY)], "unreached top-level nodes contribute nothing")
}
