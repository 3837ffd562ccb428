package storage

import (
	"path/filepath"
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/rewind/internal/errors"
	"github.com/manav03panchal/rewind/internal/model"
)

// Helper to create an in-memory database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		assert.NotNil(t, db.Badger())
		assert.NoError(t, db.Close())
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		db.Close()
	})

	t.Run("on_disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "snapshots")
		db, err := Open(Options{Path: dir})
		require.NoError(t, err)
		assert.Equal(t, dir, db.Path())
		assert.NoError(t, db.Close())
	})
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "rewind")
	assert.Contains(t, path, "snapshots")
}

func TestCRUD(t *testing.T) {
	db := setupTestDB(t)
	snap := model.NewSnapshot("x", []model.Record{model.NewRecord("A", "a", 1)}, time.Now())
	snap.Key = model.GenerateSnapshotKey("one")

	require.NoError(t, db.Set(snap))

	exists, err := db.Exists(snap.Key)
	require.NoError(t, err)
	assert.True(t, exists)

	got := &model.Snapshot{}
	require.NoError(t, db.Get(snap.Key, got))
	assert.Equal(t, snap.Key, got.Key)
	assert.Equal(t, snap.Records, got.Records)

	require.NoError(t, db.Delete(snap.Key))
	err = db.Get(snap.Key, got)
	assert.True(t, IsErrKeyNotFound(err))

	exists, err = db.Exists(snap.Key)
	require.NoError(t, err)
	assert.False(t, exists)
}

// =============================================================================
// SnapshotRepo Tests
// =============================================================================

func TestSnapshotRepoSaveGet(t *testing.T) {
	repo := NewSnapshotRepo(setupTestDB(t))
	records := model.SampleCountries()

	snap, err := repo.Save("countries", records)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID())
	assert.Equal(t, "countries", snap.Label)

	// The saved snapshot holds its own copy.
	records[0].Name = "mutated"

	got, err := repo.Get(snap.ID())
	require.NoError(t, err)
	assert.Equal(t, "Mexico", got.Records[0].Name)
	assert.Len(t, got.Records, 5)
	assert.Equal(t, snap.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestSnapshotRepoGetMissing(t *testing.T) {
	repo := NewSnapshotRepo(setupTestDB(t))

	_, err := repo.Get("0190f6a4-8c3e-7d2a-9b1c-2f3e4d5c6b7a")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSnapshotNotFound)
	assert.True(t, errors.IsUserError(err))
}

func TestSnapshotRepoListOrder(t *testing.T) {
	repo := NewSnapshotRepo(setupTestDB(t))

	var ids []string
	for _, label := range []string{"first", "second", "third"} {
		snap, err := repo.Save(label, nil)
		require.NoError(t, err)
		ids = append(ids, snap.ID())
	}

	snaps, err := repo.List()
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	for i, s := range snaps {
		assert.Equal(t, ids[i], s.ID())
	}
	assert.Empty(t, snaps[0].Records)
}

func TestSnapshotRepoDelete(t *testing.T) {
	repo := NewSnapshotRepo(setupTestDB(t))
	snap, err := repo.Save("x", nil)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(snap.ID()))
	assert.ErrorIs(t, repo.Delete(snap.ID()), errors.ErrSnapshotNotFound)
}

func TestSnapshotRepoPrune(t *testing.T) {
	repo := NewSnapshotRepo(setupTestDB(t))
	var last string
	for i := 0; i < 5; i++ {
		snap, err := repo.Save("", nil)
		require.NoError(t, err)
		last = snap.ID()
	}

	n, err := repo.Prune(0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = repo.Prune(2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	snaps, err := repo.List()
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, last, snaps[1].ID())

	n, err = repo.Prune(10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// =============================================================================
// Integrity Tests
// =============================================================================

func TestCheckIntegrity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSnapshotRepo(db)
	_, err := repo.Save("ok", model.SampleCountries())
	require.NoError(t, err)

	status := db.CheckIntegrity()
	assert.True(t, status.Healthy)
	assert.Equal(t, 1, status.Checked)

	require.NoError(t, db.Badger().Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(model.GenerateSnapshotKey("broken")), []byte("{not json"))
	}))

	status = db.CheckIntegrity()
	assert.False(t, status.Healthy)
	assert.Equal(t, 2, status.Checked)
	assert.Equal(t, 1, status.ErrorCount)
}
