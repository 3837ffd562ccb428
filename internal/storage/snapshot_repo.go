package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/rewind/internal/errors"
	"github.com/manav03panchal/rewind/internal/logging"
	"github.com/manav03panchal/rewind/internal/model"
)

// SnapshotRepo provides operations for Snapshot entities.
type SnapshotRepo struct {
	db  *DB
	now func() time.Time
}

// NewSnapshotRepo creates a new snapshot repository.
func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db, now: time.Now}
}

// Save stores a copy of records under a new UUIDv7 key.
// UUIDv7 keys sort by creation time, so prefix scans return oldest first.
func (r *SnapshotRepo) Save(label string, records []model.Record) (*model.Snapshot, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("save snapshot", "cannot generate snapshot ID", err)
	}

	snap := model.NewSnapshot(label, records, r.now().UTC())
	snap.Key = model.GenerateSnapshotKey(id.String())
	if err := r.db.Set(snap); err != nil {
		return nil, errors.NewSystemErrorWithOp("save snapshot", "write failed", err)
	}

	logging.LogOperation("save_snapshot", logging.KeySnapshot, snap.ID(), logging.KeyCount, len(snap.Records))
	return snap, nil
}

// Get retrieves a snapshot by ID.
func (r *SnapshotRepo) Get(id string) (*model.Snapshot, error) {
	snap := &model.Snapshot{}
	if err := r.db.Get(model.GenerateSnapshotKey(id), snap); err != nil {
		if IsErrKeyNotFound(err) {
			return nil, errors.NewUserErrorWithField("id", id,
				"Snapshot not found", "").WithCause(errors.ErrSnapshotNotFound)
		}
		return nil, errors.NewSystemErrorWithOp("read snapshot", "read failed", err)
	}
	return snap, nil
}

// List returns all snapshots, oldest first.
func (r *SnapshotRepo) List() ([]*model.Snapshot, error) {
	snaps, err := GetAllByPrefix(r.db, model.PrefixSnapshot+":", func() *model.Snapshot {
		return &model.Snapshot{}
	})
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("list snapshots", "read failed", err)
	}
	return snaps, nil
}

// Delete removes a snapshot by ID.
func (r *SnapshotRepo) Delete(id string) error {
	key := model.GenerateSnapshotKey(id)
	exists, err := r.db.Exists(key)
	if err != nil {
		return errors.NewSystemErrorWithOp("delete snapshot", "read failed", err)
	}
	if !exists {
		return errors.NewUserErrorWithField("id", id,
			"Snapshot not found", "").WithCause(errors.ErrSnapshotNotFound)
	}
	if err := r.db.Delete(key); err != nil {
		return errors.NewSystemErrorWithOp("delete snapshot", "write failed", err)
	}
	return nil
}

// Prune deletes the oldest snapshots until at most limit remain.
// A limit of zero or less disables pruning. It returns the number deleted.
func (r *SnapshotRepo) Prune(limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}
	keys, err := r.db.ListByPrefix(model.PrefixSnapshot + ":")
	if err != nil {
		return 0, errors.NewSystemErrorWithOp("prune snapshots", "read failed", err)
	}

	excess := len(keys) - limit
	for i := 0; i < excess; i++ {
		if err := r.db.Delete(keys[i]); err != nil {
			return i, errors.NewSystemErrorWithOp("prune snapshots", "write failed", err)
		}
	}
	if excess < 0 {
		excess = 0
	}
	logging.LogOperation("prune_snapshots", logging.KeyCount, excess)
	return excess, nil
}
