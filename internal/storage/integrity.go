package storage

import (
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/rewind/internal/model"
)

// IntegrityStatus represents the result of a database health check.
type IntegrityStatus struct {
	Healthy    bool      `json:"healthy"`
	Checked    int       `json:"checked"`
	LastCheck  time.Time `json:"last_check"`
	ErrorCount int       `json:"error_count"`
	Errors     []string  `json:"errors,omitempty"`
}

// CheckIntegrity reads every snapshot and reports values that fail to decode.
func (d *DB) CheckIntegrity() *IntegrityStatus {
	status := &IntegrityStatus{
		LastCheck: time.Now(),
		Healthy:   true,
	}

	err := d.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(model.PrefixSnapshot + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			status.Checked++
			err := item.Value(func(val []byte) error {
				var snap model.Snapshot
				return json.Unmarshal(val, &snap)
			})
			if err != nil {
				status.Errors = append(status.Errors, fmt.Sprintf("unreadable snapshot at key %s: %v", item.Key(), err))
				status.ErrorCount++
			}
		}
		return nil
	})
	if err != nil {
		status.Errors = append(status.Errors, fmt.Sprintf("iteration error: %v", err))
		status.ErrorCount++
	}

	status.Healthy = status.ErrorCount == 0
	return status
}
