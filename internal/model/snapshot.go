package model

import (
	"fmt"
	"strings"
	"time"
)

// Snapshot is a stored point-in-time copy of a collection's live records.
// History is never part of a snapshot.
type Snapshot struct {
	Key       string    `json:"key"`
	Label     string    `json:"label,omitempty"`
	Records   []Record  `json:"records"`
	CreatedAt time.Time `json:"created_at"`
}

// SetKey sets the database key for this snapshot.
func (s *Snapshot) SetKey(key string) {
	s.Key = key
}

// GetKey returns the database key for this snapshot.
func (s *Snapshot) GetKey() string {
	return s.Key
}

// ID returns the snapshot identifier without the key prefix.
func (s *Snapshot) ID() string {
	return strings.TrimPrefix(s.Key, PrefixSnapshot+":")
}

// TotalMagnitude sums the magnitudes of all records in the snapshot.
func (s *Snapshot) TotalMagnitude() uint64 {
	return SumMagnitudes(s.Records)
}

// GenerateSnapshotKey generates a database key for a snapshot.
func GenerateSnapshotKey(id string) string {
	return fmt.Sprintf("%s:%s", PrefixSnapshot, id)
}

// NewSnapshot creates a snapshot holding a copy of records.
func NewSnapshot(label string, records []Record, createdAt time.Time) *Snapshot {
	return &Snapshot{
		Label:     label,
		Records:   CloneRecords(records),
		CreatedAt: createdAt,
	}
}
