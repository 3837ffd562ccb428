package model

import (
	"fmt"
	"math"
	"math/bits"
)

// Record is a single entry of a versioned collection.
// Records are plain values; history entries hold their own copies.
type Record struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Magnitude uint64 `json:"magnitude"`
}

// NewRecord creates a record with the given fields.
func NewRecord(name, category string, magnitude uint64) Record {
	return Record{
		Name:      name,
		Category:  category,
		Magnitude: magnitude,
	}
}

// String returns a compact single-line representation.
func (r Record) String() string {
	return fmt.Sprintf("%s (%s, %d)", r.Name, r.Category, r.Magnitude)
}

// SumMagnitudes adds up the magnitudes of records. The sum saturates at
// math.MaxUint64 instead of wrapping.
func SumMagnitudes(records []Record) uint64 {
	var total uint64
	for _, r := range records {
		sum, carry := bits.Add64(total, r.Magnitude, 0)
		if carry != 0 {
			return math.MaxUint64
		}
		total = sum
	}
	return total
}

// CloneRecords returns a copy of the given records slice.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return []Record{}
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
