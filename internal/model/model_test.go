package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Record Tests
// =============================================================================

func TestNewRecord(t *testing.T) {
	r := NewRecord("Mexico", "North America", 130_000_000)
	assert.Equal(t, "Mexico", r.Name)
	assert.Equal(t, "North America", r.Category)
	assert.Equal(t, uint64(130_000_000), r.Magnitude)
	assert.Equal(t, "Mexico (North America, 130000000)", r.String())
}

func TestRecordEquality(t *testing.T) {
	a := NewRecord("A", "x", 1)
	assert.Equal(t, a, NewRecord("A", "x", 1))
	assert.NotEqual(t, a, NewRecord("A", "x", 2))
	assert.True(t, a == NewRecord("A", "x", 1))
}

func TestCloneRecords(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		out := CloneRecords(nil)
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})

	t.Run("independent", func(t *testing.T) {
		in := SampleCountries()
		out := CloneRecords(in)
		require.Equal(t, in, out)

		out[0].Name = "changed"
		assert.Equal(t, "Mexico", in[0].Name)
	})
}

func TestRecordJSON(t *testing.T) {
	data, err := json.Marshal(NewRecord("China", "Asia", 1_400_000_000))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"China","category":"Asia","magnitude":1400000000}`, string(data))
}

// =============================================================================
// Action Tests
// =============================================================================

func TestActionKindString(t *testing.T) {
	assert.Equal(t, "mark", ActionMark.String())
	assert.Equal(t, "insert", ActionInsert.String())
	assert.Equal(t, "remove", ActionRemove.String())
	assert.Equal(t, "unknown", ActionKind(42).String())
}

func TestActionConstructors(t *testing.T) {
	r := NewRecord("A", "x", 1)

	mark := MarkAction()
	assert.True(t, mark.IsMark())
	assert.False(t, mark.IsEdit())
	assert.Nil(t, mark.Record)

	ins := InsertAction(r)
	assert.True(t, ins.IsEdit())
	assert.Equal(t, ActionInsert, ins.Kind)
	require.NotNil(t, ins.Record)
	assert.Equal(t, r, *ins.Record)

	rem := RemoveAction(r)
	assert.True(t, rem.IsEdit())
	assert.Equal(t, ActionRemove, rem.Kind)
	assert.Equal(t, r, *rem.Record)
}

func TestActionConstructorsCopy(t *testing.T) {
	r := NewRecord("A", "x", 1)
	a := InsertAction(r)
	r.Name = "B"
	assert.Equal(t, "A", a.Record.Name)
}

func TestActionClone(t *testing.T) {
	a := InsertAction(NewRecord("A", "x", 1))
	c := a.Clone()
	c.Record.Name = "changed"
	assert.Equal(t, "A", a.Record.Name)

	m := MarkAction().Clone()
	assert.Nil(t, m.Record)
}

// =============================================================================
// Snapshot Tests
// =============================================================================

func TestNewSnapshot(t *testing.T) {
	now := time.Now()
	records := SampleCountries()
	s := NewSnapshot("label", records, now)

	assert.Equal(t, "label", s.Label)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, records, s.Records)

	records[0].Name = "changed"
	assert.Equal(t, "Mexico", s.Records[0].Name)
}

func TestSnapshotKey(t *testing.T) {
	s := &Snapshot{}
	s.SetKey(GenerateSnapshotKey("abc"))
	assert.Equal(t, "snapshot:abc", s.GetKey())
	assert.Equal(t, "abc", s.ID())
}

func TestSnapshotTotalMagnitude(t *testing.T) {
	s := NewSnapshot("", SampleCountries(), time.Now())
	assert.Equal(t, uint64(1_667_000_000), s.TotalMagnitude())

	empty := NewSnapshot("", nil, time.Now())
	assert.Equal(t, uint64(0), empty.TotalMagnitude())
	assert.NotNil(t, empty.Records)
}

func TestSumMagnitudes(t *testing.T) {
	assert.Equal(t, uint64(0), SumMagnitudes(nil))
	assert.Equal(t, uint64(3), SumMagnitudes([]Record{NewRecord("A", "a", 1), NewRecord("B", "b", 2)}))

	huge := []Record{NewRecord("A", "a", math.MaxUint64), NewRecord("B", "b", 2)}
	assert.Equal(t, uint64(math.MaxUint64), SumMagnitudes(huge))
	assert.Equal(t, uint64(math.MaxUint64), NewSnapshot("", huge, time.Now()).TotalMagnitude())
}

func TestSampleCountries(t *testing.T) {
	samples := SampleCountries()
	require.Len(t, samples, 5)
	assert.Equal(t, "Mexico", samples[0].Name)
	assert.Equal(t, "Argentina", samples[4].Name)

	// Each call returns a fresh slice.
	samples[0].Name = "changed"
	assert.Equal(t, "Mexico", SampleCountries()[0].Name)
}
