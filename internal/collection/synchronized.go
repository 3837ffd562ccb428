package collection

import (
	"io"
	"sync"

	"github.com/manav03panchal/rewind/internal/model"
)

// Synchronized serializes every operation on a Collection behind one mutex.
// The records and the log change together, so they share a single lock.
type Synchronized struct {
	mu sync.Mutex
	c  *Collection
}

// NewSynchronized wraps c. The caller must not use c directly afterwards.
func NewSynchronized(c *Collection) *Synchronized {
	return &Synchronized{c: c}
}

// Add appends r.
func (s *Synchronized) Add(r model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Add(r)
}

// Remove pops the tail record.
func (s *Synchronized) Remove() (model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Remove()
}

// Undo reverses the last applied edit.
func (s *Synchronized) Undo() (Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Undo()
}

// Redo re-applies the last undone edit.
func (s *Synchronized) Redo() (Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Redo()
}

// CanUndo returns true if an edit can be undone.
func (s *Synchronized) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.CanUndo()
}

// CanRedo returns true if an undone edit can be redone.
func (s *Synchronized) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.CanRedo()
}

// Records returns a copy of the live records.
func (s *Synchronized) Records() []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Records()
}

// Len returns the number of live records.
func (s *Synchronized) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Len()
}

// State returns the records together with a frozen copy of the log,
// read under one lock.
func (s *Synchronized) State() ([]model.Record, HistoryView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Records(), s.c.log.Clone()
}

// History returns a frozen copy of the log. Later edits do not show up in it.
func (s *Synchronized) History() HistoryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.log.Clone()
}

// Dump writes the records and the log to w.
func (s *Synchronized) Dump(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Dump(w)
}
