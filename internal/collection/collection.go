// Package collection provides an ordered record collection whose edits can
// be undone and redone.
//
// All edits happen at the tail: Add appends and Remove pops. Undo and redo
// rely on this and never reconstruct interior positions.
package collection

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/manav03panchal/rewind/internal/history"
	"github.com/manav03panchal/rewind/internal/logging"
	"github.com/manav03panchal/rewind/internal/model"
)

// Direction tells whether a step reversed or re-applied an edit.
type Direction string

const (
	DirectionUndo Direction = "undo"
	DirectionRedo Direction = "redo"
)

// Step describes an edit that undo or redo applied to the collection.
type Step struct {
	Direction Direction
	Kind      model.ActionKind
	Record    model.Record
}

// String returns a human-readable description of the step.
func (s Step) String() string {
	return fmt.Sprintf("%s %s %s", s.Direction, s.Kind, s.Record.Name)
}

// HistoryView is a read-only view over a collection's history log.
type HistoryView interface {
	Current() int
	Max() int
	Len() int
	At(i int) (model.Action, bool)
	Entries() []model.Action
	CanUndo() bool
	CanRedo() bool
	UndoDepth() int
	RedoDepth() int
	Check() error
	Dump(w io.Writer) error
}

// Editor is the set of operations drivers use to edit a collection.
// Both *Collection and *Synchronized implement it.
type Editor interface {
	Add(r model.Record)
	Remove() (model.Record, bool)
	Undo() (Step, bool)
	Redo() (Step, bool)
	CanUndo() bool
	CanRedo() bool
	Records() []model.Record
	Len() int
	History() HistoryView
	Dump(w io.Writer) error
}

var (
	_ Editor = (*Collection)(nil)
	_ Editor = (*Synchronized)(nil)
)

// Collection is an ordered list of records paired with its history log.
type Collection struct {
	records []model.Record
	log     *history.Log
	logger  *slog.Logger
}

// Option configures a Collection.
type Option func(*Collection)

// WithLogger sets the logger used for notices.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCapacity preallocates room for n records.
func WithCapacity(n int) Option {
	return func(c *Collection) {
		if n > 0 {
			c.records = make([]model.Record, 0, n)
		}
	}
}

// New creates an empty collection with a fresh history log.
func New(opts ...Option) *Collection {
	c := &Collection{
		log: history.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.WithGroup("collection")
	}
	return c
}

// Add records an insert of r and appends it to the collection.
func (c *Collection) Add(r model.Record) {
	c.log.Record(model.ActionInsert, r)
	c.records = append(c.records, r)
	c.logger.Debug("add", logging.KeyRecord, r.Name, logging.KeyCurrent, c.log.Current())
}

// Remove pops the last record and records its removal.
// It returns false and leaves everything untouched when the collection is empty.
func (c *Collection) Remove() (model.Record, bool) {
	if len(c.records) == 0 {
		c.logger.Info("nothing to remove")
		return model.Record{}, false
	}
	r := c.pop("remove")
	c.log.Record(model.ActionRemove, r)
	c.logger.Debug("remove", logging.KeyRecord, r.Name, logging.KeyCurrent, c.log.Current())
	return r, true
}

// Undo reverses the most recent applied edit.
// It returns false when there is nothing to undo.
func (c *Collection) Undo() (Step, bool) {
	if !c.log.CanUndo() {
		c.logger.Info("nothing to undo")
		return Step{}, false
	}

	edit := c.log.StepBack()
	switch edit.Kind {
	case model.ActionInsert:
		c.popExpect("undo", *edit.Record)
	case model.ActionRemove:
		c.records = append(c.records, *edit.Record)
	}

	step := Step{Direction: DirectionUndo, Kind: edit.Kind, Record: *edit.Record}
	c.logger.Debug("undo", logging.KeyKind, edit.Kind.String(), logging.KeyRecord, edit.Record.Name,
		logging.KeyCurrent, c.log.Current(), logging.KeyMax, c.log.Max())
	return step, true
}

// Redo re-applies the most recently undone edit.
// It returns false when there is nothing to redo.
func (c *Collection) Redo() (Step, bool) {
	if !c.log.CanRedo() {
		c.logger.Info("nothing to redo")
		return Step{}, false
	}

	edit := c.log.StepForward()
	switch edit.Kind {
	case model.ActionInsert:
		c.records = append(c.records, *edit.Record)
	case model.ActionRemove:
		c.popExpect("redo", *edit.Record)
	}

	step := Step{Direction: DirectionRedo, Kind: edit.Kind, Record: *edit.Record}
	c.logger.Debug("redo", logging.KeyKind, edit.Kind.String(), logging.KeyRecord, edit.Record.Name,
		logging.KeyCurrent, c.log.Current(), logging.KeyMax, c.log.Max())
	return step, true
}

// pop removes and returns the tail record.
func (c *Collection) pop(op string) model.Record {
	n := len(c.records)
	if n == 0 {
		panic(c.fault(op, -1, "pop on empty collection"))
	}
	r := c.records[n-1]
	c.records[n-1] = model.Record{}
	c.records = c.records[:n-1]
	return r
}

// popExpect pops the tail during replay; the tail must be the recorded record.
func (c *Collection) popExpect(op string, want model.Record) {
	n := len(c.records)
	if n == 0 {
		panic(c.fault(op, -1, "collection empty during replay"))
	}
	if c.records[n-1] != want {
		panic(c.fault(op, n-1, "tail record does not match history"))
	}
	c.pop(op)
}

func (c *Collection) fault(op string, index int, reason string) *history.InvariantError {
	return &history.InvariantError{
		Op:      op,
		Index:   index,
		Len:     len(c.records),
		Current: c.log.Current(),
		Max:     c.log.Max(),
		Reason:  reason,
	}
}

// CanUndo returns true if an edit can be undone.
func (c *Collection) CanUndo() bool {
	return c.log.CanUndo()
}

// CanRedo returns true if an undone edit can be redone.
func (c *Collection) CanRedo() bool {
	return c.log.CanRedo()
}

// Records returns a copy of the live records.
func (c *Collection) Records() []model.Record {
	return model.CloneRecords(c.records)
}

// Len returns the number of live records.
func (c *Collection) Len() int {
	return len(c.records)
}

// History returns a read-only view of the history log.
func (c *Collection) History() HistoryView {
	return c.log
}

// Dump writes the live records followed by the history log to w.
func (c *Collection) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "records: %d\n", len(c.records)); err != nil {
		return err
	}
	for i, r := range c.records {
		if _, err := fmt.Fprintf(w, "  %d  %s\n", i, r); err != nil {
			return err
		}
	}
	return c.log.Dump(w)
}
