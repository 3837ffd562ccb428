package history

import (
	"github.com/manav03panchal/rewind/internal/model"
)

// Log records edits as alternating edit and mark entries.
type Log struct {
	actions []model.Action
	current int
	max     int
}

// New creates a log holding only the origin mark, positioned at index 0.
func New() *Log {
	l := &Log{}
	// appendMark moves the cursor past the mark it writes; rewind it so
	// the first edit is written right after the origin.
	l.appendMark()
	l.current--
	return l
}

// appendMark advances current by one and writes a boundary mark.
func (l *Log) appendMark() {
	l.current++
	l.actions = append(l.actions, model.MarkAction())
}

// Record appends an insert or remove edit followed by a mark.
// Any redo entries past current are discarded.
func (l *Log) Record(kind model.ActionKind, rec model.Record) {
	var edit model.Action
	switch kind {
	case model.ActionInsert:
		edit = model.InsertAction(rec)
	case model.ActionRemove:
		edit = model.RemoveAction(rec)
	default:
		panic(l.fault("record", l.current, "cannot record a "+kind.String()+" as an edit"))
	}

	// Drop the redo tail and make the path actually taken the new ceiling.
	tail := l.current + 1
	clear(l.actions[tail:])
	l.actions = l.actions[:tail]
	l.max = l.current

	l.current = l.max + 1
	l.actions = append(l.actions, edit)
	l.appendMark()
	l.max = l.current
}

// CanUndo returns true if there is an applied edit before current.
func (l *Log) CanUndo() bool {
	return l.current > 0
}

// CanRedo returns true if there is an undone edit after current.
func (l *Log) CanRedo() bool {
	return l.max > l.current
}

// StepBack finds the edit to undo and moves current to the boundary
// preceding it. The returned action is a copy.
func (l *Log) StepBack() model.Action {
	i := l.current
	for l.at("undo", i).IsMark() {
		i--
	}
	edit := l.at("undo", i)
	l.current = i - 1
	return edit.Clone()
}

// StepForward finds the edit to redo and moves current just past it.
// The returned action is a copy.
func (l *Log) StepForward() model.Action {
	i := l.current
	for l.at("redo", i).IsMark() {
		i++
	}
	edit := l.at("redo", i)
	l.current = i + 1
	return edit.Clone()
}

// at returns the action at index i, panicking when i is outside the log.
func (l *Log) at(op string, i int) model.Action {
	if i < 0 || i >= len(l.actions) || i > l.max {
		panic(l.fault(op, i, "index out of range"))
	}
	return l.actions[i]
}

// Current returns the cursor position.
func (l *Log) Current() int {
	return l.current
}

// Max returns the high-water mark.
func (l *Log) Max() int {
	return l.max
}

// Len returns the number of entries in the log, marks included.
func (l *Log) Len() int {
	return len(l.actions)
}

// At returns a copy of the action at index i.
func (l *Log) At(i int) (model.Action, bool) {
	if i < 0 || i >= len(l.actions) {
		return model.Action{}, false
	}
	return l.actions[i].Clone(), true
}

// Clone returns an independent copy of the log.
func (l *Log) Clone() *Log {
	return &Log{actions: l.Entries(), current: l.current, max: l.max}
}

// Entries returns a copy of every action in the log.
func (l *Log) Entries() []model.Action {
	out := make([]model.Action, len(l.actions))
	for i, a := range l.actions {
		out[i] = a.Clone()
	}
	return out
}

// UndoDepth returns the number of edits that can be undone.
func (l *Log) UndoDepth() int {
	return l.current / 2
}

// RedoDepth returns the number of edits that can be redone.
func (l *Log) RedoDepth() int {
	return (l.max - l.current) / 2
}

// Check verifies the structural invariants of the log.
func (l *Log) Check() error {
	if len(l.actions) == 0 {
		return l.fault("check", 0, "missing origin mark")
	}
	if l.max != len(l.actions)-1 {
		return l.fault("check", l.max, "max is not the last entry")
	}
	if l.current < 0 || l.current > l.max {
		return l.fault("check", l.current, "current outside [0, max]")
	}
	for i, a := range l.actions {
		wantMark := i%2 == 0
		if a.IsMark() != wantMark {
			return l.fault("check", i, "entries do not alternate mark and edit")
		}
		if a.IsEdit() && a.Record == nil {
			return l.fault("check", i, "edit without record")
		}
	}
	if !l.actions[l.current].IsMark() {
		return l.fault("check", l.current, "current is not on a mark")
	}
	return nil
}
