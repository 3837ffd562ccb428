// Package history provides the linear undo/redo log behind a versioned
// collection.
//
// The log is a sequence of actions that always starts with an origin mark
// and then alternates edits and marks:
//
//	[mark, edit, mark, edit, mark, ...]
//
// Two indices describe where the log stands:
//   - current is the mark boundary the log is positioned at
//   - max is the index of the most recently appended mark and bounds redo
//
// # Recording
//
// Record appends an edit followed by a mark. When the log has been rewound
// by undo, the entries past current are discarded first, so a new edit
// always drops the redo path:
//
//	log := history.New()
//	log.Record(model.ActionInsert, rec)
//
// # Traversal
//
// StepBack and StepForward skip marks until they reach an edit, return a
// copy of it and leave current on the neighbouring boundary. Callers must
// check CanUndo and CanRedo first; walking off either end of the log is an
// internal consistency fault and panics with an *InvariantError.
//
// # Edit locations
//
// Edits carry no position. All inserts and removes happen at the tail of
// the owning collection, which is what lets undo and redo work from the
// stored record alone.
package history
