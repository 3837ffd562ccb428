// Package script parses and runs line-oriented edit scripts against a
// versioned collection.
//
// One command per line; blank lines and lines starting with '#' are ignored:
//
//	add Mexico "North America" 130_000_000
//	remove
//	undo
//	redo
//	print
//	dump
//	history
//	snapshot "after edits"
package script

import (
	"github.com/manav03panchal/rewind/internal/model"
)

// Op names a script command.
type Op string

const (
	OpAdd      Op = "add"
	OpRemove   Op = "remove"
	OpUndo     Op = "undo"
	OpRedo     Op = "redo"
	OpPrint    Op = "print"
	OpDump     Op = "dump"
	OpHistory  Op = "history"
	OpSnapshot Op = "snapshot"
)

// aliases maps accepted spellings to their command.
var aliases = map[string]Op{
	"add":      OpAdd,
	"insert":   OpAdd,
	"remove":   OpRemove,
	"pop":      OpRemove,
	"undo":     OpUndo,
	"redo":     OpRedo,
	"print":    OpPrint,
	"list":     OpPrint,
	"dump":     OpDump,
	"history":  OpHistory,
	"log":      OpHistory,
	"snapshot": OpSnapshot,
	"save":     OpSnapshot,
}

// Command is a single parsed script line.
type Command struct {
	Op     Op
	Line   int
	Record model.Record // set for OpAdd
	Label  string       // set for OpSnapshot
}

// IsEdit returns true for commands that change the collection.
func (c Command) IsEdit() bool {
	switch c.Op {
	case OpAdd, OpRemove, OpUndo, OpRedo:
		return true
	}
	return false
}
