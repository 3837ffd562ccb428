package script

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/manav03panchal/rewind/internal/collection"
	"github.com/manav03panchal/rewind/internal/errors"
	"github.com/manav03panchal/rewind/internal/logging"
	"github.com/manav03panchal/rewind/internal/model"
)

// Event reports the outcome of one executed command.
type Event struct {
	Command Command
	// OK is false when the command was a no-op: remove on an empty
	// collection, or undo/redo with nothing to apply.
	OK       bool
	Record   *model.Record
	Step     *collection.Step
	Records  []model.Record
	Dump     string
	History  collection.HistoryView
	Snapshot *model.Snapshot
	// CanUndo and CanRedo are read after the command ran.
	CanUndo bool
	CanRedo bool
}

// Sink receives events as commands execute.
type Sink interface {
	Emit(ev Event) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ev Event) error

// Emit calls f(ev).
func (f SinkFunc) Emit(ev Event) error {
	return f(ev)
}

// SnapshotSaver stores a copy of the live records.
type SnapshotSaver interface {
	Save(label string, records []model.Record) (*model.Snapshot, error)
}

// Stats counts what a runner has executed.
type Stats struct {
	Commands int `json:"commands"`
	Edits    int `json:"edits"`
	Undos    int `json:"undos"`
	Redos    int `json:"redos"`
	Noops    int `json:"noops"`
}

// Runner executes commands against an editor.
type Runner struct {
	editor collection.Editor
	sink   Sink
	saver  SnapshotSaver
	logger *slog.Logger
	prompt func()
	stats  Stats
}

// Option configures a Runner.
type Option func(*Runner)

// WithSaver enables the snapshot command.
func WithSaver(saver SnapshotSaver) Option {
	return func(r *Runner) {
		r.saver = saver
	}
}

// WithPrompt sets a function RunReader calls before reading each line.
func WithPrompt(prompt func()) Option {
	return func(r *Runner) {
		r.prompt = prompt
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner that reports to sink. A nil sink discards events.
func NewRunner(editor collection.Editor, sink Sink, opts ...Option) *Runner {
	if sink == nil {
		sink = SinkFunc(func(Event) error { return nil })
	}
	r := &Runner{
		editor: editor,
		sink:   sink,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.WithGroup("script")
	}
	return r
}

// Stats returns the counters accumulated so far.
func (r *Runner) Stats() Stats {
	return r.stats
}

// Exec runs a single command and emits its event.
func (r *Runner) Exec(cmd Command) error {
	ev := Event{Command: cmd, OK: true}

	switch cmd.Op {
	case OpAdd:
		r.editor.Add(cmd.Record)
		rec := cmd.Record
		ev.Record = &rec
		r.stats.Edits++

	case OpRemove:
		rec, ok := r.editor.Remove()
		ev.OK = ok
		if ok {
			ev.Record = &rec
			r.stats.Edits++
		}

	case OpUndo:
		step, ok := r.editor.Undo()
		ev.OK = ok
		if ok {
			ev.Step = &step
			ev.Record = &step.Record
			r.stats.Undos++
		}

	case OpRedo:
		step, ok := r.editor.Redo()
		ev.OK = ok
		if ok {
			ev.Step = &step
			ev.Record = &step.Record
			r.stats.Redos++
		}

	case OpPrint:
		ev.Records = r.editor.Records()

	case OpDump:
		var buf bytes.Buffer
		if err := r.editor.Dump(&buf); err != nil {
			return errors.Wrapf(err, "line %d", cmd.Line)
		}
		ev.Dump = buf.String()

	case OpHistory:
		ev.History = r.editor.History()

	case OpSnapshot:
		if r.saver == nil {
			return errors.NewUserError("Snapshots are not available in this session",
				"Run with a snapshot database to use 'snapshot'").AtLine(cmd.Line)
		}
		snap, err := r.saver.Save(cmd.Label, r.editor.Records())
		if err != nil {
			return err
		}
		ev.Snapshot = snap

	default:
		return errors.NewUserErrorWithField("command", string(cmd.Op),
			"Unknown command", "").WithCause(errors.ErrUnknownCommand).AtLine(cmd.Line)
	}

	r.stats.Commands++
	if !ev.OK {
		r.stats.Noops++
	}
	ev.CanUndo = r.editor.CanUndo()
	ev.CanRedo = r.editor.CanRedo()

	r.logger.Debug("exec", logging.KeyOperation, string(cmd.Op), logging.KeyLine, cmd.Line, "ok", ev.OK)
	return r.sink.Emit(ev)
}

// Run executes cmds in order, stopping at the first error or when ctx is done.
func (r *Runner) Run(ctx context.Context, cmds []Command) error {
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Exec(cmd); err != nil {
			return err
		}
	}
	return nil
}

// RunReader parses and executes a script line by line. When keepGoing is
// set, invalid lines are passed to onError and execution continues;
// otherwise the first error is returned.
func (r *Runner) RunReader(ctx context.Context, in io.Reader, keepGoing bool, onError func(error)) error {
	scanner := bufio.NewScanner(in)
	line := 0
	for {
		if r.prompt != nil {
			r.prompt()
		}
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line++

		cmd, ok, err := ParseLine(scanner.Text(), line)
		if err == nil && ok {
			err = r.Exec(cmd)
		}
		if err != nil {
			if !keepGoing || !errors.IsUserError(err) {
				return err
			}
			if onError != nil {
				onError(err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.NewSystemErrorWithOp("read script", "read failed", err)
	}
	return nil
}
