package script

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/rewind/internal/collection"
	"github.com/manav03panchal/rewind/internal/errors"
	"github.com/manav03panchal/rewind/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recorder collects emitted events.
type recorder struct {
	events []Event
}

func (r *recorder) Emit(ev Event) error {
	r.events = append(r.events, ev)
	return nil
}

type fakeSaver struct {
	labels  []string
	records [][]model.Record
}

func (f *fakeSaver) Save(label string, records []model.Record) (*model.Snapshot, error) {
	f.labels = append(f.labels, label)
	f.records = append(f.records, records)
	snap := model.NewSnapshot(label, records, time.Time{})
	snap.Key = model.GenerateSnapshotKey("fake")
	return snap, nil
}

func newRunner(opts ...Option) (*Runner, *collection.Collection, *recorder) {
	c := collection.New(collection.WithLogger(quietLogger()))
	rec := &recorder{}
	opts = append(opts, WithLogger(quietLogger()))
	return NewRunner(c, rec, opts...), c, rec
}

// =============================================================================
// Tokenize Tests
// =============================================================================

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "add A b 1", []string{"add", "A", "b", "1"}},
		{"double_quotes", `add Mexico "North America" 1`, []string{"add", "Mexico", "North America", "1"}},
		{"single_quotes", `add 'New Zealand' Oceania 5`, []string{"add", "New Zealand", "Oceania", "5"}},
		{"tabs", "add\tA\tb\t1", []string{"add", "A", "b", "1"}},
		{"empty_quoted", `add A "" 1`, []string{"add", "A", "", "1"}},
		{"extra_spaces", "  undo   ", []string{"undo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unterminated", func(t *testing.T) {
		_, err := tokenize(`add "A b 1`)
		assert.ErrorIs(t, err, errors.ErrUnterminatedQuote)
	})
}

// =============================================================================
// Parse Tests
// =============================================================================

func TestParseLine(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		cmd, ok, err := ParseLine(`add Mexico "North America" 130_000_000`, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, OpAdd, cmd.Op)
		assert.Equal(t, model.NewRecord("Mexico", "North America", 130_000_000), cmd.Record)
		assert.True(t, cmd.IsEdit())
	})

	t.Run("aliases", func(t *testing.T) {
		for input, want := range map[string]Op{
			"POP": OpRemove, "list": OpPrint, "history": OpHistory, "log": OpHistory, "save": OpSnapshot,
		} {
			cmd, ok, err := ParseLine(input, 1)
			require.NoError(t, err, input)
			require.True(t, ok)
			assert.Equal(t, want, cmd.Op)
		}
	})

	t.Run("snapshot_label", func(t *testing.T) {
		cmd, ok, err := ParseLine(`snapshot after import`, 3)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "after import", cmd.Label)
		assert.Equal(t, 3, cmd.Line)
		assert.False(t, cmd.IsEdit())
	})

	t.Run("skips_blank_and_comments", func(t *testing.T) {
		for _, input := range []string{"", "   ", "# comment", "  # indented"} {
			_, ok, err := ParseLine(input, 1)
			require.NoError(t, err)
			assert.False(t, ok, input)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			input string
			want  error
		}{
			{"frobnicate", errors.ErrUnknownCommand},
			{"add A b", errors.ErrMissingArgument},
			{"add A b 1 extra", errors.ErrTooManyArguments},
			{"add A b lots", errors.ErrInvalidMagnitude},
			{`add "" b 1`, errors.ErrEmptyName},
			{"undo now", errors.ErrTooManyArguments},
			{`add "A b 1`, errors.ErrUnterminatedQuote},
		}
		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				_, _, err := ParseLine(tt.input, 7)
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.want)
				assert.Contains(t, err.Error(), "line 7")
				assert.True(t, errors.IsUserError(err))
			})
		}
	})
}

func TestParse(t *testing.T) {
	src := `# sample
add A a 1

add B b 2
remove
undo
`
	cmds, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cmds, 4)
	assert.Equal(t, 2, cmds[0].Line)
	assert.Equal(t, 6, cmds[3].Line)

	_, err = Parse(strings.NewReader("add A a 1\nbogus\n"))
	assert.ErrorIs(t, err, errors.ErrUnknownCommand)
}

// =============================================================================
// Runner Tests
// =============================================================================

func TestRunnerScenario(t *testing.T) {
	r, c, rec := newRunner()
	cmds, err := Parse(strings.NewReader("add A a 1\nadd B b 2\nremove\nundo\nredo\nprint\n"))
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background(), cmds))

	assert.Equal(t, []model.Record{model.NewRecord("A", "a", 1)}, c.Records())
	require.Len(t, rec.events, 6)

	undo := rec.events[3]
	require.NotNil(t, undo.Step)
	assert.Equal(t, collection.DirectionUndo, undo.Step.Direction)
	assert.Equal(t, model.ActionRemove, undo.Step.Kind)
	assert.True(t, undo.CanRedo)

	assert.Equal(t, c.Records(), rec.events[5].Records)
	assert.Equal(t, Stats{Commands: 6, Edits: 3, Undos: 1, Redos: 1}, r.Stats())
}

func TestRunnerNoops(t *testing.T) {
	r, c, rec := newRunner()
	cmds, err := Parse(strings.NewReader("remove\nundo\nredo\n"))
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background(), cmds))

	assert.Empty(t, c.Records())
	for _, ev := range rec.events {
		assert.False(t, ev.OK)
		assert.Nil(t, ev.Record)
	}
	assert.Equal(t, 3, r.Stats().Noops)
}

func TestRunnerRedoDiscardedAfterEdit(t *testing.T) {
	r, c, rec := newRunner()
	cmds, err := Parse(strings.NewReader("add A a 1\nadd B b 2\nundo\nadd C c 3\nredo\n"))
	require.NoError(t, err)

	require.NoError(t, r.Run(context.Background(), cmds))

	assert.False(t, rec.events[4].OK)
	assert.Equal(t, []model.Record{
		model.NewRecord("A", "a", 1),
		model.NewRecord("C", "c", 3),
	}, c.Records())
}

func TestRunnerDump(t *testing.T) {
	r, _, rec := newRunner()
	require.NoError(t, r.Exec(Command{Op: OpAdd, Record: model.NewRecord("A", "a", 1)}))
	require.NoError(t, r.Exec(Command{Op: OpDump}))

	dump := rec.events[1].Dump
	assert.Contains(t, dump, "records: 1")
	assert.Contains(t, dump, "current=2 max=2")
}

func TestRunnerHistory(t *testing.T) {
	r, _, rec := newRunner()
	require.NoError(t, r.Exec(Command{Op: OpAdd, Record: model.NewRecord("A", "a", 1)}))
	require.NoError(t, r.Exec(Command{Op: OpUndo}))
	require.NoError(t, r.Exec(Command{Op: OpHistory}))

	h := rec.events[2].History
	require.NotNil(t, h)
	assert.Equal(t, 0, h.Current())
	assert.Equal(t, 2, h.Max())
	assert.Equal(t, 1, h.RedoDepth())
}

func TestRunnerSnapshot(t *testing.T) {
	t.Run("without_saver", func(t *testing.T) {
		r, _, _ := newRunner()
		err := r.Exec(Command{Op: OpSnapshot, Line: 4})
		require.Error(t, err)
		assert.True(t, errors.IsUserError(err))
	})

	t.Run("with_saver", func(t *testing.T) {
		saver := &fakeSaver{}
		r, _, rec := newRunner(WithSaver(saver))
		require.NoError(t, r.Exec(Command{Op: OpAdd, Record: model.NewRecord("A", "a", 1)}))
		require.NoError(t, r.Exec(Command{Op: OpSnapshot, Label: "one"}))

		assert.Equal(t, []string{"one"}, saver.labels)
		assert.Len(t, saver.records[0], 1)
		require.NotNil(t, rec.events[1].Snapshot)
		assert.Equal(t, "fake", rec.events[1].Snapshot.ID())
	})
}

func TestRunnerCancelled(t *testing.T) {
	r, c, _ := newRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, []Command{{Op: OpAdd, Record: model.NewRecord("A", "a", 1)}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, c.Len())
}

func TestRunReader(t *testing.T) {
	t.Run("stops_at_first_error", func(t *testing.T) {
		r, c, _ := newRunner()
		err := r.RunReader(context.Background(),
			strings.NewReader("add A a 1\nbogus\nadd B b 2\n"), false, nil)

		assert.ErrorIs(t, err, errors.ErrUnknownCommand)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("keep_going", func(t *testing.T) {
		r, c, _ := newRunner()
		var reported []error
		err := r.RunReader(context.Background(),
			strings.NewReader("add A a 1\nbogus\nadd B b 2\n"), true,
			func(err error) { reported = append(reported, err) })

		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
		require.Len(t, reported, 1)
		assert.Contains(t, reported[0].Error(), "line 2")
	})

	t.Run("prompts_before_each_line", func(t *testing.T) {
		prompts := 0
		r, _, _ := newRunner(WithPrompt(func() { prompts++ }))
		require.NoError(t, r.RunReader(context.Background(),
			strings.NewReader("undo\nredo\n"), true, nil))
		assert.Equal(t, 3, prompts)
	})
}

func TestSinkFunc(t *testing.T) {
	var got Event
	c := collection.New(collection.WithLogger(quietLogger()))
	r := NewRunner(c, SinkFunc(func(ev Event) error { got = ev; return nil }), WithLogger(quietLogger()))

	require.NoError(t, r.Exec(Command{Op: OpAdd, Record: model.NewRecord("A", "a", 1)}))
	assert.Equal(t, OpAdd, got.Command.Op)
	assert.True(t, got.CanUndo)
}

func TestNilSink(t *testing.T) {
	c := collection.New(collection.WithLogger(quietLogger()))
	r := NewRunner(c, nil, WithLogger(quietLogger()))
	assert.NoError(t, r.Exec(Command{Op: OpPrint}))
}
