package output

import (
	"encoding/json"
	"time"

	"github.com/manav03panchal/rewind/internal/collection"
	"github.com/manav03panchal/rewind/internal/model"
	"github.com/manav03panchal/rewind/internal/script"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// RecordOutput represents a record in JSON output.
type RecordOutput struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Magnitude uint64 `json:"magnitude"`
}

// NewRecordOutput creates a RecordOutput from a Record.
func NewRecordOutput(r model.Record) *RecordOutput {
	return &RecordOutput{
		Name:      r.Name,
		Category:  r.Category,
		Magnitude: r.Magnitude,
	}
}

func newRecordOutputs(records []model.Record) []*RecordOutput {
	out := make([]*RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, NewRecordOutput(r))
	}
	return out
}

// StepOutput represents an applied undo or redo step.
type StepOutput struct {
	Direction string        `json:"direction"`
	Kind      string        `json:"kind"`
	Record    *RecordOutput `json:"record"`
}

// EventOutput represents the outcome of one script command.
type EventOutput struct {
	Line     int             `json:"line"`
	Op       string          `json:"op"`
	OK       bool            `json:"ok"`
	Record   *RecordOutput   `json:"record,omitempty"`
	Step     *StepOutput     `json:"step,omitempty"`
	Records  []*RecordOutput `json:"records,omitempty"`
	Dump     string          `json:"dump,omitempty"`
	History  *HistoryOutput  `json:"history,omitempty"`
	Snapshot *SnapshotOutput `json:"snapshot,omitempty"`
	CanUndo  bool            `json:"can_undo"`
	CanRedo  bool            `json:"can_redo"`
}

// NewEventOutput creates an EventOutput from a script event.
func NewEventOutput(ev script.Event) *EventOutput {
	out := &EventOutput{
		Line:    ev.Command.Line,
		Op:      string(ev.Command.Op),
		OK:      ev.OK,
		Dump:    ev.Dump,
		CanUndo: ev.CanUndo,
		CanRedo: ev.CanRedo,
	}
	if ev.Record != nil {
		out.Record = NewRecordOutput(*ev.Record)
	}
	if ev.Step != nil {
		out.Step = &StepOutput{
			Direction: string(ev.Step.Direction),
			Kind:      ev.Step.Kind.String(),
			Record:    NewRecordOutput(ev.Step.Record),
		}
	}
	if ev.Command.Op == script.OpPrint {
		out.Records = newRecordOutputs(ev.Records)
	}
	if ev.History != nil {
		out.History = NewHistoryOutput(ev.History)
	}
	if ev.Snapshot != nil {
		out.Snapshot = NewSnapshotOutput(ev.Snapshot)
	}
	return out
}

// ActionOutput represents a history log entry in JSON output.
type ActionOutput struct {
	Index  int           `json:"index"`
	Kind   string        `json:"kind"`
	Record *RecordOutput `json:"record,omitempty"`
}

// HistoryOutput represents a full history log in JSON output.
type HistoryOutput struct {
	Current   int             `json:"current"`
	Max       int             `json:"max"`
	UndoDepth int             `json:"undo_depth"`
	RedoDepth int             `json:"redo_depth"`
	Entries   []*ActionOutput `json:"entries"`
}

// NewHistoryOutput creates a HistoryOutput from a history view.
func NewHistoryOutput(h collection.HistoryView) *HistoryOutput {
	entries := h.Entries()
	out := &HistoryOutput{
		Current:   h.Current(),
		Max:       h.Max(),
		UndoDepth: h.UndoDepth(),
		RedoDepth: h.RedoDepth(),
		Entries:   make([]*ActionOutput, 0, len(entries)),
	}
	for i, a := range entries {
		entry := &ActionOutput{Index: i, Kind: a.Kind.String()}
		if a.Record != nil {
			entry.Record = NewRecordOutput(*a.Record)
		}
		out.Entries = append(out.Entries, entry)
	}
	return out
}

// SnapshotOutput represents a snapshot in JSON output.
type SnapshotOutput struct {
	ID             string          `json:"id"`
	Label          string          `json:"label,omitempty"`
	CreatedAt      string          `json:"created_at"`
	RecordCount    int             `json:"record_count"`
	TotalMagnitude uint64          `json:"total_magnitude"`
	Records        []*RecordOutput `json:"records"`
}

// NewSnapshotOutput creates a SnapshotOutput from a Snapshot.
func NewSnapshotOutput(s *model.Snapshot) *SnapshotOutput {
	return &SnapshotOutput{
		ID:             s.ID(),
		Label:          s.Label,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		RecordCount:    len(s.Records),
		TotalMagnitude: s.TotalMagnitude(),
		Records:        newRecordOutputs(s.Records),
	}
}

// SnapshotsResponse represents the snapshot list output in JSON.
type SnapshotsResponse struct {
	Snapshots  []*SnapshotOutput `json:"snapshots"`
	TotalCount int               `json:"total_count"`
}

// DeleteResponse represents a delete command output in JSON.
type DeleteResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

// RunResponse summarizes an executed script in JSON.
type RunResponse struct {
	Status  string          `json:"status"`
	Stats   script.Stats    `json:"stats"`
	Records []*RecordOutput `json:"records"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Emit writes one script event as a single line of JSON.
func (j *JSONFormatter) Emit(ev script.Event) error {
	return json.NewEncoder(j.Writer).Encode(NewEventOutput(ev))
}

// PrintRecords outputs records as JSON.
func (j *JSONFormatter) PrintRecords(records []model.Record) error {
	return j.JSON(newRecordOutputs(records))
}

// PrintHistory outputs a history log as JSON.
func (j *JSONFormatter) PrintHistory(h collection.HistoryView) error {
	return j.JSON(NewHistoryOutput(h))
}

// PrintSnapshots outputs a snapshot list as JSON.
func (j *JSONFormatter) PrintSnapshots(snaps []*model.Snapshot) error {
	resp := SnapshotsResponse{
		Snapshots:  make([]*SnapshotOutput, 0, len(snaps)),
		TotalCount: len(snaps),
	}
	for _, s := range snaps {
		resp.Snapshots = append(resp.Snapshots, NewSnapshotOutput(s))
	}
	return j.JSON(resp)
}

// PrintSnapshot outputs a single snapshot as JSON.
func (j *JSONFormatter) PrintSnapshot(s *model.Snapshot) error {
	return j.JSON(NewSnapshotOutput(s))
}

// PrintDeleted outputs a deletion confirmation as JSON.
func (j *JSONFormatter) PrintDeleted(id string) error {
	return j.JSON(DeleteResponse{Status: "deleted", ID: id})
}

// PrintRun outputs a script summary as JSON.
func (j *JSONFormatter) PrintRun(stats script.Stats, records []model.Record) error {
	return j.JSON(RunResponse{Status: "ok", Stats: stats, Records: newRecordOutputs(records)})
}

// PrintError outputs an error as JSON.
func (j *JSONFormatter) PrintError(err error, message, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      err.Error(),
		Message:    message,
		Suggestion: suggestion,
	})
}
