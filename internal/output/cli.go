package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/rewind/internal/collection"
	"github.com/manav03panchal/rewind/internal/model"
	"github.com/manav03panchal/rewind/internal/script"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#10B981") // Green
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Yellow
	colorError     = lipgloss.Color("#EF4444") // Red
	colorSuccess   = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleName = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleCategory = lipgloss.NewStyle().
			Foreground(colorSecondary)

	styleMagnitude = lipgloss.NewStyle().
			Bold(true)

	styleCursor = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWarning)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// RecordName formats a record name.
func (c *CLIFormatter) RecordName(name string) string {
	return c.render(styleName, name)
}

// Category formats a record category.
func (c *CLIFormatter) Category(category string) string {
	return c.render(styleCategory, category)
}

// Magnitude formats a magnitude with thousands separators.
func (c *CLIFormatter) Magnitude(n uint64) string {
	return c.render(styleMagnitude, FormatMagnitude(n))
}

// FormatRecord formats a record as "Name (Category, 1,234)".
func (c *CLIFormatter) FormatRecord(r model.Record) string {
	return fmt.Sprintf("%s (%s, %s)", c.RecordName(r.Name), c.Category(r.Category), c.Magnitude(r.Magnitude))
}

// Emit prints the outcome of one script command.
func (c *CLIFormatter) Emit(ev script.Event) error {
	switch ev.Command.Op {
	case script.OpAdd:
		c.Success("Added " + c.FormatRecord(*ev.Record))

	case script.OpRemove:
		if !ev.OK {
			c.Warning("Nothing to remove.")
			return nil
		}
		c.Success("Removed " + c.FormatRecord(*ev.Record))

	case script.OpUndo, script.OpRedo:
		if !ev.OK {
			c.Warning(fmt.Sprintf("Nothing to %s.", ev.Command.Op))
			return nil
		}
		c.PrintStep(*ev.Step)

	case script.OpPrint:
		c.PrintRecords(ev.Records)

	case script.OpDump:
		c.Print(ev.Dump)

	case script.OpHistory:
		c.PrintHistory(ev.History)

	case script.OpSnapshot:
		c.PrintSnapshotSaved(ev.Snapshot)
	}
	return nil
}

// PrintStep prints what an undo or redo applied.
func (c *CLIFormatter) PrintStep(step collection.Step) {
	verb := "Undid"
	if step.Direction == collection.DirectionRedo {
		verb = "Redid"
	}
	c.Success(fmt.Sprintf("%s %s of %s", verb, step.Kind, c.FormatRecord(step.Record)))
}

// PrintRecords prints the live records as a table.
func (c *CLIFormatter) PrintRecords(records []model.Record) {
	if len(records) == 0 {
		c.Muted("No records.")
		return
	}

	rows := make([]TableRow, 0, len(records))
	for i, r := range records {
		rows = append(rows, TableRow{Columns: []string{
			strconv.Itoa(i),
			r.Name,
			r.Category,
			FormatMagnitude(r.Magnitude),
		}})
	}
	c.PrintTable([]string{"#", "NAME", "CATEGORY", "MAGNITUDE"}, rows)
	total := model.SumMagnitudes(records)
	c.Muted(fmt.Sprintf("%d records, total %s", len(records), FormatMagnitude(total)))
}

// PrintHistory prints every log entry with the cursor and high-water mark.
func (c *CLIFormatter) PrintHistory(h collection.HistoryView) {
	c.Title("History")
	c.Printf("  Undo depth: %d  Redo depth: %d\n\n", h.UndoDepth(), h.RedoDepth())

	entries := h.Entries()
	rows := make([]TableRow, 0, len(entries))
	for i, a := range entries {
		cursor := ""
		if i == h.Current() {
			cursor = c.CursorMarker()
		}
		marker := ""
		if i == h.Max() {
			marker = "max"
		}
		record := ""
		if a.Record != nil {
			record = a.Record.String()
		}
		rows = append(rows, TableRow{Columns: []string{cursor, strconv.Itoa(i), a.Kind.String(), record, marker}})
	}
	c.PrintTable([]string{"", "INDEX", "KIND", "RECORD", ""}, rows)
}

// PrintSnapshotSaved prints a confirmation for a saved snapshot.
func (c *CLIFormatter) PrintSnapshotSaved(s *model.Snapshot) {
	label := ""
	if s.Label != "" {
		label = fmt.Sprintf(" %q", s.Label)
	}
	c.Success(fmt.Sprintf("Saved snapshot%s (%d records)", label, len(s.Records)))
	c.Muted("  ID: " + s.ID())
}

// PrintSnapshots prints a list of snapshots.
func (c *CLIFormatter) PrintSnapshots(snaps []*model.Snapshot) {
	if len(snaps) == 0 {
		c.Muted("No snapshots.")
		c.Muted("Use 'snapshot [label]' in a script to save one.")
		return
	}

	rows := make([]TableRow, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, TableRow{Columns: []string{
			s.ID(),
			s.Label,
			strconv.Itoa(len(s.Records)),
			FormatAge(s.CreatedAt),
		}})
	}
	c.PrintTable([]string{"ID", "LABEL", "RECORDS", "CREATED"}, rows)
}

// PrintSnapshot prints one snapshot with its records.
func (c *CLIFormatter) PrintSnapshot(s *model.Snapshot) {
	c.Title("Snapshot " + s.ID())
	if s.Label != "" {
		c.Printf("  Label: %s\n", s.Label)
	}
	c.Printf("  Created: %s (%s)\n", FormatTime(s.CreatedAt), FormatAge(s.CreatedAt))
	c.Printf("  Total magnitude: %s\n\n", c.Magnitude(s.TotalMagnitude()))
	c.PrintRecords(s.Records)
}

// PrintStats prints a summary of an executed script.
func (c *CLIFormatter) PrintStats(stats script.Stats) {
	c.Muted(fmt.Sprintf("%d commands: %d edits, %d undos, %d redos, %d no-ops",
		stats.Commands, stats.Edits, stats.Undos, stats.Redos, stats.Noops))
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]) + "  ")
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]) + "  ")
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// CursorMarker renders the history cursor arrow.
func (c *CLIFormatter) CursorMarker() string {
	return c.render(styleCursor, ">")
}
