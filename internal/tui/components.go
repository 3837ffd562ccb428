package tui

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/rewind/internal/model"
	"github.com/manav03panchal/rewind/internal/output"
)

// RecordsComponent displays the live records.
type RecordsComponent struct {
	Records []model.Record
	Width   int
}

// NewRecordsComponent creates a new records component.
func NewRecordsComponent(records []model.Record, width int) *RecordsComponent {
	return &RecordsComponent{Records: records, Width: width}
}

// View renders the records component.
func (rc *RecordsComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render(fmt.Sprintf("Records (%d)", len(rc.Records))))
	content.WriteString("\n")

	if len(rc.Records) == 0 {
		content.WriteString(StyleMuted.Render("Empty. Press 'a' to add a record."))
		return StyleRecordsBox.Width(rc.boxWidth()).Render(content.String())
	}

	var largest uint64
	total := model.SumMagnitudes(rc.Records)
	for _, r := range rc.Records {
		if r.Magnitude > largest {
			largest = r.Magnitude
		}
	}

	barWidth := rc.Width / 4
	if barWidth < 10 {
		barWidth = 10
	}
	for i, r := range rc.Records {
		if i > 0 {
			content.WriteString("\n")
		}
		pct := 0.0
		if largest > 0 {
			pct = float64(r.Magnitude) * 100 / float64(largest)
		}
		content.WriteString(fmt.Sprintf("%d. ", i+1))
		content.WriteString(FormatRecord(r))
		content.WriteString("\n   ")
		content.WriteString(ShareBar(pct, barWidth))
		content.WriteString(" " + StyleMuted.Render(output.FormatMagnitudeShort(r.Magnitude)))
	}

	content.WriteString("\n\n")
	content.WriteString(StyleSubtitle.Render("Total " + output.FormatMagnitude(total)))

	return StyleRecordsBox.Width(rc.boxWidth()).Render(content.String())
}

func (rc *RecordsComponent) boxWidth() int {
	return rc.Width - 4
}

// HistoryComponent displays the edits in the log around the cursor.
type HistoryComponent struct {
	Entries []model.Action
	Current int
	Max     int
	Width   int
	Limit   int
}

// NewHistoryComponent creates a new history component.
func NewHistoryComponent(entries []model.Action, current, max, width, limit int) *HistoryComponent {
	return &HistoryComponent{
		Entries: entries,
		Current: current,
		Max:     max,
		Width:   width,
		Limit:   limit,
	}
}

type historyEdit struct {
	index  int
	action model.Action
}

// View renders the history component.
func (hc *HistoryComponent) View() string {
	var content strings.Builder

	undo := hc.Current / 2
	redo := (hc.Max - hc.Current) / 2
	content.WriteString(StyleTitle.Render(fmt.Sprintf("History (%d undo, %d redo)", undo, redo)))
	content.WriteString("\n")

	var edits []historyEdit
	for i, a := range hc.Entries {
		if a.IsEdit() {
			edits = append(edits, historyEdit{index: i, action: a})
		}
	}

	if len(edits) == 0 {
		content.WriteString(StyleMuted.Render("No edits yet"))
		return StyleHistoryBox.Width(hc.Width - 4).Render(content.String())
	}

	start := 0
	if hc.Limit > 0 && len(edits) > hc.Limit {
		start = len(edits) - hc.Limit
		content.WriteString(StyleMuted.Render(fmt.Sprintf("… %d earlier", start)))
		content.WriteString("\n")
	}

	cursorShown := false
	cursor := StyleCursor.Render("▶ now")
	for n, e := range edits[start:] {
		if !cursorShown && e.index > hc.Current {
			content.WriteString(cursor + "\n")
			cursorShown = true
		}
		line := fmt.Sprintf("%d. %-6s %s", start+n+1, e.action.Kind, e.action.Record.String())
		if e.index < hc.Current {
			content.WriteString(StyleApplied.Render(line))
		} else {
			content.WriteString(StyleRedoable.Render(line))
		}
		content.WriteString("\n")
	}
	if !cursorShown {
		content.WriteString(cursor)
	}

	return StyleHistoryBox.Width(hc.Width - 4).Render(strings.TrimRight(content.String(), "\n"))
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"a", "add"},
		{"x", "remove"},
		{"u", "undo"},
		{"r", "redo"},
		{"s", "snapshot"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
