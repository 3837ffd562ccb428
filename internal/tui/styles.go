// Package tui provides the interactive terminal session for Rewind.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/rewind/internal/model"
	"github.com/manav03panchal/rewind/internal/output"
)

// Color palette for the TUI.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorWarning   = lipgloss.Color("#F59E0B") // Yellow
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorActive    = lipgloss.Color("#3B82F6") // Blue
	ColorBorder    = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the TUI.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// StyleSubtitle is used for subtitles and secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleMuted is used for muted text.
	StyleMuted = StyleSubtitle

	// StyleName is used for record names.
	StyleName = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleCategory is used for record categories.
	StyleCategory = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// StyleMagnitude is used for magnitudes.
	StyleMagnitude = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleApplied is used for history edits at or before the cursor.
	StyleApplied = lipgloss.NewStyle()

	// StyleRedoable is used for history edits past the cursor.
	StyleRedoable = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	// StyleCursor is used for the history cursor line.
	StyleCursor = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	// StyleWarning is used for warning messages.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleError is used for error messages.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleSuccess is used for success messages.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Box styles for different sections.
var (
	// StyleRecordsBox is used for the live records section.
	StyleRecordsBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)

	// StyleHistoryBox is used for the history section.
	StyleHistoryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)
)

// ShareBar renders a record's share of the largest magnitude as a bar.
func ShareBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", empty))
}

// FormatRecord formats a record with styles.
func FormatRecord(r model.Record) string {
	return StyleName.Render(r.Name) + " " +
		StyleCategory.Render(r.Category) + " " +
		StyleMagnitude.Render(output.FormatMagnitude(r.Magnitude))
}
