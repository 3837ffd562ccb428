package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/rewind/internal/collection"
	"github.com/manav03panchal/rewind/internal/model"
	"github.com/manav03panchal/rewind/internal/runtime"
	"github.com/manav03panchal/rewind/internal/scheduler"
	"github.com/manav03panchal/rewind/internal/script"
)

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// editedMsg is sent after an edit, undo or redo has been applied.
type editedMsg struct {
	text string
	ok   bool
}

// snapshotMsg is sent after a snapshot has been saved.
type snapshotMsg struct {
	snap *model.Snapshot
}

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// DashboardModel is the bubbletea model for an interactive editing session.
type DashboardModel struct {
	editor   *collection.Synchronized
	saver    script.SnapshotSaver
	autosave *scheduler.Scheduler
	samples  []model.Record
	next     int

	// Data, refreshed after every change
	records []model.Record
	entries []model.Action
	current int
	max     int

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageOK  bool
	messageExp time.Time

	// Configuration
	refreshInterval time.Duration
	historyLimit    int
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Editor *collection.Synchronized
	// Saver is optional; without it 's' only shows a notice.
	Saver script.SnapshotSaver
	// Samples are added in turn by 'a'. Defaults to the sample countries.
	Samples []model.Record
	// AutoSave is a cron schedule for periodic snapshots, e.g. "@every 1m".
	// Empty disables it. Requires Saver.
	AutoSave        string
	RefreshInterval time.Duration
	HistoryLimit    int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.Editor == nil {
		config.Editor = collection.NewSynchronized(collection.New())
	}
	if len(config.Samples) == 0 {
		config.Samples = model.SampleCountries()
	}
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.HistoryLimit == 0 {
		config.HistoryLimit = 8
	}

	m := &DashboardModel{
		editor:          config.Editor,
		saver:           config.Saver,
		samples:         config.Samples,
		refreshInterval: config.RefreshInterval,
		historyLimit:    config.HistoryLimit,
	}
	m.loadData()
	return m
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Clear expired messages
		if !m.messageExp.IsZero() && time.Now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case editedMsg:
		m.loadData()
		m.err = nil
		m.setMessage(msg.text, 2*time.Second)
		m.messageOK = msg.ok
		return m, nil

	case snapshotMsg:
		m.err = nil
		m.setMessage(fmt.Sprintf("Saved snapshot %s (%d records)", msg.snap.ID(), len(msg.snap.Records)), 3*time.Second)
		m.messageOK = true
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "a":
		rec := m.samples[m.next%len(m.samples)]
		m.next++
		return m, m.editCmd(func() editedMsg {
			m.editor.Add(rec)
			return editedMsg{text: "Added " + rec.String(), ok: true}
		})

	case "x":
		return m, m.editCmd(func() editedMsg {
			rec, ok := m.editor.Remove()
			if !ok {
				return editedMsg{text: "Nothing to remove"}
			}
			return editedMsg{text: "Removed " + rec.String(), ok: true}
		})

	case "u":
		return m, m.editCmd(func() editedMsg {
			step, ok := m.editor.Undo()
			if !ok {
				return editedMsg{text: "Nothing to undo"}
			}
			return editedMsg{text: "Undid " + step.Kind.String() + " of " + step.Record.String(), ok: true}
		})

	case "r":
		return m, m.editCmd(func() editedMsg {
			step, ok := m.editor.Redo()
			if !ok {
				return editedMsg{text: "Nothing to redo"}
			}
			return editedMsg{text: "Redid " + step.Kind.String() + " of " + step.Record.String(), ok: true}
		})

	case "s":
		if m.saver == nil {
			m.setMessage("Snapshots are not available in this session", 3*time.Second)
			return m, nil
		}
		return m, m.snapshotCmd()
	}

	return m, nil
}

// editCmd runs fn off the update loop. A history invariant failure is
// reported as an error instead of crashing the program.
func (m *DashboardModel) editCmd(fn func() editedMsg) tea.Cmd {
	return func() (msg tea.Msg) {
		var err error
		defer func() {
			if err != nil {
				msg = errMsg{err: err}
			}
		}()
		defer runtime.RecoverInvariant(&err)
		return fn()
	}
}

// snapshotCmd saves the live records.
func (m *DashboardModel) snapshotCmd() tea.Cmd {
	saver := m.saver
	return func() tea.Msg {
		snap, err := saver.Save("tui", m.editor.Records())
		if err != nil {
			return errMsg{err: err}
		}
		return snapshotMsg{snap: snap}
	}
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.message != "" {
		style := StyleWarning
		if m.messageOK {
			style = StyleSuccess
		}
		sections = append(sections, style.Render(m.message))
	}

	sections = append(sections, NewRecordsComponent(m.records, m.width).View())
	sections = append(sections, NewHistoryComponent(m.entries, m.current, m.max, m.width, m.historyLimit).View())
	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	title := StyleTitle.Render("Rewind")
	next := m.samples[m.next%len(m.samples)]
	hint := StyleSubtitle.Render("next: " + next.Name)
	if m.autosave != nil {
		if at := m.autosave.NextRun(); !at.IsZero() {
			hint += StyleSubtitle.Render("  autosave: " + at.Format("15:04:05"))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", hint) + "\n"
}

// loadData reads records and history from the editor.
func (m *DashboardModel) loadData() {
	var h collection.HistoryView
	m.records, h = m.editor.State()
	m.entries, m.current, m.max = h.Entries(), h.Current(), h.Max()
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageOK = false
	m.messageExp = time.Now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the interactive session.
func Run(config DashboardConfig) error {
	m := NewDashboardModel(config)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if config.AutoSave != "" && config.Saver != nil {
		sched := scheduler.NewScheduler()
		_, err := sched.AutoSnapshot(config.AutoSave, "autosave", m.editor.Records, config.Saver,
			func(snap *model.Snapshot, err error) {
				if err != nil {
					p.Send(errMsg{err: err})
					return
				}
				p.Send(snapshotMsg{snap: snap})
			})
		if err != nil {
			return err
		}
		m.autosave = sched
		sched.Start()
		defer sched.Stop()
	}

	_, err := p.Run()
	return err
}
