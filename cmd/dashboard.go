package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/rewind/internal/collection"
	"github.com/manav03panchal/rewind/internal/config"
	"github.com/manav03panchal/rewind/internal/errors"
	"github.com/manav03panchal/rewind/internal/logging"
	"github.com/manav03panchal/rewind/internal/scheduler"
	"github.com/manav03panchal/rewind/internal/tui"
)

var dashboardAutoSave string

// dashboardCmd represents the interactive session command.
var dashboardCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"dashboard", "dash"},
	Short:   "Open an interactive editing session",
	Long: `Open an interactive terminal session over a fresh collection.

The screen shows the live records and the history around the cursor.

Keyboard Controls:
  a - Add the next sample country
  x - Remove the last record
  u - Undo
  r - Redo
  s - Save a snapshot of the records
  q - Quit

With --autosave (or REWIND_AUTOSAVE) the records are saved as a snapshot
on a cron schedule whenever they changed since the last save.

Examples:
  rewind tui
  rewind tui --autosave "@every 1m"`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardAutoSave, "autosave", "",
		"Cron schedule for automatic snapshots (e.g. \"@every 1m\")")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal; keep log notices out of it.
	logger := logging.New(logging.Config{Output: io.Discard})

	autosave := dashboardAutoSave
	if autosave == "" {
		autosave = config.Global.Session.AutoSave
	}
	if autosave != "" {
		if err := scheduler.ValidateSpec(autosave); err != nil {
			return errors.NewUserErrorWithField("autosave", autosave, "Invalid autosave schedule",
				"Use a cron expression or a descriptor like '@every 1m'").WithCause(err)
		}
	}

	logging.DebugContext(cmd.Context(), "starting tui", "autosave", autosave)
	return tui.Run(tui.DashboardConfig{
		Editor:   collection.NewSynchronized(ctx.NewCollection(logger)),
		Saver:    ctx.Saver(),
		AutoSave: autosave,
	})
}
