package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/rewind/internal/logging"
	"github.com/manav03panchal/rewind/internal/validate"
)

var pruneKeep int

// snapshotsCmd manages stored snapshots.
var snapshotsCmd = &cobra.Command{
	Use:     "snapshots",
	Aliases: []string{"snapshot", "snap"},
	Short:   "List, show and delete stored snapshots",
	Long: `Manage snapshots saved with the 'snapshot' script command.

A snapshot is a copy of the records at the time it was taken. History is
never stored.

Examples:
  rewind snapshots
  rewind snapshots show 0192f1c4-7f4e-7b21-9a53-1f0c2d3e4f50
  rewind snapshots delete 0192f1c4-7f4e-7b21-9a53-1f0c2d3e4f50
  rewind snapshots prune --keep 10
  rewind snapshots check`,
	Args: cobra.NoArgs,
	RunE: runSnapshotsList,
}

var snapshotsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored snapshots",
	Args:    cobra.NoArgs,
	RunE:    runSnapshotsList,
}

var snapshotsShowCmd = &cobra.Command{
	Use:               "show <id>",
	Short:             "Show a snapshot and its records",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSnapshotIDs,
	RunE:              runSnapshotsShow,
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:               "delete <id>",
	Aliases:           []string{"rm"},
	Short:             "Delete a snapshot",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSnapshotIDs,
	RunE:              runSnapshotsDelete,
}

var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete the oldest snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotsPrune,
}

var snapshotsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every stored snapshot can be read",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotsCheck,
}

func init() {
	snapshotsPruneCmd.Flags().IntVar(&pruneKeep, "keep", 0,
		"Number of snapshots to keep (default: REWIND_SNAPSHOT_LIMIT)")

	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsShowCmd)
	snapshotsCmd.AddCommand(snapshotsDeleteCmd)
	snapshotsCmd.AddCommand(snapshotsPruneCmd)
	snapshotsCmd.AddCommand(snapshotsCheckCmd)
	rootCmd.AddCommand(snapshotsCmd)
}

func runSnapshotsList(cmd *cobra.Command, args []string) error {
	snaps, err := ctx.SnapshotRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSnapshots(snaps)
	}
	ctx.CLIFormatter().PrintSnapshots(snaps)
	return nil
}

func runSnapshotsShow(cmd *cobra.Command, args []string) error {
	if err := validate.SnapshotID(args[0]); err != nil {
		return err
	}
	snap, err := ctx.SnapshotRepo.Get(args[0])
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSnapshot(snap)
	}
	ctx.CLIFormatter().PrintSnapshot(snap)
	return nil
}

func runSnapshotsDelete(cmd *cobra.Command, args []string) error {
	if err := validate.SnapshotID(args[0]); err != nil {
		return err
	}
	if err := ctx.SnapshotRepo.Delete(args[0]); err != nil {
		return err
	}
	logging.InfoContext(cmd.Context(), "snapshot deleted", logging.KeySnapshot, args[0])

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDeleted(args[0])
	}
	ctx.CLIFormatter().Success("Deleted snapshot " + args[0])
	return nil
}

func runSnapshotsPrune(cmd *cobra.Command, args []string) error {
	keep := pruneKeep
	if keep <= 0 {
		keep = ctx.SnapshotLimit
	}

	// Prune treats a non-positive limit as "keep everything".
	n, err := ctx.SnapshotRepo.Prune(keep)
	if err != nil {
		return err
	}
	if n > 0 {
		logging.Info("snapshots pruned", logging.KeyCount, n, "kept", keep)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]int{"pruned": n, "kept": keep})
	}
	if keep <= 0 {
		ctx.CLIFormatter().Muted("No snapshot limit set; nothing pruned.")
		return nil
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Pruned %d snapshots (keeping at most %d)", n, keep))
	return nil
}

func runSnapshotsCheck(cmd *cobra.Command, args []string) error {
	status := ctx.DB.CheckIntegrity()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(status)
	}
	cli := ctx.CLIFormatter()
	if status.Healthy {
		cli.Success(fmt.Sprintf("Checked %d snapshots, no problems found", status.Checked))
		return nil
	}
	cli.Warning(fmt.Sprintf("Checked %d snapshots, %d unreadable", status.Checked, status.ErrorCount))
	for _, e := range status.Errors {
		cli.Muted("  " + e)
	}
	return nil
}
