package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/rewind/internal/output"
)

// completeSnapshotIDs returns a completion function for snapshot IDs.
func completeSnapshotIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.SnapshotRepo == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	snaps, err := ctx.SnapshotRepo.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, s := range snaps {
		id := s.ID()
		if !strings.HasPrefix(id, toComplete) {
			continue
		}
		desc := output.FormatAge(s.CreatedAt)
		if s.Label != "" {
			desc = s.Label + ", " + desc
		}
		completions = append(completions, id+"\t"+desc)
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
