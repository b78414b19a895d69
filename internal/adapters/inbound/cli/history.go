package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upkeepdev/upkeep/internal/adapters/outbound/tui"
	"github.com/upkeepdev/upkeep/internal/domain"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
		verbose    bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded run summaries",
		Long:  "List the runs recorded in .upkeep/history/runs.json: when they ran, at which commit, and how many steps passed, failed, and were skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := newRunService(verbose).History(path)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}
			if jsonOutput {
				if entries == nil {
					entries = []domain.RunEntry{}
				}
				return renderJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the most recent N runs")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Debug logging to stderr")
	cmd.Flags().StringVar(&path, "path", ".", "Project path")

	return cmd
}
