package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upkeepdev/upkeep/internal/adapters/outbound/tui"
)

func newDetectCmd() *cobra.Command {
	var (
		jsonOutput bool
		verbose    bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Show which ecosystems the project uses",
		Long:  "Probe the project root for ecosystem marker files and report what was found: markers, lockfiles, a tests directory, declared package scripts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := newRunService(verbose).Inspect(path)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, info)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDetect(info))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Debug logging to stderr")
	cmd.Flags().StringVar(&path, "path", ".", "Project path")

	return cmd
}
