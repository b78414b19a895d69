package cli

import (
	"github.com/spf13/cobra"

	"github.com/upkeepdev/upkeep/internal/domain"
)

func newCleanCmd() *cobra.Command {
	var (
		all        bool
		dryRun     bool
		jsonOutput bool
		verbose    bool
		only       string
		path       string
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts and tool caches",
		Long:  "Delete the build output and cache directories each detected ecosystem accumulates (target, dist, __pycache__, coverage). Lockfiles are never removed. --all additionally removes dependency directories like node_modules and .venv.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eco, err := parseOnly(only)
			if err != nil {
				return err
			}
			mode := domain.RunMode{
				Task:     domain.TaskClean,
				Only:     eco,
				DryRun:   dryRun,
				CleanAll: all,
			}
			return runLifecycleTask(cmd, path, mode, jsonOutput, verbose)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Also remove dependency directories (node_modules, .venv)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be removed without deleting")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Debug logging to stderr")
	cmd.Flags().StringVar(&only, "only", "", "Limit to one ecosystem (rust, python, node)")
	cmd.Flags().StringVar(&path, "path", ".", "Project path")

	return cmd
}
