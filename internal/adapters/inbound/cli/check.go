package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/upkeepdev/upkeep/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		fix        bool
		strict     bool
		dryRun     bool
		parallel   bool
		jsonOutput bool
		verbose    bool
		only       string
		path       string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run formatters, linters, type checks, and tests",
		Long:  "Run the health checks each detected ecosystem defines: formatting in check mode, linting, type checking, and the test suite. The exit code is the number of failed steps.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eco, err := parseOnly(only)
			if err != nil {
				return err
			}
			mode := domain.RunMode{
				Task:        domain.TaskCheck,
				Only:        eco,
				Fix:         fix,
				Strict:      strict,
				DryRun:      dryRun,
				Parallel:    parallel,
				StepTimeout: timeout,
			}
			return runLifecycleTask(cmd, path, mode, jsonOutput, verbose)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Let formatters and linters rewrite files instead of reporting")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat lint warnings as errors")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the commands without running them")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run ecosystems concurrently")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Debug logging to stderr")
	cmd.Flags().StringVar(&only, "only", "", "Limit to one ecosystem (rust, python, node)")
	cmd.Flags().StringVar(&path, "path", ".", "Project path")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-step timeout (default 10m)")

	return cmd
}
