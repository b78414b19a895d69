package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/upkeepdev/upkeep/internal/domain"
)

func newUpdateCmd() *cobra.Command {
	var (
		checkOnly  bool
		minor      bool
		audit      bool
		dryRun     bool
		parallel   bool
		jsonOutput bool
		verbose    bool
		only       string
		path       string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh dependencies for every detected ecosystem",
		Long:  "Update dependencies through each ecosystem's own package manager: cargo for Rust, poetry/uv/pip for Python, pnpm/yarn/npm for Node. Missing tools skip their step instead of failing the run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eco, err := parseOnly(only)
			if err != nil {
				return err
			}
			mode := domain.RunMode{
				Task:        domain.TaskUpdate,
				Only:        eco,
				CheckOnly:   checkOnly,
				MinorOnly:   minor,
				Audit:       audit,
				DryRun:      dryRun,
				Parallel:    parallel,
				StepTimeout: timeout,
			}
			return runLifecycleTask(cmd, path, mode, jsonOutput, verbose)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Report outdated dependencies without changing anything")
	cmd.Flags().BoolVar(&minor, "minor", false, "Constrain upgrades to semver-compatible versions")
	cmd.Flags().BoolVar(&audit, "audit", false, "Append a security audit step per ecosystem")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the commands without running them")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run ecosystems concurrently")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Debug logging to stderr")
	cmd.Flags().StringVar(&only, "only", "", "Limit to one ecosystem (rust, python, node)")
	cmd.Flags().StringVar(&path, "path", ".", "Project path")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-step timeout (default 10m)")

	return cmd
}
