package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/upkeepdev/upkeep/internal/adapters/outbound/runner"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/toolprobe"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/tui"
	"github.com/upkeepdev/upkeep/internal/application"
	"github.com/upkeepdev/upkeep/internal/domain"
	"github.com/upkeepdev/upkeep/internal/logging"
)

func newSetupCmd() *cobra.Command {
	var (
		tools        bool
		editorconfig bool
		dryRun       bool
		jsonOutput   bool
		verbose      bool
		only         string
		path         string
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Install helper tools and shared editor defaults",
		Long:  "Bootstrap a development environment: install the helper tools upkeep prefers (cargo-edit, cargo-audit, ruff, mypy, pip-audit, corepack) and write a shared .editorconfig. With no flags both parts run; --tools or --editorconfig narrows to one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eco, err := parseOnly(only)
			if err != nil {
				return err
			}
			// No flag means everything.
			if !tools && !editorconfig {
				tools = true
				editorconfig = true
			}

			logger := logging.New(verbose)
			executor := application.NewExecutor(toolprobe.New(), runner.New(logger), runner.NewSweeper(logger), logger)
			svc := application.NewSetupService(executor, logger)

			if editorconfig && !dryRun {
				written, ecErr := svc.WriteEditorConfig(path)
				if ecErr != nil {
					return fmt.Errorf("writing .editorconfig: %w", ecErr)
				}
				if !jsonOutput {
					if written {
						fmt.Fprintln(cmd.OutOrStdout(), "  Created .editorconfig")
					} else {
						fmt.Fprintln(cmd.OutOrStdout(), "  .editorconfig already present, left unchanged")
					}
				}
			}

			if !tools {
				return nil
			}

			mode := domain.RunMode{Task: domain.TaskSetup, Only: eco, DryRun: dryRun}
			summary, err := svc.InstallTools(cmd.Context(), path, mode)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := renderJSON(cmd, summary); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRunReport(summary))
			}

			if code := summary.ExitCode(); code != 0 {
				return exitStatus(code)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tools, "tools", false, "Install the helper toolchain")
	cmd.Flags().BoolVar(&editorconfig, "editorconfig", false, "Write a shared .editorconfig")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the install commands without running them")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Debug logging to stderr")
	cmd.Flags().StringVar(&only, "only", "", "Limit to one ecosystem (rust, python, node)")
	cmd.Flags().StringVar(&path, "path", ".", "Project path")

	return cmd
}
