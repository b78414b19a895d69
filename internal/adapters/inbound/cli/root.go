package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/upkeepdev/upkeep/internal/adapters/outbound/config"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/detector"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/gitinfo"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/history"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/runner"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/toolprobe"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/tui"
	"github.com/upkeepdev/upkeep/internal/application"
	"github.com/upkeepdev/upkeep/internal/domain"
	"github.com/upkeepdev/upkeep/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "upkeep",
		Short:         "One command for the chores every project shares",
		Long:          "Upkeep detects the ecosystems a project uses (Rust, Python, Node) and runs dependency updates, health checks, and artifact cleanup through whichever tools are actually installed.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newDetectCmd())
	cmd.AddCommand(newNewCmd())
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// exitStatus carries a run's exit code through cobra's error return. A
// non-zero status is not a usage error, so Execute reports it silently.
type exitStatus int

func (e exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// Execute runs the CLI and returns the process exit code: 0 for a clean
// run, the failed-step count for a run with failures, 130 when
// interrupted, and 1 for usage or setup errors.
func Execute(ctx context.Context) int {
	err := newRootCmd().ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func newRunService(verbose bool) *application.RunService {
	logger := logging.New(verbose)
	executor := application.NewExecutor(
		toolprobe.New(),
		runner.New(logger),
		runner.NewSweeper(logger),
		logger,
	)
	return application.NewRunService(
		detector.New(),
		config.New(),
		executor,
		history.New(),
		gitinfo.New(),
		logger,
	)
}

// runLifecycleTask is the shared tail of update, check, and clean: run the
// service, render the summary, and map failures to the exit status.
func runLifecycleTask(cmd *cobra.Command, path string, mode domain.RunMode, jsonOutput, verbose bool) error {
	summary, err := newRunService(verbose).Run(cmd.Context(), path, mode)
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
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseOnly(only string) (domain.Ecosystem, error) {
	if only == "" {
		return "", nil
	}
	return domain.ParseEcosystem(only)
}
