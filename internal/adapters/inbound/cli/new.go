package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/upkeepdev/upkeep/internal/adapters/outbound/gitinfo"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/scaffold"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/tui"
	"github.com/upkeepdev/upkeep/internal/application"
	"github.com/upkeepdev/upkeep/internal/domain"
	"github.com/upkeepdev/upkeep/internal/logging"
)

func newNewCmd() *cobra.Command {
	var (
		ecoName string
		dir     string
		noGit   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Scaffold a new project skeleton",
		Long:  "Create a minimal project for one ecosystem: manifest, source entry point, .gitignore, and README, with the name normalized per ecosystem convention (\"WebScraper\" becomes crate web-scraper, python package web_scraper).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eco, err := domain.ParseEcosystem(ecoName)
			if err != nil {
				return err
			}
			name, err := domain.NewProjectName(args[0])
			if err != nil {
				return err
			}

			req := domain.ScaffoldRequest{
				Name:      name,
				Ecosystem: eco,
				TargetDir: filepath.Join(dir, name.Slug),
				InitGit:   !noGit,
			}

			logger := logging.New(verbose)
			svc := application.NewScaffoldService(scaffold.New(logger), gitinfo.New(), logger)
			files, err := svc.Create(req)
			if err != nil {
				return fmt.Errorf("scaffolding %s: %w", name.Slug, err)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderScaffolded(req, files))
			return nil
		},
	}

	cmd.Flags().StringVar(&ecoName, "type", "rust", "Project ecosystem (rust, python, node)")
	cmd.Flags().StringVar(&dir, "dir", ".", "Parent directory for the new project")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "Skip git repository initialization")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Debug logging to stderr")

	return cmd
}
