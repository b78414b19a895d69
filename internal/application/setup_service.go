package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/upkeepdev/upkeep/internal/domain"
)

// SetupService bootstraps a development environment: it installs the helper
// tools the lifecycle tasks prefer and drops shared editor defaults.
type SetupService struct {
	executor *Executor
	logger   zerolog.Logger
}

func NewSetupService(executor *Executor, logger zerolog.Logger) *SetupService {
	return &SetupService{
		executor: executor,
		logger:   logger.With().Str("component", "setup").Logger(),
	}
}

// InstallTools runs the bootstrap plan. Unlike the lifecycle tasks this is
// not detection-driven: it installs for every ecosystem unless mode.Only
// narrows it, and it never consults project configuration.
func (s *SetupService) InstallTools(ctx context.Context, projectRoot string, mode domain.RunMode) (*domain.RunSummary, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	info := &domain.ProjectInfo{RootPath: projectRoot}
	summary := domain.NewRunSummary(domain.TaskSetup, projectRoot)

	for _, plan := range domain.SetupPlans(mode.Only) {
		summary.Ecosystems = append(summary.Ecosystems, plan.Ecosystem)
		for _, result := range s.executor.ExecutePlan(ctx, plan, info, mode, domain.DefaultConfig()) {
			summary.Record(result)
		}
	}

	summary.Interrupted = ctx.Err() != nil
	summary.Finish()
	return summary, nil
}

const editorConfig = `root = true

[*]
charset = utf-8
end_of_line = lf
insert_final_newline = true
trim_trailing_whitespace = true

[*.rs]
indent_style = space
indent_size = 4

[*.py]
indent_style = space
indent_size = 4

[*.{js,ts,json,yml,yaml}]
indent_style = space
indent_size = 2

[Makefile]
indent_style = tab
`

// WriteEditorConfig drops shared editor defaults into projectRoot. An
// existing .editorconfig is left untouched; the return value reports
// whether a file was written.
func (s *SetupService) WriteEditorConfig(projectRoot string) (bool, error) {
	path := filepath.Join(projectRoot, ".editorconfig")
	if _, err := os.Stat(path); err == nil {
		s.logger.Debug().Str("path", path).Msg("editorconfig already present")
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	if err := os.WriteFile(path, []byte(editorConfig), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
