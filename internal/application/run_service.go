package application

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/upkeepdev/upkeep/internal/domain"
)

// RunService drives one lifecycle run: inspect the project, plan the steps,
// execute them, and persist the outcome.
type RunService struct {
	inspector domain.ProjectInspector
	loader    domain.ConfigLoader
	executor  *Executor
	history   domain.HistoryStore
	git       domain.GitInfo
	logger    zerolog.Logger
}

func NewRunService(
	inspector domain.ProjectInspector,
	loader domain.ConfigLoader,
	executor *Executor,
	history domain.HistoryStore,
	git domain.GitInfo,
	logger zerolog.Logger,
) *RunService {
	return &RunService{
		inspector: inspector,
		loader:    loader,
		executor:  executor,
		history:   history,
		git:       git,
		logger:    logger.With().Str("component", "run").Logger(),
	}
}

// Run executes the task described by mode against projectRoot and returns
// the summary. The summary is complete even when ctx was canceled partway;
// only setup mistakes (bad mode, unreadable root, broken config) return an
// error instead. Targeting an ecosystem the project does not have is not an
// error: the run plans zero steps and the empty summary says so.
func (s *RunService) Run(ctx context.Context, projectRoot string, mode domain.RunMode) (*domain.RunSummary, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	info, err := s.inspector.Inspect(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg, err := s.loader.Load(info.RootPath)
	if err != nil {
		return nil, err
	}

	if mode.Only != "" && !info.Has(mode.Only) {
		s.logger.Debug().
			Str("only", string(mode.Only)).
			Str("root", info.RootPath).
			Msg("targeted ecosystem not detected")
	}

	plans := domain.Plan(info, mode, cfg)
	s.logger.Debug().
		Str("task", string(mode.Task)).
		Int("ecosystems", len(plans)).
		Bool("parallel", mode.Parallel).
		Msg("run planned")

	summary := domain.NewRunSummary(mode.Task, info.RootPath)
	for _, plan := range plans {
		summary.Ecosystems = append(summary.Ecosystems, plan.Ecosystem)
	}

	if mode.Parallel && len(plans) > 1 {
		s.runParallel(ctx, plans, info, mode, cfg, summary)
	} else {
		for _, plan := range plans {
			for _, result := range s.executor.ExecutePlan(ctx, plan, info, mode, cfg) {
				summary.Record(result)
			}
		}
	}

	summary.Interrupted = ctx.Err() != nil
	summary.Finish()

	if hash, hashErr := s.git.CommitHash(info.RootPath); hashErr == nil {
		summary.CommitHash = hash
	}

	// Dry runs and runs that planned nothing are not recorded.
	if !mode.DryRun && summary.Total > 0 {
		if saveErr := s.history.Save(info.RootPath, summary.Entry()); saveErr != nil {
			s.logger.Warn().Err(saveErr).Msg("saving run history failed")
		}
	}

	return summary, nil
}

// runParallel executes the per-ecosystem plans concurrently. Each plan
// collects into its own slot and results are recorded in catalog order
// afterwards, so the report reads identically to a sequential run.
func (s *RunService) runParallel(ctx context.Context, plans []domain.EcosystemPlan, info *domain.ProjectInfo, mode domain.RunMode, cfg domain.ProjectConfig, summary *domain.RunSummary) {
	collected := make([][]domain.StepResult, len(plans))

	g, gctx := errgroup.WithContext(ctx)
	for i, plan := range plans {
		g.Go(func() error {
			collected[i] = s.executor.ExecutePlan(gctx, plan, info, mode, cfg)
			return nil
		})
	}
	_ = g.Wait()

	for _, results := range collected {
		for _, result := range results {
			summary.Record(result)
		}
	}
}

// Inspect exposes detection on its own for the detect command and the MCP
// resources.
func (s *RunService) Inspect(projectRoot string) (*domain.ProjectInfo, error) {
	return s.inspector.Inspect(projectRoot)
}

// History returns the persisted run entries for a project, most recent
// last.
func (s *RunService) History(projectRoot string) ([]domain.RunEntry, error) {
	return s.history.Load(projectRoot)
}
