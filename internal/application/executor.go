package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/upkeepdev/upkeep/internal/domain"
)

// Executor turns planned steps into recorded results. All outcome
// classification lives here; adapters only report raw observations.
type Executor struct {
	avail   domain.Availability
	runner  domain.CommandRunner
	sweeper domain.ArtifactSweeper
	logger  zerolog.Logger
}

func NewExecutor(avail domain.Availability, runner domain.CommandRunner, sweeper domain.ArtifactSweeper, logger zerolog.Logger) *Executor {
	return &Executor{
		avail:   avail,
		runner:  runner,
		sweeper: sweeper,
		logger:  logger.With().Str("component", "executor").Logger(),
	}
}

// ExecutePlan runs one ecosystem's steps in order. Execution is fail-soft:
// a failed step never prevents the remaining steps from running. Only
// context cancellation stops the plan early, leaving unstarted steps
// unrecorded.
func (e *Executor) ExecutePlan(ctx context.Context, plan domain.EcosystemPlan, info *domain.ProjectInfo, mode domain.RunMode, cfg domain.ProjectConfig) []domain.StepResult {
	results := make([]domain.StepResult, 0, len(plan.Steps))
	for _, step := range plan.Steps {
		if ctx.Err() != nil {
			break
		}
		results = append(results, e.executeStep(ctx, step, info, mode, cfg))
	}
	return results
}

func (e *Executor) executeStep(ctx context.Context, step domain.Step, info *domain.ProjectInfo, mode domain.RunMode, cfg domain.ProjectConfig) domain.StepResult {
	start := time.Now()
	result := domain.StepResult{Step: step.Name, Ecosystem: step.Ecosystem}
	defer func() {
		e.logger.Debug().
			Str("ecosystem", string(step.Ecosystem)).
			Str("step", step.Name).
			Str("outcome", string(result.Outcome)).
			Msg("step finished")
	}()

	if step.SkipReason != "" {
		return finish(result, domain.OutcomeSkipped, step.SkipReason, start)
	}

	if step.IsRemoval() {
		return e.executeRemoval(result, step, info.RootPath, mode, start)
	}

	res := domain.ResolveTool(step.Candidates, e.avail, info.Lockfiles)
	if !res.Found {
		diag := "no tool available"
		if res.Hint != "" {
			diag += "; " + res.Hint
		}
		return finish(result, domain.OutcomeSkipped, diag, start)
	}
	result.Tool = res.Candidate.Tool

	argv, ok := res.Candidate.SelectArgv(step.Mode)
	if !ok {
		diag := fmt.Sprintf("%s has no %s invocation", res.Candidate.Tool, step.Mode)
		return finish(result, domain.OutcomeSkipped, diag, start)
	}

	if mode.DryRun {
		return finish(result, domain.OutcomePassed, "would run: "+strings.Join(argv, " "), start)
	}

	timeout := mode.Timeout(cfg)
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out := e.runner.Run(stepCtx, argv, info.RootPath)
	result.Output = out.Output
	result.ExitCode = out.ExitCode

	switch {
	case out.TimedOut:
		return finish(result, domain.OutcomeFailed, fmt.Sprintf("timed out after %s", timeout), start)
	case errors.Is(out.Err, context.Canceled):
		return finish(result, domain.OutcomeFailed, "interrupted", start)
	case out.Err != nil:
		return finish(result, domain.OutcomeFailed, out.Err.Error(), start)
	case out.ExitCode != 0:
		return finish(result, domain.OutcomeFailed, fmt.Sprintf("exit code %d", out.ExitCode), start)
	default:
		return finish(result, domain.OutcomePassed, "", start)
	}
}

func (e *Executor) executeRemoval(result domain.StepResult, step domain.Step, projectRoot string, mode domain.RunMode, start time.Time) domain.StepResult {
	paths, err := e.sweeper.Expand(projectRoot, step.RemoveGlobs)
	if err != nil {
		return finish(result, domain.OutcomeFailed, err.Error(), start)
	}
	if len(paths) == 0 {
		return finish(result, domain.OutcomeSkipped, "nothing to clean", start)
	}

	result.Output = strings.Join(paths, "\n")
	if mode.DryRun {
		return finish(result, domain.OutcomePassed, fmt.Sprintf("would remove %d %s", len(paths), plural(paths)), start)
	}

	if err := e.sweeper.Remove(projectRoot, paths); err != nil {
		return finish(result, domain.OutcomeFailed, err.Error(), start)
	}
	return finish(result, domain.OutcomePassed, fmt.Sprintf("removed %d %s", len(paths), plural(paths)), start)
}

func finish(result domain.StepResult, outcome domain.Outcome, diagnostic string, start time.Time) domain.StepResult {
	result.Outcome = outcome
	result.Diagnostic = diagnostic
	result.Duration = time.Since(start)
	result.DurationMS = result.Duration.Milliseconds()
	return result
}

func plural(paths []string) string {
	if len(paths) == 1 {
		return "path"
	}
	return "paths"
}
