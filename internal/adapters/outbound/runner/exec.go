package runner

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/upkeepdev/upkeep/internal/domain"
)

// maxCapturedOutput bounds the combined output kept per step so one noisy
// tool cannot bloat reports and history.
const maxCapturedOutput = 64 * 1024

// ExecRunner implements domain.CommandRunner with os/exec: one subprocess
// per step, stdout and stderr captured together, context cancellation kills
// the child.
type ExecRunner struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger.With().Str("component", "runner").Logger()}
}

func (r *ExecRunner) Run(ctx context.Context, argv []string, dir string) domain.RunOutput {
	if len(argv) == 0 {
		return domain.RunOutput{ExitCode: -1, Err: errors.New("empty command")}
	}
	r.logger.Debug().Strs("argv", argv).Str("dir", dir).Msg("running tool")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	raw, err := cmd.CombinedOutput()

	out := domain.RunOutput{Output: capOutput(strings.TrimSpace(string(raw)))}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		out.ExitCode = -1
		out.TimedOut = true
		out.Err = ctx.Err()
	case ctx.Err() != nil:
		out.ExitCode = -1
		out.Err = ctx.Err()
	case err == nil:
		out.ExitCode = 0
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
		} else {
			out.ExitCode = -1
			out.Err = err
		}
	}

	r.logger.Debug().
		Str("tool", argv[0]).
		Int("exit_code", out.ExitCode).
		Bool("timed_out", out.TimedOut).
		Msg("tool finished")
	return out
}

func capOutput(s string) string {
	if len(s) <= maxCapturedOutput {
		return s
	}
	return s[:maxCapturedOutput] + "\n... output truncated"
}
