package application_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeepdev/upkeep/internal/adapters/outbound/config"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/detector"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/gitinfo"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/history"
	"github.com/upkeepdev/upkeep/internal/adapters/outbound/runner"
	"github.com/upkeepdev/upkeep/internal/application"
	"github.com/upkeepdev/upkeep/internal/domain"
	"github.com/upkeepdev/upkeep/internal/logging"
)

type availMap map[string]bool

func (a availMap) Available(tool string) bool { return a[tool] }

// fakeRunner records every invocation and replays canned outputs keyed by
// the joined argv. Unknown commands succeed.
type fakeRunner struct {
	mu      sync.Mutex
	calls   [][]string
	outputs map[string]domain.RunOutput
}

func (f *fakeRunner) Run(ctx context.Context, argv []string, dir string) domain.RunOutput {
	f.mu.Lock()
	f.calls = append(f.calls, argv)
	f.mu.Unlock()

	if ctx.Err() != nil {
		return domain.RunOutput{ExitCode: -1, Err: ctx.Err()}
	}
	if out, ok := f.outputs[strings.Join(argv, " ")]; ok {
		return out
	}
	return domain.RunOutput{ExitCode: 0, Output: "ok"}
}

func (f *fakeRunner) ran(command string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.calls {
		if strings.Join(call, " ") == command {
			return true
		}
	}
	return false
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newRunService(avail domain.Availability, run domain.CommandRunner) *application.RunService {
	executor := application.NewExecutor(avail, run, runner.NewSweeper(logging.Nop()), logging.Nop())
	return application.NewRunService(detector.New(), config.New(), executor, history.New(), gitinfo.New(), logging.Nop())
}

func rustProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"demo\"\n"), 0o644))
	return dir
}

func nodeProject(t *testing.T, lockfile string) string {
	t.Helper()
	dir := t.TempDir()
	pkg := `{"name":"demo","scripts":{"lint":"eslint .","test":"vitest"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(pkg), 0o644))
	if lockfile != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, lockfile), []byte(""), 0o644))
	}
	return dir
}

func TestRunService_UpdateRust(t *testing.T) {
	dir := rustProject(t)
	run := &fakeRunner{}
	svc := newRunService(availMap{"cargo": true, "cargo-upgrade": true}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 0, summary.ExitCode())
	assert.True(t, run.ran("cargo update"))
	assert.True(t, run.ran("cargo upgrade --incompatible"))
}

func TestRunService_FailSoft(t *testing.T) {
	dir := rustProject(t)
	run := &fakeRunner{outputs: map[string]domain.RunOutput{
		"cargo update": {ExitCode: 101, Output: "error: failed to select a version"},
	}}
	svc := newRunService(availMap{"cargo": true, "cargo-upgrade": true}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.ExitCode())
	assert.True(t, run.ran("cargo upgrade --incompatible"), "later steps still run after a failure")

	failed := summary.Results[0]
	assert.Equal(t, domain.OutcomeFailed, failed.Outcome)
	assert.Equal(t, "exit code 101", failed.Diagnostic)
	assert.Contains(t, failed.Output, "failed to select a version")
}

func TestRunService_MissingToolSkips(t *testing.T) {
	dir := rustProject(t)
	run := &fakeRunner{}
	svc := newRunService(availMap{}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, summary.ExitCode())
	assert.Equal(t, 0, run.callCount())
	assert.Contains(t, summary.Results[1].Diagnostic, "cargo install cargo-edit")
}

func TestRunService_DryRun(t *testing.T) {
	dir := rustProject(t)
	run := &fakeRunner{}
	svc := newRunService(availMap{"cargo": true, "cargo-upgrade": true}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate, DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 0, run.callCount())
	assert.Contains(t, summary.Results[0].Diagnostic, "would run: cargo update")

	// Dry runs change nothing, history included.
	entries, err := svc.History(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunService_CheckOnlyMode(t *testing.T) {
	dir := rustProject(t)
	run := &fakeRunner{}
	svc := newRunService(availMap{"cargo": true, "cargo-upgrade": true}, run)

	_, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate, CheckOnly: true})

	require.NoError(t, err)
	assert.True(t, run.ran("cargo update --dry-run"))
	assert.True(t, run.ran("cargo upgrade --dry-run"))
}

func TestRunService_LockfilePicksPackageManager(t *testing.T) {
	dir := nodeProject(t, "yarn.lock")
	run := &fakeRunner{}
	svc := newRunService(availMap{"pnpm": true, "yarn": true, "npm": true}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate})

	require.NoError(t, err)
	require.NotEmpty(t, summary.Results)
	assert.Equal(t, "yarn", summary.Results[0].Tool)
	assert.True(t, run.ran("yarn upgrade"))
	assert.False(t, run.ran("pnpm update"))
}

func TestRunService_OnlyUndetectedEcosystemIsEmptyRun(t *testing.T) {
	dir := nodeProject(t, "")
	run := &fakeRunner{}
	svc := newRunService(availMap{}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate, Only: domain.EcoRust})

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.Ecosystems)
	assert.Equal(t, 0, summary.ExitCode())
	assert.Equal(t, 0, run.callCount())
}

func TestRunService_Clean(t *testing.T) {
	dir := nodeProject(t, "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "coverage"), 0o755))
	svc := newRunService(availMap{}, &fakeRunner{})

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskClean})

	require.NoError(t, err)
	require.Equal(t, 1, summary.Total)
	result := summary.Results[0]
	assert.Equal(t, domain.OutcomePassed, result.Outcome)
	assert.Equal(t, "removed 2 paths", result.Diagnostic)
	assert.Contains(t, result.Output, "dist")
	assert.Contains(t, result.Output, "coverage")
	assert.NoDirExists(t, filepath.Join(dir, "dist"))

	// Nothing left on the second pass.
	again, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskClean})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSkipped, again.Results[0].Outcome)
	assert.Equal(t, "nothing to clean", again.Results[0].Diagnostic)
}

func TestRunService_CleanDryRunTouchesNothing(t *testing.T) {
	dir := nodeProject(t, "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0o755))
	svc := newRunService(availMap{}, &fakeRunner{})

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskClean, DryRun: true})

	require.NoError(t, err)
	result := summary.Results[0]
	assert.Equal(t, domain.OutcomePassed, result.Outcome)
	assert.Equal(t, "would remove 1 path", result.Diagnostic)
	assert.Equal(t, "dist", result.Output)
	assert.DirExists(t, filepath.Join(dir, "dist"))
}

func TestRunService_Timeout(t *testing.T) {
	dir := rustProject(t)
	run := &fakeRunner{outputs: map[string]domain.RunOutput{
		"cargo update": {ExitCode: -1, TimedOut: true, Err: context.DeadlineExceeded},
	}}
	svc := newRunService(availMap{"cargo": true, "cargo-upgrade": true}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate, StepTimeout: time.Minute})

	require.NoError(t, err)
	failed := summary.Results[0]
	assert.Equal(t, domain.OutcomeFailed, failed.Outcome)
	assert.Equal(t, "timed out after 1m0s", failed.Diagnostic)
}

func TestRunService_Interrupted(t *testing.T) {
	dir := rustProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := newRunService(availMap{"cargo": true}, &fakeRunner{})

	summary, err := svc.Run(ctx, dir, domain.RunMode{Task: domain.TaskUpdate})

	require.NoError(t, err)
	assert.True(t, summary.Interrupted)
	assert.Empty(t, summary.Results)
	assert.Equal(t, domain.InterruptExitCode, summary.ExitCode())
}

func TestRunService_ParallelKeepsCatalogOrder(t *testing.T) {
	dir := nodeProject(t, "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\n"), 0o644))
	run := &fakeRunner{}
	svc := newRunService(availMap{"cargo": true, "cargo-upgrade": true, "npm": true}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate, Parallel: true})

	require.NoError(t, err)
	require.Equal(t, []domain.Ecosystem{domain.EcoRust, domain.EcoNode}, summary.Ecosystems)

	var order []domain.Ecosystem
	for _, r := range summary.Results {
		if len(order) == 0 || order[len(order)-1] != r.Ecosystem {
			order = append(order, r.Ecosystem)
		}
	}
	assert.Equal(t, []domain.Ecosystem{domain.EcoRust, domain.EcoNode}, order)
}

func TestRunService_ConfigDisablesEcosystem(t *testing.T) {
	dir := nodeProject(t, "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".upkeep.yaml"), []byte("disabled: [node]\n"), 0o644))
	run := &fakeRunner{}
	svc := newRunService(availMap{"cargo": true, "cargo-upgrade": true, "npm": true}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate})

	require.NoError(t, err)
	assert.Equal(t, []domain.Ecosystem{domain.EcoRust}, summary.Ecosystems)
	assert.False(t, run.ran("npm update"))
}

func TestRunService_SavesHistory(t *testing.T) {
	dir := rustProject(t)
	svc := newRunService(availMap{"cargo": true, "cargo-upgrade": true}, &fakeRunner{})

	_, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate})
	require.NoError(t, err)

	entries, err := svc.History(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.TaskUpdate, entries[0].Task)
	assert.Equal(t, 2, entries[0].Total)
	assert.Equal(t, 2, entries[0].Passed)
}

func TestRunService_CheckSkipsPythonTestsWithoutTestsDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[project]\n"), 0o644))
	run := &fakeRunner{}
	svc := newRunService(availMap{"ruff": true, "mypy": true, "pytest": true}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskCheck})

	require.NoError(t, err)
	var testResult *domain.StepResult
	for i := range summary.Results {
		if summary.Results[i].Step == "test" {
			testResult = &summary.Results[i]
		}
	}
	require.NotNil(t, testResult)
	assert.Equal(t, domain.OutcomeSkipped, testResult.Outcome)
	assert.Equal(t, "no tests directory", testResult.Diagnostic)
	assert.False(t, run.ran("pytest"))
	assert.True(t, run.ran("ruff format --check ."))
}

func TestRunService_MixedEcosystemAggregation(t *testing.T) {
	dir := rustProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[project]\n"), 0o644))
	run := &fakeRunner{outputs: map[string]domain.RunOutput{
		"cargo update": {ExitCode: 101, Output: "error"},
	}}
	svc := newRunService(availMap{"cargo": true, "cargo-upgrade": true}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskUpdate})

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Failed, "the failing rust refresh")
	assert.Equal(t, 1, summary.Passed, "the rust manifest upgrade")
	assert.Equal(t, 1, summary.Skipped, "python with no package manager installed")
	assert.Equal(t, 1, summary.ExitCode())
}

func TestRunService_CheckTwiceSameCounts(t *testing.T) {
	dir := nodeProject(t, "package-lock.json")
	run := &fakeRunner{}
	svc := newRunService(availMap{"npm": true}, run)
	mode := domain.RunMode{Task: domain.TaskCheck}

	first, err := svc.Run(context.Background(), dir, mode)
	require.NoError(t, err)
	second, err := svc.Run(context.Background(), dir, mode)
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Passed, second.Passed)
	assert.Equal(t, first.Failed, second.Failed)
	assert.Equal(t, first.Skipped, second.Skipped)
}

func TestRunService_NodeCheckAllPassing(t *testing.T) {
	dir := nodeProject(t, "package-lock.json")
	run := &fakeRunner{}
	svc := newRunService(availMap{"npm": true}, run)

	summary, err := svc.Run(context.Background(), dir, domain.RunMode{Task: domain.TaskCheck})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.ExitCode())
	assert.True(t, run.ran("npm run lint"))
	assert.True(t, run.ran("npm run test"))
}
