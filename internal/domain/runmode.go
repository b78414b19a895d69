package domain

import (
	"fmt"
	"time"
)

// Task selects which lifecycle procedure a run performs.
type Task string

const (
	TaskUpdate Task = "update"
	TaskCheck  Task = "check"
	TaskClean  Task = "clean"
	TaskSetup  Task = "setup"
)

// RunMode is the per-invocation configuration threaded read-only through
// planning and execution. Zero value means: run everything the task plans,
// apply changes, sequential, default timeout.
type RunMode struct {
	Task Task
	// Only restricts the run to a single ecosystem; empty selects all
	// detected ones.
	Only Ecosystem
	// CheckOnly makes update report outdated versions without changing
	// anything.
	CheckOnly bool
	// MinorOnly constrains manifest upgrades to compatible version bumps.
	MinorOnly bool
	// Audit appends the dependency advisory scan to an update run.
	Audit bool
	// Fix lets formatters and linters rewrite sources during check.
	Fix bool
	// Strict escalates lint and type warnings to errors during check.
	Strict bool
	// DryRun prints what would run or be removed without touching anything.
	DryRun bool
	// CleanAll extends clean to dependency directories and tool caches.
	CleanAll bool
	// Parallel runs ecosystems concurrently. Output order is unaffected.
	Parallel bool
	// StepTimeout bounds each tool invocation. Zero falls back to the
	// project configuration, then to DefaultStepTimeout.
	StepTimeout time.Duration
}

// Validate rejects modes no task can execute.
func (m RunMode) Validate() error {
	switch m.Task {
	case TaskUpdate, TaskCheck, TaskClean, TaskSetup:
	default:
		return fmt.Errorf("unknown task %q", m.Task)
	}
	if m.Only != "" {
		if _, ok := SpecFor(m.Only); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownEcosystem, m.Only)
		}
	}
	if m.StepTimeout < 0 {
		return fmt.Errorf("step timeout must be positive, got %s", m.StepTimeout)
	}
	return nil
}

// Timeout resolves the effective per-step timeout for this mode against the
// project configuration.
func (m RunMode) Timeout(cfg ProjectConfig) time.Duration {
	if m.StepTimeout > 0 {
		return m.StepTimeout
	}
	return cfg.StepTimeout()
}
