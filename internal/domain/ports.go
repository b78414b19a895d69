package domain

import "context"

// ProjectInspector reads ecosystem markers and secondary signals from a
// project root. Detection looks only at the root directory itself, never
// recursively, so vendored subprojects cannot leak into the result.
type ProjectInspector interface {
	Inspect(projectRoot string) (*ProjectInfo, error)
}

// ProjectInfo holds everything inspection learned about one project root.
type ProjectInfo struct {
	RootPath string `json:"root_path"`
	// Present lists detected ecosystems in catalog order.
	Present []Ecosystem `json:"present"`
	// Markers maps each present ecosystem to the marker files that matched.
	Markers map[Ecosystem][]string `json:"markers,omitempty"`
	// Lockfiles records which known lockfiles exist in the root.
	Lockfiles map[string]bool `json:"lockfiles,omitempty"`
	// HasTestsDir reports a tests/ or test/ directory in the root.
	HasTestsDir bool `json:"has_tests_dir"`
	// NodeScripts lists the script names declared in package.json.
	NodeScripts map[string]bool `json:"node_scripts,omitempty"`
}

// Has reports whether eco was detected.
func (i *ProjectInfo) Has(eco Ecosystem) bool {
	for _, present := range i.Present {
		if present == eco {
			return true
		}
	}
	return false
}

// Availability reports whether an external tool can be invoked in the
// current environment. The production implementation probes PATH; tests
// inject a fixed set.
type Availability interface {
	Available(tool string) bool
}

// CommandRunner executes one external tool invocation in a working
// directory and reports how it terminated. Implementations must terminate
// the subprocess when ctx is done.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, dir string) RunOutput
}

// RunOutput is the observable result of a terminated subprocess.
type RunOutput struct {
	// ExitCode is zero on success, -1 when the process never started.
	ExitCode int
	// Output is the combined stdout and stderr, trimmed and capped.
	Output string
	// Err carries the spawn or context error; a plain nonzero exit leaves
	// it nil.
	Err error
	// TimedOut is set when the step deadline killed the process.
	TimedOut bool
}

// ArtifactSweeper expands clean patterns under a project root to concrete
// paths and removes them.
type ArtifactSweeper interface {
	Expand(projectRoot string, patterns []string) ([]string, error)
	Remove(projectRoot string, paths []string) error
}

// ConfigLoader reads project-level configuration, returning defaults when
// no configuration file exists.
type ConfigLoader interface {
	Load(projectRoot string) (ProjectConfig, error)
}

// HistoryStore persists run summaries per project.
type HistoryStore interface {
	Save(projectRoot string, entry RunEntry) error
	Load(projectRoot string) ([]RunEntry, error)
}

// GitInfo reads repository metadata and initializes repositories for
// scaffolded projects.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
	Init(path string) error
}

// Scaffolder writes a new project skeleton and returns the created files
// relative to the target directory.
type Scaffolder interface {
	Scaffold(req ScaffoldRequest) ([]string, error)
}
