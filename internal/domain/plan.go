package domain

// Step is one planned operation for one ecosystem. A step either invokes an
// external tool (Candidates non-empty) or removes artifacts (RemoveGlobs
// non-empty), never both.
type Step struct {
	Name        string
	Ecosystem   Ecosystem
	Op          OpKind
	Mode        InvokeMode
	Candidates  []ToolCandidate
	RemoveGlobs []string
	// SkipReason marks a step the plan already knows cannot apply, e.g. a
	// test step in a project without tests. Execution records it as skipped
	// without resolving a tool.
	SkipReason string
}

// IsRemoval reports whether the step deletes artifacts instead of invoking
// a tool.
func (s Step) IsRemoval() bool {
	return len(s.RemoveGlobs) > 0
}

// EcosystemPlan is the ordered step list for one ecosystem. Steps within a
// plan run sequentially; separate plans share no state and may run
// concurrently.
type EcosystemPlan struct {
	Ecosystem Ecosystem
	Steps     []Step
}

// Plan builds the per-ecosystem step lists for a run. It is a pure function
// of the inspection result, the run mode, and the project configuration;
// nothing here touches the filesystem or the environment. Plans come back
// in catalog order regardless of how the run executes them.
func Plan(info *ProjectInfo, mode RunMode, cfg ProjectConfig) []EcosystemPlan {
	var plans []EcosystemPlan
	for _, spec := range Catalog {
		eco := spec.Name
		if mode.Only != "" && eco != mode.Only {
			continue
		}
		if !info.Has(eco) {
			continue
		}
		// An explicit --only target overrides a configured disable.
		if cfg.IsDisabled(eco) && mode.Only != eco {
			continue
		}
		steps := planEcosystem(eco, info, mode, cfg)
		if len(steps) == 0 {
			continue
		}
		for i := range steps {
			steps[i].Ecosystem = eco
			steps[i].Candidates = cfg.Reorder(eco, steps[i].Op, steps[i].Candidates)
		}
		plans = append(plans, EcosystemPlan{Ecosystem: eco, Steps: steps})
	}
	return plans
}

func planEcosystem(eco Ecosystem, info *ProjectInfo, mode RunMode, cfg ProjectConfig) []Step {
	switch mode.Task {
	case TaskUpdate:
		return updateSteps(eco, mode)
	case TaskCheck:
		return checkSteps(eco, info, mode)
	case TaskClean:
		return cleanSteps(eco, mode, cfg)
	}
	return nil
}

func updateMode(mode RunMode) InvokeMode {
	switch {
	case mode.CheckOnly:
		return ModeCheck
	case mode.MinorOnly:
		return ModeApplyMinor
	default:
		return ModeApply
	}
}

func updateSteps(eco Ecosystem, mode RunMode) []Step {
	var steps []Step
	switch eco {
	case EcoRust:
		steps = append(steps, Step{
			Name: "refresh lockfile",
			Op:   OpUpdate,
			Mode: updateMode(mode),
			Candidates: []ToolCandidate{{
				Tool:        "cargo",
				InstallHint: "install Rust via https://rustup.rs",
				Argv: map[InvokeMode][]string{
					ModeApply: {"cargo", "update"},
					ModeCheck: {"cargo", "update", "--dry-run"},
				},
			}},
		})
		steps = append(steps, Step{
			Name: "upgrade manifests",
			Op:   OpUpgrade,
			Mode: updateMode(mode),
			Candidates: []ToolCandidate{{
				Tool:        "cargo-upgrade",
				InstallHint: "cargo install cargo-edit",
				Argv: map[InvokeMode][]string{
					ModeApply:      {"cargo", "upgrade", "--incompatible"},
					ModeApplyMinor: {"cargo", "upgrade"},
					ModeCheck:      {"cargo", "upgrade", "--dry-run"},
				},
			}},
		})
		if mode.Audit {
			steps = append(steps, Step{
				Name: "audit dependencies",
				Op:   OpAudit,
				Mode: ModeCheck,
				Candidates: []ToolCandidate{{
					Tool:        "cargo-audit",
					InstallHint: "cargo install cargo-audit",
					Argv: map[InvokeMode][]string{
						ModeCheck: {"cargo", "audit"},
					},
				}},
			})
		}
	case EcoPython:
		steps = append(steps, Step{
			Name: "refresh dependencies",
			Op:   OpUpdate,
			Mode: updateMode(mode),
			Candidates: []ToolCandidate{
				{
					Tool:        "poetry",
					Lockfile:    "poetry.lock",
					InstallHint: "pipx install poetry",
					Argv: map[InvokeMode][]string{
						ModeApply: {"poetry", "update"},
						ModeCheck: {"poetry", "show", "--outdated"},
					},
				},
				{
					Tool:        "uv",
					Lockfile:    "uv.lock",
					InstallHint: "pipx install uv",
					Argv: map[InvokeMode][]string{
						ModeApply: {"uv", "lock", "--upgrade"},
						ModeCheck: {"uv", "lock", "--upgrade", "--dry-run"},
					},
				},
				{
					Tool:        "pip",
					InstallHint: "python -m ensurepip --upgrade",
					Argv: map[InvokeMode][]string{
						ModeApply: {"pip", "install", "--upgrade", "-e", "."},
						ModeCheck: {"pip", "list", "--outdated"},
					},
				},
			},
		})
		if mode.Audit {
			steps = append(steps, Step{
				Name: "audit dependencies",
				Op:   OpAudit,
				Mode: ModeCheck,
				Candidates: []ToolCandidate{{
					Tool:        "pip-audit",
					InstallHint: "pipx install pip-audit",
					Argv: map[InvokeMode][]string{
						ModeCheck: {"pip-audit"},
					},
				}},
			})
		}
	case EcoNode:
		steps = append(steps, Step{
			Name:       "refresh dependencies",
			Op:         OpUpdate,
			Mode:       updateMode(mode),
			Candidates: nodePackageManagers(nodeArgvUpdate),
		})
		if mode.Audit {
			steps = append(steps, Step{
				Name:       "audit dependencies",
				Op:         OpAudit,
				Mode:       ModeCheck,
				Candidates: nodePackageManagers(nodeArgvAudit),
			})
		}
	}
	return steps
}

func checkSteps(eco Ecosystem, info *ProjectInfo, mode RunMode) []Step {
	formatMode := ModeCheck
	if mode.Fix {
		formatMode = ModeFix
	}
	lintMode := ModeCheck
	switch {
	case mode.Fix:
		lintMode = ModeFix
	case mode.Strict:
		lintMode = ModeStrict
	}
	typeMode := ModeCheck
	if mode.Strict {
		typeMode = ModeStrict
	}

	switch eco {
	case EcoRust:
		return []Step{
			{
				Name: "format",
				Op:   OpFormat,
				Mode: formatMode,
				Candidates: []ToolCandidate{{
					Tool:        "cargo-fmt",
					InstallHint: "rustup component add rustfmt",
					Argv: map[InvokeMode][]string{
						ModeCheck: {"cargo", "fmt", "--all", "--check"},
						ModeFix:   {"cargo", "fmt", "--all"},
					},
				}},
			},
			{
				Name: "lint",
				Op:   OpLint,
				Mode: lintMode,
				Candidates: []ToolCandidate{{
					Tool:        "cargo-clippy",
					InstallHint: "rustup component add clippy",
					Argv: map[InvokeMode][]string{
						ModeCheck:  {"cargo", "clippy", "--all-targets"},
						ModeStrict: {"cargo", "clippy", "--all-targets", "--", "-D", "warnings"},
						ModeFix:    {"cargo", "clippy", "--fix", "--allow-dirty"},
					},
				}},
			},
			{
				Name: "test",
				Op:   OpTest,
				Mode: ModeCheck,
				Candidates: []ToolCandidate{{
					Tool:        "cargo",
					InstallHint: "install Rust via https://rustup.rs",
					Argv: map[InvokeMode][]string{
						ModeCheck: {"cargo", "test"},
					},
				}},
			},
		}
	case EcoPython:
		steps := []Step{
			{
				Name: "format",
				Op:   OpFormat,
				Mode: formatMode,
				Candidates: []ToolCandidate{
					{
						Tool:        "ruff",
						InstallHint: "pipx install ruff",
						Argv: map[InvokeMode][]string{
							ModeCheck: {"ruff", "format", "--check", "."},
							ModeFix:   {"ruff", "format", "."},
						},
					},
					{
						Tool:        "black",
						InstallHint: "pipx install black",
						Argv: map[InvokeMode][]string{
							ModeCheck: {"black", "--check", "."},
							ModeFix:   {"black", "."},
						},
					},
				},
			},
			{
				Name: "lint",
				Op:   OpLint,
				Mode: lintMode,
				Candidates: []ToolCandidate{
					{
						Tool:        "ruff",
						InstallHint: "pipx install ruff",
						Argv: map[InvokeMode][]string{
							ModeCheck: {"ruff", "check", "."},
							ModeFix:   {"ruff", "check", "--fix", "."},
						},
					},
					{
						Tool:        "flake8",
						InstallHint: "pipx install flake8",
						Argv: map[InvokeMode][]string{
							ModeCheck: {"flake8", "."},
						},
					},
				},
			},
			{
				Name: "typecheck",
				Op:   OpTypecheck,
				Mode: typeMode,
				Candidates: []ToolCandidate{{
					Tool:        "mypy",
					InstallHint: "pipx install mypy",
					Argv: map[InvokeMode][]string{
						ModeCheck:  {"mypy", "."},
						ModeStrict: {"mypy", "--strict", "."},
					},
				}},
			},
		}
		testStep := Step{
			Name: "test",
			Op:   OpTest,
			Mode: ModeCheck,
			Candidates: []ToolCandidate{{
				Tool:        "pytest",
				InstallHint: "pipx install pytest",
				Argv: map[InvokeMode][]string{
					ModeCheck: {"pytest"},
				},
			}},
		}
		if !info.HasTestsDir {
			testStep.SkipReason = "no tests directory"
		}
		return append(steps, testStep)
	case EcoNode:
		lint := Step{
			Name:       "lint",
			Op:         OpLint,
			Mode:       lintMode,
			Candidates: nodePackageManagers(nodeArgvScript("lint")),
		}
		if !info.NodeScripts["lint"] {
			lint.SkipReason = `package.json declares no "lint" script`
		}
		test := Step{
			Name:       "test",
			Op:         OpTest,
			Mode:       ModeCheck,
			Candidates: nodePackageManagers(nodeArgvScript("test")),
		}
		if !info.NodeScripts["test"] {
			test.SkipReason = `package.json declares no "test" script`
		}
		return []Step{lint, test}
	}
	return nil
}

// cleanGlobs are the artifact patterns removed by a plain clean. Entries
// starting with "**/" match at any depth; everything else matches a single
// path under the project root. Lockfiles are never on these lists.
var cleanGlobs = map[Ecosystem][]string{
	EcoRust:   {"target"},
	EcoPython: {"dist", "build", ".pytest_cache", ".mypy_cache", ".ruff_cache", "**/__pycache__", "**/*.egg-info"},
	EcoNode:   {"dist", "build", "coverage"},
}

// cleanAllGlobs extends cleanGlobs under --all: dependency directories and
// environments that are expensive to recreate.
var cleanAllGlobs = map[Ecosystem][]string{
	EcoPython: {".venv", ".tox"},
	EcoNode:   {"node_modules"},
}

func cleanSteps(eco Ecosystem, mode RunMode, cfg ProjectConfig) []Step {
	globs := append([]string(nil), cleanGlobs[eco]...)
	if mode.CleanAll {
		globs = append(globs, cleanAllGlobs[eco]...)
	}
	globs = append(globs, cfg.Clean.Extra[eco]...)
	return []Step{{
		Name:        "remove build artifacts",
		Op:          OpClean,
		Mode:        ModeApply,
		RemoveGlobs: globs,
	}}
}

type nodeArgvFunc func(pm string) map[InvokeMode][]string

func nodeArgvUpdate(pm string) map[InvokeMode][]string {
	switch pm {
	case "yarn":
		return map[InvokeMode][]string{
			ModeApply: {"yarn", "upgrade"},
			ModeCheck: {"yarn", "outdated"},
		}
	default:
		return map[InvokeMode][]string{
			ModeApply: {pm, "update"},
			ModeCheck: {pm, "outdated"},
		}
	}
}

func nodeArgvAudit(pm string) map[InvokeMode][]string {
	return map[InvokeMode][]string{
		ModeCheck: {pm, "audit"},
	}
}

func nodeArgvScript(script string) nodeArgvFunc {
	return func(pm string) map[InvokeMode][]string {
		return map[InvokeMode][]string{
			ModeCheck: {pm, "run", script},
		}
	}
}

// nodePackageManagers builds the candidate list shared by every node step:
// pnpm, yarn, and npm in fixed preference order, each tied to its lockfile
// so resolution follows whichever one the project committed.
func nodePackageManagers(argv nodeArgvFunc) []ToolCandidate {
	return []ToolCandidate{
		{
			Tool:        "pnpm",
			Lockfile:    "pnpm-lock.yaml",
			InstallHint: "corepack enable pnpm",
			Argv:        argv("pnpm"),
		},
		{
			Tool:        "yarn",
			Lockfile:    "yarn.lock",
			InstallHint: "corepack enable yarn",
			Argv:        argv("yarn"),
		},
		{
			Tool:        "npm",
			Lockfile:    "package-lock.json",
			InstallHint: "install Node.js from https://nodejs.org",
			Argv:        argv("npm"),
		},
	}
}

// SetupPlans builds the environment bootstrap steps. Setup is not
// detection-driven: it installs the helper tools upkeep relies on, for
// every ecosystem or for the one selected by only.
func SetupPlans(only Ecosystem) []EcosystemPlan {
	var plans []EcosystemPlan
	for _, spec := range Catalog {
		if only != "" && spec.Name != only {
			continue
		}
		steps := setupSteps(spec.Name)
		for i := range steps {
			steps[i].Ecosystem = spec.Name
		}
		plans = append(plans, EcosystemPlan{Ecosystem: spec.Name, Steps: steps})
	}
	return plans
}

func setupSteps(eco Ecosystem) []Step {
	switch eco {
	case EcoRust:
		cargoInstall := func(pkg string) Step {
			return Step{
				Name: "install " + pkg,
				Op:   OpInstall,
				Mode: ModeApply,
				Candidates: []ToolCandidate{{
					Tool:        "cargo",
					InstallHint: "install Rust via https://rustup.rs",
					Argv: map[InvokeMode][]string{
						ModeApply: {"cargo", "install", pkg},
					},
				}},
			}
		}
		return []Step{cargoInstall("cargo-edit"), cargoInstall("cargo-audit")}
	case EcoPython:
		return []Step{
			pythonToolInstall("ruff"),
			pythonToolInstall("mypy"),
			pythonToolInstall("pip-audit"),
		}
	case EcoNode:
		return []Step{{
			Name: "enable corepack",
			Op:   OpInstall,
			Mode: ModeApply,
			Candidates: []ToolCandidate{{
				Tool:        "corepack",
				InstallHint: "install Node.js 16.9 or newer",
				Argv: map[InvokeMode][]string{
					ModeApply: {"corepack", "enable"},
				},
			}},
		}}
	}
	return nil
}

func pythonToolInstall(pkg string) Step {
	return Step{
		Name: "install " + pkg,
		Op:   OpInstall,
		Mode: ModeApply,
		Candidates: []ToolCandidate{
			{
				Tool:        "uv",
				InstallHint: "pipx install uv",
				Argv: map[InvokeMode][]string{
					ModeApply: {"uv", "tool", "install", pkg},
				},
			},
			{
				Tool:        "pipx",
				InstallHint: "python -m pip install --user pipx",
				Argv: map[InvokeMode][]string{
					ModeApply: {"pipx", "install", pkg},
				},
			},
			{
				Tool:        "pip",
				InstallHint: "python -m ensurepip --upgrade",
				Argv: map[InvokeMode][]string{
					ModeApply: {"pip", "install", "--user", pkg},
				},
			},
		},
	}
}
