package domain

// OpKind names one lifecycle operation a step performs.
type OpKind string

const (
	OpUpdate    OpKind = "update"
	OpUpgrade   OpKind = "upgrade"
	OpAudit     OpKind = "audit"
	OpFormat    OpKind = "format"
	OpLint      OpKind = "lint"
	OpTypecheck OpKind = "typecheck"
	OpTest      OpKind = "test"
	OpClean     OpKind = "clean"
	OpInstall   OpKind = "install"
)

// InvokeMode selects one argv variant of a tool candidate.
type InvokeMode string

const (
	// ModeCheck reports findings without changing anything.
	ModeCheck InvokeMode = "check"
	// ModeApply makes the changes the operation is named after.
	ModeApply InvokeMode = "apply"
	// ModeApplyMinor applies, constrained to compatible version bumps.
	ModeApplyMinor InvokeMode = "apply-minor"
	// ModeFix lets the tool rewrite sources in place.
	ModeFix InvokeMode = "fix"
	// ModeStrict escalates warnings to errors.
	ModeStrict InvokeMode = "strict"
)

// ToolCandidate identifies one external program able to perform an
// operation, with the argv for each invocation mode it supports. Candidates
// are static plan data; resolution picks one per step at run time.
type ToolCandidate struct {
	// Tool is the executable name probed on PATH.
	Tool string `json:"tool"`
	// Lockfile, when present in the project root, marks this candidate as
	// the package manager the project actually uses.
	Lockfile string `json:"lockfile,omitempty"`
	// InstallHint tells the user how to obtain the tool when it is missing.
	InstallHint string `json:"install_hint,omitempty"`
	// Argv holds the full command line per invocation mode, program name
	// included.
	Argv map[InvokeMode][]string `json:"-"`
}

// SelectArgv returns the candidate's argv variant best matching mode.
// A mode with no variant for this tool degrades to its nearest safe
// neighbor: apply-minor runs a full apply, fix and strict run a plain check.
func (c ToolCandidate) SelectArgv(mode InvokeMode) ([]string, bool) {
	for _, m := range modeFallback(mode) {
		if argv, ok := c.Argv[m]; ok {
			return argv, true
		}
	}
	return nil, false
}

func modeFallback(mode InvokeMode) []InvokeMode {
	switch mode {
	case ModeApplyMinor:
		return []InvokeMode{ModeApplyMinor, ModeApply}
	case ModeFix:
		return []InvokeMode{ModeFix, ModeCheck}
	case ModeStrict:
		return []InvokeMode{ModeStrict, ModeCheck}
	default:
		return []InvokeMode{mode}
	}
}
