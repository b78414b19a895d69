package domain

import "strings"

// Resolution is the outcome of picking a tool for one step.
type Resolution struct {
	// Found is false when no candidate is available.
	Found bool
	// Candidate is the selected tool when Found.
	Candidate ToolCandidate
	// Hint explains how to install the missing tools when not Found.
	Hint string
}

// ResolveTool picks the tool to run for one step. Candidates available in
// the environment win over unavailable ones, and among available ones a
// candidate whose lockfile exists in the project outranks earlier
// preferences: a project with uv.lock gets uv even when poetry is installed.
// With no lockfile signal the first available candidate in preference order
// wins. When nothing is available the resolution carries an install hint
// listing every candidate.
func ResolveTool(candidates []ToolCandidate, avail Availability, lockfiles map[string]bool) Resolution {
	var available []ToolCandidate
	for _, c := range candidates {
		if avail.Available(c.Tool) {
			available = append(available, c)
		}
	}
	for _, c := range available {
		if c.Lockfile != "" && lockfiles[c.Lockfile] {
			return Resolution{Found: true, Candidate: c}
		}
	}
	if len(available) > 0 {
		return Resolution{Found: true, Candidate: available[0]}
	}
	return Resolution{Hint: installHint(candidates)}
}

func installHint(candidates []ToolCandidate) string {
	var hints []string
	for _, c := range candidates {
		if c.InstallHint == "" {
			continue
		}
		hints = append(hints, c.Tool+" ("+c.InstallHint+")")
	}
	switch len(hints) {
	case 0:
		return ""
	case 1:
		return "install " + hints[0]
	default:
		return "install one of: " + strings.Join(hints, ", ")
	}
}
