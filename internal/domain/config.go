package domain

import (
	"fmt"
	"time"
)

// DefaultStepTimeout bounds a single tool invocation when neither the flag
// nor the project configuration says otherwise.
const DefaultStepTimeout = 10 * time.Minute

// ProjectConfig holds the per-project settings read from .upkeep.yaml.
// Every field is optional; the zero value is a fully working configuration.
type ProjectConfig struct {
	// Disabled lists ecosystems to leave out of runs even when detected.
	Disabled []Ecosystem `yaml:"disabled" json:"disabled,omitempty"`
	// Timeout overrides the per-step timeout, in time.ParseDuration form.
	Timeout string `yaml:"timeout" json:"timeout,omitempty"`
	// Prefer reorders tool candidates per ecosystem and operation, e.g.
	// prefer: {python: {format: [black]}}.
	Prefer map[Ecosystem]map[OpKind][]string `yaml:"prefer" json:"prefer,omitempty"`
	// Clean extends the removal patterns of the clean task.
	Clean CleanConfig `yaml:"clean" json:"clean,omitempty"`
}

// CleanConfig adds project-specific removal patterns per ecosystem.
type CleanConfig struct {
	Extra map[Ecosystem][]string `yaml:"extra" json:"extra,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// IsDisabled reports whether eco is configured out of runs.
func (c ProjectConfig) IsDisabled(eco Ecosystem) bool {
	for _, d := range c.Disabled {
		if d == eco {
			return true
		}
	}
	return false
}

// StepTimeout returns the configured per-step timeout, or the default when
// unset. Validate has already guaranteed the field parses.
func (c ProjectConfig) StepTimeout() time.Duration {
	if c.Timeout == "" {
		return DefaultStepTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultStepTimeout
	}
	return d
}

// Reorder applies the configured tool preference for (eco, op) to a
// candidate list: preferred tools move to the front in configured order,
// everything else keeps its default position.
func (c ProjectConfig) Reorder(eco Ecosystem, op OpKind, candidates []ToolCandidate) []ToolCandidate {
	preferred := c.Prefer[eco][op]
	if len(preferred) == 0 {
		return candidates
	}
	reordered := make([]ToolCandidate, 0, len(candidates))
	taken := make(map[string]bool, len(candidates))
	for _, name := range preferred {
		for _, cand := range candidates {
			if cand.Tool == name && !taken[name] {
				reordered = append(reordered, cand)
				taken[name] = true
			}
		}
	}
	for _, cand := range candidates {
		if !taken[cand.Tool] {
			reordered = append(reordered, cand)
		}
	}
	return reordered
}

// Validate rejects configurations that reference unknown ecosystems or
// operations, or carry an unparseable timeout.
func (c ProjectConfig) Validate() error {
	for _, eco := range c.Disabled {
		if _, ok := SpecFor(eco); !ok {
			return fmt.Errorf("disabled: %w: %q", ErrUnknownEcosystem, eco)
		}
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout: must be positive, got %s", d)
		}
	}
	for eco, ops := range c.Prefer {
		if _, ok := SpecFor(eco); !ok {
			return fmt.Errorf("prefer: %w: %q", ErrUnknownEcosystem, eco)
		}
		for op := range ops {
			if !preferableOp(op) {
				return fmt.Errorf("prefer: unknown operation %q for %s", op, eco)
			}
		}
	}
	for eco := range c.Clean.Extra {
		if _, ok := SpecFor(eco); !ok {
			return fmt.Errorf("clean.extra: %w: %q", ErrUnknownEcosystem, eco)
		}
	}
	return nil
}

func preferableOp(op OpKind) bool {
	switch op {
	case OpUpdate, OpUpgrade, OpAudit, OpFormat, OpLint, OpTypecheck, OpTest:
		return true
	}
	return false
}
