package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Ecosystem identifies one supported language toolchain.
type Ecosystem string

const (
	EcoRust   Ecosystem = "rust"
	EcoPython Ecosystem = "python"
	EcoNode   Ecosystem = "node"
)

// ErrUnknownEcosystem is returned when a name does not match any catalog entry.
var ErrUnknownEcosystem = errors.New("unknown ecosystem")

// EcosystemSpec is the static description of one ecosystem: the marker files
// that make it applicable to a project and the lockfiles that disambiguate
// which package manager the project uses.
type EcosystemSpec struct {
	Name      Ecosystem `json:"name"`
	Markers   []string  `json:"markers"`
	Lockfiles []string  `json:"lockfiles,omitempty"`
}

// Catalog lists every supported ecosystem in the fixed order used for
// detection, execution, and reporting. Iteration always follows this slice
// so that summaries are reproducible run to run.
var Catalog = []EcosystemSpec{
	{
		Name:      EcoRust,
		Markers:   []string{"Cargo.toml"},
		Lockfiles: []string{"Cargo.lock"},
	},
	{
		Name:      EcoPython,
		Markers:   []string{"pyproject.toml"},
		Lockfiles: []string{"poetry.lock", "uv.lock"},
	},
	{
		Name:      EcoNode,
		Markers:   []string{"package.json"},
		Lockfiles: []string{"pnpm-lock.yaml", "yarn.lock", "package-lock.json"},
	},
}

// SpecFor returns the catalog entry for eco.
func SpecFor(eco Ecosystem) (EcosystemSpec, bool) {
	for _, spec := range Catalog {
		if spec.Name == eco {
			return spec, true
		}
	}
	return EcosystemSpec{}, false
}

// ParseEcosystem maps a user-supplied name to a catalog ecosystem.
func ParseEcosystem(name string) (Ecosystem, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, spec := range Catalog {
		if string(spec.Name) == normalized {
			return spec.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %q (known: %s)", ErrUnknownEcosystem, name, strings.Join(EcosystemNames(), ", "))
}

// EcosystemNames returns the catalog names in catalog order.
func EcosystemNames() []string {
	names := make([]string, 0, len(Catalog))
	for _, spec := range Catalog {
		names = append(names, string(spec.Name))
	}
	return names
}
