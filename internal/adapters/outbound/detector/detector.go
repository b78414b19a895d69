package detector

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/upkeepdev/upkeep/internal/domain"
)

// Detector implements domain.ProjectInspector by probing marker files in
// the project root. Detection is existence-only and never walks
// subdirectories: a vendored Cargo.toml three levels down is not this
// project's ecosystem.
type Detector struct{}

func New() *Detector {
	return &Detector{}
}

func (d *Detector) Inspect(projectRoot string) (*domain.ProjectInfo, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	fi, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	info := &domain.ProjectInfo{
		RootPath:  root,
		Markers:   map[domain.Ecosystem][]string{},
		Lockfiles: map[string]bool{},
	}
	for _, spec := range domain.Catalog {
		var matched []string
		for _, marker := range spec.Markers {
			if fileExists(filepath.Join(root, marker)) {
				matched = append(matched, marker)
			}
		}
		if len(matched) == 0 {
			continue
		}
		info.Present = append(info.Present, spec.Name)
		info.Markers[spec.Name] = matched
		for _, lockfile := range spec.Lockfiles {
			if fileExists(filepath.Join(root, lockfile)) {
				info.Lockfiles[lockfile] = true
			}
		}
	}

	info.HasTestsDir = dirExists(filepath.Join(root, "tests")) || dirExists(filepath.Join(root, "test"))
	if info.Has(domain.EcoNode) {
		info.NodeScripts = packageScripts(filepath.Join(root, "package.json"))
	}
	return info, nil
}

// packageScripts reads the scripts table from package.json. A malformed
// file counts as declaring no scripts; the package manager surfaces its own
// parse error if a step actually runs.
func packageScripts(path string) map[string]bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil
	}
	scripts := make(map[string]bool, len(pkg.Scripts))
	for name := range pkg.Scripts {
		scripts[name] = true
	}
	return scripts
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

func dirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
