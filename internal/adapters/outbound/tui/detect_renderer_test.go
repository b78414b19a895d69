package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upkeepdev/upkeep/internal/adapters/outbound/tui"
	"github.com/upkeepdev/upkeep/internal/domain"
)

func TestRenderDetect_PresentEcosystems(t *testing.T) {
	info := &domain.ProjectInfo{
		RootPath: "/tmp/project",
		Present:  []domain.Ecosystem{domain.EcoRust, domain.EcoNode},
		Markers: map[domain.Ecosystem][]string{
			domain.EcoRust: {"Cargo.toml"},
			domain.EcoNode: {"package.json"},
		},
		Lockfiles:   map[string]bool{"pnpm-lock.yaml": true},
		NodeScripts: map[string]bool{"test": true},
	}

	output := tui.RenderDetect(info)
	assert.Contains(t, output, "Detected Ecosystems")
	assert.Contains(t, output, "/tmp/project")
	assert.Contains(t, output, "Cargo.toml")
	assert.Contains(t, output, "pnpm-lock.yaml")
	assert.Contains(t, output, "scripts: test")
	assert.Contains(t, output, "not detected") // python row
}

func TestRenderDetect_NothingFound(t *testing.T) {
	info := &domain.ProjectInfo{RootPath: "/tmp/empty"}

	output := tui.RenderDetect(info)
	assert.Contains(t, output, "Looked for Cargo.toml, pyproject.toml, package.json")
}

func TestRenderScaffolded(t *testing.T) {
	name, err := domain.NewProjectName("web-scraper")
	require.NoError(t, err)

	output := tui.RenderScaffolded(domain.ScaffoldRequest{
		Name:      name,
		Ecosystem: domain.EcoRust,
		TargetDir: "/tmp/web-scraper",
		InitGit:   true,
	}, []string{"Cargo.toml", "src/main.rs"})

	assert.Contains(t, output, "Created Web Scraper (rust)")
	assert.Contains(t, output, "/tmp/web-scraper")
	assert.Contains(t, output, "Cargo.toml")
	assert.Contains(t, output, ".git")
	assert.Contains(t, output, "cd web-scraper && upkeep check")
}
