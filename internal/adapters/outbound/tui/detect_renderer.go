package tui

import (
	"fmt"
	"strings"

	"github.com/upkeepdev/upkeep/internal/domain"
)

// RenderDetect renders the inspection result: one row per catalog
// ecosystem, matched markers and lockfiles for the present ones.
func RenderDetect(info *domain.ProjectInfo) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Detected Ecosystems") + "\n")
	b.WriteString("  " + dimStyle.Render(info.RootPath) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, spec := range domain.Catalog {
		if !info.Has(spec.Name) {
			fmt.Fprintf(&b, "    %s %s %s\n",
				skipStyle.Render("○"),
				skipStyle.Render(padRight(string(spec.Name), 10)),
				faintStyle.Render("not detected"),
			)
			continue
		}

		markers := strings.Join(info.Markers[spec.Name], ", ")
		fmt.Fprintf(&b, "    %s %s %s",
			passStyle.Render("●"),
			ecoNameStyle.Render(padRight(string(spec.Name), 10)),
			dimStyle.Render(markers),
		)
		if lockfiles := presentLockfiles(spec, info); len(lockfiles) > 0 {
			b.WriteString("  " + faintStyle.Render(strings.Join(lockfiles, ", ")))
		}
		b.WriteString("\n")

		renderEcosystemSignals(&b, spec.Name, info)
	}

	if len(info.Present) == 0 {
		b.WriteString("\n")
		b.WriteString("  " + hintStyle.Render("Looked for "+strings.Join(allMarkers(), ", ")+" in the project root.") + "\n")
	}

	return b.String()
}

func renderEcosystemSignals(b *strings.Builder, eco domain.Ecosystem, info *domain.ProjectInfo) {
	switch eco {
	case domain.EcoPython:
		if info.HasTestsDir {
			fmt.Fprintf(b, "      %s\n", faintStyle.Render("tests directory present"))
		}
	case domain.EcoNode:
		var declared []string
		for _, script := range []string{"lint", "test"} {
			if info.NodeScripts[script] {
				declared = append(declared, script)
			}
		}
		if len(declared) > 0 {
			fmt.Fprintf(b, "      %s\n", faintStyle.Render("scripts: "+strings.Join(declared, ", ")))
		}
	}
}

func presentLockfiles(spec domain.EcosystemSpec, info *domain.ProjectInfo) []string {
	var found []string
	for _, lockfile := range spec.Lockfiles {
		if info.Lockfiles[lockfile] {
			found = append(found, lockfile)
		}
	}
	return found
}

func allMarkers() []string {
	var markers []string
	for _, spec := range domain.Catalog {
		markers = append(markers, spec.Markers...)
	}
	return markers
}

// RenderScaffolded renders the created-project report for the new command.
func RenderScaffolded(req domain.ScaffoldRequest, files []string) string {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s\n",
		passStyle.Render("●"),
		titleStyle.Render(fmt.Sprintf("Created %s (%s)", req.Name.Display, req.Ecosystem)),
	)
	b.WriteString("  " + dimStyle.Render(req.TargetDir) + "\n\n")

	for _, f := range files {
		fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render("+"), f)
	}
	if req.InitGit {
		fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render("+"), ".git")
	}

	b.WriteString("\n")
	b.WriteString("  " + hintStyle.Render(fmt.Sprintf("cd %s && upkeep check", req.Name.Slug)) + "\n")
	return b.String()
}
