package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/upkeepdev/upkeep/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	ecoNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

var taskLabels = map[domain.Task]string{
	domain.TaskUpdate: "Dependency Update",
	domain.TaskCheck:  "Health Check",
	domain.TaskClean:  "Artifact Clean",
	domain.TaskSetup:  "Environment Setup",
}

// RenderRunReport formats a finished run for the terminal: boxed header,
// per-ecosystem step rows, failed-step output, and a one-line total.
func RenderRunReport(s *domain.RunSummary) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("upkeep")
	subtitle := dimStyle.Render(taskLabel(s.Task))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + renderCounts(s)))
	b.WriteString("\n\n")

	// ── Steps, grouped by ecosystem in result order ──
	var current domain.Ecosystem
	for _, r := range s.Results {
		if r.Ecosystem != current {
			if current != "" {
				b.WriteString("\n")
			}
			current = r.Ecosystem
			b.WriteString("  " + ecoNameStyle.Render(string(current)) + "\n")
		}
		renderStepRow(&b, r)
	}
	if len(s.Results) == 0 {
		b.WriteString("  " + dimStyle.Render("Nothing to do.") + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Total ──
	if s.Interrupted {
		b.WriteString("  " + warnStyle.Render("Run interrupted.") + "\n")
	}
	b.WriteString("  " + renderCounts(s))
	if s.Duration > 0 {
		b.WriteString("  " + dimStyle.Render("in "+formatDuration(s.Duration)))
	}
	b.WriteString("\n")

	return b.String()
}

func renderStepRow(b *strings.Builder, r domain.StepResult) {
	name := padRight(r.Step, 24)
	tool := r.Tool
	if tool == "" {
		tool = "-"
	}

	switch r.Outcome {
	case domain.OutcomePassed:
		fmt.Fprintf(b, "    %s %s %s", passStyle.Render("●"), name, dimStyle.Render(padRight(tool, 14)))
		if r.Diagnostic != "" {
			b.WriteString("  " + faintStyle.Render(r.Diagnostic))
		} else if r.Duration > 0 {
			b.WriteString("  " + faintStyle.Render(formatDuration(r.Duration)))
		}
		b.WriteString("\n")
	case domain.OutcomeFailed:
		fmt.Fprintf(b, "    %s %s %s", failStyle.Render("●"), name, dimStyle.Render(padRight(tool, 14)))
		if r.Diagnostic != "" {
			b.WriteString("  " + failStyle.Render(r.Diagnostic))
		}
		b.WriteString("\n")
		renderFailureOutput(b, r.Output)
	default:
		fmt.Fprintf(b, "    %s %s %s", skipStyle.Render("○"), skipStyle.Render(name), skipStyle.Render(padRight(tool, 14)))
		if r.Diagnostic != "" {
			b.WriteString("  " + faintStyle.Render(r.Diagnostic))
		}
		b.WriteString("\n")
	}
}

// maxOutputLines bounds how much tool output a failed step shows inline.
const maxOutputLines = 12

func renderFailureOutput(b *strings.Builder, output string) {
	if output == "" {
		return
	}
	lines := strings.Split(output, "\n")
	truncated := false
	if len(lines) > maxOutputLines {
		lines = lines[:maxOutputLines]
		truncated = true
	}
	for _, line := range lines {
		fmt.Fprintf(b, "      %s\n", faintStyle.Render(line))
	}
	if truncated {
		fmt.Fprintf(b, "      %s\n", hintStyle.Render("… full output in --json"))
	}
}

func renderCounts(s *domain.RunSummary) string {
	parts := []string{passStyle.Render(fmt.Sprintf("%d passed", s.Passed))}
	if s.Failed > 0 {
		parts = append(parts, failStyle.Render(fmt.Sprintf("%d failed", s.Failed)))
	} else {
		parts = append(parts, dimStyle.Render("0 failed"))
	}
	parts = append(parts, skipStyle.Render(fmt.Sprintf("%d skipped", s.Skipped)))
	return strings.Join(parts, dimStyle.Render("  ·  "))
}

func taskLabel(task domain.Task) string {
	if label, ok := taskLabels[task]; ok {
		return label
	}
	return string(task)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats run history for terminal output, most recent last.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		date := e.Timestamp
		if len(date) >= 10 {
			date = date[:10]
		}

		counts := passStyle.Render(fmt.Sprintf("✓%d", e.Passed))
		if e.Failed > 0 {
			counts += " " + failStyle.Render(fmt.Sprintf("✗%d", e.Failed))
		}
		if e.Skipped > 0 {
			counts += " " + skipStyle.Render(fmt.Sprintf("○%d", e.Skipped))
		}

		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			padRight(string(e.Task), 8),
			counts,
		)
	}

	return b.String()
}
