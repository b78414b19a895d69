package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// ProjectName carries the naming forms a scaffold needs. All forms derive
// from the same word split, so "WebScraper", "web-scraper", and
// "web_scraper" name the same project.
type ProjectName struct {
	Raw string
	// Slug is kebab-case: directory name, crate name, npm package name.
	Slug string
	// Snake is snake_case: python package and module names.
	Snake string
	// Display is the title-cased human form for READMEs.
	Display string
}

// NewProjectName validates raw and derives the naming forms. Word
// boundaries come from camel-case humps, hyphens, underscores, and spaces.
func NewProjectName(raw string) (ProjectName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ProjectName{}, fmt.Errorf("project name is empty")
	}
	if !unicode.IsLetter(rune(trimmed[0])) {
		return ProjectName{}, fmt.Errorf("project name %q must start with a letter", raw)
	}
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == ' ' {
			continue
		}
		return ProjectName{}, fmt.Errorf("project name %q contains invalid character %q", raw, r)
	}

	words := splitNameWords(trimmed)
	display := make([]string, len(words))
	for i, w := range words {
		display[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return ProjectName{
		Raw:     raw,
		Slug:    strings.Join(words, "-"),
		Snake:   strings.Join(words, "_"),
		Display: strings.Join(display, " "),
	}, nil
}

func splitNameWords(name string) []string {
	var words []string
	for _, part := range strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	}) {
		// camelcase treats digit runs as words of their own; glue them back
		// onto the preceding word so "scraper2" stays one word.
		for _, w := range camelcase.Split(part) {
			if allDigits(w) && len(words) > 0 {
				words[len(words)-1] += w
				continue
			}
			words = append(words, strings.ToLower(w))
		}
	}
	return words
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// ScaffoldRequest describes one new-project skeleton.
type ScaffoldRequest struct {
	Name      ProjectName
	Ecosystem Ecosystem
	// TargetDir is the directory to create; it must not already exist.
	TargetDir string
	InitGit   bool
}
