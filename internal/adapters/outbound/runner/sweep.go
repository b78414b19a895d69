package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Sweeper implements domain.ArtifactSweeper. Patterns come in two shapes: a
// plain glob matched directly under the project root, or a "**/" prefix
// matching the rest of the pattern at any depth. Expansion reports concrete
// relative paths so a dry run can show exactly what removal would delete.
type Sweeper struct {
	logger zerolog.Logger
}

func NewSweeper(logger zerolog.Logger) *Sweeper {
	return &Sweeper{logger: logger.With().Str("component", "sweeper").Logger()}
}

// sweepSkipDirs are never descended into during deep expansion. VCS metadata
// is not ours to touch, and node_modules is only ever removed as a whole via
// its own plain pattern.
var sweepSkipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
}

func (s *Sweeper) Expand(projectRoot string, patterns []string) ([]string, error) {
	var matched []string
	seen := map[string]bool{}
	add := func(rel string) {
		rel = filepath.ToSlash(rel)
		if !seen[rel] {
			seen[rel] = true
			matched = append(matched, rel)
		}
	}

	var deep []string
	for _, pattern := range patterns {
		if strings.Contains(pattern, "..") {
			return nil, fmt.Errorf("pattern %q escapes the project root", pattern)
		}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			deep = append(deep, rest)
			continue
		}
		hits, err := filepath.Glob(filepath.Join(projectRoot, pattern))
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		for _, hit := range hits {
			rel, relErr := filepath.Rel(projectRoot, hit)
			if relErr != nil {
				return nil, relErr
			}
			add(rel)
		}
	}

	if len(deep) > 0 {
		if err := s.expandDeep(projectRoot, deep, add); err != nil {
			return nil, err
		}
	}

	sort.Strings(matched)
	return matched, nil
}

// expandDeep walks the tree once for all "**/" patterns, matching entry
// base names. A matched directory is recorded without descending into it;
// removing the parent covers everything below.
func (s *Sweeper) expandDeep(projectRoot string, deep []string, add func(string)) error {
	return filepath.WalkDir(projectRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == projectRoot {
			return nil
		}
		if d.IsDir() && sweepSkipDirs[d.Name()] {
			return filepath.SkipDir
		}
		for _, pattern := range deep {
			ok, err := filepath.Match(pattern, d.Name())
			if err != nil {
				return fmt.Errorf("pattern %q: %w", "**/"+pattern, err)
			}
			if !ok {
				continue
			}
			rel, relErr := filepath.Rel(projectRoot, path)
			if relErr != nil {
				return relErr
			}
			add(rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			break
		}
		return nil
	})
}

func (s *Sweeper) Remove(projectRoot string, paths []string) error {
	root := filepath.Clean(projectRoot)
	for _, rel := range paths {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if abs == root || !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
			return fmt.Errorf("refusing to remove %q outside project root", rel)
		}
		if err := os.RemoveAll(abs); err != nil {
			return fmt.Errorf("removing %s: %w", rel, err)
		}
		s.logger.Debug().Str("path", rel).Msg("removed")
	}
	return nil
}
