package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/upkeepdev/upkeep/internal/domain"
)

//go:embed all:templates
var templatesFS embed.FS

// packagePlaceholder in a template path is replaced with the project's
// snake_case name, so python packages land under src/<name>/.
const packagePlaceholder = "__package__"

// TemplateScaffolder implements domain.Scaffolder from an embedded template
// tree, one subdirectory per ecosystem. Template files end in .tmpl and are
// rendered with the project's naming forms.
type TemplateScaffolder struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *TemplateScaffolder {
	return &TemplateScaffolder{logger: logger.With().Str("component", "scaffold").Logger()}
}

func (s *TemplateScaffolder) Scaffold(req domain.ScaffoldRequest) (created []string, err error) {
	if _, statErr := os.Stat(req.TargetDir); statErr == nil {
		return nil, fmt.Errorf("target %s already exists", req.TargetDir)
	}

	templateRoot := path.Join("templates", string(req.Ecosystem))
	if _, statErr := fs.Stat(templatesFS, templateRoot); statErr != nil {
		return nil, fmt.Errorf("no project template for ecosystem %q", req.Ecosystem)
	}

	if err = os.MkdirAll(req.TargetDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", req.TargetDir, err)
	}
	defer func() {
		// A failed scaffold removes the partial tree.
		if err != nil {
			_ = os.RemoveAll(req.TargetDir)
		}
	}()

	err = fs.WalkDir(templatesFS, templateRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, templateRoot+"/")
		rel = strings.TrimSuffix(rel, ".tmpl")
		rel = strings.ReplaceAll(rel, packagePlaceholder, req.Name.Snake)

		content, renderErr := s.render(p, req.Name)
		if renderErr != nil {
			return renderErr
		}

		dest := filepath.Join(req.TargetDir, filepath.FromSlash(rel))
		if mkErr := os.MkdirAll(filepath.Dir(dest), 0o755); mkErr != nil {
			return mkErr
		}
		if writeErr := os.WriteFile(dest, content, 0o644); writeErr != nil {
			return fmt.Errorf("writing %s: %w", rel, writeErr)
		}

		created = append(created, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("ecosystem", string(req.Ecosystem)).
		Int("files", len(created)).
		Msg("scaffolded project")
	return created, nil
}

func (s *TemplateScaffolder) render(templatePath string, name domain.ProjectName) ([]byte, error) {
	raw, err := templatesFS.ReadFile(templatePath)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(path.Base(templatePath)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", templatePath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, name); err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", templatePath, err)
	}
	return buf.Bytes(), nil
}
