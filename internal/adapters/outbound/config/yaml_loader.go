package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/upkeepdev/upkeep/internal/domain"
)

const fileName = ".upkeep.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .upkeep.yaml from
// the project root.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .upkeep.yaml from projectRoot. A missing file is not an error:
// every project works with the defaults.
func (l *YAMLLoader) Load(projectRoot string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectRoot, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}
