package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// DefaultConfigPath returns settings.json's sibling config.yaml inside
// the WindowAnchor application-data directory.
func DefaultConfigPath(appDataDir string) string {
	return filepath.Join(appDataDir, configFileName)
}

// Load reads config.yaml at path (if present) and returns the resolved
// Config. A missing file is not an error — DefaultConfig is returned
// unmodified.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var raw RawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return BuildEffectiveConfig(raw), nil
}

// LoadLayered merges paths in order, later files overriding earlier
// ones, then resolves the merged result. A missing file in the list is
// skipped rather than treated as an error.
func LoadLayered(paths []string) (*Config, error) {
	var merged RawConfig
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		var layer RawConfig
		if err := yaml.Unmarshal(data, &layer); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		merged = merged.merge(layer)
	}
	return BuildEffectiveConfig(merged), nil
}
