// Package config loads the optional server configuration from the
// project's .taskmaster/config.yml. A missing file yields defaults —
// configuration is never required to run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the data directory.
const FileName = "config.yml"

// Config holds server-level settings.
type Config struct {
	// ProjectName overrides the name recorded in tasks.json metadata
	// at init time. Empty means the tool argument wins.
	ProjectName string `yaml:"project_name"`

	// History toggles the SQLite activity log.
	History bool `yaml:"history"`

	// HistoryPath overrides where the history database lives.
	// Relative paths resolve against the data directory.
	HistoryPath string `yaml:"history_path"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{History: true}
}

// Path returns the config file location for a project root.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, ".taskmaster", FileName)
}

// Load reads the config file, falling back to defaults when it does
// not exist. A malformed file is an error — silently ignoring it
// would hide a typo until someone wonders why their setting is off.
func Load(projectRoot string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", Path(projectRoot), err)
	}
	return cfg, nil
}

// ResolveHistoryPath returns the absolute history database path for
// the given project root, applying the default when unset.
func (c Config) ResolveHistoryPath(projectRoot string) string {
	dataDir := filepath.Join(projectRoot, ".taskmaster")
	if c.HistoryPath == "" {
		return filepath.Join(dataDir, "history.db")
	}
	if filepath.IsAbs(c.HistoryPath) {
		return c.HistoryPath
	}
	return filepath.Join(dataDir, c.HistoryPath)
}
