// Package config loads the optional pystyle configuration file.
//
// The file tunes how a run is executed and which files it visits. It has no
// say over the rules themselves.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".pystyle.yaml"

// Config is the content of a configuration file.
type Config struct {
	// Workers bounds concurrent file analysis; 0 means one per CPU.
	Workers int `yaml:"workers"`
	// Exclude lists gitignore-style patterns skipped during directory scans.
	Exclude []string `yaml:"exclude"`
	// RespectGitignore applies the scanned directory's .gitignore.
	RespectGitignore bool `yaml:"respect_gitignore"`
}

// Load reads the configuration at path. An empty path means DefaultFile,
// which may be absent; an explicitly named file must exist.
func Load(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("config %s: workers must not be negative", path)
	}
	return cfg, nil
}
