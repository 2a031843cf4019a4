package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

const defaultMaxJobs = 16

type Config struct {
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
	MaxJobs     int    `yaml:"max_jobs"`
	Verbose     bool   `yaml:"verbose"`
}

// Load reads the config file, falling back to defaults when it is absent.
func Load(file string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(file)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if cfg.HistoryFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.HistoryFile = filepath.Join(home, ".jobsh_history")
	}

	if cfg.Prompt == "" {
		cfg.Prompt = "jobsh> "
	}

	if cfg.MaxJobs <= 0 {
		cfg.MaxJobs = defaultMaxJobs
	}

	return cfg, nil
}
