package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads a config file, applies defaults and validates. Default returns
// the same defaults without touching the filesystem, for runs without a
// config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.Root) == "" {
		cfg.Root = "."
	}
	if len(cfg.Exclude.Dirs) == 0 {
		cfg.Exclude.Dirs = []string{".git", "__pycache__", ".venv", "venv", ".tox", "*.egg-info"}
	}

	// Zero thresholds count as unset here; "no threshold" for the hot view
	// is expressed with flags, not the config file.
	if cfg.Views.Hot.MinImports == 0 {
		cfg.Views.Hot.MinImports = 2
	}
	if cfg.Views.Hot.MinDepth == 0 {
		cfg.Views.Hot.MinDepth = 1
	}
	if cfg.Views.Hot.Top == 0 {
		cfg.Views.Hot.Top = 20
	}
	if cfg.Views.Dead.Top == 0 {
		cfg.Views.Dead.Top = 50
	}
	if cfg.Views.Cold.MaxImports == 0 {
		cfg.Views.Cold.MaxImports = 3
	}
	if cfg.Views.Cold.Top == 0 {
		cfg.Views.Cold.Top = 20
	}

	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = "burrow-history.db"
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.MaxEventRate == 0 {
		cfg.Watch.MaxEventRate = 50
	}

	if strings.TrimSpace(cfg.Observability.Address) == "" {
		cfg.Observability.Address = "127.0.0.1:9190"
	}
}
