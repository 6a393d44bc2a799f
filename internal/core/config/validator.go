package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

func validate(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}

	for _, pattern := range append(append([]string{}, cfg.Exclude.Dirs...), cfg.Exclude.Files...) {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	if cfg.Views.Hot.MinImports < 0 || cfg.Views.Hot.MinDepth < 0 || cfg.Views.Hot.Top < 0 {
		return fmt.Errorf("views.hot thresholds must not be negative")
	}
	if cfg.Views.Dead.Top < 0 {
		return fmt.Errorf("views.dead.top must not be negative")
	}
	if cfg.Views.Cold.MaxImports < 1 {
		return fmt.Errorf("views.cold.max_imports must be >= 1")
	}
	if cfg.Views.Cold.MinDepth < 0 || cfg.Views.Cold.Top < 0 {
		return fmt.Errorf("views.cold thresholds must not be negative")
	}

	if cfg.History.Enabled && strings.TrimSpace(cfg.History.Path) == "" {
		return fmt.Errorf("history.path must not be empty when history is enabled")
	}

	if cfg.Watch.Debounce < 0 || cfg.Watch.Debounce > time.Minute {
		return fmt.Errorf("watch.debounce must be between 0 and 1m")
	}
	if cfg.Watch.MaxEventRate <= 0 {
		return fmt.Errorf("watch.max_event_rate must be positive")
	}

	if cfg.Observability.Enabled && strings.TrimSpace(cfg.Observability.Address) == "" {
		return fmt.Errorf("observability.address must not be empty when enabled")
	}

	return nil
}
