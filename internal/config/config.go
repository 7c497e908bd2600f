package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/content.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// Language picks the status message catalog ("ko" or "en").
	Language         string        `env:"LANGUAGE" envDefault:"ko"`
	DefaultMaxRounds int           `env:"DEFAULT_MAX_ROUNDS" envDefault:"15"`
	SessionIdleTTL   time.Duration `env:"SESSION_IDLE_TTL" envDefault:"2h"`
	// AnimationSpeed scales every pacing delay; 0 resolves moves instantly.
	AnimationSpeed float64 `env:"ANIMATION_SPEED" envDefault:"1.0"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.DefaultMaxRounds < 1 {
		return nil, fmt.Errorf("DEFAULT_MAX_ROUNDS must be at least 1, got %d", cfg.DefaultMaxRounds)
	}
	if cfg.AnimationSpeed < 0 {
		return nil, fmt.Errorf("ANIMATION_SPEED must not be negative, got %v", cfg.AnimationSpeed)
	}
	return &cfg, nil
}
