package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "KEEPSTOCK"

type Config struct {
	Addr       string        `envconfig:"ADDR" default:":8080"`
	SQLitePath string        `envconfig:"SQLITE_PATH" default:":memory:"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	SeedDemo   bool          `envconfig:"SEED_DEMO" default:"true"`
	LogLevel   string        `envconfig:"LOG_LEVEL" default:"info"`
	Migrations string        `envconfig:"MIGRATIONS_DIR"`
}

// Load reads an optional .env file then KEEPSTOCK_* variables.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug(".env file not loaded, relying on environment", slog.Any("err", err))
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if strings.TrimSpace(cfg.SQLitePath) == "" {
		return Config{}, fmt.Errorf("%s_SQLITE_PATH must not be empty", EnvPrefix)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("%s_SESSION_TTL must be positive", EnvPrefix)
	}
	return cfg, nil
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
