package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/clickgrow/growcore/pkg/domain"
)

// Store backends accepted by Settings.Store.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreBolt     = "bolt"
	StoreMemory   = "memory"
)

// Settings holds runtime settings read from CLICKGROW_* environment variables.
type Settings struct {
	PlayerID    int64  `env:"CLICKGROW_PLAYER_ID" envDefault:"0"`
	PlantName   string `env:"CLICKGROW_PLANT_NAME" envDefault:"Sprout"`
	Store       string `env:"CLICKGROW_STORE" envDefault:"sqlite"`
	StorePath   string `env:"CLICKGROW_STORE_PATH" envDefault:"clickgrow.db"`
	PostgresDSN string `env:"CLICKGROW_POSTGRES_DSN"`
	CatalogPath string `env:"CLICKGROW_CATALOG_PATH"`

	TickInterval time.Duration `env:"CLICKGROW_TICK_INTERVAL" envDefault:"10m"`
	DeathAfter   time.Duration `env:"CLICKGROW_DEATH_AFTER" envDefault:"168h"`

	WaterCooldown      time.Duration `env:"CLICKGROW_COOLDOWN_WATER" envDefault:"30s"`
	FertilizerCooldown time.Duration `env:"CLICKGROW_COOLDOWN_FERTILIZER" envDefault:"60s"`
	SunlightCooldown   time.Duration `env:"CLICKGROW_COOLDOWN_SUNLIGHT" envDefault:"45s"`
	MusicCooldown      time.Duration `env:"CLICKGROW_COOLDOWN_MUSIC" envDefault:"40s"`

	// Timezone names the IANA location used for daily/weekly/monthly boundaries. Empty means local time.
	Timezone string `env:"CLICKGROW_TIMEZONE"`

	LogLevel     string `env:"CLICKGROW_LOG_LEVEL" envDefault:"info"`
	OTelEndpoint string `env:"CLICKGROW_OTEL_ENDPOINT"`
}

// LoadSettings parses Settings from the environment and validates them.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// DefaultSettings returns the values LoadSettings yields with an empty environment.
func DefaultSettings() *Settings {
	return &Settings{
		PlantName:          "Sprout",
		Store:              StoreSQLite,
		StorePath:          "clickgrow.db",
		TickInterval:       10 * time.Minute,
		DeathAfter:         7 * 24 * time.Hour,
		WaterCooldown:      30 * time.Second,
		FertilizerCooldown: 60 * time.Second,
		SunlightCooldown:   45 * time.Second,
		MusicCooldown:      40 * time.Second,
		LogLevel:           "info",
	}
}

// Validate checks settings that would otherwise fail deep inside the engine.
func (s *Settings) Validate() error {
	for action, d := range s.Cooldowns() {
		if d <= 0 {
			return fmt.Errorf("cooldown for %s must be positive (got %s)", action, d)
		}
	}
	if s.TickInterval <= 0 {
		return errors.New("tick interval must be positive")
	}
	if s.DeathAfter <= 0 {
		return errors.New("death threshold must be positive")
	}
	if s.PlayerID < 0 {
		return errors.New("player ID cannot be negative")
	}

	switch s.Store {
	case StoreSQLite, StoreBolt:
		if s.StorePath == "" {
			return fmt.Errorf("store %s requires CLICKGROW_STORE_PATH", s.Store)
		}
	case StorePostgres:
		// an empty DSN falls back to DB_* variables
	case StoreMemory:
	default:
		return fmt.Errorf("unsupported store '%s' (must be sqlite, postgres, bolt or memory)", s.Store)
	}

	if _, err := s.Location(); err != nil {
		return err
	}
	return nil
}

// Cooldowns returns the per-action cooldown table.
func (s *Settings) Cooldowns() map[domain.ActionType]time.Duration {
	return map[domain.ActionType]time.Duration{
		domain.ActionWater:      s.WaterCooldown,
		domain.ActionFertilizer: s.FertilizerCooldown,
		domain.ActionSunlight:   s.SunlightCooldown,
		domain.ActionMusic:      s.MusicCooldown,
	}
}

// Location resolves Timezone. Empty means time.Local.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", s.Timezone, err)
	}
	return loc, nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (s *Settings) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
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
