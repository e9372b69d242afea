// Package config loads the user configuration: a YAML file overlaid by
// NEURONDEMO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"neurondemo/internal/playback"
)

// CurrentVersion is the config_version written by this build
const CurrentVersion = 1

type PlaybackConfig struct {
	TypeInterval   time.Duration `yaml:"type_interval"   env:"NEURONDEMO_TYPE_INTERVAL"`
	CommandDelay   time.Duration `yaml:"command_delay"   env:"NEURONDEMO_COMMAND_DELAY"`
	OutputInterval time.Duration `yaml:"output_interval" env:"NEURONDEMO_OUTPUT_INTERVAL"`
	BetweenSteps   time.Duration `yaml:"between_steps"   env:"NEURONDEMO_BETWEEN_STEPS"`
	CharsPerTick   int           `yaml:"chars_per_tick"  env:"NEURONDEMO_CHARS_PER_TICK"`
	Speed          int           `yaml:"speed"           env:"NEURONDEMO_SPEED"`
}

type CatalogConfig struct {
	Dir     string `yaml:"dir"     env:"NEURONDEMO_CATALOG_DIR"`   // YAML scripts overriding the built-in catalog
	Store   string `yaml:"store"   env:"NEURONDEMO_CATALOG_STORE"` // SQLite catalog, wins over Dir
	Default string `yaml:"default" env:"NEURONDEMO_DEFAULT_DEMO"`
}

type UIConfig struct {
	Theme         string        `yaml:"theme"          env:"NEURONDEMO_THEME"`
	CursorBlink   time.Duration `yaml:"cursor_blink"   env:"NEURONDEMO_CURSOR_BLINK"`
	TranscriptDir string        `yaml:"transcript_dir" env:"NEURONDEMO_TRANSCRIPT_DIR"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"        env:"NEURONDEMO_LOG_LEVEL"`
	File       string `yaml:"file"         env:"NEURONDEMO_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb"  env:"NEURONDEMO_LOG_MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups"  env:"NEURONDEMO_LOG_MAX_BACKUPS"`
}

type Config struct {
	ConfigVersion int            `yaml:"config_version"`
	Playback      PlaybackConfig `yaml:"playback"`
	Catalog       CatalogConfig  `yaml:"catalog"`
	UI            UIConfig       `yaml:"ui"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Defaults returns the application defaults
func Defaults() Config {
	t := playback.DefaultTimings()
	return Config{
		ConfigVersion: CurrentVersion,
		Playback: PlaybackConfig{
			TypeInterval:   t.TypeInterval,
			CommandDelay:   t.CommandDelay,
			OutputInterval: t.OutputInterval,
			BetweenSteps:   t.BetweenSteps,
			CharsPerTick:   t.CharsPerTick,
			Speed:          int(playback.Speed1x),
		},
		UI: UIConfig{
			Theme:         "midnight",
			CursorBlink:   530 * time.Millisecond,
			TranscriptDir: ".",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// DefaultPath returns the per-user config file path
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return filepath.Join(dir, "neurondemo", "config.yaml"), nil
}

// Load reads path over the defaults and applies environment overrides. An
// empty path reads DefaultPath if it exists.
func Load(path string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the player cannot run with
func (c Config) Validate() error {
	if c.ConfigVersion > CurrentVersion {
		return fmt.Errorf("config_version %d is newer than supported %d", c.ConfigVersion, CurrentVersion)
	}
	p := c.Playback
	for name, d := range map[string]time.Duration{
		"type_interval":   p.TypeInterval,
		"command_delay":   p.CommandDelay,
		"output_interval": p.OutputInterval,
		"between_steps":   p.BetweenSteps,
	} {
		if d <= 0 {
			return fmt.Errorf("playback.%s must be positive, got %s", name, d)
		}
	}
	if p.CharsPerTick < 1 {
		return fmt.Errorf("playback.chars_per_tick must be at least 1, got %d", p.CharsPerTick)
	}
	if !playback.Speed(p.Speed).Valid() {
		return fmt.Errorf("playback.speed: %w: %d", playback.ErrInvalidSpeed, p.Speed)
	}
	if c.UI.CursorBlink < 0 {
		return fmt.Errorf("ui.cursor_blink must not be negative, got %s", c.UI.CursorBlink)
	}
	return nil
}

// Timings returns the base playback timings
func (c Config) Timings() playback.Timings {
	return playback.Timings{
		TypeInterval:   c.Playback.TypeInterval,
		CommandDelay:   c.Playback.CommandDelay,
		OutputInterval: c.Playback.OutputInterval,
		BetweenSteps:   c.Playback.BetweenSteps,
		CharsPerTick:   c.Playback.CharsPerTick,
	}
}

// Speed returns the configured start speed
func (c Config) Speed() playback.Speed {
	return playback.Speed(c.Playback.Speed)
}

// Save writes cfg to path, creating the directory
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
