// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	UI       UIConfig       `yaml:"ui"`
	Playback PlaybackConfig `yaml:"playback"`
}

// UIConfig represents UI-related configuration.
type UIConfig struct {
	Popup PopupConfig `yaml:"popup"`
}

// PopupConfig represents popup transition timing.
type PopupConfig struct {
	EnterDelayMs      int `yaml:"enter_delay_ms" default:"16" validate:"gte=0,lte=1000"`
	AnimationMs       int `yaml:"animation_ms" default:"150" validate:"gte=0,lte=5000"`
	AnimationBufferMs int `yaml:"animation_buffer_ms" default:"30" validate:"gte=0,lte=1000"`
	CloseGraceMs      int `yaml:"close_grace_ms" default:"50" validate:"gte=0,lte=1000"`
}

// PlaybackConfig represents playback defaults applied at startup.
type PlaybackConfig struct {
	Repeat  string `yaml:"repeat" default:"off" validate:"oneof=off track queue"`
	Shuffle bool   `yaml:"shuffle"`
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; there are no required fields.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case os.IsNotExist(err):
		// Defaults only
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("CAMPBAND_REPEAT"); v != "" {
		c.Playback.Repeat = v
	}
	if v := os.Getenv("CAMPBAND_SHUFFLE"); v != "" {
		c.Playback.Shuffle = v == "1" || strings.EqualFold(v, "true")
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
