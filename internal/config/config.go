// Package config holds the application configuration, loaded from an
// optional YAML file with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Slipfaith/Diffviewer/internal/diff"
)

// Config is the root configuration.
type Config struct {
	Match MatchConfig `yaml:"match"`
	Log   LogConfig   `yaml:"log"`
}

// MatchConfig holds the diff engine thresholds, both in [0,1].
type MatchConfig struct {
	FuzzyMatchThreshold float64 `yaml:"fuzzy_match_threshold" env:"MATCH_FUZZY_THRESHOLD" env-default:"0.75"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"  env:"MATCH_SIMILARITY_THRESHOLD" env-default:"0.5"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from path when it exists, then applies
// environment overrides. An empty path loads from the environment only.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else {
			if err := cfg.validate(); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Match.FuzzyMatchThreshold < 0 || c.Match.FuzzyMatchThreshold > 1 {
		return fmt.Errorf("fuzzy_match_threshold out of range: %v", c.Match.FuzzyMatchThreshold)
	}
	if c.Match.SimilarityThreshold < 0 || c.Match.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold out of range: %v", c.Match.SimilarityThreshold)
	}
	return nil
}

// Engine builds a diff engine configured with the match thresholds.
func (c *Config) Engine() *diff.Engine {
	return &diff.Engine{
		FuzzyMatchThreshold: c.Match.FuzzyMatchThreshold,
		SimilarityThreshold: c.Match.SimilarityThreshold,
	}
}
