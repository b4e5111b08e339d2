// Package config holds the environment driven settings of the brandeck CLI.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config is read from BRANDECK_* variables. Command-line flags override it.
type Config struct {
	// BrandConfig is a brand JSON/YAML file; empty selects the built-in brand.
	BrandConfig string `env:"BRANDECK_BRAND_CONFIG"`
	OutputDir   string `env:"BRANDECK_OUTPUT_DIR" envDefault:"output"`

	LogLevel  string `env:"BRANDECK_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"BRANDECK_LOG_FORMAT" envDefault:"console"`

	MaxTeamMembers int      `env:"BRANDECK_MAX_TEAM_MEMBERS" envDefault:"6"`
	LogoCacheSize  int      `env:"BRANDECK_LOGO_CACHE_SIZE" envDefault:"32"`
	Thumbnail      bool     `env:"BRANDECK_THUMBNAIL" envDefault:"true"`
	PreviewWidth   int      `env:"BRANDECK_PREVIEW_WIDTH" envDefault:"1280"`
	FontDirs       []string `env:"BRANDECK_FONT_DIRS" envSeparator:":"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	cfg.BrandConfig = strings.TrimSpace(cfg.BrandConfig)
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("BRANDECK_LOG_FORMAT must be console or json, got %q", cfg.LogFormat)
	}
	if cfg.MaxTeamMembers <= 0 {
		return nil, fmt.Errorf("BRANDECK_MAX_TEAM_MEMBERS must be positive, got %d", cfg.MaxTeamMembers)
	}
	if cfg.LogoCacheSize <= 0 {
		return nil, fmt.Errorf("BRANDECK_LOGO_CACHE_SIZE must be positive, got %d", cfg.LogoCacheSize)
	}
	if cfg.PreviewWidth <= 0 {
		return nil, fmt.Errorf("BRANDECK_PREVIEW_WIDTH must be positive, got %d", cfg.PreviewWidth)
	}
	return cfg, nil
}

// LoadEnvFiles loads the first of paths that exists. Variables already set
// in the environment win over the file.
func LoadEnvFiles(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		return nil
	}
	return nil
}
