package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the devmat configuration file
// (~/.config/devmat/config.yaml). All fields are pointers so we can
// distinguish "not set" from zero values.
type Config struct {
	Rows      *int64   `yaml:"rows"`
	Inner     *int64   `yaml:"inner"`
	Cols      *int64   `yaml:"cols"`
	Tolerance *float64 `yaml:"tolerance"`
	Seed      *int64   `yaml:"seed"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "devmat", "config.yaml")
}

// applyDemoConfig applies config file defaults to demo command variables
// when the corresponding CLI flag was not explicitly set.
func applyDemoConfig(c *cli.Command, cfg Config,
	rows, inner, cols *int64, tolerance *float64, seed *int64,
) {
	if cfg.Rows != nil && !c.IsSet("rows") {
		*rows = *cfg.Rows
	}
	if cfg.Inner != nil && !c.IsSet("inner") {
		*inner = *cfg.Inner
	}
	if cfg.Cols != nil && !c.IsSet("cols") {
		*cols = *cfg.Cols
	}
	if cfg.Tolerance != nil && !c.IsSet("tolerance") {
		*tolerance = *cfg.Tolerance
	}
	if cfg.Seed != nil && !c.IsSet("seed") {
		*seed = *cfg.Seed
	}
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or does not parse.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}
