// Package config loads and validates Campus Connect YAML configuration.
// It applies defaults so callers can rely on fully populated values.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"`
}

// Config mirrors the campusconnect.yaml schema.
type Config struct {
	Log      LogConfig `yaml:"log"`
	DB       DBConfig  `yaml:"db"`
	NotesDir string    `yaml:"notes_dir"`
}

// Load reads a YAML config file, applies defaults, and validates it.
func Load(path string) (Config, error) {
	var c Config
	if path == "" {
		return c, errors.New("config path is required")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	applyDefaults(&c)
	if err := validate(&c); err != nil {
		return Config{}, err
	}
	c.DB.Path = strings.TrimSpace(c.DB.Path)
	c.NotesDir = strings.TrimSpace(c.NotesDir)
	return c, nil
}

// applyDefaults populates zero-values with sane defaults.
func applyDefaults(c *Config) {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.DB.Path == "" {
		c.DB.Path = "./data/campusconnect.db"
	}
	if c.NotesDir == "" {
		c.NotesDir = "./data/uploaded_notes"
	}
}

// validate performs basic sanity checks. It does not mutate the config.
func validate(c *Config) error {
	if strings.TrimSpace(c.Log.Level) == "" {
		return errors.New("log.level is required")
	}
	if strings.TrimSpace(c.DB.Path) == "" {
		return errors.New("db.path is required")
	}
	if strings.TrimSpace(c.NotesDir) == "" {
		return errors.New("notes_dir is required")
	}
	_ = filepath.Clean(c.DB.Path)
	_ = filepath.Clean(c.NotesDir)
	return nil
}
