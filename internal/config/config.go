package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config holds all configurable hat settings.
type Config struct {
	StatePath     string `json:"state_path" yaml:"state_path"`
	Color         string `json:"color" yaml:"color"`                   // "auto" | "always" | "never"
	LogLevel      string `json:"log_level" yaml:"log_level"`           // "debug" | "info" | "warn" | "error"
	DefaultFormat string `json:"default_format" yaml:"default_format"` // "text" | "json" | "markdown"
}

// Defaults returns the default configuration. An empty StatePath means the
// XDG data directory.
func Defaults() Config {
	return Config{
		Color:         "auto",
		LogLevel:      "warn",
		DefaultFormat: "text",
	}
}

var globalNames = []string{"config.jsonc", "config.json", "config.yaml", "config.yml"}

var projectNames = []string{".hatconfig", ".hatconfig.yaml"}

// LoadGlobal reads the first existing file among
// ~/.config/hat/config.{jsonc,json,yaml,yml}.
// Returns defaults if none exists.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".config", "hat")
	for _, name := range globalNames {
		cfg, err := loadFile(filepath.Join(dir, name))
		if err != nil || cfg != nil {
			return cfg, err
		}
	}
	d := Defaults()
	return &d, nil
}

// LoadProject reads .hatconfig (JSONC) or .hatconfig.yaml in the current
// working directory. Returns nil (no error) if neither exists.
func LoadProject() (*Config, error) {
	for _, name := range projectNames {
		cfg, err := loadFile(name)
		if err != nil || cfg != nil {
			return cfg, err
		}
	}
	return nil, nil
}

// loadFile parses the config file at path, choosing YAML or JSONC by
// extension. It returns nil, nil when the file is absent.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &cfg)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := cfg.validate(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if !oneOf(c.Color, "", "auto", "always", "never") {
		return fmt.Errorf("color: unknown mode %q", c.Color)
	}
	if !oneOf(c.LogLevel, "", "debug", "info", "warn", "error") {
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	if !oneOf(c.DefaultFormat, "", "text", "json", "markdown") {
		return fmt.Errorf("default_format: unknown format %q", c.DefaultFormat)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	for _, src := range []*Config{global, project} {
		if src == nil {
			continue
		}
		if src.StatePath != "" {
			result.StatePath = src.StatePath
		}
		if src.Color != "" {
			result.Color = src.Color
		}
		if src.LogLevel != "" {
			result.LogLevel = src.LogLevel
		}
		if src.DefaultFormat != "" {
			result.DefaultFormat = src.DefaultFormat
		}
	}
	return result
}

// Load reads and merges the global and project files.
func Load() (Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return Config{}, err
	}
	project, err := LoadProject()
	if err != nil {
		return Config{}, err
	}
	return Merge(global, project), nil
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
