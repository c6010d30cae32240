package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

// Feature: hat, Property 5: Config merge precedence
func TestConfigMergePrecedence(t *testing.T) {
	nonEmptyString := rapid.StringMatching(`[a-zA-Z0-9/_.-]{1,20}`)

	configGen := rapid.Custom(func(t *rapid.T) *Config {
		if rapid.Bool().Draw(t, "nil") {
			return nil
		}
		cfg := &Config{}
		if rapid.Bool().Draw(t, "hasStatePath") {
			cfg.StatePath = nonEmptyString.Draw(t, "statePath")
		}
		if rapid.Bool().Draw(t, "hasColor") {
			cfg.Color = nonEmptyString.Draw(t, "color")
		}
		if rapid.Bool().Draw(t, "hasLogLevel") {
			cfg.LogLevel = nonEmptyString.Draw(t, "logLevel")
		}
		if rapid.Bool().Draw(t, "hasDefaultFormat") {
			cfg.DefaultFormat = nonEmptyString.Draw(t, "defaultFormat")
		}
		return cfg
	})

	rapid.Check(t, func(t *rapid.T) {
		global := configGen.Draw(t, "global")
		project := configGen.Draw(t, "project")

		merged := Merge(global, project)
		defaults := Defaults()

		field := func(c *Config, get func(Config) string) string {
			if c == nil {
				return ""
			}
			return get(*c)
		}
		for name, get := range map[string]func(Config) string{
			"StatePath":     func(c Config) string { return c.StatePath },
			"Color":         func(c Config) string { return c.Color },
			"LogLevel":      func(c Config) string { return c.LogLevel },
			"DefaultFormat": func(c Config) string { return c.DefaultFormat },
		} {
			checkStringField(t, name, field(global, get), field(project, get), get(defaults), get(merged))
		}
	})
}

// checkStringField asserts the merge precedence rule for a single string field:
//   - project non-empty  → merged == project
//   - project empty, global non-empty → merged == global
//   - both empty → merged == defaultVal
func checkStringField(t *rapid.T, name, globalVal, projectVal, defaultVal, mergedVal string) {
	t.Helper()
	switch {
	case projectVal != "":
		if mergedVal != projectVal {
			t.Fatalf("%s: expected project value %q, got %q", name, projectVal, mergedVal)
		}
	case globalVal != "":
		if mergedVal != globalVal {
			t.Fatalf("%s: only global set, expected %q, got %q", name, globalVal, mergedVal)
		}
	default:
		if mergedVal != defaultVal {
			t.Fatalf("%s: neither set, expected default %q, got %q", name, defaultVal, mergedVal)
		}
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func writeGlobal(t *testing.T, home, name, content string) {
	t.Helper()
	dir := filepath.Join(home, ".config", "hat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultsValues(t *testing.T) {
	d := Defaults()
	if d.Color != "auto" {
		t.Errorf("Color: want %q, got %q", "auto", d.Color)
	}
	if d.LogLevel != "warn" {
		t.Errorf("LogLevel: want %q, got %q", "warn", d.LogLevel)
	}
	if d.DefaultFormat != "text" {
		t.Errorf("DefaultFormat: want %q, got %q", "text", d.DefaultFormat)
	}
	if d.StatePath != "" {
		t.Errorf("StatePath: want empty, got %q", d.StatePath)
	}
}

func TestLoadGlobalMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil || *cfg != Defaults() {
		t.Errorf("want defaults, got %+v", cfg)
	}
}

func TestLoadGlobalJSONCWithComments(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeGlobal(t, home, "config.jsonc", `{
		// where the hats live
		"state_path": "/tmp/hats.json",
		"color": "never", /* no ANSI */
	}`)

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StatePath != "/tmp/hats.json" || cfg.Color != "never" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadGlobalYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeGlobal(t, home, "config.yml", "log_level: debug\ndefault_format: markdown\n")

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.DefaultFormat != "markdown" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadGlobalPrefersJSONCOverYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeGlobal(t, home, "config.jsonc", `{"color": "always"}`)
	writeGlobal(t, home, "config.yaml", "color: never\n")

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Color != "always" {
		t.Errorf("Color: want %q, got %q", "always", cfg.Color)
	}
}

func TestLoadProjectMissingFileReturnsNil(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadProject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
}

func TestLoadProjectYAML(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".hatconfig.yaml"), []byte("state_path: ./hats.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProject()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil || cfg.StatePath != "./hats.json" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadMergesProjectOverGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeGlobal(t, home, "config.json", `{"color": "never", "log_level": "info"}`)
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".hatconfig"), []byte(`{"color": "always"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Color != "always" || cfg.LogLevel != "info" || cfg.DefaultFormat != "text" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadGlobalParseError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeGlobal(t, home, "config.json", "{invalid json")

	_, err := LoadGlobal()
	if err == nil {
		t.Fatal("expected an error for invalid JSON, got nil")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if parseErr.Path != filepath.Join(home, ".config", "hat", "config.json") {
		t.Errorf("Path: got %q", parseErr.Path)
	}
}

func TestLoadRejectsUnknownColorMode(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeGlobal(t, home, "config.yaml", "color: sometimes\n")

	_, err := LoadGlobal()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}
