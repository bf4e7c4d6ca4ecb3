// Package config loads CalcBoard settings from an optional TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"CalcBoard/internal/solver"
)

const (
	EnvConfig   = "CALCBOARD_CONFIG"
	EnvAPIURL   = "CALCBOARD_API_URL"
	EnvLogLevel = "CALCBOARD_LOG_LEVEL"
	EnvSchema   = "CALCBOARD_SCHEMA"
)

type Config struct {
	// APIURL is the solver base URL; /calculate is appended.
	APIURL  string        `toml:"api_url"`
	Timeout time.Duration `toml:"timeout"`
	Schema  string        `toml:"schema"`

	// Discover browses mDNS for a solver when APIURL is empty.
	Discover        bool          `toml:"discover"`
	DiscoverTimeout time.Duration `toml:"discover_timeout"`

	LogLevel     string  `toml:"log_level"`
	WindowWidth  float32 `toml:"window_width"`
	WindowHeight float32 `toml:"window_height"`
}

func Default() Config {
	return Config{
		Timeout:         30 * time.Second,
		Schema:          string(solver.SchemaResult),
		Discover:        true,
		DiscoverTimeout: 2 * time.Second,
		LogLevel:        "info",
		WindowWidth:     1280,
		WindowHeight:    800,
	}
}

// DefaultPath is <user config dir>/calcboard/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "calcboard", "config.toml")
}

// Load reads the file named by $CALCBOARD_CONFIG, falling back to
// DefaultPath, then applies environment overrides. A missing file is not an
// error.
func Load() (Config, error) {
	path := os.Getenv(EnvConfig)
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cfg, err
			}
		}
	}
	cfg.applyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("read config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvSchema); v != "" {
		c.Schema = v
	}
}

func (c Config) Validate() error {
	if _, err := solver.ParseSchema(c.Schema); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Discover && c.DiscoverTimeout <= 0 {
		return fmt.Errorf("discover_timeout must be positive, got %s", c.DiscoverTimeout)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %gx%g", c.WindowWidth, c.WindowHeight)
	}
	return nil
}

// ResponseSchema returns the parsed schema. Call Validate first.
func (c Config) ResponseSchema() solver.Schema {
	s, _ := solver.ParseSchema(c.Schema)
	return s
}
