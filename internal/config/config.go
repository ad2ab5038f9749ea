// Package config resolves rustdojo settings from defaults, an optional YAML
// file, RUSTDOJO_* environment variables and command-line flags, in that
// order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/rustdojo/internal/logging"
	"github.com/abhisek/rustdojo/internal/sandbox"
	"github.com/abhisek/rustdojo/internal/store"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "RUSTDOJO_"

// Config holds all runtime settings.
type Config struct {
	// LessonsDir is the root of the exercise tree.
	LessonsDir string `yaml:"lessons_dir"`

	// DataDir holds progress, leaderboard, working copies and sandboxes.
	DataDir string `yaml:"data_dir"`

	// OrderFile optionally replaces the built-in canonical exercise order.
	OrderFile string `yaml:"order_file"`

	// DefaultTimeout applies when neither the caller nor the exercise sets
	// one. Default: 15s.
	DefaultTimeout time.Duration `yaml:"default_timeout"`

	// ForceUnlock bypasses unlock gating for every exercise.
	ForceUnlock bool `yaml:"force_unlock"`

	// Command is the sandbox build-and-test command.
	Command string `yaml:"command"`

	// Parallelism bounds concurrent grading in check-all.
	Parallelism int `yaml:"parallelism"`

	// MinToolchain is the lowest cargo version doctor accepts.
	MinToolchain string `yaml:"min_toolchain"`

	Log logging.Config `yaml:"log"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	dataDir, err := store.DefaultDataDir()
	if err != nil {
		dataDir = filepath.Join(".", "."+store.AppName)
	}
	return Config{
		LessonsDir:     "lessons",
		DataDir:        dataDir,
		DefaultTimeout: sandbox.DefaultTimeout,
		Command:        sandbox.DefaultCommand,
		Parallelism:    min(runtime.NumCPU(), 4),
		MinToolchain:   "1.70.0",
		Log: logging.Config{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultFilePath returns $XDG_CONFIG_HOME/rustdojo/config.yaml (or the
// platform equivalent).
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, store.AppName, "config.yaml")
}

// Load resolves defaults, then the YAML file at path, then the environment.
// A missing file is only an error when path was given explicitly.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getenv(EnvPrefix + "CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultFilePath()
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv returns defaults overridden by RUSTDOJO_* variables.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile merges the YAML document at path into c. Keys absent from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c with any RUSTDOJO_* variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	env := func(name string) string { return strings.TrimSpace(getenv(EnvPrefix + name)) }

	if v := env("LESSONS_DIR"); v != "" {
		c.LessonsDir = v
	}
	if v := env("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := env("ORDER_FILE"); v != "" {
		c.OrderFile = v
	}
	if v := env("TIMEOUT"); v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", EnvPrefix, err)
		}
		c.DefaultTimeout = d
	}
	if v := env("FORCE"); v != "" {
		c.ForceUnlock = v == "1" || strings.EqualFold(v, "true")
	}
	if v := env("COMMAND"); v != "" {
		c.Command = v
	}
	if v := env("PARALLELISM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPARALLELISM: %w", EnvPrefix, err)
		}
		c.Parallelism = n
	}
	if v := env("MIN_TOOLCHAIN"); v != "" {
		c.MinToolchain = v
	}
	if v := env("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := env("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := env("LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// ParseTimeout accepts either whole seconds ("20") or a Go duration ("1m30s").
func ParseTimeout(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("timeout must be positive, got %d", n)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}

// Validate checks that the resolved settings are usable.
func (c Config) Validate() error {
	if c.LessonsDir == "" {
		return fmt.Errorf("lessons dir is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.DefaultTimeout <= 0 {
		return fmt.Errorf("default timeout must be positive, got %s", c.DefaultTimeout)
	}
	if strings.TrimSpace(c.Command) == "" {
		return fmt.Errorf("sandbox command is required")
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	return nil
}

// SandboxDir is where per-exercise sandboxes live.
func (c Config) SandboxDir() string { return filepath.Join(c.DataDir, "sandboxes") }

// WorkDir is where learner working copies live.
func (c Config) WorkDir() string { return filepath.Join(c.DataDir, "work") }

// DBPath is the accounts and attempt-history database.
func (c Config) DBPath() string { return filepath.Join(c.DataDir, store.DBFile) }

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
