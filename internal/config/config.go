package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	ModeMove = "move"
	ModeCopy = "copy"

	DateCreated  = "created"
	DateModified = "modified"
	DateTaken    = "taken"
)

// Config is the immutable set of run options, resolved once per invocation:
// built-in defaults, then the TOML file, then YEARSORT_* environment
// variables, then flags.
type Config struct {
	Downloads    string `toml:"downloads"`
	Mode         string `toml:"mode"`
	DateSource   string `toml:"date_source"`
	DryRun       bool   `toml:"dry_run"`
	IncludeDirs  bool   `toml:"include_dirs"`
	IncludeLinks bool   `toml:"include_links"`
	Verbose      bool   `toml:"verbose"`
	Interactive  bool   `toml:"interactive"`
}

func Default() Config {
	return Config{
		Mode:       ModeMove,
		DateSource: DateCreated,
	}
}

// DefaultFilePath returns the conventional config file location, or ""
// when the user config directory is unknown.
func DefaultFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "yearsort", "config.toml")
}

// LoadFile overlays values from a TOML file onto cfg. A missing file is
// reported as-is; callers decide whether the path was optional.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays YEARSORT_* environment variables. Boolean variables
// only ever switch a setting on.
func (c *Config) ApplyEnv() {
	if v := envOrEmpty("YEARSORT_DOWNLOADS"); v != "" {
		c.Downloads = v
	}
	if v := envOrEmpty("YEARSORT_MODE"); v != "" {
		c.Mode = v
	}
	if v := envOrEmpty("YEARSORT_DATE_SOURCE"); v != "" {
		c.DateSource = v
	}
	if !c.Verbose {
		c.Verbose = envTruthy("YEARSORT_VERBOSE")
	}
	if !c.DryRun {
		c.DryRun = envTruthy("YEARSORT_DRY_RUN")
	}
}

func (c Config) Validate() error {
	if c.Downloads == "" {
		return errors.New("downloads directory is required")
	}
	switch c.Mode {
	case ModeMove, ModeCopy:
	default:
		return fmt.Errorf("unknown mode %q, use move or copy", c.Mode)
	}
	switch c.DateSource {
	case DateCreated, DateModified, DateTaken:
	default:
		return fmt.Errorf("unknown date source %q, use created, modified or taken", c.DateSource)
	}
	return nil
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
