// Package config loads layered configuration for the tzcompile CLI:
// defaults, an optional config file, and environment variables, in that
// order of increasing precedence (CLI flags are layered on top by the
// caller, which overrides the loaded Config fields with any flags set).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings that drive a tzcompile build.
type Config struct {
	// Source is where tzdata source files are read from: either a local
	// directory path or the literal value "latest", meaning download the
	// current IANA release.
	Source string `mapstructure:"source" json:"source"`

	// OutputDir is where compiled TZif files are written, one per zone,
	// mirroring the Area/Location hierarchy.
	OutputDir string `mapstructure:"output_dir" json:"output_dir"`

	// FromYear and ToYear bound the window rule occurrences are expanded
	// over.
	FromYear int `mapstructure:"from_year" json:"from_year"`
	ToYear   int `mapstructure:"to_year" json:"to_year"`

	// Workers is the number of zones expanded concurrently. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int `mapstructure:"workers" json:"workers"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `mapstructure:"log_format" json:"log_format"`

	// ZoneFilter is a filepath.Match-style glob restricting which zones
	// are compiled (e.g. "America/*"). Empty means no filtering.
	ZoneFilter string `mapstructure:"zone_filter" json:"zone_filter"`
	// EmitTZif controls whether build writes a .tzif file per zone, or
	// only reports the compile summary.
	EmitTZif bool `mapstructure:"emit_tzif" json:"emit_tzif"`
}

var defaultConfig = Config{
	Source:    "latest",
	OutputDir: "./tzdata-out",
	FromYear:  1800,
	ToYear:    2099,
	Workers:   0,
	LogLevel:  "info",
	LogFormat: "text",
	EmitTZif:  true,
}

// Load loads configuration from ~/.config/tzcompile/config.yaml (or an
// OS-specific equivalent), falling back to the current directory, and
// finally to the built-in defaults if no config file exists.
func Load() (*Config, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("TZCOMPILE")
	viper.AutomaticEnv()

	viper.SetDefault("source", defaultConfig.Source)
	viper.SetDefault("output_dir", defaultConfig.OutputDir)
	viper.SetDefault("from_year", defaultConfig.FromYear)
	viper.SetDefault("to_year", defaultConfig.ToYear)
	viper.SetDefault("workers", defaultConfig.Workers)
	viper.SetDefault("log_level", defaultConfig.LogLevel)
	viper.SetDefault("log_format", defaultConfig.LogFormat)
	viper.SetDefault("zone_filter", defaultConfig.ZoneFilter)
	viper.SetDefault("emit_tzif", defaultConfig.EmitTZif)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found: continue with defaults and env vars.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save persists the current in-memory configuration to disk.
func (c *Config) Save() error {
	configDir, err := getConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return err
	}
	configFile := filepath.Join(configDir, "config.yaml")
	return viper.WriteConfigAs(configFile)
}

// getConfigDir returns the platform-appropriate config directory:
//   - Linux/macOS: $XDG_CONFIG_HOME/tzcompile or ~/.config/tzcompile
//   - Windows: %AppData%\tzcompile
//
// Falls back to ~/.tzcompile if UserConfigDir is unavailable.
func getConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tzcompile"), nil
	}
	if base, err := os.UserConfigDir(); err == nil && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "tzcompile"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tzcompile"), nil
}

// Validate checks that a Config is usable, returning every problem found
// joined together rather than stopping at the first one.
func (c *Config) Validate() error {
	var errs []string
	if c.Source == "" {
		errs = append(errs, "source must not be empty")
	}
	if c.OutputDir == "" {
		errs = append(errs, "output_dir must not be empty")
	}
	if c.FromYear > c.ToYear {
		errs = append(errs, fmt.Sprintf("from_year (%d) must not be after to_year (%d)", c.FromYear, c.ToYear))
	}
	if c.Workers < 0 {
		errs = append(errs, "workers must not be negative")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log_format %q must be \"text\" or \"json\"", c.LogFormat))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
}
