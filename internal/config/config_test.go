package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Source != "latest" {
		t.Errorf("expected source 'latest', got %q", cfg.Source)
	}
	if cfg.OutputDir != "./tzdata-out" {
		t.Errorf("expected output_dir './tzdata-out', got %q", cfg.OutputDir)
	}
	if cfg.FromYear != 1800 || cfg.ToYear != 2099 {
		t.Errorf("expected [1800, 2099], got [%d, %d]", cfg.FromYear, cfg.ToYear)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("expected info/text logging, got %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.ZoneFilter != "" {
		t.Errorf("expected no zone filter by default, got %q", cfg.ZoneFilter)
	}
	if !cfg.EmitTZif {
		t.Error("expected emit_tzif to default to true")
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, ".config", "tzcompile")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	viper.Reset()

	configContent := `source: /var/lib/tzdata-src
output_dir: /var/lib/tzdata-out
from_year: 1900
to_year: 2037
workers: 4
log_level: debug
log_format: json
zone_filter: America/*
emit_tzif: false
`
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Source != "/var/lib/tzdata-src" {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
	if cfg.ZoneFilter != "America/*" {
		t.Errorf("ZoneFilter = %q, want America/*", cfg.ZoneFilter)
	}
	if cfg.EmitTZif {
		t.Error("EmitTZif = true, want false from config file")
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Source: "latest", OutputDir: "out", FromYear: 1800, ToYear: 2099, LogFormat: "text"}, false},
		{"empty source", Config{OutputDir: "out", FromYear: 1800, ToYear: 2099, LogFormat: "text"}, true},
		{"empty output dir", Config{Source: "latest", FromYear: 1800, ToYear: 2099, LogFormat: "text"}, true},
		{"year range reversed", Config{Source: "latest", OutputDir: "out", FromYear: 2099, ToYear: 1800, LogFormat: "text"}, true},
		{"negative workers", Config{Source: "latest", OutputDir: "out", FromYear: 1800, ToYear: 2099, Workers: -1, LogFormat: "text"}, true},
		{"bad log format", Config{Source: "latest", OutputDir: "out", FromYear: 1800, ToYear: 2099, LogFormat: "xml"}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}
