package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zonepile/tzcompile/internal/config"
	"github.com/zonepile/tzcompile/tzcompile"
	"github.com/zonepile/tzcompile/tzif"
	"github.com/zonepile/tzcompile/tzsource"
)

func newBuildCmd() *cobra.Command {
	var (
		source     string
		outputDir  string
		fromYear   int
		toYear     int
		workers    int
		zoneFilter string
		emitTZif   bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile tzdata source files into TZif output",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				viper.SetConfigFile(path)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if source != "" {
				cfg.Source = source
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if fromYear != 0 {
				cfg.FromYear = fromYear
			}
			if toYear != 0 {
				cfg.ToYear = toYear
			}
			if workers != 0 {
				cfg.Workers = workers
			}
			if zoneFilter != "" {
				cfg.ZoneFilter = zoneFilter
			}
			if cmd.Flags().Changed("emit-tzif") {
				cfg.EmitTZif = emitTZif
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg)

			release, err := loadRelease(cmd.Context(), cfg.Source)
			if err != nil {
				return fmt.Errorf("load tzdata source: %w", err)
			}
			logger.Info("loaded tzdata release", "version", release.Version, "files", len(release.DataFiles))

			var filter func(string) bool
			if cfg.ZoneFilter != "" {
				filter = func(name string) bool {
					ok, err := filepath.Match(cfg.ZoneFilter, name)
					return err == nil && ok
				}
			}

			result, diag, err := tzcompile.Compile(release, tzcompile.Options{
				FromYear:   cfg.FromYear,
				ToYear:     cfg.ToYear,
				Workers:    cfg.Workers,
				ZoneFilter: filter,
			})
			if err != nil {
				return fmt.Errorf("compile: %w", err)
			}
			if !diag.Empty() {
				for _, name := range diag.Failed() {
					logger.Warn("zone failed to compile", "zone", name)
				}
			}
			logger.Info("compiled zones", "count", len(result.Zones), "failed", len(diag.Failed()))

			if cfg.EmitTZif {
				posixTZ := "" // POSIX footer derivation is a non-goal; writers may fill this in later.
				for name, set := range result.Zones {
					f := tzif.FromFixedTimespanSet(set, nil, posixTZ)
					if err := writeZoneFile(cfg.OutputDir, name, f); err != nil {
						return fmt.Errorf("write %q: %w", name, err)
					}
				}
				logger.Info("wrote TZif files", "dir", cfg.OutputDir)
			}

			return diag.Err()
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source directory, or \"latest\" to download")
	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory for compiled TZif files")
	cmd.Flags().IntVar(&fromYear, "from-year", 0, "Earliest year to expand rules over")
	cmd.Flags().IntVar(&toYear, "to-year", 0, "Latest year to expand rules over")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of zones to expand concurrently (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&zoneFilter, "zone-filter", "", "filepath.Match-style glob restricting which zones are compiled (e.g. America/*)")
	cmd.Flags().BoolVar(&emitTZif, "emit-tzif", true, "Write a TZif file per compiled zone, named by its zone path")

	return cmd
}

func loadRelease(ctx context.Context, source string) (*tzsource.Release, error) {
	if source == "latest" {
		release, _, err := tzsource.Latest(ctx, "")
		if err != nil {
			return nil, err
		}
		return release, nil
	}
	return tzsource.LoadDir(source)
}

// writeZoneFile writes a compiled zone's TZif data to outputDir, mirroring
// the zone name's Area/Location path (e.g. "America/Argentina/Catamarca"
// becomes <outputDir>/America/Argentina/Catamarca).
func writeZoneFile(outputDir, name string, f tzif.File) error {
	path := filepath.Join(outputDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return f.Encode(out)
}
