// Command tzcompile builds, fetches, inspects, and diffs compiled time
// zone data.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zonepile/tzcompile/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tzcompile",
		Short:        "Compile IANA time zone data into TZif files",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file path")

	cmd.AddCommand(
		newBuildCmd(),
		newFetchCmd(),
		newInspectCmd(),
		newDiffCmd(),
	)

	return cmd
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
