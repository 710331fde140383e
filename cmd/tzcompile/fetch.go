package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zonepile/tzcompile/tzsource"
)

func newFetchCmd() *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the latest IANA tzdata release into a local directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			release, _, err := tzsource.Latest(cmd.Context(), "")
			if err != nil {
				return fmt.Errorf("download: %w", err)
			}

			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(dest, "version"), []byte(release.Version+"\n"), 0o644); err != nil {
				return err
			}
			if len(release.LeapSecondsFile) > 0 {
				if err := os.WriteFile(filepath.Join(dest, "leapseconds"), release.LeapSecondsFile, 0o644); err != nil {
					return err
				}
			}
			for name, data := range release.DataFiles {
				if err := os.WriteFile(filepath.Join(dest, name), data, 0o644); err != nil {
					return fmt.Errorf("write %q: %w", name, err)
				}
			}

			fmt.Printf("fetched tzdata %s (%d data files) into %s\n", release.Version, len(release.DataFiles), dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "./tzdata-src", "Directory to write the release's source files into")

	return cmd
}
