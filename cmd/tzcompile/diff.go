package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/zonepile/tzcompile/tzif"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <tzif file A> <tzif file B>",
		Short: "Compare two compiled TZif files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := decodeFile(args[0])
			if err != nil {
				return err
			}
			b, err := decodeFile(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if diff := cmp.Diff(a, b); diff != "" {
				fmt.Fprintln(out, "files are different: -A +B")
				fmt.Fprintln(out, diff)
			} else {
				fmt.Fprintln(out, "files are identical")
			}
			return nil
		},
	}
	return cmd
}

func decodeFile(path string) (tzif.File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return tzif.File{}, err
	}
	f, err := tzif.DecodeFile(bytes.NewReader(b))
	if err != nil {
		return tzif.File{}, fmt.Errorf("decode %q: %w", path, err)
	}
	return f, nil
}
