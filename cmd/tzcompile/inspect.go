package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zonepile/tzcompile/tzif"
)

func newInspectCmd() *cobra.Command {
	var (
		printV1          bool
		printTransitions bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <tzif file>",
		Short: "Print the contents of a compiled TZif file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			f, err := tzif.DecodeFile(bytes.NewReader(b))
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			printFile(cmd, f, printV1, printTransitions)
			return nil
		},
	}

	cmd.Flags().BoolVar(&printV1, "v1", false, "Always print the v1 header and data block")
	cmd.Flags().BoolVar(&printTransitions, "transitions", false, "Print transitions in human-readable form")

	return cmd
}

func printFile(cmd *cobra.Command, f tzif.File, forceV1, transitions bool) {
	out := cmd.OutOrStdout()
	if f.Version == tzif.V1 || forceV1 {
		printHeader(out, f.V1Header)
		printV1DataBlock(out, f.V1Data)
	}
	if f.Version > tzif.V1 {
		printHeader(out, f.V2Header)
		printV2DataBlock(out, f.V2Data)
		if transitions {
			printV2Transitions(out, f.V2Data)
		}
		fmt.Fprintln(out, "Footer")
		fmt.Fprintln(out, "  TZString =", string(f.V2Footer.TZString))
	}
}

func printHeader(out io.Writer, h tzif.Header) {
	fmt.Fprintln(out, "Header", h.Version)
	fmt.Fprintln(out, "  isutcnt =", h.Isutcnt)
	fmt.Fprintln(out, "  isstdcnt =", h.Isstdcnt)
	fmt.Fprintln(out, "  leapcnt =", h.Leapcnt)
	fmt.Fprintln(out, "  timecnt =", h.Timecnt)
	fmt.Fprintln(out, "  typecnt =", h.Typecnt)
	fmt.Fprintln(out, "  charcnt =", h.Charcnt)
}

func printV1DataBlock(out io.Writer, b tzif.V1DataBlock) {
	fmt.Fprintln(out, "Data block", tzif.V1)
	fmt.Fprintf(out, "  TransitionTimes (%d) = %v\n", len(b.TransitionTimes), b.TransitionTimes)
	fmt.Fprintf(out, "  TransitionTypes (%d) = %v\n", len(b.TransitionTypes), b.TransitionTypes)
	fmt.Fprintf(out, "  LocalTimeTypeRecord (%d) = %+v\n", len(b.LocalTimeTypeRecord), b.LocalTimeTypeRecord)
	fmt.Fprintf(out, "  TimeZoneDesignation (%d) = %v\n", len(b.TimeZoneDesignation), strings.Split(string(b.TimeZoneDesignation), "\x00"))
}

func printV2DataBlock(out io.Writer, b tzif.V2DataBlock) {
	fmt.Fprintln(out, "Data block", tzif.V2)
	fmt.Fprintf(out, "  TransitionTimes (%d) = %v\n", len(b.TransitionTimes), b.TransitionTimes)
	fmt.Fprintf(out, "  TransitionTypes (%d) = %v\n", len(b.TransitionTypes), b.TransitionTypes)
	fmt.Fprintf(out, "  LocalTimeTypeRecord (%d) = %+v\n", len(b.LocalTimeTypeRecord), b.LocalTimeTypeRecord)
	fmt.Fprintf(out, "  TimeZoneDesignation (%d) = %v\n", len(b.TimeZoneDesignation), strings.Split(string(b.TimeZoneDesignation), "\x00"))
}

func printV2Transitions(out io.Writer, b tzif.V2DataBlock) {
	fmt.Fprintf(out, "Transitions (initial record: %s)\n", formatTimeRecord(b, 0))
	for i, tt := range b.TransitionTimes {
		fmt.Fprintf(out, "  %s (%d) => %s\n", time.Unix(tt, 0).UTC().Format(time.RFC1123), tt, formatTimeRecord(b, b.TransitionTypes[i]))
	}
}

func formatTimeRecord(b tzif.V2DataBlock, idx uint8) string {
	r := b.LocalTimeTypeRecord[idx]
	var dst string
	if r.Dst {
		dst = ", dst"
	}
	return fmt.Sprintf("%s: %s (%d)%s", designation(b.TimeZoneDesignation, r.Idx), time.Duration(r.Utoff)*time.Second, r.Utoff, dst)
}

func designation(d []byte, idx uint8) string {
	end := bytes.IndexByte(d[idx:], 0)
	if end < 0 {
		return string(d[idx:])
	}
	return string(d[idx : int(idx)+end])
}
