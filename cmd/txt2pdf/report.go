// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/txt2pdf/internal/convert"
	"github.com/pdiddy/txt2pdf/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report <report.yaml>",
	Short: "Show a batch report written by convert --report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().Bool("failed", false, "list only failed files")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	rep, err := convert.ReadReport(args[0])
	if err != nil {
		return err
	}
	onlyFailed, _ := cmd.Flags().GetBool("failed")
	formatReport(cmd.OutOrStdout(), rep, onlyFailed)
	return nil
}

func formatReport(w io.Writer, rep convert.Report, onlyFailed bool) {
	fmt.Fprintf(w, "Batch of %s\n", rep.GeneratedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  source:      %s\n", rep.Source)
	fmt.Fprintf(w, "  destination: %s\n", rep.Destination)
	fmt.Fprintf(w, "  %d converted, %d skipped, %d failed (total: %d)\n\n",
		rep.Summary.Converted, rep.Summary.Skipped, rep.Summary.Failed, rep.Summary.Total)

	for _, f := range rep.Files {
		if onlyFailed && f.Status != types.ConversionFailed {
			continue
		}
		switch {
		case f.Error != "":
			fmt.Fprintf(w, "%-9s  %s (%s)\n", f.Status, f.Source, f.Error)
		case f.Pages > 0:
			fmt.Fprintf(w, "%-9s  %s -> %s (%d pages)\n", f.Status, f.Source, f.Output, f.Pages)
		default:
			fmt.Fprintf(w, "%-9s  %s\n", f.Status, f.Source)
		}
	}
}
