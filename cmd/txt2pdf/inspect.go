// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/txt2pdf/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <pdf>...",
	Short: "Show page count, title, and text of generated PDFs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Bool("text", false, "print the extracted text of each page")
	inspectCmd.Flags().Bool("json", false, "output reports as JSON")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	withText, _ := cmd.Flags().GetBool("text")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	reports := make([]inspect.Report, 0, len(args))
	for _, path := range args {
		rep, err := inspect.Open(path, withText)
		if err != nil {
			return err
		}
		reports = append(reports, rep)
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, rep := range reports {
		fmt.Fprintf(out, "%s: %d page(s), title %q\n", rep.Path, rep.Pages, rep.Title)
		for i, text := range rep.Text {
			fmt.Fprintf(out, "--- page %d ---\n%s\n", i+1, text)
		}
	}
	return nil
}
