// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/txt2pdf/internal/ledger"
	"github.com/pdiddy/txt2pdf/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export recorded conversions",
	Long: `History reads the conversion ledger (--ledger or ledger.path) and lists
converted and failed files, newest first. Skipped files are not recorded.
Use --export-yaml or --export-json to write the matching entries to a file.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("status", "", "filter by status: converted or failed")
	historyCmd.Flags().String("source-file", "", "filter by source file path")
	historyCmd.Flags().Int("limit", 0, "maximum entries to list (0 = default 50, -1 = all)")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")
	historyCmd.Flags().String("export-yaml", "", "write matching entries to this YAML file")
	historyCmd.Flags().String("export-json", "", "write matching entries to this JSON file")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := types.LedgerConfig{Path: viper.GetString(keyLedgerPath)}
	if !cfg.Enabled() {
		return fmt.Errorf("no ledger configured: pass --ledger or set ledger.path")
	}

	out := cmd.OutOrStdout()
	if _, err := os.Stat(cfg.Path); os.IsNotExist(err) {
		fmt.Fprintln(out, "No conversions recorded.")
		return nil
	}

	store, err := ledger.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	exported := false
	if path, _ := cmd.Flags().GetString("export-yaml"); path != "" {
		if err := store.ExportYAML(ctx, path, opts); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported to %s\n", path)
		exported = true
	}
	if path, _ := cmd.Flags().GetString("export-json"); path != "" {
		if err := store.ExportJSON(ctx, path, opts); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported to %s\n", path)
		exported = true
	}
	if exported {
		return nil
	}

	entries, err := store.List(ctx, opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(out, entries, jsonOutput)
}

func listOptsFromFlags(cmd *cobra.Command) (ledger.ListOptions, error) {
	status, _ := cmd.Flags().GetString("status")
	source, _ := cmd.Flags().GetString("source-file")
	limit, _ := cmd.Flags().GetInt("limit")

	switch types.ConversionStatus(status) {
	case "", types.ConversionDone, types.ConversionFailed:
	default:
		return ledger.ListOptions{}, fmt.Errorf("unsupported status %q: use converted or failed", status)
	}

	return ledger.ListOptions{
		Status: types.ConversionStatus(status),
		Source: source,
		Limit:  limit,
	}, nil
}

func formatHistory(w io.Writer, entries []ledger.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []ledger.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-30s  %5s  %s\n", "Recorded", "Status", "File", "Pages", "Error")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, e := range entries {
		name := filepath.Base(e.Source)
		if r := []rune(name); len(r) > 30 {
			name = string(r[:27]) + "..."
		}
		fmt.Fprintf(w, "%-20s  %-9s  %-30s  %5d  %s\n",
			e.RecordedAt.Local().Format("2006-01-02 15:04:05"), e.Status, name, e.Pages, e.Error)
	}

	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return nil
}
