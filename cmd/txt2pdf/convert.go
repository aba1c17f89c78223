// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/txt2pdf/internal/convert"
	"github.com/pdiddy/txt2pdf/internal/ledger"
	"github.com/pdiddy/txt2pdf/internal/render"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert every .txt file in the source folder to PDF",
	Long: `Convert lays out each .txt file in the source folder as word-wrapped
text on paginated pages and writes <name>.pdf to the destination folder.
The destination is created if needed. A text file is deleted only after its
PDF is written; files whose PDF already exists are skipped, and a file that
fails is reported and left in place while the rest of the batch continues.`,
	RunE: runConvert,
}

// convertFlagKeys maps convert flags to configuration keys.
var convertFlagKeys = map[string]string{
	"source":       keySourcePath,
	"destination":  keyDestinationPath,
	"page-size":    keyPageSize,
	"orientation":  keyOrientation,
	"margin":       keyMargin,
	"font-family":  keyFontFamily,
	"font-file":    keyFontFile,
	"font-size":    keyFontSize,
	"line-spacing": keyLineSpacing,
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().String("source", "", "folder scanned for .txt files (config: source_path)")
	cmd.Flags().String("destination", "", "folder that receives the PDFs (config: destination_path)")
	cmd.Flags().String("report", "", "write a YAML report of the batch to this file")
	cmd.Flags().String("page-size", "", "page size: A3, A4, A5, Letter, or Legal (default A4)")
	cmd.Flags().String("orientation", "", "page orientation: portrait or landscape")
	cmd.Flags().Float64("margin", 0, "page margin in points (default 40)")
	cmd.Flags().String("font-family", "", "font family (default Helvetica)")
	cmd.Flags().String("font-file", "", "TrueType font file registered under --font-family")
	cmd.Flags().Float64("font-size", 0, "font size in points (default 12)")
	cmd.Flags().Float64("line-spacing", 0, "line height as a multiple of the font size (default 1.2)")
}

// bindConvertFlags binds the flags of the running command, so that explicit
// flags override the config file and environment.
func bindConvertFlags(cmd *cobra.Command) error {
	for name, key := range convertFlagKeys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

func init() {
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := bindConvertFlags(cmd); err != nil {
		return err
	}

	cfg := converterConfig(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	renderer, err := render.NewPDF(cfg.Layout)
	if err != nil {
		return err
	}

	batch, err := convert.NewBatch(cfg, renderer)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	result, runErr := batch.Run(ctx, out)

	// An interrupted batch still records the files it finished.
	if n, err := ledger.RecordResults(ctx, cfg.Ledger, result.Files); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record history in %s: %v\n", cfg.Ledger.Path, err)
	} else if n > 0 {
		fmt.Fprintf(os.Stderr, "Recorded %d result(s) in %s\n", n, cfg.Ledger.Path)
	}
	if runErr != nil {
		return runErr
	}

	reportPath, _ := cmd.Flags().GetString("report")
	if reportPath != "" && result.Attempted() > 0 {
		if err := convert.WriteReport(reportPath, convert.NewReport(cfg, result, time.Now())); err != nil {
			return err
		}
		fmt.Fprintf(out, "Report written to %s\n", reportPath)
	}

	// Per-file failures are reported above and do not change the exit status.
	return nil
}
