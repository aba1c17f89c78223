// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the txt2pdf CLI. Running txt2pdf with
// no subcommand converts every .txt file in the configured source directory
// to a PDF in the destination directory.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the txt2pdf CLI.
var rootCmd = &cobra.Command{
	Use:   "txt2pdf",
	Short: "Convert a folder of plain-text files to PDF",
	Long: `txt2pdf scans a source folder for .txt files, lays each one out as
word-wrapped text on paginated PDF pages, writes <name>.pdf to the
destination folder, and deletes the text file once its PDF is written.
Files whose PDF already exists are skipped.

Without a subcommand txt2pdf runs the conversion; see "txt2pdf convert --help".`,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./txt2pdf.yaml or ~/.config/txt2pdf/txt2pdf.yaml)")
	rootCmd.PersistentFlags().String("ledger", "", "SQLite conversion history database (empty disables history)")
	_ = viper.BindPFlag(keyLedgerPath, rootCmd.PersistentFlags().Lookup("ledger"))

	addConvertFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("txt2pdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "txt2pdf"))
		}
	}

	configureViper(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config file %s: %v\n", cfgFile, err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
