package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of txt2pdf",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "txt2pdf %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
