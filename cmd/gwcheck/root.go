package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gwcheck",
	Short: "Structure and format checking for government documents",
	Long: `gwcheck parses an administrative document (docx, txt, md, html, pdf),
classifies every paragraph into its structural role, and can check each
node against the official formatting requirements with a chat model.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
