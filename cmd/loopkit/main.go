// Package main provides the command-line interface for loopkit.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "loopkit",
	Short: "Loopkit CLI can exercise and inspect cooperative update loops.",
	Long: `Loopkit CLI can exercise and inspect cooperative update loops. ` +
		`It currently provides a demo command that runs a loop full of ` +
		`timed behaviors with optional monitoring and trace recording.`,
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
