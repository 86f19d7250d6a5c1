// Package main provides the speech_coach command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "speech_coach",
	Short: "Presentation feedback for speech transcripts",
	Long: `speech_coach scores a transcript of spoken text for presentation quality
(length, tone, filler words, clarity, structure) and prints actionable feedback.

Configuration can be loaded from a JSON or YAML file using --config. Environment
variables override the file and command-line flags override both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
