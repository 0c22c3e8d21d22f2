// Package main provides the entry point for the grant application agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grant_agent",
	Short: "Government grant application document agent",
	Long:  "grant_agent extracts text from HWP application forms, generates Korean application content for each form field, and assembles the result into a downloadable document.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
