package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daehyun/grant-agent/internal/config"
	"github.com/daehyun/grant-agent/internal/extraction"
	"github.com/daehyun/grant-agent/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract text from an HWP file",
	Long:  "Extract text from an HWP application form by trying each available conversion strategy in order, falling back to binary text salvage when no converter succeeds.",
	RunE:  runExtract,
}

var (
	extractInputFile  string
	extractOutputFile string
	extractConfigFile string
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to the HWP file (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfigFile, "config", "", "Path to JSON config file")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print an extraction summary to stderr")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	var chain extraction.ChainConfig
	if extractConfigFile != "" {
		cfg, err := config.LoadConfig(extractConfigFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if extractInputFile == "" {
			extractInputFile = cfg.Input
		}
		if cfg.Verbose {
			extractVerbose = true
		}
		chain = extraction.ChainConfig{
			HWP5Binary:      cfg.HWP5Binary,
			OfficeBinary:    cfg.LibreOfficeBinary,
			CloudConvertKey: cfg.CloudConvertKey,
			ConvertioKey:    cfg.ConvertioKey,
		}
	}

	if extractInputFile == "" {
		return fmt.Errorf("input file is required (use --in)")
	}

	data, err := os.ReadFile(extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	result, err := extraction.NewConfiguredOrchestrator(chain).Extract(context.Background(), &extraction.Source{
		Name: extractInputFile,
		Data: data,
	})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractVerbose {
		observability.NewPrinter(os.Stderr).PrintExtraction(result)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if extractOutputFile == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}

	if err := os.WriteFile(extractOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Extraction result written to %s\n", extractOutputFile)
	return nil
}
