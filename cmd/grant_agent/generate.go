package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daehyun/grant-agent/internal/config"
	"github.com/daehyun/grant-agent/internal/generation"
	"github.com/daehyun/grant-agent/internal/llm"
	"github.com/daehyun/grant-agent/internal/observability"
	"github.com/daehyun/grant-agent/internal/schemas"
	"github.com/daehyun/grant-agent/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate application content for a field set",
	Long:  "Generate Korean application content for every field in a generation request JSON file, batching fields by category and falling back to template text when the completion service fails.",
	RunE:  runGenerate,
}

var (
	generateInputFile  string
	generateOutputFile string
	generateConfigFile string
	generateAPIKey     string
	generateVerbose    bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateInputFile, "in", "i", "", "Path to generation request JSON file (required)")
	generateCmd.Flags().StringVarP(&generateOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	generateCmd.Flags().StringVar(&generateConfigFile, "config", "", "Path to JSON config file")
	generateCmd.Flags().StringVar(&generateAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print a generation summary to stderr")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	var defaultTone, defaultLength string
	if generateConfigFile != "" {
		cfg, err := config.LoadConfig(generateConfigFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if generateAPIKey == "" {
			generateAPIKey = cfg.APIKey
		}
		if cfg.Verbose {
			generateVerbose = true
		}
		defaultTone = cfg.Tone
		defaultLength = cfg.Length
	}

	if generateInputFile == "" {
		return fmt.Errorf("input file is required (use --in)")
	}

	apiKey := generateAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	body, err := os.ReadFile(generateInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	if err := schemas.ValidateGenerationRequest(body); err != nil {
		return fmt.Errorf("invalid generation request: %w", err)
	}

	var req types.GenerationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("failed to parse generation request: %w", err)
	}
	applyStyleDefaults(&req, defaultTone, defaultLength)

	ctx := context.Background()

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	result, err := generation.NewGenerator(client).Generate(ctx, &req)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if generateVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintGeneration(result)
		printer.PrintSummary(&result.Summary)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if generateOutputFile == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}

	if err := os.WriteFile(generateOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Generation result written to %s\n", generateOutputFile)
	return nil
}

// applyStyleDefaults fills tone and length from the config file when the
// request itself does not set them. Request options always win.
func applyStyleDefaults(req *types.GenerationRequest, tone, length string) {
	if tone == "" && length == "" {
		return
	}
	if req.Options == nil {
		req.Options = &types.GenerationOptions{}
	}
	if req.Options.Tone == "" {
		req.Options.Tone = types.Tone(tone)
	}
	if req.Options.Length == "" {
		req.Options.Length = types.Length(length)
	}
}
