package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daehyun/grant-agent/internal/assembly"
	"github.com/daehyun/grant-agent/internal/config"
	"github.com/daehyun/grant-agent/internal/types"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble generated content into a document",
	Long:  "Assemble generated field contents into an application document, trying HWP template fill, LibreOffice conversion, and HTML rendering before falling back to plain text.",
}

var (
	assembleInputFile   string
	assembleOutputDir   string
	assembleConfigFile  string
	assembleProgramName string
	assembleTemplate    string
	assembleFormat      string
	assembleTemplateDir string
)

func init() {
	assembleCmd.RunE = runAssemble
	assembleCmd.Flags().StringVarP(&assembleInputFile, "in", "i", "", "Path to generation result JSON file (required)")
	assembleCmd.Flags().StringVarP(&assembleOutputDir, "out-dir", "o", ".", "Directory to write the document into")
	assembleCmd.Flags().StringVar(&assembleConfigFile, "config", "", "Path to JSON config file")
	assembleCmd.Flags().StringVar(&assembleProgramName, "program", "", "Support program name (required)")
	assembleCmd.Flags().StringVar(&assembleTemplate, "template", "government", "Template kind: government, business, or research")
	assembleCmd.Flags().StringVar(&assembleFormat, "format", "hwp", "Output format: hwp, docx, pdf, html, or txt")
	assembleCmd.Flags().StringVar(&assembleTemplateDir, "template-dir", "", "Directory containing HWP form templates")

	rootCmd.AddCommand(assembleCmd)
}

// assembleInput accepts either a bare contents array or a full generation
// result with a contents field.
type assembleInput struct {
	Contents []types.FieldContent `json:"contents"`
}

func runAssemble(_ *cobra.Command, _ []string) error {
	var officeBinary string
	if assembleConfigFile != "" {
		cfg, err := config.LoadConfig(assembleConfigFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if assembleTemplateDir == "" {
			assembleTemplateDir = cfg.TemplateDir
		}
		if assembleOutputDir == "." && cfg.OutputDir != "" {
			assembleOutputDir = cfg.OutputDir
		}
		if cfg.Format != "" && !assembleCmd.Flags().Changed("format") {
			assembleFormat = cfg.Format
		}
		officeBinary = cfg.LibreOfficeBinary
	}

	if assembleInputFile == "" {
		return fmt.Errorf("input file is required (use --in)")
	}
	if assembleProgramName == "" {
		return fmt.Errorf("program name is required (use --program)")
	}

	body, err := os.ReadFile(assembleInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var input assembleInput
	if err := json.Unmarshal(body, &input); err != nil {
		return fmt.Errorf("failed to parse input JSON: %w", err)
	}
	if len(input.Contents) == 0 {
		// Bare array form
		if err := json.Unmarshal(body, &input.Contents); err != nil || len(input.Contents) == 0 {
			return fmt.Errorf("input contains no field contents")
		}
	}

	assembler := assembly.NewAssembler()
	if assembleTemplateDir != "" {
		assembler.TemplateDir = assembleTemplateDir
	}
	if officeBinary != "" {
		assembler.OfficeBinary = officeBinary
	}

	doc, err := assembler.Assemble(context.Background(), &assembly.Request{
		OriginalFileName: filepath.Base(assembleInputFile),
		ProgramName:      assembleProgramName,
		Contents:         input.Contents,
		Template:         assembly.TemplateKind(assembleTemplate),
		Format:           assembly.Format(assembleFormat),
	})
	if err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}

	outPath := filepath.Join(assembleOutputDir, doc.FileName)
	if err := os.WriteFile(outPath, doc.Data, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Document written to %s (method: %s)\n", outPath, doc.Method)
	return nil
}
