// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input       string `json:"input,omitempty"`        // Path to the HWP file to extract
	TemplateDir string `json:"template_dir,omitempty"` // Directory containing HWP document templates
	OutputDir   string `json:"output_dir,omitempty"`   // Directory for assembled documents

	// Services
	APIKey            string `json:"api_key,omitempty"`             // Gemini API key
	CloudConvertKey   string `json:"cloudconvert_key,omitempty"`    // CloudConvert API key
	ConvertioKey      string `json:"convertio_key,omitempty"`       // Convertio API key
	LibreOfficeBinary string `json:"libreoffice_binary,omitempty"`  // Path to the soffice/libreoffice binary
	HWP5Binary        string `json:"hwp5_binary,omitempty"`         // Path to the hwp5txt binary

	// Generation defaults
	Tone   string `json:"tone,omitempty"`   // Default writing tone (formal, professional, technical)
	Length string `json:"length,omitempty"` // Default content length (short, medium, long)
	Format string `json:"format,omitempty"` // Default output format (hwp, docx, pdf, html, txt)

	// Server
	Port int `json:"port,omitempty"` // HTTP server port

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.Tone {
	case "", "formal", "professional", "technical":
	default:
		return fmt.Errorf("config error: 'tone' must be one of formal, professional, technical")
	}

	switch c.Length {
	case "", "short", "medium", "long":
	default:
		return fmt.Errorf("config error: 'length' must be one of short, medium, long")
	}

	switch c.Format {
	case "", "hwp", "docx", "pdf", "html", "txt":
	default:
		return fmt.Errorf("config error: 'format' must be one of hwp, docx, pdf, html, txt")
	}

	// Validate paths exist (if specified)
	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	if c.TemplateDir != "" {
		if _, err := os.Stat(c.TemplateDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: template directory not found: %s", c.TemplateDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.TemplateDir == "" {
		result.TemplateDir = defaults.TemplateDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.CloudConvertKey == "" {
		result.CloudConvertKey = defaults.CloudConvertKey
	}
	if result.ConvertioKey == "" {
		result.ConvertioKey = defaults.ConvertioKey
	}
	if result.LibreOfficeBinary == "" {
		result.LibreOfficeBinary = defaults.LibreOfficeBinary
	}
	if result.HWP5Binary == "" {
		result.HWP5Binary = defaults.HWP5Binary
	}
	if result.Tone == "" {
		result.Tone = defaults.Tone
	}
	if result.Length == "" {
		result.Length = defaults.Length
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = 8080
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
