package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daehyun/grant-agent/internal/config"
	"github.com/daehyun/grant-agent/internal/server"
)

var (
	servePort        int
	serveConfigFile  string
	serveTemplateDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for text extraction, content generation, and document assembly.`,
}

func init() {
	serveCmd.RunE = runServe
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to JSON config file")
	serveCmd.Flags().StringVar(&serveTemplateDir, "template-dir", "", "Directory containing HWP form templates")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")

	var tools config.Config
	if serveConfigFile != "" {
		cfg, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		merged := cfg.MergeWithDefaults(config.Config{Port: servePort, APIKey: apiKey})
		if !serveCmd.Flags().Changed("port") {
			servePort = merged.Port
		}
		apiKey = merged.APIKey
		if serveTemplateDir == "" {
			serveTemplateDir = merged.TemplateDir
		}
		tools = merged
	}

	srv, err := server.New(server.Config{
		Port:            servePort,
		APIKey:          apiKey,
		TemplateDir:     serveTemplateDir,
		HWP5Binary:      tools.HWP5Binary,
		OfficeBinary:    tools.LibreOfficeBinary,
		CloudConvertKey: tools.CloudConvertKey,
		ConvertioKey:    tools.ConvertioKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
