// Package server provides the HTTP REST API for the grant application agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daehyun/grant-agent/internal/assembly"
	"github.com/daehyun/grant-agent/internal/extraction"
	"github.com/daehyun/grant-agent/internal/generation"
	"github.com/daehyun/grant-agent/internal/llm"
)

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	orchestrator *extraction.Orchestrator
	generator    *generation.Generator
	assembler    *assembly.Assembler
	llmClient    llm.Client
}

// Config holds server configuration
type Config struct {
	Port            int
	APIKey          string
	TemplateDir     string
	HWP5Binary      string
	OfficeBinary    string
	CloudConvertKey string
	ConvertioKey    string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	s := &Server{
		orchestrator: extraction.NewConfiguredOrchestrator(extraction.ChainConfig{
			HWP5Binary:      cfg.HWP5Binary,
			OfficeBinary:    cfg.OfficeBinary,
			CloudConvertKey: cfg.CloudConvertKey,
			ConvertioKey:    cfg.ConvertioKey,
		}),
		assembler: assembly.NewAssembler(),
	}
	if cfg.TemplateDir != "" {
		s.assembler.TemplateDir = cfg.TemplateDir
	}
	if cfg.OfficeBinary != "" {
		s.assembler.OfficeBinary = cfg.OfficeBinary
	}

	// Content generation needs a completion service; without an API key the
	// extract and assemble endpoints still work.
	if cfg.APIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.DefaultGeminiConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
		s.generator = generation.NewGenerator(client)
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /assemble", s.handleAssemble)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for conversion chains
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		// Browsers hide non-simple response headers from cross-origin
		// callers unless they are listed here.
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Generation-Method")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
