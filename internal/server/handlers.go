package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/daehyun/grant-agent/internal/assembly"
	"github.com/daehyun/grant-agent/internal/extraction"
	"github.com/daehyun/grant-agent/internal/schemas"
	"github.com/daehyun/grant-agent/internal/types"
)

// maxUploadBytes bounds the multipart upload size for /extract.
const maxUploadBytes = 50 * 1024 * 1024

// AssembleRequest represents the request body for /assemble
type AssembleRequest struct {
	OriginalFileName string               `json:"originalFileName,omitempty"`
	ProgramName      string               `json:"programName"`
	Contents         []types.FieldContent `json:"contents"`
	Template         string               `json:"template,omitempty"`
	Format           string               `json:"format,omitempty"`
}

// handleExtract accepts an HWP upload and returns the extracted text.
// The file must be sent as multipart form data under the "hwp_file" field.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("hwp_file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "hwp_file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}
	if len(data) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Uploaded file is empty")
		return
	}

	log.Printf("Extracting text from %s (%d bytes)", header.Filename, len(data))

	result, err := s.orchestrator.Extract(r.Context(), &extraction.Source{
		Name: header.Filename,
		Data: data,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGenerate runs content generation for a field set
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Content generation is not configured: missing API key")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body: "+err.Error())
		return
	}

	// Schema validation catches malformed bodies with field-level messages
	// before the struct decode.
	if err := schemas.ValidateGenerationRequest(body); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.GenerationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.generator.Generate(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleAssemble builds a downloadable document from generated contents.
// The response body is the document itself; the production method and file
// name travel in headers.
func (s *Server) handleAssemble(w http.ResponseWriter, r *http.Request) {
	var req AssembleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Contents) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "contents is required")
		return
	}
	if req.ProgramName == "" {
		s.errorResponse(w, http.StatusBadRequest, "programName is required")
		return
	}

	doc, err := s.assembler.Assemble(r.Context(), &assembly.Request{
		OriginalFileName: req.OriginalFileName,
		ProgramName:      req.ProgramName,
		Contents:         req.Contents,
		Template:         assembly.TemplateKind(req.Template),
		Format:           assembly.Format(req.Format),
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", doc.MIMEType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename*=UTF-8''%s", urlEncodeFileName(doc.FileName)))
	w.Header().Set("X-Generation-Method", doc.Method)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		log.Printf("Error writing document response: %v", err)
	}
}

// urlEncodeFileName percent-encodes a file name for the RFC 5987 form of
// Content-Disposition. Output file names are usually Korean.
func urlEncodeFileName(name string) string {
	return url.PathEscape(name)
}
