package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/brand-content-generator/internal/llm"
	"github.com/jonathan/brand-content-generator/internal/pipeline"
	"github.com/jonathan/brand-content-generator/internal/storage"
	"github.com/jonathan/brand-content-generator/internal/types"
)

// errorPayload is the structured error body: the failure kind, a message,
// and the pipeline stage that produced it, so stage failures are never
// surfaced as generic faults.
type errorPayload struct {
	Error  string             `json:"error"`
	Kind   string             `json:"kind"`
	Stage  string             `json:"stage,omitempty"`
	Fields []types.FieldError `json:"fields,omitempty"`
}

// handleGenerate runs the full pipeline and returns the result envelope.
// Partial success (saved locally, publish failed) is still a 200: the
// envelope reports it explicitly and the artifact is downloadable.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	envelope, err := s.runner.Run(r.Context(), &req)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, envelope)
}

// handlePreview runs validation, composition, and generation only and
// returns the raw HTML, with no persistence or publication.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req types.BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	html, err := s.runner.Preview(r.Context(), &req)
	if err != nil {
		s.pipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, html); err != nil {
		log.Printf("Error writing preview response: %v", err)
	}
}

// handleDownload streams back a previously persisted artifact.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	if filename == "" {
		s.errorResponse(w, http.StatusBadRequest, "Filename is required")
		return
	}

	f, err := s.store.Open(filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "File not found: "+filename)
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Failed to read file: "+err.Error())
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("Error streaming %s: %v", filename, err)
	}
}

// pipelineError maps the pipeline error taxonomy onto HTTP statuses.
func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	payload := errorPayload{Error: err.Error()}

	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		payload.Stage = string(stageErr.Stage)
	}

	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		payload.Kind = "validation_error"
		payload.Fields = validationErr.Fields
		s.jsonResponse(w, http.StatusBadRequest, payload)
		return
	}

	var generationErr *llm.GenerationError
	if errors.As(err, &generationErr) {
		payload.Kind = "generation_error"
		s.jsonResponse(w, http.StatusBadGateway, payload)
		return
	}

	var persistErr *storage.PersistError
	if errors.As(err, &persistErr) {
		payload.Kind = "persist_error"
		s.jsonResponse(w, http.StatusInternalServerError, payload)
		return
	}

	var publishErr *storage.PublishError
	if errors.As(err, &publishErr) {
		payload.Kind = "publish_error"
		s.jsonResponse(w, http.StatusBadGateway, payload)
		return
	}

	payload.Kind = "internal_error"
	s.jsonResponse(w, http.StatusInternalServerError, payload)
}
