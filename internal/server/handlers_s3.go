package server

import (
	"net/http"
	"strconv"
)

// Listing bounds for /s3/files.
const (
	defaultMaxItems = 100
	maxMaxItems     = 1000
)

// handleS3Config reports the result of the object-store configuration probe.
func (s *Server) handleS3Config(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Object store is not configured")
		return
	}

	status, err := s.publisher.CheckConfig(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Configuration check failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, status)
}

// handleS3Files lists published artifacts, capped at max_items.
func (s *Server) handleS3Files(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Object store is not configured")
		return
	}

	maxItems := defaultMaxItems
	if v := r.URL.Query().Get("max_items"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			s.errorResponse(w, http.StatusBadRequest, "max_items must be a positive integer")
			return
		}
		maxItems = parsed
	}
	if maxItems > maxMaxItems {
		maxItems = maxMaxItems
	}

	files, err := s.publisher.List(r.Context(), maxItems)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Failed to list files: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"count": len(files),
		"files": files,
	})
}
