package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/fitgen/internal/generate"
	"github.com/claude/fitgen/internal/workout"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	generator := "ready"
	if err := s.gen.Ready(); err != nil {
		generator = "not configured"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "generator": generator})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, workout.Catalog())
}

// planResponse wraps a generated plan for the API.
type planResponse struct {
	Request workout.Request `json:"request"`
	Plan    *workout.Plan   `json:"plan"`
}

// handleCreatePlan generates a plan without touching any workspace. Missing
// fields take the form defaults; unknown option values are rejected.
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req workout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	form, err := workout.FormFromRequest(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	req = form.Request()

	plan, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		writeJSON(w, generationStatus(err), map[string]string{"error": generate.UserMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Request: req, Plan: plan})
}

// generationStatus maps a generation failure to an HTTP status.
func generationStatus(err error) int {
	switch {
	case errors.Is(err, generate.ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, generate.ErrTransport),
		errors.Is(err, generate.ErrMalformedResponse),
		errors.Is(err, generate.ErrIncompleteResult):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
