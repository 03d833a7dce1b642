package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/helmcode/bug-autopsy/pkg/analyzer"
	"github.com/helmcode/bug-autopsy/pkg/export"
	"github.com/helmcode/bug-autopsy/pkg/languages"
	"github.com/helmcode/bug-autopsy/pkg/llm"
	"github.com/helmcode/bug-autopsy/pkg/model"
	"github.com/helmcode/bug-autopsy/pkg/prompts"
	"github.com/helmcode/bug-autopsy/pkg/store"
)

type analyzeRequest struct {
	ErrorMessage string `json:"errorMessage"`
	StackTrace   string `json:"stackTrace,omitempty"`
	CodeSnippet  string `json:"codeSnippet,omitempty"`
	Language     string `json:"language"`
	Framework    string `json:"framework,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := s.gateway.Complete(r.Context(), prompts.Request{
		ErrorMessage: req.ErrorMessage,
		StackTrace:   req.StackTrace,
		CodeSnippet:  req.CodeSnippet,
		Language:     req.Language,
		Framework:    req.Framework,
	})
	if err != nil {
		s.log.Error("Analysis failed", zap.Error(err))
		status, msg := classifyAnalyzeError(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"analysis": analysis})
}

// classifyAnalyzeError maps gateway failures onto the wire contract:
// 400 missing input, 429 rate limited, 402 quota exhausted, 500 otherwise.
func classifyAnalyzeError(err error) (int, string) {
	switch {
	case errors.Is(err, analyzer.ErrEmptyErrorMessage):
		return http.StatusBadRequest, "Error message is required"
	case errors.Is(err, llm.ErrRateLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment."
	case errors.Is(err, llm.ErrQuotaExhausted):
		return http.StatusPaymentRequired, "AI credits exhausted. Please add credits to continue."
	default:
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			return http.StatusInternalServerError, fmt.Sprintf("AI gateway error: %d", statusErr.Code)
		}
		return http.StatusInternalServerError, err.Error()
	}
}

type detectRequest struct {
	CodeSnippet string `json:"codeSnippet"`
}

// handleDetect runs the advisory language heuristic. The caller is expected
// to ignore the result when a language is already selected.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language": languages.Detect(req.CodeSnippet)})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"languages":  languages.Languages,
		"frameworks": languages.Frameworks,
	})
}

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"cases": s.cases.List()})
}

func (s *Server) handleSaveCase(w http.ResponseWriter, r *http.Request) {
	var cf model.CaseFile
	if err := json.NewDecoder(r.Body).Decode(&cf); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if cf.ID == "" {
		cf.ID = cf.Analysis.ID
	}
	if cf.ID == "" {
		writeError(w, http.StatusBadRequest, "case id is required")
		return
	}
	if cf.Title == "" {
		cf.Title = fmt.Sprintf("%s in %s", cf.Analysis.ErrorType, cf.Analysis.Language)
	}
	now := time.Now()
	if cf.CreatedAt.IsZero() {
		cf.CreatedAt = now
	}
	// Any save through the API counts as a touch, so updatedAt always moves;
	// the store itself leaves caller timestamps alone.
	cf.UpdatedAt = now
	if cf.Status == "" {
		cf.Status = model.StatusOpen
	}
	if !cf.Status.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid case status %q", cf.Status))
		return
	}

	if err := s.cases.Save(cf); err != nil {
		s.log.Error("Failed to save case", zap.String("id", cf.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save case file")
		return
	}
	writeJSON(w, http.StatusOK, cf)
}

func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	cf, err := s.cases.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "case file not found")
		return
	}
	writeJSON(w, http.StatusOK, cf)
}

type updateCaseRequest struct {
	Status *model.CaseStatus `json:"status,omitempty"`
	Notes  *string           `json:"notes,omitempty"`
}

func (s *Server) handleUpdateCase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		cf  model.CaseFile
		err error
	)
	switch {
	case req.Status != nil:
		cf, err = s.cases.SetStatus(id, *req.Status)
	case req.Notes != nil:
		cf, err = s.cases.SetNotes(id, *req.Notes)
	default:
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "case file not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cf)
}

func (s *Server) handleDeleteCase(w http.ResponseWriter, r *http.Request) {
	if err := s.cases.Delete(r.PathValue("id")); err != nil {
		s.log.Error("Failed to delete case", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to delete case file")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCaseReport(w http.ResponseWriter, r *http.Request) {
	cf, err := s.cases.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "case file not found")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := export.Render(w, cf.Analysis); err != nil {
		s.log.Error("Failed to render report", zap.String("id", cf.ID), zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
