package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/socialchef/leftover/internal/errors"
	"github.com/socialchef/leftover/internal/services/recipe"
	"github.com/socialchef/leftover/internal/session"
)

type GenerateRequest struct {
	Ingredients string `json:"ingredients"`
	Preference  string `json:"preference"`
}

type GenerateResponse struct {
	Recipe      string   `json:"recipe"`
	Ingredients []string `json:"ingredients"`
	Preference  string   `json:"preference"`
}

func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body", "INVALID_BODY",
			`Send a JSON object like {"ingredients": "rice, eggs", "preference": "None"}.`))
		return
	}

	_, history, err := s.history(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.generator.Generate(r.Context(), recipe.Request{
		Input:      req.Ingredients,
		Preference: req.Preference,
	}, history)
	if err != nil {
		reportError(r.Context(), "Generate failed", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Recipe:      result.Recipe,
		Ingredients: result.Ingredients,
		Preference:  string(result.Preference),
	})
}

type HistoryResponse struct {
	Entries []session.Summary `json:"entries"`
	Total   int               `json:"total"`
}

func (s *Server) HandleHistory(w http.ResponseWriter, r *http.Request) {
	_, history, err := s.history(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		Entries: session.Summaries(history.Last(session.ViewLimit), session.PreviewWidth),
		Total:   history.Len(),
	})
}
