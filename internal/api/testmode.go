package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/socialchef/leftover/internal/errors"
	"github.com/socialchef/leftover/internal/feedback"
	"github.com/socialchef/leftover/internal/services/ai"
	"github.com/socialchef/leftover/internal/services/recipe"
)

const defaultTestInput = "rice,eggs"

var testPreferences = []ai.Preference{ai.PreferenceNone, ai.PreferenceVegetarian}

func parseTestPreference(label string) (ai.Preference, error) {
	if label == "" {
		return ai.PreferenceNone, nil
	}
	for _, p := range testPreferences {
		if string(p) == label {
			return p, nil
		}
	}
	return "", apperrors.NewValidationError(
		fmt.Sprintf("unsupported test preference %q", label),
		"INVALID_PREFERENCE",
		"Test mode supports None or Vegetarian.",
	)
}

func parseScore(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return feedback.DefaultScore, nil
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(
			fmt.Sprintf("score must be a number, got %q", raw),
			"INVALID_SCORE",
			"Pick a rating from 1 to 5.",
		)
	}
	return score, nil
}

// testInputs reads the sidebar fields, falling back to the defaults.
func testInputs(r *http.Request) (string, string) {
	input := r.PostFormValue("test_input")
	if strings.TrimSpace(input) == "" {
		input = defaultTestInput
	}
	return input, r.PostFormValue("test_preference")
}

// HandleTestGenerate runs a quick generation that is not recorded in history.
func (s *Server) HandleTestGenerate(w http.ResponseWriter, r *http.Request) {
	page := s.newPage()
	if !s.cfg.TestMode {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		page.Test = &testPanel{Error: displayError("Invalid form", err)}
		s.renderPage(w, http.StatusBadRequest, page)
		return
	}

	input, label := testInputs(r)
	page.TestInput = input
	if label != "" {
		page.TestPreference = label
	}

	pref, err := parseTestPreference(label)
	if err != nil {
		page.Test = &testPanel{Error: displayError("Test AI error", err)}
		s.renderPage(w, apperrors.StatusCode(err), page)
		return
	}

	result, err := s.generator.Generate(r.Context(), recipe.Request{
		Input:      input,
		Preference: string(pref),
	}, nil)
	if err != nil {
		reportError(r.Context(), "Test generate failed", err)
		page.Test = &testPanel{Error: displayError("Test AI error", err)}
		s.renderPage(w, apperrors.StatusCode(err), page)
		return
	}

	rendered, err := s.renderMarkdown(result.Recipe)
	if err != nil {
		reportError(r.Context(), "Markdown rendering failed", err)
	}
	page.Test = &testPanel{
		Input:      input,
		Preference: string(pref),
		Recipe:     rendered,
		Score:      feedback.DefaultScore,
	}
	s.renderPage(w, http.StatusOK, page)
}

// HandleTestRating records a manual 1-5 score for a test output.
func (s *Server) HandleTestRating(w http.ResponseWriter, r *http.Request) {
	page := s.newPage()
	if !s.cfg.TestMode {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		page.TestRecord = displayError("Invalid form", err)
		s.renderPage(w, http.StatusBadRequest, page)
		return
	}

	input, label := testInputs(r)
	page.TestInput = input

	sessionID, _, err := s.history(r)
	if err != nil {
		page.TestRecord = displayError("Session error", err)
		s.renderPage(w, apperrors.StatusCode(err), page)
		return
	}

	pref, err := parseTestPreference(label)
	if err == nil {
		page.TestPreference = string(pref)
	}
	score, scoreErr := parseScore(r.PostFormValue("score"))
	if err == nil {
		err = scoreErr
	}
	if err == nil {
		err = s.recorder.Record(r.Context(), feedback.NewRating(sessionID, input, string(pref), score))
	}
	if err != nil {
		reportError(r.Context(), "Test rating failed", err)
		page.TestRecord = displayError("Rating error", err)
		s.renderPage(w, apperrors.StatusCode(err), page)
		return
	}

	page.TestRecord = fmt.Sprintf("Test Record: %s | Score: %d", input, score)
	s.renderPage(w, http.StatusOK, page)
}
