package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	apperrors "github.com/socialchef/leftover/internal/errors"
	"github.com/socialchef/leftover/internal/services/ai"
	"github.com/socialchef/leftover/internal/services/recipe"
	"github.com/socialchef/leftover/internal/session"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

const pageTitle = "Leftover Zero-Waste Recipe Generator"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Raw HTML in model output is escaped, not passed through.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
	)
}

type testPanel struct {
	Input      string
	Preference string
	Recipe     template.HTML
	Score      int
	Error      string
}

type pageData struct {
	Title       string
	Preferences []ai.Preference
	Input       string
	Preference  string
	Recipe      template.HTML
	Error       string
	ShowHistory bool
	History     []session.Summary

	TestMode        bool
	TestPreferences []ai.Preference
	TestInput       string
	TestPreference  string
	Test            *testPanel
	TestRecord      string
}

func (s *Server) newPage() *pageData {
	return &pageData{
		Title:           pageTitle,
		Preferences:     ai.Preferences(),
		Preference:      string(ai.PreferenceNone),
		TestMode:        s.cfg.TestMode,
		TestPreferences: testPreferences,
		TestInput:       defaultTestInput,
		TestPreference:  string(ai.PreferenceNone),
	}
}

func (s *Server) renderMarkdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (s *Server) renderPage(w http.ResponseWriter, status int, page *pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		slog.Error("Failed to render page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// displayError formats err for inline display, keeping the raw error text.
func displayError(prefix string, err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Type == apperrors.ErrorTypeValidation {
		if hint := appErr.RecoverySuggestion(); hint != "" {
			return fmt.Sprintf("%s %s", appErr.Error(), hint)
		}
		return appErr.Error()
	}
	return fmt.Sprintf("%s: %v", prefix, err)
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, s.newPage())
}

func (s *Server) HandleGeneratePage(w http.ResponseWriter, r *http.Request) {
	page := s.newPage()

	if err := r.ParseForm(); err != nil {
		page.Error = displayError("Invalid form", err)
		s.renderPage(w, http.StatusBadRequest, page)
		return
	}
	page.Input = r.PostFormValue("ingredients")
	if pref := r.PostFormValue("preference"); pref != "" {
		page.Preference = pref
	}

	_, history, err := s.history(r)
	if err != nil {
		page.Error = displayError("Session error", err)
		s.renderPage(w, apperrors.StatusCode(err), page)
		return
	}

	result, err := s.generator.Generate(r.Context(), recipe.Request{
		Input:      page.Input,
		Preference: page.Preference,
	}, history)
	if err != nil {
		reportError(r.Context(), "Generate failed", err)
		page.Error = displayError("AI error", err)
		s.renderPage(w, apperrors.StatusCode(err), page)
		return
	}

	page.Recipe, err = s.renderMarkdown(result.Recipe)
	if err != nil {
		reportError(r.Context(), "Markdown rendering failed", err)
		page.Recipe = template.HTML(template.HTMLEscapeString(result.Recipe))
	}
	s.renderPage(w, http.StatusOK, page)
}

func (s *Server) HandleHistoryPage(w http.ResponseWriter, r *http.Request) {
	page := s.newPage()
	page.ShowHistory = true

	_, history, err := s.history(r)
	if err != nil {
		page.Error = displayError("Session error", err)
		s.renderPage(w, apperrors.StatusCode(err), page)
		return
	}

	page.History = session.Summaries(history.Last(session.ViewLimit), session.PreviewWidth)
	s.renderPage(w, http.StatusOK, page)
}
