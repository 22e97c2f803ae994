package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/socialchef/leftover/internal/config"
	apperrors "github.com/socialchef/leftover/internal/errors"
	"github.com/socialchef/leftover/internal/feedback"
	"github.com/socialchef/leftover/internal/logger"
	"github.com/socialchef/leftover/internal/middleware"
	"github.com/socialchef/leftover/internal/sentry"
	"github.com/socialchef/leftover/internal/services/recipe"
	"github.com/socialchef/leftover/internal/session"
	"github.com/yuin/goldmark"
)

// Generator produces a recipe and, given a history, records the interaction.
type Generator interface {
	Generate(ctx context.Context, req recipe.Request, history *session.History) (*recipe.Result, error)
}

type Server struct {
	cfg       *config.Config
	generator Generator
	histories *session.Store
	recorder  feedback.Recorder
	markdown  goldmark.Markdown
}

func NewServer(cfg *config.Config, generator Generator, histories *session.Store, recorder feedback.Recorder) *Server {
	if recorder == nil {
		recorder = feedback.LogRecorder{}
	}
	return &Server{
		cfg:       cfg,
		generator: generator,
		histories: histories,
		recorder:  recorder,
		markdown:  newMarkdown(),
	}
}

// history returns the caller's session history.
func (s *Server) history(r *http.Request) (string, *session.History, error) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		return "", nil, &apperrors.AppError{
			Type:          apperrors.ErrorTypeValidation,
			Message:       "no session",
			StatusCode:    http.StatusUnauthorized,
			ErrorCode:     "NO_SESSION",
			IsOperational: true,
			Recovery:      "Enable cookies and reload the page.",
		}
	}
	return sessionID, s.histories.Get(sessionID), nil
}

// reportError logs err and sends unexpected failures to Sentry.
func reportError(ctx context.Context, msg string, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if ok && appErr.IsOperational {
		slog.WarnContext(ctx, msg, "error", err, "error_code", appErr.Code(), logger.WithTraceContext(ctx))
		return
	}
	slog.ErrorContext(ctx, msg, "error", err, logger.WithTraceContext(ctx))
	sentry.CaptureException(ctx, err)
}

type errorResponse struct {
	Error *apperrors.AppError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.NewInternalError("internal error", "INTERNAL_ERROR", err)
	}
	body := *appErr
	body.Message = appErr.Error()
	writeJSON(w, apperrors.StatusCode(appErr), errorResponse{Error: &body})
}
