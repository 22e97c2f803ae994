package recipe

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/socialchef/leftover/internal/errors"
	"github.com/socialchef/leftover/internal/logger"
	"github.com/socialchef/leftover/internal/metrics"
	"github.com/socialchef/leftover/internal/services/ai"
	"github.com/socialchef/leftover/internal/session"
	"github.com/socialchef/leftover/internal/telemetry"
	"github.com/socialchef/leftover/internal/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Request is one generation request as typed by the user.
type Request struct {
	Input      string `json:"ingredients"`
	Preference string `json:"preference"`
}

// Result is a successful generation.
type Result struct {
	Recipe      string        `json:"recipe"`
	Ingredients []string      `json:"ingredients"`
	Preference  ai.Preference `json:"preference"`
	Prompt      string        `json:"-"`
}

// Generator turns leftover ingredients into a recipe through a Completer.
type Generator struct {
	completer Completer
}

func NewGenerator(completer Completer) *Generator {
	return &Generator{completer: completer}
}

// Generate validates req, builds the prompt and calls the completer once.
// On success the entry is appended to history when history is non-nil;
// on failure history is left untouched.
func (g *Generator) Generate(ctx context.Context, req Request, history *session.History) (*Result, error) {
	ctx, span := telemetry.Tracer("recipe").Start(ctx, "recipe.generate")
	defer span.End()

	pref, err := ai.ParsePreference(req.Preference)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), "INVALID_PREFERENCE",
			"Choose one of: None, Vegetarian, Low-Calorie, Kid-Friendly.")
	}

	ingredients := ai.ParseIngredients(req.Input)
	if check := validation.ValidateIngredients(ingredients); !check.IsValid {
		return nil, apperrors.NewValidationError(check.Reason, "INVALID_INGREDIENTS",
			"Enter your leftover ingredients separated by commas, e.g. rice, eggs, carrots.")
	}

	span.SetAttributes(
		attribute.Int("recipe.ingredient_count", len(ingredients)),
		attribute.String("recipe.preference", string(pref)),
	)

	prompt := ai.BuildLeftoverPrompt(ingredients, pref)

	start := time.Now()
	text, err := g.completer.Complete(ctx, prompt)
	metrics.RecordGeneration(ctx, string(pref), start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "Recipe generation failed",
			"error", err,
			"ingredient_count", len(ingredients),
			"preference", pref,
			logger.WithTraceContext(ctx))
		return nil, err
	}

	if history != nil {
		history.Append(session.Entry{
			Input:      req.Input,
			Output:     text,
			Preference: string(pref),
		})
	}

	slog.InfoContext(ctx, "Recipe generated",
		"ingredient_count", len(ingredients),
		"preference", pref,
		"duration_ms", time.Since(start).Milliseconds())

	return &Result{
		Recipe:      text,
		Ingredients: ingredients,
		Preference:  pref,
		Prompt:      prompt,
	}, nil
}
