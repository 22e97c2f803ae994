package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/socialchef/leftover/internal/feedback"
)

// RatingStore persists validated ratings.
type RatingStore interface {
	InsertRating(ctx context.Context, rating feedback.Rating) error
}

type RatingProcessor struct {
	store RatingStore
}

func NewRatingProcessor(store RatingStore) *RatingProcessor {
	return &RatingProcessor{store: store}
}

func (p *RatingProcessor) HandleRecordRating(ctx context.Context, t *asynq.Task) error {
	var payload RecordRatingPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// A malformed payload will never succeed on retry.
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	rating := payload.Rating
	if err := rating.Validate(); err != nil {
		return fmt.Errorf("invalid rating %s: %v: %w", rating.ID, err, asynq.SkipRetry)
	}

	if err := p.store.InsertRating(ctx, rating); err != nil {
		slog.ErrorContext(ctx, "Failed to store rating", "rating_id", rating.ID, "error", err)
		return fmt.Errorf("failed to store rating: %w", err)
	}

	slog.InfoContext(ctx, "Rating stored",
		"rating_id", rating.ID,
		"session_id", rating.SessionID,
		"score", rating.Score)
	return nil
}
