package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/socialchef/leftover/internal/errors"
	"github.com/socialchef/leftover/internal/metrics"
)

const (
	MinScore     = 1
	MaxScore     = 5
	DefaultScore = 3
)

// Rating is a manual 1-5 score given to a test-mode generation.
type Rating struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Input      string    `json:"input"`
	Preference string    `json:"preference"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewRating stamps an ID and creation time on a rating.
func NewRating(sessionID, input, preference string, score int) Rating {
	return Rating{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Input:      input,
		Preference: preference,
		Score:      score,
		CreatedAt:  time.Now().UTC(),
	}
}

// Validate checks the score range.
func (r Rating) Validate() error {
	if r.Score < MinScore || r.Score > MaxScore {
		return apperrors.NewValidationError(
			fmt.Sprintf("score must be between %d and %d, got %d", MinScore, MaxScore, r.Score),
			"INVALID_SCORE",
			"Pick a rating from 1 to 5.",
		)
	}
	return nil
}

// Recorder accepts ratings for storage.
type Recorder interface {
	Record(ctx context.Context, rating Rating) error
}

// LogRecorder writes ratings to the structured log only.
type LogRecorder struct{}

func (LogRecorder) Record(ctx context.Context, rating Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}
	metrics.RecordRating(ctx, rating.Score)
	slog.InfoContext(ctx, "Test record",
		"rating_id", rating.ID,
		"input", rating.Input,
		"preference", rating.Preference,
		"score", rating.Score)
	return nil
}
