package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/socialchef/leftover/internal/feedback"
)

const createRatingsTable = `
CREATE TABLE IF NOT EXISTS generation_ratings (
    id          UUID PRIMARY KEY,
    session_id  TEXT NOT NULL,
    input       TEXT NOT NULL,
    preference  TEXT NOT NULL,
    score       SMALLINT NOT NULL CHECK (score BETWEEN 1 AND 5),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertRating = `
INSERT INTO generation_ratings (id, session_id, input, preference, score, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO NOTHING`

// Execer is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type RatingStore struct {
	db Execer
}

func NewRatingStore(db Execer) *RatingStore {
	return &RatingStore{db: db}
}

// EnsureSchema creates the ratings table if it does not exist.
func (s *RatingStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createRatingsTable); err != nil {
		return fmt.Errorf("create generation_ratings: %w", err)
	}
	return nil
}

// InsertRating is idempotent on the rating ID so retried tasks do not duplicate rows.
func (s *RatingStore) InsertRating(ctx context.Context, r feedback.Rating) error {
	_, err := s.db.Exec(ctx, insertRating,
		r.ID, r.SessionID, r.Input, r.Preference, r.Score, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert rating %s: %w", r.ID, err)
	}
	return nil
}
