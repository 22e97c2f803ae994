package worker

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/socialchef/leftover/internal/feedback"
	"github.com/socialchef/leftover/internal/metrics"
)

// ParseRedisURL parses a Redis URL and returns asynq.RedisClientOpt
func ParseRedisURL(redisURL string) (asynq.RedisClientOpt, error) {
	// Handle plain host:port format
	if !strings.HasPrefix(redisURL, "redis://") && !strings.HasPrefix(redisURL, "rediss://") {
		return asynq.RedisClientOpt{Addr: redisURL}, nil
	}

	u, err := url.Parse(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	opt := asynq.RedisClientOpt{
		Addr: u.Host,
	}

	if u.User != nil {
		opt.Username = u.User.Username()
		if password, ok := u.User.Password(); ok {
			opt.Password = password
		}
	}

	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return asynq.RedisClientOpt{}, fmt.Errorf("invalid redis database %q: %w", db, err)
		}
		opt.DB = n
	}

	if u.Scheme == "rediss" {
		opt.TLSConfig = &tls.Config{ServerName: u.Hostname()}
	}

	return opt, nil
}

// NewClient creates a new Asynq client for enqueueing tasks
func NewClient(redisURL string) (*asynq.Client, error) {
	opt, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return asynq.NewClient(opt), nil
}

// Enqueuer is the subset of *asynq.Client used to queue tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RatingEnqueuer records ratings by queueing them for the worker.
type RatingEnqueuer struct {
	client Enqueuer
}

func NewRatingEnqueuer(client Enqueuer) *RatingEnqueuer {
	return &RatingEnqueuer{client: client}
}

func (e *RatingEnqueuer) Record(ctx context.Context, rating feedback.Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}

	task, err := NewRecordRatingTask(RecordRatingPayload{Rating: rating})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue rating: %w", err)
	}

	metrics.RecordRating(ctx, rating.Score)
	slog.InfoContext(ctx, "Rating queued", "rating_id", rating.ID, "task_id", info.ID, "score", rating.Score)
	return nil
}
