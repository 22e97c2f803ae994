package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/socialchef/leftover/internal/feedback"
)

// Task type constants
const (
	TypeRecordRating = "record:rating"
)

// RecordRatingPayload is the payload for rating storage tasks
type RecordRatingPayload struct {
	Rating feedback.Rating `json:"rating"`
}

// NewRecordRatingTask creates a new record rating task
func NewRecordRatingTask(payload RecordRatingPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRecordRating, data, asynq.MaxRetry(3)), nil
}
