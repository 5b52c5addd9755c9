package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/techgear-vn/techgear/internal/constants"
)

const (
	// TaskInteractionTrack records an engagement signal for the
	// recommendation feature.
	TaskInteractionTrack = constants.TaskInteractionTrack
)

// InteractionTrackPayload is the interaction tracking task payload.
type InteractionTrackPayload struct {
	UserID    uint   `json:"user_id"`
	ProductID uint   `json:"product_id"`
	Type      string `json:"type"`
	Weight    int    `json:"weight"`
}

// NewInteractionTrackTask builds the interaction tracking task.
func NewInteractionTrackTask(payload InteractionTrackPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInteractionTrack, data), nil
}
