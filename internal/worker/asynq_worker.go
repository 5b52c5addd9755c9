package worker

import (
	"context"
	"encoding/json"

	"github.com/techgear-vn/techgear/internal/logger"
	"github.com/techgear-vn/techgear/internal/provider"
	"github.com/techgear-vn/techgear/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles queued background tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register registers task handlers on the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskInteractionTrack, c.handleInteractionTrack)
}

func (c *Consumer) handleInteractionTrack(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_interaction_track_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.InteractionTrackPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_interaction_track_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || payload.ProductID == 0 || payload.Weight <= 0 {
		logger.Debugw("worker_interaction_track_skip_invalid_payload",
			"user_id", payload.UserID,
			"product_id", payload.ProductID,
			"weight", payload.Weight,
		)
		return nil
	}
	if err := c.InteractionRepo.AddScore(payload.UserID, payload.ProductID, payload.Type, payload.Weight); err != nil {
		logger.Warnw("worker_interaction_track_failed",
			"user_id", payload.UserID,
			"product_id", payload.ProductID,
			"type", payload.Type,
			"error", err,
		)
		return err
	}
	return nil
}
