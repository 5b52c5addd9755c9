package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/provider"
	"github.com/techgear-vn/techgear/internal/queue"
	"github.com/techgear-vn/techgear/internal/repository"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:worker_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&models.UserInteraction{}); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}

	consumer := NewConsumer(&provider.Container{
		InteractionRepo: repository.NewInteractionRepository(db),
	})
	return consumer, db
}

func TestHandleInteractionTrackWritesScore(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	task, err := queue.NewInteractionTrackTask(queue.InteractionTrackPayload{
		UserID:    1,
		ProductID: 7,
		Type:      "cart_add",
		Weight:    3,
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}

	if err := consumer.handleInteractionTrack(context.Background(), task); err != nil {
		t.Fatalf("handleInteractionTrack failed: %v", err)
	}

	var row models.UserInteraction
	if err := db.Where("user_id = ? AND product_id = ?", 1, 7).First(&row).Error; err != nil {
		t.Fatalf("load interaction row failed: %v", err)
	}
	if row.Score != 3 || row.LastType != "cart_add" {
		t.Fatalf("expected score 3 with type cart_add, got %d/%s", row.Score, row.LastType)
	}

	// A second delivery accumulates onto the same row.
	if err := consumer.handleInteractionTrack(context.Background(), task); err != nil {
		t.Fatalf("handleInteractionTrack failed: %v", err)
	}
	if err := db.Where("user_id = ? AND product_id = ?", 1, 7).First(&row).Error; err != nil {
		t.Fatalf("reload interaction row failed: %v", err)
	}
	if row.Score != 6 {
		t.Fatalf("expected accumulated score 6, got %d", row.Score)
	}
}

func TestHandleInteractionTrackSkipsInvalidPayload(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	task, err := queue.NewInteractionTrackTask(queue.InteractionTrackPayload{
		UserID:    0,
		ProductID: 7,
		Type:      "view",
		Weight:    1,
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}

	if err := consumer.handleInteractionTrack(context.Background(), task); err != nil {
		t.Fatalf("expected invalid payload to be skipped, got %v", err)
	}

	var count int64
	if err := db.Model(&models.UserInteraction{}).Count(&count).Error; err != nil {
		t.Fatalf("count interactions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no interaction rows, got %d", count)
	}
}

func TestHandleInteractionTrackMalformedPayload(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	task := asynq.NewTask(queue.TaskInteractionTrack, []byte("{not json"))
	if err := consumer.handleInteractionTrack(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for malformed payload")
	}
}
