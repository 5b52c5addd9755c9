package service

import (
	"github.com/hibiken/asynq"

	"github.com/techgear-vn/techgear/internal/constants"
	"github.com/techgear-vn/techgear/internal/logger"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/queue"
	"github.com/techgear-vn/techgear/internal/repository"
)

// InteractionEnqueuer pushes engagement signals onto the task queue.
// *queue.Client satisfies it.
type InteractionEnqueuer interface {
	EnqueueInteractionTrack(payload queue.InteractionTrackPayload, opts ...asynq.Option) error
}

// RecommendationService records engagement signals and serves the
// "for you" product list. Signals are written asynchronously through
// the queue; reads rank by accumulated score.
type RecommendationService struct {
	interactionRepo repository.InteractionRepository
	productRepo     repository.ProductRepository
	queueClient     InteractionEnqueuer
}

// NewRecommendationService creates a recommendation service.
func NewRecommendationService(
	interactionRepo repository.InteractionRepository,
	productRepo repository.ProductRepository,
	queueClient InteractionEnqueuer,
) *RecommendationService {
	return &RecommendationService{
		interactionRepo: interactionRepo,
		productRepo:     productRepo,
		queueClient:     queueClient,
	}
}

// Track enqueues one engagement signal. Unknown types are dropped.
// Failures only log; tracking never breaks the calling request.
func (s *RecommendationService) Track(userID, productID uint, interactionType string) {
	if s == nil || s.queueClient == nil || userID == 0 || productID == 0 {
		return
	}
	weight := interactionWeight(interactionType)
	if weight == 0 {
		return
	}
	err := s.queueClient.EnqueueInteractionTrack(queue.InteractionTrackPayload{
		UserID:    userID,
		ProductID: productID,
		Type:      interactionType,
		Weight:    weight,
	})
	if err != nil {
		logger.Warnw("interaction_track_enqueue_failed",
			"user_id", userID,
			"product_id", productID,
			"type", interactionType,
			"error", err,
		)
	}
}

// Recommend returns products ranked by the user's accumulated signals,
// topped up with the newest active products when the history is thin.
func (s *RecommendationService) Recommend(userID uint, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 8
	}

	var ranked []models.Product
	if userID > 0 {
		ids, err := s.interactionRepo.TopProductIDs(userID, limit)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			products, err := s.productRepo.ListByIDs(ids)
			if err != nil {
				return nil, err
			}
			byID := make(map[uint]models.Product, len(products))
			for _, p := range products {
				if p.IsActive {
					byID[p.ID] = p
				}
			}
			for _, id := range ids {
				if p, ok := byID[id]; ok {
					ranked = append(ranked, p)
				}
			}
		}
	}

	if len(ranked) >= limit {
		return ranked[:limit], nil
	}

	seen := make(map[uint]bool, len(ranked))
	for _, p := range ranked {
		seen[p.ID] = true
	}
	fillers, _, err := s.productRepo.List(repository.ProductListFilter{
		Page:       1,
		PageSize:   limit,
		OnlyActive: true,
		OrderBy:    "newest",
	})
	if err != nil {
		return nil, err
	}
	for _, p := range fillers {
		if len(ranked) >= limit {
			break
		}
		if !seen[p.ID] {
			ranked = append(ranked, p)
		}
	}
	return ranked, nil
}

func interactionWeight(interactionType string) int {
	switch interactionType {
	case constants.InteractionTypeView:
		return constants.InteractionWeightView
	case constants.InteractionTypeCartAdd:
		return constants.InteractionWeightCartAdd
	case constants.InteractionTypePurchase:
		return constants.InteractionWeightPurchase
	default:
		return 0
	}
}
