package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/techgear-vn/techgear/internal/models"
)

// InteractionRepository is the interest signal data access interface.
type InteractionRepository interface {
	AddScore(userID, productID uint, interactionType string, weight int) error
	ListByUser(userID uint, limit int) ([]models.UserInteraction, error)
	TopProductIDs(userID uint, limit int) ([]uint, error)
	WithTx(tx *gorm.DB) InteractionRepository
}

// GormInteractionRepository is the GORM implementation.
type GormInteractionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates an interaction repository.
func NewInteractionRepository(db *gorm.DB) *GormInteractionRepository {
	return &GormInteractionRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormInteractionRepository) WithTx(tx *gorm.DB) InteractionRepository {
	if tx == nil {
		return r
	}
	return &GormInteractionRepository{db: tx}
}

// AddScore accumulates weight onto the (user, product) signal row,
// creating it on first contact.
func (r *GormInteractionRepository) AddScore(userID, productID uint, interactionType string, weight int) error {
	if userID == 0 || productID == 0 || weight <= 0 {
		return errors.New("invalid interaction params")
	}
	now := time.Now()
	result := r.db.Model(&models.UserInteraction{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Updates(map[string]interface{}{
			"score":              gorm.Expr("score + ?", weight),
			"last_type":          interactionType,
			"last_interacted_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	return r.db.Create(&models.UserInteraction{
		UserID:           userID,
		ProductID:        productID,
		Score:            weight,
		LastType:         interactionType,
		LastInteractedAt: now,
	}).Error
}

// ListByUser fetches a user's signal rows, strongest first.
func (r *GormInteractionRepository) ListByUser(userID uint, limit int) ([]models.UserInteraction, error) {
	var interactions []models.UserInteraction
	query := r.db.Where("user_id = ?", userID).Order("score DESC, last_interacted_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&interactions).Error; err != nil {
		return nil, err
	}
	return interactions, nil
}

// TopProductIDs returns the user's highest scored product IDs.
func (r *GormInteractionRepository) TopProductIDs(userID uint, limit int) ([]uint, error) {
	interactions, err := r.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(interactions))
	for _, interaction := range interactions {
		ids = append(ids, interaction.ProductID)
	}
	return ids, nil
}
