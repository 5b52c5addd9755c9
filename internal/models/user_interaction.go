package models

import (
	"time"
)

// UserInteraction aggregates a user's interest signal per product.
// Views, cart adds and purchases accumulate into Score with per-type
// weights; the recommendation feature reads the totals.
type UserInteraction struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                               // primary key
	UserID           uint      `gorm:"not null;uniqueIndex:idx_interaction_user_product" json:"user_id"`   // user ID
	ProductID        uint      `gorm:"not null;uniqueIndex:idx_interaction_user_product" json:"product_id"` // product ID
	Score            int       `gorm:"not null;default:0" json:"score"`                                    // accumulated weight
	LastType         string    `gorm:"type:varchar(20)" json:"last_type"`                                  // last interaction type
	LastInteractedAt time.Time `gorm:"index" json:"last_interacted_at"`                                    // last interaction time
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                                            // creation time
	UpdatedAt        time.Time `json:"updated_at"`                                                         // update time
}

// TableName sets the table name.
func (UserInteraction) TableName() string {
	return "user_interactions"
}
