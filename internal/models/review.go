package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a customer product review.
type Review struct {
	ID          uint           `gorm:"primarykey" json:"id"`              // primary key
	ProductID   uint           `gorm:"not null;index" json:"product_id"`  // product ID
	UserID      uint           `gorm:"not null;index" json:"user_id"`     // author user ID
	Rating      int            `gorm:"not null" json:"rating"`            // star rating 1..5
	Content     string         `gorm:"type:text" json:"content"`          // review body
	DisplayName string         `gorm:"type:varchar(200)" json:"display_name"` // author display name snapshot
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`           // creation time
	UpdatedAt   time.Time      `json:"updated_at"`                        // update time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                    // soft delete time

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // reviewed product
}

// TableName sets the table name.
func (Review) TableName() string {
	return "reviews"
}
