package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is the catalog category table.
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`              // primary key
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`  // unique identifier
	NameJSON  JSON           `gorm:"type:json;not null" json:"name"`    // localized name
	Icon      string         `gorm:"type:varchar(500)" json:"icon"`     // category icon image path
	SortOrder int            `gorm:"default:0;index" json:"sort_order"` // sort weight
	CreatedAt time.Time      `gorm:"index" json:"created_at"`           // creation time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                    // soft delete time
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}
