package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the storefront account table.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                 // primary key
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`    // email
	PasswordHash string         `gorm:"not null" json:"-"`                    // password hash (never returned)
	DisplayName  string         `gorm:"default:''" json:"display_name"`       // display name
	Phone        string         `gorm:"type:varchar(20)" json:"phone"`        // phone number
	Address      string         `gorm:"type:varchar(500)" json:"address"`     // default shipping address
	Locale       string         `gorm:"default:'vi'" json:"locale"`           // language preference
	Status       string         `gorm:"default:'active';index" json:"status"` // account status
	LastLoginAt  *time.Time     `json:"last_login_at"`                        // last login time
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`              // creation time
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`              // update time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                       // soft delete time
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
