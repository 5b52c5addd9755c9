package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is the dashboard operator table.
type Admin struct {
	ID           uint           `gorm:"primarykey" json:"id"`                         // primary key
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`         // operator account
	PasswordHash string         `gorm:"not null" json:"-"`                            // password hash (never returned)
	IsSuper      bool           `gorm:"not null;default:false;index" json:"is_super"` // super admin (skips permission checks)
	LastLoginAt  *time.Time     `json:"last_login_at"`                                // last login time
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                      // creation time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                               // soft delete time
}

// TableName sets the table name.
func (Admin) TableName() string {
	return "admins"
}
