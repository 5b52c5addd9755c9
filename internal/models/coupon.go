package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/techgear-vn/techgear/internal/constants"
)

// Coupon is a named fixed-amount discount code.
type Coupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                           // primary key
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`                               // coupon code (lookup key)
	Discount       Money          `gorm:"type:decimal(20,0);not null" json:"discount"`                    // fixed discount amount
	MinOrderAmount Money          `gorm:"type:decimal(20,0);not null;default:0" json:"min_order_amount"`  // minimum subtotal to apply
	Quantity       int            `gorm:"not null;default:0" json:"quantity"`                             // remaining usage count
	ProductScope   StringArray    `gorm:"type:json" json:"product_scope"`                                 // eligible product IDs, or ["all"]
	StartsAt       *time.Time     `gorm:"index" json:"starts_at"`                                         // validity window start
	EndsAt         *time.Time     `gorm:"index" json:"ends_at"`                                           // validity window end
	IsActive       bool           `gorm:"not null" json:"is_active"`                                      // enabled or not (callers set it explicitly)
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                        // creation time
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                        // update time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                 // soft delete time
}

// TableName sets the table name.
func (Coupon) TableName() string {
	return "coupons"
}

// IsWithinWindow reports whether now falls inside [StartsAt, EndsAt].
// A nil bound is open.
func (c *Coupon) IsWithinWindow(now time.Time) bool {
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return false
	}
	if c.EndsAt != nil && now.After(*c.EndsAt) {
		return false
	}
	return true
}

// AppliesToAll reports whether the scope carries the universal sentinel.
func (c *Coupon) AppliesToAll() bool {
	for _, scope := range c.ProductScope {
		if scope == constants.CouponScopeAll {
			return true
		}
	}
	return false
}
