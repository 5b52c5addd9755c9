package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart is the per-user cart table. Each user owns at most one active cart.
type Cart struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // primary key
	UserID         uint           `gorm:"not null;uniqueIndex" json:"user_id"`                          // owning user ID
	TotalPrice     Money          `gorm:"type:decimal(20,0);not null;default:0" json:"total_price"`     // running total after discount
	CouponCode     string         `gorm:"type:varchar(64);index" json:"coupon_code,omitempty"`          // applied coupon code (empty when none)
	CouponDiscount Money          `gorm:"type:decimal(20,0);not null;default:0" json:"coupon_discount"` // applied coupon discount amount
	ContactName    string         `gorm:"type:varchar(200)" json:"contact_name,omitempty"`              // shipping contact name
	ContactPhone   string         `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`              // shipping contact phone
	ContactAddress string         `gorm:"type:varchar(500)" json:"contact_address,omitempty"`           // shipping address
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // creation time
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // update time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft delete time

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // line items
}

// TableName sets the table name.
func (Cart) TableName() string {
	return "carts"
}

// HasCoupon reports whether a coupon is attached.
func (c *Cart) HasCoupon() bool {
	return c.CouponCode != ""
}

// CartItem is one cart line. Identity for merge-on-add is
// (CartID, ProductID, VariantID), where a nil VariantID only matches
// another nil VariantID.
type CartItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                    // primary key
	CartID          uint           `gorm:"not null;index:idx_cart_item_line" json:"cart_id"`        // cart ID
	ProductID       uint           `gorm:"not null;index:idx_cart_item_line" json:"product_id"`     // product ID
	VariantID       *uint          `gorm:"index:idx_cart_item_line" json:"variant_id,omitempty"`    // variant ID (nil for plain products)
	SKU             string         `gorm:"type:varchar(64)" json:"sku,omitempty"`                   // variant SKU snapshot
	Quantity        int            `gorm:"not null" json:"quantity"`                                // quantity
	UnitPrice       Money          `gorm:"type:decimal(20,0);not null;default:0" json:"unit_price"` // unit price snapshot at add time
	VariantInfoJSON JSON           `gorm:"type:json" json:"variant_info,omitempty"`                 // variant display snapshot
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                 // creation time
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                 // update time
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                          // soft delete time

	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"` // referenced product
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // referenced variant
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}

// MatchesLine reports whether the line addresses the same
// (product, variant) pair.
func (i *CartItem) MatchesLine(productID uint, variantID *uint) bool {
	if i.ProductID != productID {
		return false
	}
	if i.VariantID == nil || variantID == nil {
		return i.VariantID == nil && variantID == nil
	}
	return *i.VariantID == *variantID
}

// LineTotal returns quantity times the snapshot unit price.
func (i *CartItem) LineTotal() Money {
	return NewMoneyFromDecimal(i.UnitPrice.Mul(NewMoneyFromInt(int64(i.Quantity)).Decimal))
}
