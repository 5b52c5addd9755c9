package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is the order table. Amounts are snapshots taken at checkout.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                          // primary key
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"order_no"`                          // order number
	UserID         uint           `gorm:"index;not null" json:"user_id"`                                 // owning user ID
	Status         string         `gorm:"index;not null" json:"status"`                                  // order status
	PaymentType    string         `gorm:"type:varchar(20);not null" json:"payment_type"`                 // payment method
	OriginalAmount Money          `gorm:"type:decimal(20,0);not null;default:0" json:"original_amount"`  // subtotal before discount
	DiscountAmount Money          `gorm:"type:decimal(20,0);not null;default:0" json:"discount_amount"`  // coupon discount amount
	TotalAmount    Money          `gorm:"type:decimal(20,0);not null;default:0" json:"total_amount"`     // payable amount
	CouponID       *uint          `gorm:"index" json:"coupon_id,omitempty"`                              // applied coupon ID
	CouponCode     string         `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`                 // applied coupon code snapshot
	ContactName    string         `gorm:"type:varchar(200);not null" json:"contact_name"`                // shipping contact name
	ContactPhone   string         `gorm:"type:varchar(20);not null" json:"contact_phone"`                // shipping contact phone
	ContactAddress string         `gorm:"type:varchar(500);not null" json:"contact_address"`             // shipping address
	ClientIP       string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                   // checkout client IP
	CancelledAt    *time.Time     `gorm:"index" json:"cancelled_at"`                                     // cancellation time
	DeliveredAt    *time.Time     `gorm:"index" json:"delivered_at"`                                     // delivery time
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                       // creation time
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                       // update time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                // soft delete time

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // order lines
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one order line with product snapshots frozen at checkout.
type OrderItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                     // primary key
	OrderID         uint           `gorm:"index;not null" json:"order_id"`                           // order ID
	ProductID       uint           `gorm:"index;not null" json:"product_id"`                         // product ID
	VariantID       *uint          `gorm:"index" json:"variant_id,omitempty"`                        // variant ID (nil for plain products)
	SKU             string         `gorm:"type:varchar(64)" json:"sku,omitempty"`                    // variant SKU snapshot
	NameJSON        JSON           `gorm:"type:json;not null" json:"name"`                           // product name snapshot
	VariantInfoJSON JSON           `gorm:"type:json" json:"variant_info,omitempty"`                  // variant display snapshot
	UnitPrice       Money          `gorm:"type:decimal(20,0);not null;default:0" json:"unit_price"`  // unit price snapshot
	Quantity        int            `gorm:"not null" json:"quantity"`                                 // quantity
	TotalPrice      Money          `gorm:"type:decimal(20,0);not null;default:0" json:"total_price"` // line subtotal
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                  // creation time
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                  // update time
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                           // soft delete time
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
