package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is the catalog product table. Stock and price on the product
// itself apply only when the line item carries no variant reference.
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                        // primary key
	CategoryID      uint           `gorm:"not null;index" json:"category_id"`                           // category ID
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`                            // unique identifier
	NameJSON        JSON           `gorm:"type:json;not null" json:"name"`                              // localized name
	DescriptionJSON JSON           `gorm:"type:json" json:"description"`                                // localized description
	Brand           string         `gorm:"type:varchar(100);index" json:"brand"`                        // brand name
	PriceAmount     Money          `gorm:"type:decimal(20,0);not null;default:0" json:"price"`         // base price
	PriceDiscount   Money          `gorm:"type:decimal(20,0);not null;default:0" json:"priceDiscount"` // discounted price (active when > 0)
	Stock           int            `gorm:"not null;default:0" json:"stock"`                             // base stock count
	Images          StringArray    `gorm:"type:json" json:"images"`                                     // image paths
	IsActive        bool           `gorm:"index" json:"is_active"`                                      // listed or not (callers set it explicitly)
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                           // sort weight
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                     // creation time
	UpdatedAt       time.Time      `json:"updated_at"`                                                  // update time
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                              // soft delete time

	Category Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // category info
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`  // variant list
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// HasDiscount reports whether the discounted price is active.
func (p *Product) HasDiscount() bool {
	return p.PriceDiscount.IsPositive()
}

// EffectivePrice returns the discounted price when active, else the base price.
func (p *Product) EffectivePrice() Money {
	if p.HasDiscount() {
		return p.PriceDiscount
	}
	return p.PriceAmount
}

// ProductVariant is a color/storage combination with its own price and stock.
type ProductVariant struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                                              // primary key
	ProductID     uint           `gorm:"not null;index;uniqueIndex:idx_variant_product_sku" json:"product_id"`             // product ID
	SKU           string         `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:idx_variant_product_sku" json:"sku"` // stock keeping code (unique per product)
	ColorName     string         `gorm:"type:varchar(100)" json:"color_name"`                                               // color name
	ColorCode     string         `gorm:"type:varchar(20)" json:"color_code"`                                                // color hex code
	ColorImage    string         `gorm:"type:varchar(500)" json:"color_image"`                                              // representative image
	StorageSize   string         `gorm:"type:varchar(50)" json:"storage_size"`                                              // storage size (e.g. 256GB)
	StorageName   string         `gorm:"type:varchar(100)" json:"storage_name"`                                             // storage display name
	PriceAmount   Money          `gorm:"type:decimal(20,0);not null;default:0" json:"price"`                               // variant price
	PriceDiscount Money          `gorm:"type:decimal(20,0);not null;default:0" json:"priceDiscount"`                       // discounted price (active when > 0)
	Stock         int            `gorm:"not null;default:0" json:"stock"`                                                   // variant stock count
	IsActive      bool           `gorm:"index" json:"is_active"`                                                            // enabled or not (callers set it explicitly)
	SortOrder     int            `gorm:"default:0;index" json:"sort_order"`                                                 // sort weight
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                                           // creation time
	UpdatedAt     time.Time      `json:"updated_at"`                                                                        // update time
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                                                    // soft delete time

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // owning product
}

// TableName sets the table name.
func (ProductVariant) TableName() string {
	return "product_variants"
}

// HasDiscount reports whether the discounted price is active.
func (v *ProductVariant) HasDiscount() bool {
	return v.PriceDiscount.IsPositive()
}

// EffectivePrice returns the discounted price when active, else the base price.
func (v *ProductVariant) EffectivePrice() Money {
	if v.HasDiscount() {
		return v.PriceDiscount
	}
	return v.PriceAmount
}

// DisplayInfo builds the snapshot stored on line items so carts can
// still render a variant that is later edited or removed.
func (v *ProductVariant) DisplayInfo() JSON {
	return JSON{
		"sku":           v.SKU,
		"color_name":    v.ColorName,
		"color_code":    v.ColorCode,
		"color_image":   v.ColorImage,
		"storage_size":  v.StorageSize,
		"storage_name":  v.StorageName,
		"price":         v.PriceAmount.String(),
		"priceDiscount": v.PriceDiscount.String(),
	}
}
