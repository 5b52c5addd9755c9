package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/techgear-vn/techgear/internal/models"
)

// CartRepository is the cart data access interface. The cart is loaded
// and saved as one aggregate with its line items.
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	Save(cart *models.Cart) error
	Delete(cartID uint) error
	SaveItem(item *models.CartItem) error
	DeleteItem(itemID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction runs fn in a transaction.
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByUser fetches the user's cart with its items preloaded.
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Variant").
		Where("user_id = ?", userID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Create inserts a cart together with its items.
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// Save persists the cart and its current items.
func (r *GormCartRepository) Save(cart *models.Cart) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error
}

// Delete removes a cart and its items. The delete is unscoped: carts
// are ephemeral aggregates and a dead row would keep the user's slot
// in the unique index occupied.
func (r *GormCartRepository) Delete(cartID uint) error {
	if err := r.db.Unscoped().Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.Unscoped().Delete(&models.Cart{}, cartID).Error
}

// SaveItem persists one line item.
func (r *GormCartRepository) SaveItem(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// DeleteItem removes one line item.
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}
