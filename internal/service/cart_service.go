package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
)

// AddItemInput is the add-to-cart request.
type AddItemInput struct {
	UserID    uint
	ProductID uint
	VariantID *uint
	Quantity  int
}

// UpdateQuantityInput sets a line to an absolute quantity.
type UpdateQuantityInput struct {
	UserID    uint
	ProductID uint
	VariantID *uint
	Quantity  int
}

// ContactInput is the shipping contact for the cart.
type ContactInput struct {
	UserID  uint
	Name    string
	Phone   string
	Address string
}

// CartLineView is one priced line in the cart read model.
type CartLineView struct {
	ProductID   uint            `json:"product_id"`
	VariantID   *uint           `json:"variant_id,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   models.Money    `json:"unit_price"`
	LineTotal   models.Money    `json:"line_total"`
	VariantInfo models.JSON     `json:"variant_info,omitempty"`
	Product     *models.Product `json:"product,omitempty"`
}

// CouponApplied is the coupon summary on the cart read model.
type CouponApplied struct {
	Code     string       `json:"code"`
	Discount models.Money `json:"discount"`
}

// CartView is the cart read model returned to the storefront.
type CartView struct {
	Items          []CartLineView `json:"data"`
	TotalPrice     models.Money   `json:"totalPrice"`
	Subtotal       models.Money   `json:"subtotal"`
	CouponApplied  *CouponApplied `json:"couponApplied,omitempty"`
	ContactName    string         `json:"contact_name,omitempty"`
	ContactPhone   string         `json:"contact_phone,omitempty"`
	ContactAddress string         `json:"contact_address,omitempty"`
}

// ApplyCouponResult carries the cart plus the discount arithmetic.
type ApplyCouponResult struct {
	Cart          *models.Cart `json:"cart"`
	Discount      models.Money `json:"discount"`
	OriginalPrice models.Money `json:"originalPrice"`
}

// CartService mutates the cart aggregate and the stock counters it
// holds against. Every stock movement happens inside a transaction
// through a conditional update, so concurrent mutations cannot
// oversell.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	couponRepo  repository.CouponRepository
}

// NewCartService creates a cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	couponRepo repository.CouponRepository,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
		couponRepo:  couponRepo,
	}
}

// AddItem adds quantity of a (product, variant) address to the user's
// cart, creating the cart on first use. Lines merge on the same
// address. The stock decrement and cart write commit together.
func (s *CartService) AddItem(input AddItemInput) (*models.Cart, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var cart *models.Cart
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		product, err := productRepo.GetByID(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}
		if !product.IsActive {
			return ErrProductNotAvailable
		}

		pricing, err := resolveLinePricing(product, input.VariantID)
		if err != nil {
			return err
		}

		// Conditional decrement doubles as the stock check.
		affected, err := s.takeStock(productRepo, variantRepo, pricing, input.Quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}

		now := time.Now()
		cart, err = cartRepo.GetByUser(input.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			cart = &models.Cart{
				UserID:    input.UserID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			cart.Items = []models.CartItem{s.newLine(pricing, input, now)}
			recomputeCartTotal(cart)
			return cartRepo.Create(cart)
		}

		merged := false
		for i := range cart.Items {
			if cart.Items[i].MatchesLine(input.ProductID, input.VariantID) {
				cart.Items[i].Quantity += input.Quantity
				cart.Items[i].UpdatedAt = now
				if err := cartRepo.SaveItem(&cart.Items[i]); err != nil {
					return err
				}
				merged = true
				break
			}
		}
		if !merged {
			line := s.newLine(pricing, input, now)
			line.CartID = cart.ID
			if err := cartRepo.SaveItem(&line); err != nil {
				return err
			}
			cart.Items = append(cart.Items, line)
		}

		recomputeCartTotal(cart)
		cart.UpdatedAt = now
		return s.saveCartHeader(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem removes a whole line addressed by (product, variant) and
// gives its quantity back to the stock counter it was taken from.
// Removing the last line clears the coupon and releases its use.
func (s *CartService) RemoveItem(userID, productID uint, variantID *uint) (*models.Cart, error) {
	if userID == 0 || productID == 0 {
		return nil, ErrInvalidInput
	}

	var cart *models.Cart
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		couponRepo := s.couponRepo.WithTx(tx)

		var err error
		cart, err = cartRepo.GetByUser(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartNotFound
		}

		lineIdx := -1
		for i := range cart.Items {
			if cart.Items[i].MatchesLine(productID, variantID) {
				lineIdx = i
				break
			}
		}
		if lineIdx < 0 {
			return ErrCartItemNotFound
		}
		line := cart.Items[lineIdx]

		if err := s.giveBackStock(productRepo, variantRepo, line.ProductID, line.VariantID, line.Quantity); err != nil {
			return err
		}
		if err := cartRepo.DeleteItem(line.ID); err != nil {
			return err
		}
		cart.Items = append(cart.Items[:lineIdx], cart.Items[lineIdx+1:]...)

		if len(cart.Items) == 0 && cart.HasCoupon() {
			if err := s.releaseCoupon(couponRepo, cart.CouponCode); err != nil {
				return err
			}
			cart.CouponCode = ""
			cart.CouponDiscount = models.Money{}
		}

		recomputeCartTotal(cart)
		cart.UpdatedAt = time.Now()
		return s.saveCartHeader(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets a line to an absolute quantity and settles the
// difference against the line's stock counter. Lowering the quantity
// restores stock.
func (s *CartService) UpdateQuantity(input UpdateQuantityInput) (*models.Cart, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrInvalidInput
	}
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var cart *models.Cart
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		var err error
		cart, err = cartRepo.GetByUser(input.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartNotFound
		}

		var line *models.CartItem
		for i := range cart.Items {
			if cart.Items[i].MatchesLine(input.ProductID, input.VariantID) {
				line = &cart.Items[i]
				break
			}
		}
		if line == nil {
			return ErrCartItemNotFound
		}

		delta := input.Quantity - line.Quantity
		if delta == 0 {
			return nil
		}
		if delta > 0 {
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotFound
			}
			pricing, err := resolveLinePricing(product, line.VariantID)
			if err != nil {
				return err
			}
			affected, err := s.takeStock(productRepo, variantRepo, pricing, delta)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock
			}
		} else {
			if err := s.giveBackStock(productRepo, variantRepo, line.ProductID, line.VariantID, -delta); err != nil {
				return err
			}
		}

		now := time.Now()
		line.Quantity = input.Quantity
		line.UpdatedAt = now
		if err := cartRepo.SaveItem(line); err != nil {
			return err
		}

		recomputeCartTotal(cart)
		cart.UpdatedAt = now
		return s.saveCartHeader(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// ApplyCoupon validates a coupon against the cart and attaches it.
// The subtotal is re-priced from current catalog state, and the coupon
// use is consumed through a conditional decrement in the same
// transaction as the cart write.
func (s *CartService) ApplyCoupon(userID uint, code string) (*ApplyCouponResult, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	// Codes are stored uppercase, match the admin-side normalization.
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrCouponNotFound
	}

	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	if !coupon.IsActive || !coupon.IsWithinWindow(time.Now()) {
		return nil, ErrCouponNotActive
	}
	if coupon.Quantity <= 0 {
		return nil, ErrCouponExhausted
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal, err := s.repriceSubtotal(cart)
	if err != nil {
		return nil, err
	}
	if subtotal.Decimal.Cmp(coupon.MinOrderAmount.Decimal) < 0 {
		return nil, &MinOrderError{Min: coupon.MinOrderAmount}
	}
	if !couponCoversCart(coupon, cart) {
		return nil, ErrCouponNotApplicable
	}

	result := &ApplyCouponResult{
		Discount:      coupon.Discount,
		OriginalPrice: subtotal,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		couponRepo := s.couponRepo.WithTx(tx)
		affected, err := couponRepo.DecrementQuantity(coupon.ID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCouponExhausted
		}

		cart.CouponCode = coupon.Code
		cart.CouponDiscount = coupon.Discount
		cart.TotalPrice = subtractToZero(subtotal, coupon.Discount)
		cart.UpdatedAt = time.Now()
		return s.saveCartHeader(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	result.Cart = cart
	return result, nil
}

// GetCart builds the cart read model. Line prices prefer the current
// variant price, fall back to the variant info snapshot when the
// variant no longer resolves, then to the product's own price.
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	view := &CartView{Items: []CartLineView{}}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return view, nil
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		product := item.Product
		if product == nil || product.ID == 0 {
			product, err = s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
		}
		if product == nil {
			continue
		}

		unitPrice := s.currentLinePrice(product, item)
		view.Items = append(view.Items, CartLineView{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   models.NewMoneyFromDecimal(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))),
			VariantInfo: item.VariantInfoJSON,
			Product:     product,
		})
	}

	view.TotalPrice = cart.TotalPrice
	view.Subtotal = cart.TotalPrice
	if cart.HasCoupon() {
		view.Subtotal = models.NewMoneyFromDecimal(cart.TotalPrice.Add(cart.CouponDiscount.Decimal))
		view.CouponApplied = &CouponApplied{
			Code:     cart.CouponCode,
			Discount: cart.CouponDiscount,
		}
	}
	view.ContactName = cart.ContactName
	view.ContactPhone = cart.ContactPhone
	view.ContactAddress = cart.ContactAddress
	return view, nil
}

// UpdateContact stores the shipping contact on the cart.
func (s *CartService) UpdateContact(input ContactInput) (*models.Cart, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	address := strings.TrimSpace(input.Address)
	if name == "" || phone == "" || address == "" {
		return nil, ErrContactIncomplete
	}

	cart, err := s.cartRepo.GetByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	cart.ContactName = name
	cart.ContactPhone = phone
	cart.ContactAddress = address
	cart.UpdatedAt = time.Now()
	if err := s.saveCartHeader(models.DB, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) newLine(pricing *LinePricing, input AddItemInput, now time.Time) models.CartItem {
	line := models.CartItem{
		ProductID: input.ProductID,
		VariantID: input.VariantID,
		Quantity:  input.Quantity,
		UnitPrice: pricing.UnitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pricing.HasVariant() {
		line.SKU = pricing.Variant.SKU
		line.VariantInfoJSON = pricing.Variant.DisplayInfo()
	}
	return line
}

// takeStock decrements the counter the line resolves to. Returns the
// affected row count from the conditional update.
func (s *CartService) takeStock(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	pricing *LinePricing,
	quantity int,
) (int64, error) {
	if pricing.HasVariant() {
		return variantRepo.DecrementStock(pricing.Variant.ID, quantity)
	}
	return productRepo.DecrementStock(pricing.Product.ID, quantity)
}

// giveBackStock restores quantity onto the counter the line was taken
// from.
func (s *CartService) giveBackStock(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	productID uint,
	variantID *uint,
	quantity int,
) error {
	if variantID != nil {
		affected, err := variantRepo.RestoreStock(*variantID, quantity)
		if err != nil {
			return err
		}
		if affected > 0 {
			return nil
		}
		// Variant deleted since add; return to the product counter.
	}
	_, err := productRepo.RestoreStock(productID, quantity)
	return err
}

func (s *CartService) releaseCoupon(couponRepo repository.CouponRepository, code string) error {
	coupon, err := couponRepo.GetByCode(code)
	if err != nil {
		return err
	}
	if coupon == nil {
		return nil
	}
	_, err = couponRepo.RestoreQuantity(coupon.ID)
	return err
}

// repriceSubtotal recomputes the cart subtotal from current catalog
// state rather than stored snapshots.
func (s *CartService) repriceSubtotal(cart *models.Cart) (models.Money, error) {
	total := decimal.Zero
	for i := range cart.Items {
		item := &cart.Items[i]
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return models.Money{}, err
			}
			product = p
		}
		if product == nil {
			return models.Money{}, ErrProductNotFound
		}
		unitPrice := s.currentLinePrice(product, item)
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return models.NewMoneyFromDecimal(total), nil
}

func (s *CartService) currentLinePrice(product *models.Product, item *models.CartItem) models.Money {
	if item.VariantID != nil {
		if item.Variant != nil && item.Variant.ID == *item.VariantID {
			return item.Variant.EffectivePrice()
		}
		for i := range product.Variants {
			if product.Variants[i].ID == *item.VariantID {
				return product.Variants[i].EffectivePrice()
			}
		}
		if price, ok := snapshotPrice(item.VariantInfoJSON); ok {
			return price
		}
	}
	return product.EffectivePrice()
}

// saveCartHeader persists the cart row without cascading item writes.
func (s *CartService) saveCartHeader(tx *gorm.DB, cart *models.Cart) error {
	return tx.Model(&models.Cart{}).
		Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"total_price":     cart.TotalPrice,
			"coupon_code":     cart.CouponCode,
			"coupon_discount": cart.CouponDiscount,
			"contact_name":    cart.ContactName,
			"contact_phone":   cart.ContactPhone,
			"contact_address": cart.ContactAddress,
			"updated_at":      cart.UpdatedAt,
		}).Error
}

// recomputeCartTotal rebuilds the running total from line snapshots,
// re-applying the attached coupon discount.
func recomputeCartTotal(cart *models.Cart) {
	subtotal := lineSubtotal(cart.Items)
	if cart.HasCoupon() {
		cart.TotalPrice = subtractToZero(subtotal, cart.CouponDiscount)
		return
	}
	cart.TotalPrice = subtotal
}

// subtractToZero returns a - b floored at zero.
func subtractToZero(a, b models.Money) models.Money {
	result := a.Sub(b.Decimal)
	if result.IsNegative() {
		return models.NewMoneyFromInt(0)
	}
	return models.NewMoneyFromDecimal(result)
}

func couponCoversCart(coupon *models.Coupon, cart *models.Cart) bool {
	if coupon.AppliesToAll() {
		return true
	}
	for i := range cart.Items {
		id := strconv.FormatUint(uint64(cart.Items[i].ProductID), 10)
		for _, scope := range coupon.ProductScope {
			if scope == id {
				return true
			}
		}
	}
	return false
}
