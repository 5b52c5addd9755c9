package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/techgear-vn/techgear/internal/constants"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.User{},
		&models.Cart{},
		&models.CartItem{},
		&models.Coupon{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	return NewCartService(cartRepo, productRepo, variantRepo, couponRepo), db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, slug string, price, discount int64, stock int) *models.Product {
	t.Helper()
	category := models.Category{
		Slug:     slug + "-category",
		NameJSON: models.JSON{"vi": "Danh mục", "en": "Category"},
	}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:    category.ID,
		Slug:          slug,
		NameJSON:      models.JSON{"vi": "Sản phẩm", "en": "Product"},
		PriceAmount:   models.NewMoneyFromInt(price),
		PriceDiscount: models.NewMoneyFromInt(discount),
		Stock:         stock,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createCartTestVariant(t *testing.T, db *gorm.DB, productID uint, sku string, price, discount int64, stock int) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		ProductID:     productID,
		SKU:           sku,
		ColorName:     "Đen",
		StorageSize:   "128GB",
		PriceAmount:   models.NewMoneyFromInt(price),
		PriceDiscount: models.NewMoneyFromInt(discount),
		Stock:         stock,
		IsActive:      true,
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	return variant
}

func createCartTestCoupon(t *testing.T, db *gorm.DB, code string, discount, minOrder int64, quantity int, scope []string) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{
		Code:           code,
		Discount:       models.NewMoneyFromInt(discount),
		MinOrderAmount: models.NewMoneyFromInt(minOrder),
		Quantity:       quantity,
		ProductScope:   models.StringArray(scope),
		IsActive:       true,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return coupon
}

func TestCartAddItemUsesDiscountedPriceAndTakesStock(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "earbuds", 1000000, 800000, 5)

	cart, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if !cart.TotalPrice.Equal(decimal.NewFromInt(1600000)) {
		t.Fatalf("expected total 1600000, got %s", cart.TotalPrice.String())
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart items: %+v", cart.Items)
	}
	if !cart.Items[0].UnitPrice.Equal(decimal.NewFromInt(800000)) {
		t.Fatalf("expected unit price 800000, got %s", cart.Items[0].UnitPrice.String())
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.Stock != 3 {
		t.Fatalf("expected stock 3, got %d", stored.Stock)
	}
}

func TestCartAddItemMergesSameLine(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "powerbank", 650000, 0, 10)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("first AddItem error: %v", err)
	}
	cart, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("second AddItem error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", cart.Items[0].Quantity)
	}
	if !cart.TotalPrice.Equal(decimal.NewFromInt(1950000)) {
		t.Fatalf("expected total 1950000, got %s", cart.TotalPrice.String())
	}
}

func TestCartAddItemInsufficientStockLeavesStockUntouched(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "limited", 500000, 0, 1)

	_, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.Stock != 1 {
		t.Fatalf("expected stock unchanged at 1, got %d", stored.Stock)
	}
	cart, err := repository.NewCartRepository(db).GetByUser(1)
	if err != nil {
		t.Fatalf("GetByUser error: %v", err)
	}
	if cart != nil {
		t.Fatalf("expected no cart after failed add, got %+v", cart)
	}
}

func TestCartAddItemVariantLine(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "phone", 15000000, 0, 0)
	variant := createCartTestVariant(t, db, product.ID, "PH-BLK-256", 17000000, 16000000, 6)

	cart, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, VariantID: &variant.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].SKU != "PH-BLK-256" {
		t.Fatalf("unexpected line: %+v", cart.Items)
	}
	if !cart.Items[0].UnitPrice.Equal(decimal.NewFromInt(16000000)) {
		t.Fatalf("expected variant discount price, got %s", cart.Items[0].UnitPrice.String())
	}

	var storedVariant models.ProductVariant
	if err := db.First(&storedVariant, variant.ID).Error; err != nil {
		t.Fatalf("reload variant failed: %v", err)
	}
	if storedVariant.Stock != 5 {
		t.Fatalf("expected variant stock 5, got %d", storedVariant.Stock)
	}
	var storedProduct models.Product
	if err := db.First(&storedProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if storedProduct.Stock != 0 {
		t.Fatalf("product stock must not move for variant lines, got %d", storedProduct.Stock)
	}
}

func TestCartAddItemUnknownVariant(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "watch", 4000000, 0, 10)

	missing := uint(999)
	_, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, VariantID: &missing, Quantity: 1})
	if !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestCartUpdateQuantityRestoresStockOnDecrease(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "keyboard", 1200000, 0, 5)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	cart, err := svc.UpdateQuantity(UpdateQuantityInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("UpdateQuantity error: %v", err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", cart.Items[0].Quantity)
	}
	if !cart.TotalPrice.Equal(decimal.NewFromInt(1200000)) {
		t.Fatalf("expected total 1200000, got %s", cart.TotalPrice.String())
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.Stock != 4 {
		t.Fatalf("expected stock 4 after giving 2 back, got %d", stored.Stock)
	}
}

func TestCartUpdateQuantityInsufficientStockOnIncrease(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "mouse", 700000, 0, 3)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	_, err := svc.UpdateQuantity(UpdateQuantityInput{UserID: 1, ProductID: product.ID, Quantity: 10})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.Stock != 1 {
		t.Fatalf("expected stock still 1, got %d", stored.Stock)
	}
}

func TestCartApplyCouponDiscountsTotalAndConsumesUse(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "earbuds", 1000000, 800000, 5)
	coupon := createCartTestCoupon(t, db, "SALE100", 100000, 500000, 1, []string{constants.CouponScopeAll})

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	result, err := svc.ApplyCoupon(1, "SALE100")
	if err != nil {
		t.Fatalf("ApplyCoupon error: %v", err)
	}
	if !result.OriginalPrice.Equal(decimal.NewFromInt(1600000)) {
		t.Fatalf("expected original 1600000, got %s", result.OriginalPrice.String())
	}
	if !result.Discount.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("expected discount 100000, got %s", result.Discount.String())
	}
	if !result.Cart.TotalPrice.Equal(decimal.NewFromInt(1500000)) {
		t.Fatalf("expected total 1500000, got %s", result.Cart.TotalPrice.String())
	}

	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.Quantity != 0 {
		t.Fatalf("expected coupon quantity 0, got %d", stored.Quantity)
	}
}

func TestCartApplyCouponCodeIsCaseInsensitive(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "earbuds", 1000000, 800000, 5)
	createCartTestCoupon(t, db, "SALE100", 100000, 500000, 1, []string{constants.CouponScopeAll})

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	result, err := svc.ApplyCoupon(1, "  sale100 ")
	if err != nil {
		t.Fatalf("ApplyCoupon error: %v", err)
	}
	if !result.Discount.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("expected discount 100000, got %s", result.Discount.String())
	}
}

func TestCartApplyCouponExhausted(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "earbuds", 1000000, 0, 10)
	createCartTestCoupon(t, db, "ONCE", 50000, 0, 1, []string{constants.CouponScopeAll})

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.ApplyCoupon(1, "ONCE"); err != nil {
		t.Fatalf("first ApplyCoupon error: %v", err)
	}

	if _, err := svc.AddItem(AddItemInput{UserID: 2, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem for second user error: %v", err)
	}
	_, err := svc.ApplyCoupon(2, "ONCE")
	if !errors.Is(err, ErrCouponExhausted) {
		t.Fatalf("expected ErrCouponExhausted, got %v", err)
	}
}

func TestCartApplyCouponMinOrderCarriesAmount(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "cable", 100000, 0, 10)
	createCartTestCoupon(t, db, "BIG", 100000, 500000, 5, []string{constants.CouponScopeAll})

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	_, err := svc.ApplyCoupon(1, "BIG")
	if !errors.Is(err, ErrCouponMinAmount) {
		t.Fatalf("expected ErrCouponMinAmount, got %v", err)
	}
	var minErr *MinOrderError
	if !errors.As(err, &minErr) {
		t.Fatalf("expected MinOrderError, got %T", err)
	}
	if !minErr.Min.Equal(decimal.NewFromInt(500000)) {
		t.Fatalf("expected min 500000, got %s", minErr.Min.String())
	}
}

func TestCartApplyCouponScopeMismatch(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "charger", 600000, 0, 10)
	createCartTestCoupon(t, db, "PHONES", 100000, 0, 5, []string{"424242"})

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	_, err := svc.ApplyCoupon(1, "PHONES")
	if !errors.Is(err, ErrCouponNotApplicable) {
		t.Fatalf("expected ErrCouponNotApplicable, got %v", err)
	}
}

func TestCartRemoveLastItemClearsCouponAndRestoresStock(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "earbuds", 1000000, 800000, 5)
	coupon := createCartTestCoupon(t, db, "SALE100", 100000, 500000, 1, []string{constants.CouponScopeAll})

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.ApplyCoupon(1, "SALE100"); err != nil {
		t.Fatalf("ApplyCoupon error: %v", err)
	}

	cart, err := svc.RemoveItem(1, product.ID, nil)
	if err != nil {
		t.Fatalf("RemoveItem error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
	if cart.HasCoupon() {
		t.Fatalf("expected coupon cleared, got %q", cart.CouponCode)
	}
	if !cart.TotalPrice.Equal(decimal.Zero) {
		t.Fatalf("expected zero total, got %s", cart.TotalPrice.String())
	}

	var storedCoupon models.Coupon
	if err := db.First(&storedCoupon, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if storedCoupon.Quantity != 1 {
		t.Fatalf("expected coupon use released, got quantity %d", storedCoupon.Quantity)
	}
	var storedProduct models.Product
	if err := db.First(&storedProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if storedProduct.Stock != 5 {
		t.Fatalf("expected stock restored to 5, got %d", storedProduct.Stock)
	}
}

func TestCartRemoveItemNotInCart(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "stand", 300000, 0, 10)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	_, err := svc.RemoveItem(1, product.ID+100, nil)
	if !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartGetCartWithoutCartReturnsEmptyView(t *testing.T) {
	svc, _ := setupCartServiceTest(t)

	view, err := svc.GetCart(7)
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(view.Items))
	}
	if !view.TotalPrice.Equal(decimal.Zero) {
		t.Fatalf("expected zero total, got %s", view.TotalPrice.String())
	}
}

func TestCartGetCartSplitsSubtotalAndCoupon(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "earbuds", 1000000, 800000, 5)
	createCartTestCoupon(t, db, "SALE100", 100000, 500000, 1, []string{constants.CouponScopeAll})

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.ApplyCoupon(1, "SALE100"); err != nil {
		t.Fatalf("ApplyCoupon error: %v", err)
	}

	view, err := svc.GetCart(1)
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if !view.Subtotal.Equal(decimal.NewFromInt(1600000)) {
		t.Fatalf("expected subtotal 1600000, got %s", view.Subtotal.String())
	}
	if !view.TotalPrice.Equal(decimal.NewFromInt(1500000)) {
		t.Fatalf("expected total 1500000, got %s", view.TotalPrice.String())
	}
	if view.CouponApplied == nil || view.CouponApplied.Code != "SALE100" {
		t.Fatalf("expected coupon summary, got %+v", view.CouponApplied)
	}
	if len(view.Items) != 1 || !view.Items[0].LineTotal.Equal(decimal.NewFromInt(1600000)) {
		t.Fatalf("unexpected line view: %+v", view.Items)
	}
}

func TestCartUpdateContact(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createCartTestProduct(t, db, "hub", 900000, 0, 5)

	if _, err := svc.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	_, err := svc.UpdateContact(ContactInput{UserID: 1, Name: "Nguyễn Văn A", Phone: "", Address: "123 Lê Lợi"})
	if !errors.Is(err, ErrContactIncomplete) {
		t.Fatalf("expected ErrContactIncomplete, got %v", err)
	}

	cart, err := svc.UpdateContact(ContactInput{
		UserID:  1,
		Name:    "Nguyễn Văn A",
		Phone:   "0901234567",
		Address: "123 Lê Lợi, Quận 1",
	})
	if err != nil {
		t.Fatalf("UpdateContact error: %v", err)
	}
	if cart.ContactName != "Nguyễn Văn A" || cart.ContactPhone != "0901234567" {
		t.Fatalf("contact not stored: %+v", cart)
	}
}
