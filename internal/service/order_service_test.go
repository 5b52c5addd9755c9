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

func setupOrderServiceTest(t *testing.T) (*OrderService, *CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	cartService := NewCartService(cartRepo, productRepo, variantRepo, couponRepo)
	orderService := NewOrderService(orderRepo, cartRepo, productRepo, variantRepo, couponRepo, nil)
	return orderService, cartService, db
}

func fillOrderTestCart(t *testing.T, cartService *CartService, db *gorm.DB, userID uint) *models.Product {
	t.Helper()
	product := createCartTestProduct(t, db, fmt.Sprintf("order-product-%d", userID), 1000000, 800000, 5)
	if _, err := cartService.AddItem(AddItemInput{UserID: userID, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := cartService.UpdateContact(ContactInput{
		UserID:  userID,
		Name:    "Trần Thị B",
		Phone:   "0907654321",
		Address: "45 Nguyễn Huệ, Quận 1",
	}); err != nil {
		t.Fatalf("UpdateContact error: %v", err)
	}
	return product
}

func TestPlaceOrderSnapshotsCartAndDeletesIt(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	product := fillOrderTestCart(t, cartService, db, 1)
	createCartTestCoupon(t, db, "SALE100", 100000, 500000, 1, []string{constants.CouponScopeAll})
	if _, err := cartService.ApplyCoupon(1, "SALE100"); err != nil {
		t.Fatalf("ApplyCoupon error: %v", err)
	}

	order, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1, ClientIP: "203.0.113.9"})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.PaymentType != constants.PaymentTypeCOD {
		t.Fatalf("expected cod payment, got %s", order.PaymentType)
	}
	if !order.OriginalAmount.Equal(decimal.NewFromInt(1600000)) {
		t.Fatalf("expected original 1600000, got %s", order.OriginalAmount.String())
	}
	if !order.DiscountAmount.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("expected discount 100000, got %s", order.DiscountAmount.String())
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(1500000)) {
		t.Fatalf("expected total 1500000, got %s", order.TotalAmount.String())
	}
	if order.CouponCode != "SALE100" || order.CouponID == nil {
		t.Fatalf("expected coupon recorded, got code %q id %v", order.CouponCode, order.CouponID)
	}
	if len(order.Items) != 1 || order.Items[0].ProductID != product.ID || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}
	if order.ContactName != "Trần Thị B" {
		t.Fatalf("expected contact from cart, got %q", order.ContactName)
	}

	cart, err := repository.NewCartRepository(db).GetByUser(1)
	if err != nil {
		t.Fatalf("GetByUser error: %v", err)
	}
	if cart != nil {
		t.Fatalf("expected cart deleted after checkout, got %+v", cart)
	}

	// Stock stays consumed: the cart already held it.
	var storedProduct models.Product
	if err := db.First(&storedProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if storedProduct.Stock != 3 {
		t.Fatalf("expected stock 3 after checkout, got %d", storedProduct.Stock)
	}
}

func TestPlaceOrderFreesCartSlotForNextAdd(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	fillOrderTestCart(t, cartService, db, 1)
	if _, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1}); err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	// A fresh cart must be creatable for the same user after checkout.
	product := createCartTestProduct(t, db, "after-checkout", 300000, 0, 4)
	cart, err := cartService.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("AddItem after checkout error: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != product.ID {
		t.Fatalf("expected new cart with one line, got %+v", cart.Items)
	}
	if !cart.TotalPrice.Equal(decimal.NewFromInt(300000)) {
		t.Fatalf("expected total 300000, got %s", cart.TotalPrice.String())
	}
}

func TestPlaceOrderRequiresContact(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	product := createCartTestProduct(t, db, "no-contact", 500000, 0, 5)
	if _, err := cartService.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	_, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1})
	if !errors.Is(err, ErrContactIncomplete) {
		t.Fatalf("expected ErrContactIncomplete, got %v", err)
	}
}

func TestPlaceOrderContactOverride(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	fillOrderTestCart(t, cartService, db, 1)

	order, err := orderService.PlaceOrder(PlaceOrderInput{
		UserID:         1,
		ContactName:    "Lê Văn C",
		ContactPhone:   "0911222333",
		ContactAddress: "7 Pasteur, Quận 3",
	})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if order.ContactName != "Lê Văn C" || order.ContactPhone != "0911222333" {
		t.Fatalf("expected request contact to win, got %+v", order)
	}
}

func TestPlaceOrderRejectsUnsupportedPayment(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	fillOrderTestCart(t, cartService, db, 1)

	_, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1, PaymentType: "card"})
	if !errors.Is(err, ErrPaymentTypeUnsupported) {
		t.Fatalf("expected ErrPaymentTypeUnsupported, got %v", err)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	_, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1})
	if !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
}

func TestCancelOrderRestoresStockAndCouponUse(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	product := fillOrderTestCart(t, cartService, db, 1)
	coupon := createCartTestCoupon(t, db, "SALE100", 100000, 500000, 1, []string{constants.CouponScopeAll})
	if _, err := cartService.ApplyCoupon(1, "SALE100"); err != nil {
		t.Fatalf("ApplyCoupon error: %v", err)
	}
	order, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	cancelled, err := orderService.CancelOrder(1, order.ID)
	if err != nil {
		t.Fatalf("CancelOrder error: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at set")
	}

	var storedProduct models.Product
	if err := db.First(&storedProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if storedProduct.Stock != 5 {
		t.Fatalf("expected stock restored to 5, got %d", storedProduct.Stock)
	}
	var storedCoupon models.Coupon
	if err := db.First(&storedCoupon, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if storedCoupon.Quantity != 1 {
		t.Fatalf("expected coupon use restored, got quantity %d", storedCoupon.Quantity)
	}
}

func TestCancelOrderOwnership(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	fillOrderTestCart(t, cartService, db, 1)
	order, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	_, err = orderService.CancelOrder(2, order.ID)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign order, got %v", err)
	}
}

func TestCancelDeliveredOrderRejected(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	fillOrderTestCart(t, cartService, db, 1)
	order, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	for _, status := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusShipping,
		constants.OrderStatusDelivered,
	} {
		if _, err := orderService.AdvanceStatus(order.ID, status); err != nil {
			t.Fatalf("AdvanceStatus to %s error: %v", status, err)
		}
	}

	_, err = orderService.CancelOrder(1, order.ID)
	if !errors.Is(err, ErrOrderStatusTransition) {
		t.Fatalf("expected ErrOrderStatusTransition, got %v", err)
	}
}

func TestAdvanceStatusRejectsSkips(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	fillOrderTestCart(t, cartService, db, 1)
	order, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	_, err = orderService.AdvanceStatus(order.ID, constants.OrderStatusDelivered)
	if !errors.Is(err, ErrOrderStatusTransition) {
		t.Fatalf("expected ErrOrderStatusTransition for skipped step, got %v", err)
	}

	advanced, err := orderService.AdvanceStatus(order.ID, constants.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("AdvanceStatus error: %v", err)
	}
	if advanced.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", advanced.Status)
	}
}

func TestAdvanceStatusDeliveredStampsTime(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	fillOrderTestCart(t, cartService, db, 1)
	order, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if _, err := orderService.AdvanceStatus(order.ID, constants.OrderStatusConfirmed); err != nil {
		t.Fatalf("AdvanceStatus error: %v", err)
	}
	if _, err := orderService.AdvanceStatus(order.ID, constants.OrderStatusShipping); err != nil {
		t.Fatalf("AdvanceStatus error: %v", err)
	}

	delivered, err := orderService.AdvanceStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("AdvanceStatus error: %v", err)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("expected delivered_at set")
	}
}

func TestGetForUserHidesForeignOrders(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	fillOrderTestCart(t, cartService, db, 1)
	order, err := orderService.PlaceOrder(PlaceOrderInput{UserID: 1})
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	if _, err := orderService.GetForUser(1, order.ID); err != nil {
		t.Fatalf("GetForUser error: %v", err)
	}
	_, err = orderService.GetForUser(9, order.ID)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestListByUserPaginates(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	for i := 0; i < 3; i++ {
		product := createCartTestProduct(t, db, fmt.Sprintf("list-product-%d", i), 400000, 0, 10)
		if _, err := cartService.AddItem(AddItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
			t.Fatalf("AddItem error: %v", err)
		}
		if _, err := orderService.PlaceOrder(PlaceOrderInput{
			UserID:         1,
			ContactName:    "Trần Thị B",
			ContactPhone:   "0907654321",
			ContactAddress: "45 Nguyễn Huệ",
		}); err != nil {
			t.Fatalf("PlaceOrder error: %v", err)
		}
	}

	orders, total, err := orderService.ListByUser(1, 1, 2)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 orders, got %d", total)
	}
	if len(orders) != 2 {
		t.Fatalf("expected page of 2, got %d", len(orders))
	}
}
