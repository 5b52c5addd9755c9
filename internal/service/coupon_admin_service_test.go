package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/techgear-vn/techgear/internal/constants"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
)

func setupCouponAdminServiceTest(t *testing.T) (*CouponAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_admin_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewCouponAdminService(repository.NewCouponRepository(db)), db
}

func TestCouponAdminCreateNormalizesCode(t *testing.T) {
	svc, db := setupCouponAdminServiceTest(t)

	coupon := &models.Coupon{
		Code:           "  sale100 ",
		Discount:       models.NewMoneyFromInt(100000),
		MinOrderAmount: models.NewMoneyFromInt(500000),
		Quantity:       10,
		ProductScope:   models.StringArray{constants.CouponScopeAll},
		IsActive:       true,
	}
	if err := svc.Create(coupon); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.Code != "SALE100" {
		t.Fatalf("expected uppercase code, got %q", stored.Code)
	}
}

func TestCouponAdminCreateRejectsDuplicateCode(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)

	first := &models.Coupon{
		Code:         "TET2026",
		Discount:     models.NewMoneyFromInt(200000),
		Quantity:     5,
		ProductScope: models.StringArray{constants.CouponScopeAll},
		IsActive:     true,
	}
	if err := svc.Create(first); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	clash := &models.Coupon{
		Code:         "tet2026",
		Discount:     models.NewMoneyFromInt(50000),
		Quantity:     5,
		ProductScope: models.StringArray{constants.CouponScopeAll},
	}
	if err := svc.Create(clash); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCouponAdminCreateValidation(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)

	noScope := &models.Coupon{
		Code:     "EMPTY",
		Discount: models.NewMoneyFromInt(10000),
		Quantity: 1,
	}
	if err := svc.Create(noScope); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty scope, got %v", err)
	}

	negative := &models.Coupon{
		Code:         "NEG",
		Discount:     models.NewMoneyFromInt(-5),
		Quantity:     1,
		ProductScope: models.StringArray{constants.CouponScopeAll},
	}
	if err := svc.Create(negative); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative discount, got %v", err)
	}
}

func TestCouponAdminUpdateAndDelete(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)

	coupon := &models.Coupon{
		Code:         "SPRING",
		Discount:     models.NewMoneyFromInt(30000),
		Quantity:     3,
		ProductScope: models.StringArray{constants.CouponScopeAll},
		IsActive:     true,
	}
	if err := svc.Create(coupon); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	coupon.Quantity = 10
	if err := svc.Update(coupon); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	updated, err := svc.Get(coupon.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if updated.Quantity != 10 {
		t.Fatalf("expected quantity 10, got %d", updated.Quantity)
	}

	if err := svc.Delete(coupon.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := svc.Get(coupon.ID); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound after delete, got %v", err)
	}
}
