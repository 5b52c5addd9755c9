package service

import (
	"errors"
	"testing"

	"github.com/techgear-vn/techgear/internal/models"
)

func TestResolveLinePricingProductLevel(t *testing.T) {
	product := &models.Product{
		ID:            1,
		PriceAmount:   models.NewMoneyFromInt(1000000),
		PriceDiscount: models.NewMoneyFromInt(800000),
		Stock:         5,
	}

	pricing, err := resolveLinePricing(product, nil)
	if err != nil {
		t.Fatalf("resolveLinePricing failed: %v", err)
	}
	if pricing.HasVariant() {
		t.Fatalf("expected product-level line, got variant")
	}
	if !pricing.UnitPrice.Equal(models.NewMoneyFromInt(800000).Decimal) {
		t.Fatalf("expected discounted unit price 800000, got %s", pricing.UnitPrice)
	}
	if pricing.Stock != 5 {
		t.Fatalf("expected product stock 5, got %d", pricing.Stock)
	}
}

func TestResolveLinePricingWithoutDiscount(t *testing.T) {
	product := &models.Product{
		ID:          1,
		PriceAmount: models.NewMoneyFromInt(650000),
		Stock:       40,
	}

	pricing, err := resolveLinePricing(product, nil)
	if err != nil {
		t.Fatalf("resolveLinePricing failed: %v", err)
	}
	if !pricing.UnitPrice.Equal(models.NewMoneyFromInt(650000).Decimal) {
		t.Fatalf("expected base unit price 650000, got %s", pricing.UnitPrice)
	}
}

func TestResolveLinePricingVariantLevel(t *testing.T) {
	product := &models.Product{
		ID:          2,
		PriceAmount: models.NewMoneyFromInt(15000000),
		Stock:       0,
		Variants: []models.ProductVariant{
			{ID: 10, SKU: "TGONE-BLK-128", PriceAmount: models.NewMoneyFromInt(15000000), Stock: 12},
			{ID: 11, SKU: "TGONE-BLK-256", PriceAmount: models.NewMoneyFromInt(17000000), PriceDiscount: models.NewMoneyFromInt(16000000), Stock: 6},
		},
	}

	variantID := uint(11)
	pricing, err := resolveLinePricing(product, &variantID)
	if err != nil {
		t.Fatalf("resolveLinePricing failed: %v", err)
	}
	if !pricing.HasVariant() || pricing.Variant.ID != 11 {
		t.Fatalf("expected variant 11 resolved, got %+v", pricing.Variant)
	}
	if !pricing.UnitPrice.Equal(models.NewMoneyFromInt(16000000).Decimal) {
		t.Fatalf("expected variant discount price 16000000, got %s", pricing.UnitPrice)
	}
	if pricing.Stock != 6 {
		t.Fatalf("expected variant stock 6, got %d", pricing.Stock)
	}
}

func TestResolveLinePricingUnknownVariant(t *testing.T) {
	product := &models.Product{
		ID: 2,
		Variants: []models.ProductVariant{
			{ID: 10, SKU: "TGONE-BLK-128", PriceAmount: models.NewMoneyFromInt(15000000), Stock: 12},
		},
	}

	variantID := uint(99)
	if _, err := resolveLinePricing(product, &variantID); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestResolveLinePricingNilProduct(t *testing.T) {
	if _, err := resolveLinePricing(nil, nil); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestSnapshotPriceDiscountWins(t *testing.T) {
	price, ok := snapshotPrice(models.JSON{
		"price":         "17000000",
		"priceDiscount": "16000000",
	})
	if !ok {
		t.Fatalf("expected snapshot price resolved")
	}
	if !price.Equal(models.NewMoneyFromInt(16000000).Decimal) {
		t.Fatalf("expected discount price 16000000, got %s", price)
	}
}

func TestSnapshotPriceIgnoresZeroDiscount(t *testing.T) {
	price, ok := snapshotPrice(models.JSON{
		"price":         "15000000",
		"priceDiscount": "0",
	})
	if !ok {
		t.Fatalf("expected snapshot price resolved")
	}
	if !price.Equal(models.NewMoneyFromInt(15000000).Decimal) {
		t.Fatalf("expected base price 15000000, got %s", price)
	}
}

func TestSnapshotPriceFloatForm(t *testing.T) {
	// Snapshots that round-trip through JSON decode to float64.
	price, ok := snapshotPrice(models.JSON{"price": float64(650000)})
	if !ok {
		t.Fatalf("expected snapshot price resolved")
	}
	if !price.Equal(models.NewMoneyFromInt(650000).Decimal) {
		t.Fatalf("expected price 650000, got %s", price)
	}
}

func TestSnapshotPriceMissing(t *testing.T) {
	if _, ok := snapshotPrice(nil); ok {
		t.Fatalf("expected no price from nil snapshot")
	}
	if _, ok := snapshotPrice(models.JSON{"sku": "TGONE-BLK-128"}); ok {
		t.Fatalf("expected no price from snapshot without amounts")
	}
	if _, ok := snapshotPrice(models.JSON{"price": "not-a-number"}); ok {
		t.Fatalf("expected no price from malformed snapshot")
	}
}

func TestSubtractToZeroFloors(t *testing.T) {
	got := subtractToZero(models.NewMoneyFromInt(1600000), models.NewMoneyFromInt(100000))
	if !got.Equal(models.NewMoneyFromInt(1500000).Decimal) {
		t.Fatalf("expected 1500000, got %s", got)
	}

	floored := subtractToZero(models.NewMoneyFromInt(100000), models.NewMoneyFromInt(500000))
	if !floored.Equal(models.NewMoneyFromInt(0).Decimal) {
		t.Fatalf("expected floor at zero, got %s", floored)
	}
}

func TestLineSubtotal(t *testing.T) {
	items := []models.CartItem{
		{Quantity: 2, UnitPrice: models.NewMoneyFromInt(800000)},
		{Quantity: 1, UnitPrice: models.NewMoneyFromInt(650000)},
	}
	got := lineSubtotal(items)
	if !got.Equal(models.NewMoneyFromInt(2250000).Decimal) {
		t.Fatalf("expected subtotal 2250000, got %s", got)
	}

	empty := lineSubtotal(nil)
	if !empty.Equal(models.NewMoneyFromInt(0).Decimal) {
		t.Fatalf("expected zero subtotal, got %s", empty)
	}
}
