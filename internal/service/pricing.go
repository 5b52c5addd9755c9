package service

import (
	"github.com/shopspring/decimal"

	"github.com/techgear-vn/techgear/internal/models"
)

// LinePricing is the resolved stock and price for one cart line address.
// All four cart mutations and checkout resolve through the same
// function so product-level and variant-level lines behave identically.
type LinePricing struct {
	Product   *models.Product
	Variant   *models.ProductVariant
	UnitPrice models.Money
	Stock     int
}

// HasVariant reports whether the line addresses a variant.
func (p *LinePricing) HasVariant() bool {
	return p.Variant != nil
}

// resolveLinePricing resolves the (product, variant) address of a line
// to its effective stock and unit price. The discounted price wins when
// it is set above zero. A variant reference on a product that has
// variants must match, otherwise the line is rejected.
func resolveLinePricing(product *models.Product, variantID *uint) (*LinePricing, error) {
	if product == nil {
		return nil, ErrProductNotFound
	}
	if variantID == nil {
		return &LinePricing{
			Product:   product,
			UnitPrice: product.EffectivePrice(),
			Stock:     product.Stock,
		}, nil
	}

	for i := range product.Variants {
		variant := &product.Variants[i]
		if variant.ID == *variantID {
			return &LinePricing{
				Product:   product,
				Variant:   variant,
				UnitPrice: variant.EffectivePrice(),
				Stock:     variant.Stock,
			}, nil
		}
	}
	return nil, ErrVariantNotFound
}

// snapshotPrice extracts the price recorded in a line's variant info
// snapshot. Used when the referenced variant no longer exists.
func snapshotPrice(info models.JSON) (models.Money, bool) {
	if info == nil {
		return models.Money{}, false
	}
	discounted, ok := snapshotAmount(info, "priceDiscount")
	if ok && discounted.IsPositive() {
		return models.NewMoneyFromDecimal(discounted), true
	}
	base, ok := snapshotAmount(info, "price")
	if ok {
		return models.NewMoneyFromDecimal(base), true
	}
	return models.Money{}, false
}

func snapshotAmount(info models.JSON, key string) (decimal.Decimal, bool) {
	raw, ok := info[key]
	if !ok {
		return decimal.Zero, false
	}
	switch v := raw.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	case float64:
		return decimal.NewFromFloat(v), true
	default:
		return decimal.Zero, false
	}
}

// lineSubtotal sums quantity times snapshot unit price over the lines.
func lineSubtotal(items []models.CartItem) models.Money {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LineTotal().Decimal)
	}
	return models.NewMoneyFromDecimal(total)
}
