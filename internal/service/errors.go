package service

import (
	"errors"

	"github.com/techgear-vn/techgear/internal/models"
)

// Business errors surfaced to handlers. Handlers translate them into
// response codes and localized messages.
var (
	ErrInvalidInput = errors.New("invalid input")

	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrVariantNotFound     = errors.New("variant not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidQuantity     = errors.New("invalid quantity")

	ErrCartNotFound     = errors.New("cart not found")
	ErrCartEmpty        = errors.New("cart empty")
	ErrCartItemNotFound = errors.New("cart item not found")

	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponNotActive     = errors.New("coupon not active")
	ErrCouponExhausted     = errors.New("coupon exhausted")
	ErrCouponMinAmount     = errors.New("coupon minimum order amount not met")
	ErrCouponNotApplicable = errors.New("coupon not applicable to cart items")

	ErrContactIncomplete = errors.New("shipping contact incomplete")

	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderStatusTransition   = errors.New("order status transition not allowed")
	ErrPaymentTypeUnsupported  = errors.New("payment type unsupported")

	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugTaken        = errors.New("slug already in use")

	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("review already exists")
	ErrInvalidRating  = errors.New("invalid rating")

	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha invalid")
)

// MinOrderError carries the coupon's minimum order amount so handlers
// can include it in the localized message. It matches
// ErrCouponMinAmount under errors.Is.
type MinOrderError struct {
	Min models.Money
}

func (e *MinOrderError) Error() string {
	return "coupon minimum order amount not met: " + e.Min.String()
}

func (e *MinOrderError) Is(target error) bool {
	return target == ErrCouponMinAmount
}
