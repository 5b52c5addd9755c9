package public

import (
	"errors"

	"github.com/techgear-vn/techgear/internal/http/response"
	"github.com/techgear-vn/techgear/internal/i18n"
	"github.com/techgear-vn/techgear/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds a business error to a response code and a
// message key.
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	var minOrder *service.MinOrderError
	if errors.As(err, &minOrder) {
		locale := i18n.ResolveLocale(c)
		respondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(locale, "error.coupon_min_order", minOrder.Min.String()), nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartMutationErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.invalid_quantity"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrVariantNotFound, code: response.CodeBadRequest, key: "error.variant_not_found"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, key: "error.insufficient_stock"},
	{target: service.ErrCartNotFound, code: response.CodeBadRequest, key: "error.cart_not_found"},
	{target: service.ErrCartItemNotFound, code: response.CodeBadRequest, key: "error.cart_item_not_found"},
	{target: service.ErrContactIncomplete, code: response.CodeBadRequest, key: "error.contact_incomplete"},
}

var applyCouponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, key: "error.coupon_not_found"},
	{target: service.ErrCouponNotActive, code: response.CodeBadRequest, key: "error.coupon_not_active"},
	{target: service.ErrCouponExhausted, code: response.CodeBadRequest, key: "error.coupon_exhausted"},
	{target: service.ErrCouponNotApplicable, code: response.CodeBadRequest, key: "error.coupon_not_applicable"},
	{target: service.ErrCartNotFound, code: response.CodeBadRequest, key: "error.cart_not_found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var placeOrderErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrCartNotFound, code: response.CodeBadRequest, key: "error.cart_not_found"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrContactIncomplete, code: response.CodeBadRequest, key: "error.contact_incomplete"},
	{target: service.ErrPaymentTypeUnsupported, code: response.CodeBadRequest, key: "error.payment_type_unsupported"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
}

var orderLookupErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusTransition, code: response.CodeBadRequest, key: "error.order_status_transition"},
}

var createReviewErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrInvalidRating, code: response.CodeBadRequest, key: "error.invalid_rating"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
	{target: service.ErrReviewExists, code: response.CodeBadRequest, key: "error.review_exists"},
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
}

func respondCartMutationError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "error.internal")
}

func respondApplyCouponError(c *gin.Context, err error) {
	respondWithMappedError(c, err, applyCouponErrorRules, response.CodeInternal, "error.coupon_apply_failed")
}

func respondPlaceOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, placeOrderErrorRules, response.CodeInternal, "error.internal")
}

func respondOrderLookupError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "error.internal")
}

func respondCreateReviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, createReviewErrorRules, response.CodeInternal, "error.internal")
}
