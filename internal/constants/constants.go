package constants

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipping  = "shipping"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment type constants
const (
	PaymentTypeCOD = "cod"
)

// Coupon scope sentinel: a coupon whose product list contains this value
// applies to every product.
const CouponScopeAll = "all"

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Interaction weights used when ranking products by engagement.
const (
	InteractionWeightView     = 1
	InteractionWeightCartAdd  = 3
	InteractionWeightPurchase = 5
)

// Review rating bounds
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// Queue names
const (
	QueueDefault = "default"
)

// Task type constants
const (
	TaskInteractionTrack = "interaction:track"
)

// Interaction type constants
const (
	InteractionTypeView     = "view"
	InteractionTypeCartAdd  = "cart_add"
	InteractionTypePurchase = "purchase"
)

// Captcha provider constants
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// Locale constants
const (
	LocaleVietnamese = "vi"
	LocaleEnglish    = "en"
)
