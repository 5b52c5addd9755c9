package i18n

import "github.com/techgear-vn/techgear/internal/constants"

// catalogs holds the per-locale message tables. Keys follow the
// "<area>.<name>" convention used by handlers and middleware.
var catalogs = map[string]map[string]string{
	constants.LocaleVietnamese: {
		"success": "Thành công",

		"cart.item_added":       "Thêm sản phẩm vào giỏ hàng thành công",
		"cart.item_removed":     "Xoá thành công",
		"cart.quantity_updated": "Cập nhật số lượng thành công",
		"cart.contact_updated":  "Cập nhật thông tin thành công",
		"cart.coupon_applied":   "Áp dụng mã giảm giá thành công",

		"order.placed":    "Thanh toán thành công",
		"order.cancelled": "Huỷ đơn hàng thành công",

		"review.created": "Tạo đánh giá sản phẩm thành công",

		"error.internal":            "Có lỗi xảy ra, vui lòng thử lại sau",
		"error.bad_request":         "Dữ liệu không hợp lệ",
		"error.not_found":           "Không tìm thấy tài nguyên",
		"error.unauthorized":        "Vui lòng đăng nhập",
		"error.forbidden":           "Không có quyền truy cập",
		"error.too_many_requests":   "Thao tác quá nhanh, vui lòng thử lại sau",
		"error.rate_limit_unavailable": "Hệ thống đang bận, vui lòng thử lại sau",

		"error.auth_header_missing": "Thiếu thông tin xác thực",
		"error.auth_header_invalid": "Thông tin xác thực không hợp lệ",
		"error.token_invalid":       "Phiên đăng nhập không hợp lệ",
		"error.token_revoked":       "Phiên đăng nhập đã hết hiệu lực",
		"error.user_disabled":       "Tài khoản đã bị khoá",
		"error.jwt_secret_missing":  "Có lỗi xảy ra, vui lòng thử lại sau",

		"error.product_not_found":   "Sản phẩm không tồn tại",
		"error.variant_not_found":   "Phiên bản sản phẩm không tồn tại",
		"error.category_not_found":  "Danh mục không tồn tại",
		"error.insufficient_stock":  "Số lượng trong kho không đủ",
		"error.invalid_quantity":    "Số lượng không hợp lệ",
		"error.cart_not_found":      "Không tìm thấy giỏ hàng",
		"error.cart_empty":          "Giỏ hàng trống",
		"error.cart_item_not_found": "Sản phẩm không có trong giỏ hàng",
		"error.contact_incomplete":  "Vui lòng nhập đầy đủ thông tin nhận hàng",

		"error.coupon_not_found":      "Mã giảm giá không tồn tại",
		"error.coupon_not_active":     "Mã giảm giá đã hết hạn hoặc chưa đến thời gian sử dụng",
		"error.coupon_exhausted":      "Mã giảm giá đã hết lượt sử dụng",
		"error.coupon_not_applicable": "Mã giảm giá không áp dụng cho sản phẩm trong giỏ hàng",
		"error.coupon_min_order":      "Giá trị đơn hàng tối thiểu để sử dụng mã giảm giá này là %sđ",
		"error.coupon_apply_failed":   "Có lỗi xảy ra khi áp dụng mã giảm giá",
		"error.coupon_too_many":       "Bạn thao tác mã giảm giá quá nhanh, vui lòng thử lại sau",
		"error.checkout_too_many":     "Bạn thao tác thanh toán quá nhanh, vui lòng thử lại sau",

		"error.order_not_found":          "Không tìm thấy đơn hàng",
		"error.order_status_transition":  "Trạng thái đơn hàng không cho phép thao tác này",
		"error.payment_type_unsupported": "Phương thức thanh toán không được hỗ trợ",

		"error.captcha_required": "Vui lòng xác nhận mã captcha",
		"error.captcha_invalid":  "Mã captcha không đúng",
		"error.review_not_found": "Không tìm thấy đánh giá",
		"error.review_exists":    "Bạn đã đánh giá sản phẩm này rồi",
		"error.invalid_rating":   "Điểm đánh giá không hợp lệ",
	},
	constants.LocaleEnglish: {
		"success": "success",

		"cart.item_added":       "Item added to cart",
		"cart.item_removed":     "Item removed from cart",
		"cart.quantity_updated": "Quantity updated",
		"cart.contact_updated":  "Contact info updated",
		"cart.coupon_applied":   "Coupon applied",

		"order.placed":    "Order placed",
		"order.cancelled": "Order cancelled",

		"review.created": "Review created",

		"error.internal":            "Something went wrong, please try again later",
		"error.bad_request":         "Invalid request data",
		"error.not_found":           "Resource not found",
		"error.unauthorized":        "Please sign in",
		"error.forbidden":           "Permission denied",
		"error.too_many_requests":   "Too many requests, please slow down",
		"error.rate_limit_unavailable": "Service busy, please retry later",

		"error.auth_header_missing": "Missing authorization header",
		"error.auth_header_invalid": "Invalid authorization header",
		"error.token_invalid":       "Invalid session token",
		"error.token_revoked":       "Session token has been revoked",
		"error.user_disabled":       "Account has been disabled",
		"error.jwt_secret_missing":  "Something went wrong, please try again later",

		"error.product_not_found":   "Product not found",
		"error.variant_not_found":   "Product variant not found",
		"error.category_not_found":  "Category not found",
		"error.insufficient_stock":  "Insufficient stock",
		"error.invalid_quantity":    "Invalid quantity",
		"error.cart_not_found":      "Cart not found",
		"error.cart_empty":          "Cart is empty",
		"error.cart_item_not_found": "Item is not in the cart",
		"error.contact_incomplete":  "Please fill in the full shipping contact",

		"error.coupon_not_found":      "Coupon does not exist",
		"error.coupon_not_active":     "Coupon is expired or not yet active",
		"error.coupon_exhausted":      "Coupon has no remaining uses",
		"error.coupon_not_applicable": "Coupon does not apply to items in the cart",
		"error.coupon_min_order":      "Minimum order value for this coupon is %sđ",
		"error.coupon_apply_failed":   "Failed to apply coupon",
		"error.coupon_too_many":       "Too many coupon attempts, please retry later",
		"error.checkout_too_many":     "Too many checkout attempts, please retry later",

		"error.order_not_found":          "Order not found",
		"error.order_status_transition":  "Order status does not allow this operation",
		"error.payment_type_unsupported": "Unsupported payment type",

		"error.captcha_required": "Please solve the captcha",
		"error.captcha_invalid":  "Captcha answer is incorrect",
		"error.review_not_found": "Review not found",
		"error.review_exists":    "You have already reviewed this product",
		"error.invalid_rating":   "Invalid rating value",
	},
}
