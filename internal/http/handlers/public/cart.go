package public

import (
	"strconv"

	"github.com/techgear-vn/techgear/internal/constants"
	"github.com/techgear-vn/techgear/internal/http/response"
	"github.com/techgear-vn/techgear/internal/i18n"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest is the add-to-cart payload. SKU and variant info
// are accepted for contract compatibility; the server resolves both
// from the catalog.
type AddCartItemRequest struct {
	ProductID   uint        `json:"productId" binding:"required"`
	Quantity    int         `json:"quantity" binding:"required"`
	VariantID   *uint       `json:"variantId"`
	SKU         string      `json:"sku"`
	VariantInfo models.JSON `json:"variantInfo"`
}

// UpdateCartQuantityRequest sets a line to an absolute quantity.
type UpdateCartQuantityRequest struct {
	ProductID uint  `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
	VariantID *uint `json:"variantId"`
}

// ApplyCouponRequest carries the coupon code to apply.
type ApplyCouponRequest struct {
	NameCoupon string `json:"nameCoupon" binding:"required"`
}

// CartContactRequest is the shipping contact payload.
type CartContactRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

// AddCartItem adds a (product, variant) line to the user's cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.AddItem(service.AddItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	h.RecommendationService.Track(uid, req.ProductID, constants.InteractionTypeCartAdd)
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "cart.item_added"), gin.H{"cart": cart})
}

// GetCart returns the priced cart read model.
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.GetCart(uid)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, gin.H{"newData": view})
}

// RemoveCartItem removes a whole line addressed by query parameters.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Query("productId"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var variantID *uint
	if raw := c.Query("variantId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		id := uint(parsed)
		variantID = &id
	}

	cart, err := h.CartService.RemoveItem(uid, uint(productID), variantID)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "cart.item_removed"), gin.H{"cart": cart})
}

// UpdateCartQuantity sets a line item to an absolute quantity.
func (h *Handler) UpdateCartQuantity(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.UpdateQuantity(service.UpdateQuantityInput{
		UserID:    uid,
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "cart.quantity_updated"), gin.H{"cart": cart})
}

// ApplyCoupon validates and attaches a coupon to the cart.
func (h *Handler) ApplyCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.CartService.ApplyCoupon(uid, req.NameCoupon)
	if err != nil {
		respondApplyCouponError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "cart.coupon_applied"), gin.H{
		"cart":          result.Cart,
		"discount":      result.Discount,
		"originalPrice": result.OriginalPrice,
	})
}

// UpdateCartContact stores the shipping contact on the cart.
func (h *Handler) UpdateCartContact(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.UpdateContact(service.ContactInput{
		UserID:  uid,
		Name:    req.FullName,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "cart.contact_updated"), gin.H{"cart": cart})
}
