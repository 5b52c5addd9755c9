package public

import (
	"strconv"

	"github.com/techgear-vn/techgear/internal/http/response"
	"github.com/techgear-vn/techgear/internal/i18n"
	"github.com/techgear-vn/techgear/internal/service"

	"github.com/gin-gonic/gin"
)

// PlaceOrderRequest is the checkout payload. Contact fields override
// the contact stored on the cart.
type PlaceOrderRequest struct {
	PaymentType string `json:"paymentType"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// PlaceOrder turns the user's cart into a cash-on-delivery order.
func (h *Handler) PlaceOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.PlaceOrder(service.PlaceOrderInput{
		UserID:         uid,
		PaymentType:    req.PaymentType,
		ContactName:    req.FullName,
		ContactPhone:   req.Phone,
		ContactAddress: req.Address,
		ClientIP:       c.ClientIP(),
	})
	if err != nil {
		respondPlaceOrderError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "order.placed"), gin.H{"order": order})
}

// ListOrders returns the user's orders, newest first.
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "pageSize", 20)

	orders, total, err := h.OrderService.ListByUser(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, buildPagination(page, pageSize, total))
}

// GetOrder returns one of the user's orders with its items.
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, err := h.OrderService.GetForUser(uid, uint(orderID))
	if err != nil {
		respondOrderLookupError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// CancelOrder cancels one of the user's orders, restoring the stock
// and coupon use it consumed.
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, err := h.OrderService.CancelOrder(uid, uint(orderID))
	if err != nil {
		respondOrderLookupError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "order.cancelled"), gin.H{"order": order})
}
