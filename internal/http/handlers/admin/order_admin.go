package admin

import (
	"errors"

	handlershared "github.com/techgear-vn/techgear/internal/http/handlers/shared"
	"github.com/techgear-vn/techgear/internal/http/response"
	"github.com/techgear-vn/techgear/internal/repository"
	"github.com/techgear-vn/techgear/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest advances an order to the named status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders returns the order list for the dashboard.
func (h *Handler) ListOrders(c *gin.Context) {
	filter := repository.OrderListFilter{
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "pageSize", 20),
		Status:   c.Query("status"),
		OrderNo:  c.Query("orderNo"),
	}
	if from, err := parseTimeNullable(c.Query("from")); err == nil {
		filter.CreatedFrom = from
	}
	if to, err := parseTimeNullable(c.Query("to")); err == nil {
		filter.CreatedTo = to
	}

	orders, total, err := h.OrderService.AdminList(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"orders": orders}, buildPagination(filter.Page, filter.PageSize, total))
}

// GetOrder returns one order with its items.
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.AdminGet(id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// UpdateOrderStatus advances an order along its lifecycle.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.AdvanceStatus(id, req.Status)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	handlershared.RequestLog(c).Infow("order_status_updated",
		"admin_id", adminID,
		"order_id", order.ID,
		"status", order.Status,
	)
	response.Success(c, gin.H{"order": order})
}

// CancelOrder cancels an order on the user's behalf, restoring stock
// and coupon use.
func (h *Handler) CancelOrder(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := h.OrderService.AdminCancelOrder(id)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	handlershared.RequestLog(c).Infow("order_cancelled_by_admin",
		"admin_id", adminID,
		"order_id", order.ID,
	)
	response.Success(c, gin.H{"order": order})
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "error.order_not_found", nil)
	case errors.Is(err, service.ErrOrderStatusTransition):
		respondError(c, response.CodeBadRequest, "error.order_status_transition", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
