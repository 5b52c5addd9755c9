package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/techgear-vn/techgear/internal/http/response"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
	"github.com/techgear-vn/techgear/internal/service"

	"github.com/gin-gonic/gin"
)

// CouponRequest creates or updates a coupon. ProductScope holds product
// IDs as strings, or the "all" sentinel.
type CouponRequest struct {
	Code           string   `json:"code" binding:"required"`
	Discount       int64    `json:"discount" binding:"required"`
	MinOrderAmount int64    `json:"min_order_amount"`
	Quantity       int      `json:"quantity"`
	ProductScope   []string `json:"product_scope" binding:"required"`
	StartsAt       string   `json:"starts_at"`
	EndsAt         string   `json:"ends_at"`
	IsActive       *bool    `json:"is_active"`
}

func (r *CouponRequest) toModel() (*models.Coupon, error) {
	startsAt, err := parseTimeNullable(r.StartsAt)
	if err != nil {
		return nil, err
	}
	endsAt, err := parseTimeNullable(r.EndsAt)
	if err != nil {
		return nil, err
	}
	coupon := &models.Coupon{
		Code:           r.Code,
		Discount:       models.NewMoneyFromInt(r.Discount),
		MinOrderAmount: models.NewMoneyFromInt(r.MinOrderAmount),
		Quantity:       r.Quantity,
		ProductScope:   models.StringArray(r.ProductScope),
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		IsActive:       true,
	}
	if r.IsActive != nil {
		coupon.IsActive = *r.IsActive
	}
	return coupon, nil
}

// ListCoupons returns the coupon list for the dashboard.
func (h *Handler) ListCoupons(c *gin.Context) {
	filter := repository.CouponListFilter{
		Code:     c.Query("code"),
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "pageSize", 20),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	coupons, total, err := h.CouponAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"coupons": coupons}, buildPagination(filter.Page, filter.PageSize, total))
}

// GetCoupon returns one coupon.
func (h *Handler) GetCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	coupon, err := h.CouponAdminService.Get(id)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, gin.H{"coupon": coupon})
}

// CreateCoupon creates a coupon.
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	coupon, err := req.toModel()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.CouponAdminService.Create(coupon); err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, gin.H{"coupon": coupon})
}

// UpdateCoupon saves a coupon.
func (h *Handler) UpdateCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	coupon, err := req.toModel()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	coupon.ID = id
	if err := h.CouponAdminService.Update(coupon); err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, gin.H{"coupon": coupon})
}

// DeleteCoupon removes a coupon.
func (h *Handler) DeleteCoupon(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CouponAdminService.Delete(id); err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondCouponError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCouponNotFound):
		respondError(c, response.CodeNotFound, "error.coupon_not_found", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	totalPage := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPage++
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
