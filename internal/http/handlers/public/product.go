package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/techgear-vn/techgear/internal/constants"
	"github.com/techgear-vn/techgear/internal/http/response"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
	"github.com/techgear-vn/techgear/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultRecommendLimit = 8

// ListProducts returns the paginated storefront catalog.
func (h *Handler) ListProducts(c *gin.Context) {
	filter := repository.ProductListFilter{
		Page:         parseIntQuery(c, "page", 1),
		PageSize:     parseIntQuery(c, "pageSize", 20),
		Brand:        strings.TrimSpace(c.Query("brand")),
		Search:       strings.TrimSpace(c.Query("search")),
		OrderBy:      strings.TrimSpace(c.Query("sort")),
		OnlyActive:   true,
		WithCategory: true,
	}
	if raw := c.Query("categoryId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	if raw := c.Query("priceMin"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.PriceMin = &v
		}
	}
	if raw := c.Query("priceMax"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.PriceMax = &v
		}
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, buildPagination(filter.Page, filter.PageSize, total))
}

// GetProduct returns one product and records a view signal for
// signed-in users. The path segment is a slug, or a numeric id for
// clients that only hold the id.
func (h *Handler) GetProduct(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var (
		product *models.Product
		err     error
	)
	if id, parseErr := strconv.ParseUint(slug, 10, 64); parseErr == nil && id > 0 {
		product, err = h.ProductService.GetByID(uint(id))
	} else {
		product, err = h.ProductService.GetBySlug(c.Request.Context(), slug)
	}
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	if uid, ok := optionalUserID(c); ok {
		h.RecommendationService.Track(uid, product.ID, constants.InteractionTypeView)
	}
	response.Success(c, gin.H{"product": product})
}

// Recommendations ranks products by the user's interaction history,
// topped up with the newest active products.
func (h *Handler) Recommendations(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	limit := parseIntQuery(c, "limit", defaultRecommendLimit)

	products, err := h.RecommendationService.Recommend(uid, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// optionalUserID reads the authenticated user id without responding on
// absence. Used on public routes with optional authentication.
func optionalUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, v > 0
	case int:
		if v > 0 {
			return uint(v), true
		}
	case float64:
		if v > 0 {
			return uint(v), true
		}
	}
	return 0, false
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
