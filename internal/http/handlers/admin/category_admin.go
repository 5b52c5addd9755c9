package admin

import (
	"errors"

	"github.com/techgear-vn/techgear/internal/http/response"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest creates or updates a category.
type CategoryRequest struct {
	Slug      string      `json:"slug" binding:"required"`
	Name      models.JSON `json:"name" binding:"required"`
	Icon      string      `json:"icon"`
	SortOrder int         `json:"sort_order"`
}

func (r *CategoryRequest) toModel() *models.Category {
	return &models.Category{
		Slug:      r.Slug,
		NameJSON:  r.Name,
		Icon:      r.Icon,
		SortOrder: r.SortOrder,
	}
}

// ListCategories returns all categories.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}

// CreateCategory creates a category.
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category := req.toModel()
	if err := h.CategoryService.Create(c.Request.Context(), category); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, gin.H{"category": category})
}

// UpdateCategory saves a category.
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category := req.toModel()
	category.ID = id
	if err := h.CategoryService.Update(c.Request.Context(), category); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, gin.H{"category": category})
}

// DeleteCategory removes a category.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(c.Request.Context(), id); err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
