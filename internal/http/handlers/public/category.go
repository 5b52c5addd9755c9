package public

import (
	"github.com/techgear-vn/techgear/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListCategories returns all categories ordered for the storefront
// navigation.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}
