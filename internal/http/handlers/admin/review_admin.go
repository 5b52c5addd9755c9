package admin

import (
	"errors"

	"github.com/techgear-vn/techgear/internal/http/response"
	"github.com/techgear-vn/techgear/internal/service"

	"github.com/gin-gonic/gin"
)

// DeleteReview removes a review from a product page.
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			respondError(c, response.CodeNotFound, "error.review_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
