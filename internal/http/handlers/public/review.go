package public

import (
	"strconv"

	"github.com/techgear-vn/techgear/internal/http/response"
	"github.com/techgear-vn/techgear/internal/i18n"
	"github.com/techgear-vn/techgear/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest is the review submission payload.
type CreateReviewRequest struct {
	ProductID   uint   `json:"productId" binding:"required"`
	Rating      int    `json:"rating" binding:"required"`
	Content     string `json:"content"`
	CaptchaID   string `json:"captchaId"`
	CaptchaCode string `json:"captchaCode"`
}

// CreateReview stores a product review for the signed-in user.
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	review, err := h.ReviewService.Create(service.CreateReviewInput{
		UserID:    uid,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Content:   req.Content,
		Captcha: service.CaptchaVerifyPayload{
			CaptchaID:   req.CaptchaID,
			CaptchaCode: req.CaptchaCode,
		},
	})
	if err != nil {
		respondCreateReviewError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "review.created"), gin.H{"review": review})
}

// ListReviews returns a product's reviews with the rating summary.
func (h *Handler) ListReviews(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Query("productId"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	page := parseIntQuery(c, "page", 1)
	pageSize := parseIntQuery(c, "pageSize", 20)

	reviews, total, summary, err := h.ReviewService.ListByProduct(uint(productID), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{
		"reviews": reviews,
		"summary": summary,
	}, buildPagination(page, pageSize, total))
}
