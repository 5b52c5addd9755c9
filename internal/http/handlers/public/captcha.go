package public

import (
	"github.com/techgear-vn/techgear/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha issues an image challenge for captcha-gated scenes.
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
