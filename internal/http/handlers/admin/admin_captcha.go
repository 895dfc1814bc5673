package admin

import (
	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptchaConfig 登录页验证码配置
func (h *Handler) GetCaptchaConfig(c *gin.Context) {
	response.Success(c, h.CaptchaService.PublicSetting())
}

// GenerateCaptcha 生成图片验证码
func (h *Handler) GenerateCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondWithMappedError(c, err, handlershared.CaptchaErrorRules, response.CodeInternal, "error.captcha_generate_failed")
		return
	}
	response.Success(c, challenge)
}
