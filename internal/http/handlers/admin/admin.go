package admin

import (
	"time"

	"github.com/rasoi-next/internal/constants"
	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username       string                              `json:"username" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

var adminLoginErrorRules = handlershared.ConcatMappedErrors(handlershared.CaptchaErrorRules, []handlershared.MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.admin_login_invalid"},
})

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneAdminLogin, req.CaptchaPayload.ToServicePayload()); err != nil {
			respondWithMappedError(c, err, handlershared.CaptchaErrorRules, response.CodeInternal, "error.captcha_verify_failed")
			return
		}
	}

	admin, token, expiresAt, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, adminLoginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}
	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":           admin.ID,
			"username":     admin.Username,
			"display_name": admin.DisplayName,
			"is_super":     admin.IsSuper,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// GetAdminProfile 当前管理员信息
func (h *Handler) GetAdminProfile(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.GetAdmin(adminID)
	if err != nil {
		respondWithMappedError(c, err, handlershared.PasswordErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		requestLog(c).Warnw("admin_profile_roles_fetch_failed", "admin_id", adminID, "error", err)
		roles = []string{}
	}
	response.Success(c, gin.H{
		"id":            admin.ID,
		"username":      admin.Username,
		"display_name":  admin.DisplayName,
		"is_super":      admin.IsSuper,
		"last_login_at": admin.LastLoginAt,
		"roles":         roles,
	})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	// 获取当前登录用户 ID
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(c.Request.Context(), id, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, handlershared.PasswordErrorRules, response.CodeInternal, "error.save_failed")
		return
	}

	response.Success(c, gin.H{"updated": true})
}

// parseTimeNullable 解析 RFC3339 时间，空串返回 nil
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
