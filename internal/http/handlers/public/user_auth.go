package public

import (
	"time"

	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserChangePasswordRequest 修改密码请求
type UserChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UserRegister 顾客注册，成功后直接返回登录 Token
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(c.Request.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
	})
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.register_failed")
		return
	}
	response.Success(c, buildAuthPayload(user, token, expiresAt))
}

// UserLogin 顾客登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.login_failed")
		return
	}
	response.Success(c, buildAuthPayload(user, token, expiresAt))
}

// GetCurrentUser 当前登录顾客资料
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUser(uid)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, buildUserProfile(user))
}

// UpdateUserProfile 更新资料，未传字段保持不变
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(uid, req)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.user_update_failed")
		return
	}
	response.Success(c, buildUserProfile(user))
}

// ChangeUserPassword 修改密码，成功后需重新登录
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UserChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, handlershared.PasswordErrorRules, response.CodeInternal, "error.password_change_failed")
		return
	}
	requestLog(c).Infow("user_password_changed", "user_id", uid)
	response.Success(c, gin.H{"updated": true})
}

func buildAuthPayload(user *models.User, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"user":       buildUserProfile(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	}
}

func buildUserProfile(user *models.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"display_name":    user.DisplayName,
		"phone":           user.Phone,
		"default_address": user.DefaultAddress,
		"locale":          user.Locale,
		"loyalty_points":  user.LoyaltyPoints,
		"loyalty_tier":    service.TierFor(user.LoyaltyPoints),
		"last_login_at":   user.LastLoginAt,
	}
}
