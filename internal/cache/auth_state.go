package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rasoi-next/internal/constants"
	"github.com/rasoi-next/internal/models"
)

// AuthStateTTL 鉴权快照缓存有效期，改密或禁用时会主动删除
const AuthStateTTL = 10 * time.Minute

// UserAuthState 顾客鉴权快照，下单与积分接口每次请求都会读取
// TokenInvalidBefore 为 Unix 秒，0 表示未设置
type UserAuthState struct {
	UserID             uint   `json:"user_id"`
	Status             string `json:"status"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

// AdminAuthState 店员鉴权快照，IsSuper 为店主
type AdminAuthState struct {
	AdminID            uint   `json:"admin_id"`
	Username           string `json:"username"`
	TokenVersion       uint64 `json:"token_version"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	IsSuper            bool   `json:"is_super"`
	UpdatedAt          int64  `json:"updated_at"`
}

// Active 顾客账号是否可用，禁用账号不能下单
func (s *UserAuthState) Active() bool {
	if s == nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(s.Status)) == constants.UserStatusActive
}

// Accepts 判断 Token 版本与签发时间是否仍然有效
func (s *UserAuthState) Accepts(tokenVersion uint64, issuedAt time.Time) bool {
	if s == nil {
		return false
	}
	return acceptsToken(s.TokenVersion, s.TokenInvalidBefore, tokenVersion, issuedAt)
}

// Accepts 判断 Token 版本与签发时间是否仍然有效
func (s *AdminAuthState) Accepts(tokenVersion uint64, issuedAt time.Time) bool {
	if s == nil {
		return false
	}
	return acceptsToken(s.TokenVersion, s.TokenInvalidBefore, tokenVersion, issuedAt)
}

func acceptsToken(currentVersion uint64, invalidBefore int64, tokenVersion uint64, issuedAt time.Time) bool {
	if currentVersion != tokenVersion {
		return false
	}
	if invalidBefore <= 0 {
		return true
	}
	return !issuedAt.IsZero() && issuedAt.Unix() >= invalidBefore
}

func customerAuthKey(userID uint) string {
	return fmt.Sprintf("auth:customer:%d", userID)
}

func staffAuthKey(adminID uint) string {
	return fmt.Sprintf("auth:staff:%d", adminID)
}

func unixOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}

// BuildUserAuthState 从顾客模型构建鉴权快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	return &UserAuthState{
		UserID:             user.ID,
		Status:             user.Status,
		TokenVersion:       user.TokenVersion,
		TokenInvalidBefore: unixOrZero(user.TokenInvalidBefore),
		UpdatedAt:          time.Now().Unix(),
	}
}

// BuildAdminAuthState 从店员模型构建鉴权快照
func BuildAdminAuthState(admin *models.Admin) *AdminAuthState {
	if admin == nil {
		return nil
	}
	return &AdminAuthState{
		AdminID:            admin.ID,
		Username:           admin.Username,
		TokenVersion:       admin.TokenVersion,
		TokenInvalidBefore: unixOrZero(admin.TokenInvalidBefore),
		IsSuper:            admin.IsSuper,
		UpdatedAt:          time.Now().Unix(),
	}
}

// GetUserAuthState 获取顾客鉴权快照
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, customerAuthKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState 写入顾客鉴权快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, customerAuthKey(state.UserID), state, AuthStateTTL)
}

// DelUserAuthState 删除顾客鉴权快照
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, customerAuthKey(userID))
}

// GetAdminAuthState 获取店员鉴权快照
func GetAdminAuthState(ctx context.Context, adminID uint) (*AdminAuthState, bool, error) {
	if adminID == 0 {
		return nil, false, nil
	}
	var state AdminAuthState
	hit, err := GetJSON(ctx, staffAuthKey(adminID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAdminAuthState 写入店员鉴权快照
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.AdminID == 0 {
		return nil
	}
	return SetJSON(ctx, staffAuthKey(state.AdminID), state, AuthStateTTL)
}

// DelAdminAuthState 删除店员鉴权快照
func DelAdminAuthState(ctx context.Context, adminID uint) error {
	if adminID == 0 {
		return nil
	}
	return Del(ctx, staffAuthKey(adminID))
}
