package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rasoi-next/internal/cache"
	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/constants"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// UserAuthService 顾客认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserAuthService 创建顾客认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// UserJWTClaims 顾客 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,max=128"`
	DisplayName string `json:"display_name" validate:"max=120"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
}

// UpdateProfileInput 资料更新输入，nil 字段保持不变
type UpdateProfileInput struct {
	DisplayName    *string `json:"display_name" validate:"omitempty,max=120"`
	Phone          *string `json:"phone" validate:"omitempty,max=32"`
	DefaultAddress *string `json:"default_address" validate:"omitempty,max=500"`
	Locale         *string `json:"locale" validate:"omitempty,oneof=en-US zh-CN"`
}

// GenerateUserJWT 生成顾客 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolveExpireHours(s.cfg.UserJWT.ExpireHours, 168)) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析顾客 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Register 顾客注册
func (s *UserAuthService) Register(ctx context.Context, input RegisterInput) (*models.User, string, time.Time, error) {
	input.Email = normalizeEmail(input.Email)
	if err := validateStruct(input); err != nil {
		return nil, "", time.Time{}, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, "", time.Time{}, err
	}

	exist, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	hashedPassword, err := HashPassword(input.Password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = resolveNicknameFromEmail(input.Email)
	}
	user := &models.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
		Phone:        strings.TrimSpace(input.Phone),
		Locale:       "en-US",
		Status:       constants.UserStatusActive,
		LastLoginAt:  &now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	logger.Infow("user_registered", "user_id", user.ID)
	return user, token, expiresAt, nil
}

// Login 顾客登录
func (s *UserAuthService) Login(ctx context.Context, email, password string) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	return user, token, expiresAt, nil
}

// GetUser 获取顾客
func (s *UserAuthService) GetUser(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ResolveUserAuthState 读取顾客鉴权快照，缓存未命中时回源数据库
func (s *UserAuthService) ResolveUserAuthState(ctx context.Context, userID uint) (*cache.UserAuthState, error) {
	state, hit, err := cache.GetUserAuthState(ctx, userID)
	if err == nil && hit && state != nil {
		return state, nil
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	state = cache.BuildUserAuthState(user)
	_ = cache.SetUserAuthState(ctx, state)
	return state, nil
}

// UpdateProfile 更新顾客资料
func (s *UserAuthService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.DefaultAddress != nil {
		user.DefaultAddress = strings.TrimSpace(*input.DefaultAddress)
	}
	if input.Locale != nil {
		user.Locale = *input.Locale
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword 修改顾客密码，并让旧 Token 全部失效
func (s *UserAuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}
	if err := VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	user.PasswordHash = hashedPassword
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	return nil
}

// SetUserStatus 后台启用/禁用顾客，禁用时旧 Token 立即失效
func (s *UserAuthService) SetUserStatus(ctx context.Context, userID uint, status string) (*models.User, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return nil, &ValidationError{Fields: map[string]string{"status": "status must be active or disabled"}}
	}
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user.Status == status {
		return user, nil
	}
	user.Status = status
	if status == constants.UserStatusDisabled {
		now := time.Now()
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	logger.Infow("user_status_changed", "user_id", user.ID, "status", status)
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func resolveNicknameFromEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	return email[:at]
}
