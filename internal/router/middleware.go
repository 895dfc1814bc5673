package router

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rasoi-next/internal/authz"
	"github.com/rasoi-next/internal/cache"
	"github.com/rasoi-next/internal/config"
	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/i18n"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// AdminTokenResolver 后台 Token 解析与鉴权快照
type AdminTokenResolver interface {
	ParseJWT(tokenString string) (*service.JWTClaims, error)
	ResolveAdminAuthState(ctx context.Context, adminID uint) (*cache.AdminAuthState, error)
}

// UserTokenResolver 顾客 Token 解析与鉴权快照
type UserTokenResolver interface {
	ParseUserJWT(tokenString string) (*service.UserJWTClaims, error)
	ResolveUserAuthState(ctx context.Context, userID uint) (*cache.UserAuthState, error)
}

// PermissionEnforcer 后台权限判定
type PermissionEnforcer interface {
	EnforceAdmin(adminID uint, obj, act string) (bool, error)
}

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{"Content-Type", "Authorization", "X-Request-ID", "X-Locale", "Accept-Language"}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		allowedOrigin := resolveAllowedOrigin(c.GetHeader("Origin"), allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", requestIDHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

// resolveAllowedOrigin 携带凭证时不能返回 *，需回显具体来源
func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(handlershared.ContextKeyRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if adminID, ok := c.Get(handlershared.ContextKeyAdminID); ok {
			fields = append(fields, "admin_id", adminID)
		}
		if userID, ok := c.Get(handlershared.ContextKeyUserID); ok {
			fields = append(fields, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			sugar.Errorw("http_request", append(fields, "errors", c.Errors.String())...)
			return
		}
		sugar.Infow("http_request", fields...)
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(handlershared.ContextKeyRequestID)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// abortUnauthorized 以 401 业务码终止请求
func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// bearerToken 解析 Authorization 头，失败时已写入响应
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		abortUnauthorized(c, "error.auth_header_missing")
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		abortUnauthorized(c, "error.auth_header_invalid")
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// JWTAuthMiddleware 后台 JWT 鉴权中间件
// 改密后 TokenVersion 递增，旧 Token 立即失效。
func JWTAuthMiddleware(resolver AdminTokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if resolver == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}
		claims, err := resolver.ParseJWT(tokenString)
		if err != nil || claims == nil || claims.AdminID == 0 {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		state, err := resolver.ResolveAdminAuthState(c.Request.Context(), claims.AdminID)
		if err != nil || state == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if !state.Accepts(claims.TokenVersion, issuedAt(claims.IssuedAt)) {
			abortUnauthorized(c, "error.token_revoked")
			return
		}

		c.Set(handlershared.ContextKeyAdminID, claims.AdminID)
		c.Set(handlershared.ContextKeyAdminName, claims.Username)
		c.Set(handlershared.ContextKeyAdminIsSuper, state.IsSuper)
		c.Next()
	}
}

// AdminRBACMiddleware 后台 RBAC 鉴权中间件，超级管理员直接放行
func AdminRBACMiddleware(enforcer PermissionEnforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if handlershared.AdminIsSuper(c) {
			c.Next()
			return
		}
		if enforcer == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		adminID := c.GetUint(handlershared.ContextKeyAdminID)
		if adminID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := enforcer.EnforceAdmin(adminID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserJWTAuthMiddleware 顾客 JWT 鉴权中间件，禁用账号与已吊销 Token 均拒绝
func UserJWTAuthMiddleware(resolver UserTokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if resolver == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		tokenString, ok := bearerToken(c)
		if !ok {
			return
		}
		claims, err := resolver.ParseUserJWT(tokenString)
		if err != nil || claims == nil || claims.UserID == 0 {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		state, err := resolver.ResolveUserAuthState(c.Request.Context(), claims.UserID)
		if err != nil || state == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if !state.Active() {
			abortUnauthorized(c, "error.user_disabled")
			return
		}
		if !state.Accepts(claims.TokenVersion, issuedAt(claims.IssuedAt)) {
			abortUnauthorized(c, "error.token_revoked")
			return
		}

		c.Set(handlershared.ContextKeyUserID, claims.UserID)
		c.Set(handlershared.ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

func issuedAt(date *jwt.NumericDate) time.Time {
	if date == nil {
		return time.Time{}
	}
	return date.Time
}
