package shared

import (
	"github.com/rasoi-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入 gin 上下文的键
const (
	ContextKeyRequestID    = response.RequestIDKey
	ContextKeyAdminID      = "admin_id"
	ContextKeyAdminName    = "username"
	ContextKeyAdminIsSuper = "admin_is_super"
	ContextKeyUserID       = "user_id"
	ContextKeyUserEmail    = "user_email"
)

// AdminID 读取当前后台账号 ID，缺失或类型不对时直接写回错误响应
func AdminID(c *gin.Context) (uint, bool) {
	return contextUint(c, ContextKeyAdminID, "error.admin_id_invalid", "error.admin_id_type_invalid")
}

// UserID 读取当前顾客 ID，游客请求返回 false 并写回 401
func UserID(c *gin.Context) (uint, bool) {
	return contextUint(c, ContextKeyUserID, "error.user_id_invalid", "error.user_id_type_invalid")
}

// AdminIsSuper 当前后台账号是否超级管理员
func AdminIsSuper(c *gin.Context) bool {
	value, exists := c.Get(ContextKeyAdminIsSuper)
	if !exists {
		return false
	}
	flag, _ := value.(bool)
	return flag
}

func contextUint(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		if v == 0 {
			RespondError(c, response.CodeUnauthorized, invalidKey, nil)
			return 0, false
		}
		return v, true
	case int:
		if v <= 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}
