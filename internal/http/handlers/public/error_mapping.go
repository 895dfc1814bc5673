package public

import (
	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []handlershared.MappedError, fallbackCode int, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err, rules, fallbackCode, fallbackKey)
}

var userAuthErrorRules = []handlershared.MappedError{
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var menuErrorRules = []handlershared.MappedError{
	{Target: service.ErrMenuItemNotFound, Code: response.CodeNotFound, Key: "error.menu_item_not_found"},
}

var loyaltyErrorRules = []handlershared.MappedError{
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

func respondOrderError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, handlershared.OrderErrorRules, response.CodeInternal, fallbackKey)
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, handlershared.CartErrorRules, response.CodeInternal, "error.cart_update_failed")
}
