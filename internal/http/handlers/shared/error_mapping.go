package shared

import (
	"errors"

	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondWithMappedError 按规则顺序匹配错误，未命中时先按错误大类兜底，再使用 fallback。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	switch {
	case errors.Is(err, service.ErrValidation):
		RespondValidationError(c, err)
	case errors.Is(err, service.ErrNotFound):
		RespondError(c, response.CodeNotFound, "error.not_found", nil)
	case errors.Is(err, service.ErrConflict):
		RespondError(c, response.CodeConflict, "error.conflict", nil)
	case errors.Is(err, service.ErrInvalidTransition):
		RespondError(c, response.CodeConflict, "error.order_status_transition_invalid", nil)
	default:
		RespondError(c, fallbackCode, fallbackKey, err)
	}
}

// ConcatMappedErrors 合并多组映射规则。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// CaptchaErrorRules 验证码错误映射
var CaptchaErrorRules = []MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
}

// PasswordErrorRules 修改密码错误映射，弱密码交给校验兜底以携带策略参数
var PasswordErrorRules = []MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrAdminNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

// OrderErrorRules 订单相关错误映射
var OrderErrorRules = []MappedError{
	{Target: service.ErrCartEmpty, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrMenuItemUnavailable, Code: response.CodeBadRequest, Key: "error.menu_item_unavailable"},
	{Target: service.ErrMenuItemNotFound, Code: response.CodeBadRequest, Key: "error.menu_item_unavailable"},
	{Target: service.ErrInvalidPaymentMethod, Code: response.CodeBadRequest, Key: "error.payment_method_invalid"},
	{Target: service.ErrInvalidOrderStatus, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrInvalidTransition, Code: response.CodeConflict, Key: "error.order_status_transition_invalid"},
}

// CartErrorRules 购物车错误映射
var CartErrorRules = []MappedError{
	{Target: service.ErrMenuItemUnavailable, Code: response.CodeBadRequest, Key: "error.menu_item_unavailable"},
	{Target: service.ErrMenuItemNotFound, Code: response.CodeNotFound, Key: "error.menu_item_not_found"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.quantity_invalid"},
	{Target: service.ErrQuantityTooLarge, Code: response.CodeBadRequest, Key: "error.quantity_too_large"},
}
