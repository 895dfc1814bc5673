package shared

import (
	"errors"

	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/i18n"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(response.RequestIDKey); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	RespondErrorWithMsg(c, code, msg, err)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	logHandlerError(c, code, msg, err)
	response.Error(c, code, msg)
}

// RespondValidationError 返回字段级校验错误，字段明细放在 data.fields。
func RespondValidationError(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)

	var policyErr interface {
		Key() string
		Args() []interface{}
	}
	if errors.As(err, &policyErr) {
		response.Error(c, response.CodeBadRequest, i18n.Sprintf(locale, policyErr.Key(), policyErr.Args()...))
		return
	}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) && len(validationErr.Fields) > 0 {
		response.ErrorWithData(c, response.CodeBadRequest, i18n.T(locale, "error.validation_failed"), gin.H{
			"fields": validationErr.Fields,
		})
		return
	}
	response.Error(c, response.CodeBadRequest, i18n.T(locale, "error.validation_failed"))
}

// logHandlerError 内部错误记 error，业务拒绝记 warn，没有原始错误不记
func logHandlerError(c *gin.Context, code int, msg string, err error) {
	if err == nil {
		return
	}
	if code >= response.CodeInternal {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"error", err,
		)
		return
	}
	RequestLog(c).Warnw("handler_rejected",
		"code", code,
		"message", msg,
		"error", err,
	)
}
