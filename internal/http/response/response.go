package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RequestIDKey 请求 ID 在 gin 上下文中的键，错误响应会带上它便于顾客反馈时排查
const RequestIDKey = "request_id"

// Response 统一响应结构，HTTP 状态恒为 200，业务结果看 status_code
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// NewPagination 按总数计算页数，pageSize 非正时视为单页
func NewPagination(page, pageSize int, total int64) Pagination {
	pagination := Pagination{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		pagination.TotalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	} else if total > 0 {
		pagination.TotalPage = 1
	}
	return pagination
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
	})
}

// SuccessWithPage 分页成功响应，空列表输出 [] 而非 null
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	if data == nil {
		data = []interface{}{}
	}
	c.JSON(http.StatusOK, PageResponse{
		StatusCode: CodeOK,
		Msg:        "success",
		Data:       data,
		Pagination: pagination,
	})
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	ErrorWithData(c, statusCode, msg, nil)
}

// ErrorWithData 错误响应，data 中附带 request_id
func ErrorWithData(c *gin.Context, statusCode int, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		StatusCode: statusCode,
		Msg:        msg,
		Data:       attachRequestID(c, data),
	})
}

// Unauthorized 401 响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403 响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// TooManyRequests 429 响应，同时写 Retry-After 头
func TooManyRequests(c *gin.Context, msg string, retryAfterSeconds int) {
	if retryAfterSeconds > 0 {
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	ErrorWithData(c, CodeTooManyRequests, msg, gin.H{"retry_after_seconds": retryAfterSeconds})
}

func attachRequestID(c *gin.Context, data interface{}) interface{} {
	requestID := ""
	if c != nil {
		requestID = c.GetString(RequestIDKey)
	}
	if requestID == "" {
		return data
	}
	switch v := data.(type) {
	case nil:
		return gin.H{RequestIDKey: requestID}
	case gin.H:
		if _, ok := v[RequestIDKey]; !ok {
			v[RequestIDKey] = requestID
		}
		return v
	default:
		return gin.H{RequestIDKey: requestID, "data": data}
	}
}
