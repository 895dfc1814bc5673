package public

import (
	"strings"

	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/repository"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 登录顾客结算请求，下单项取自服务端购物车
type CheckoutRequest struct {
	Customer      service.CustomerInfo `json:"customer"`
	PaymentMethod string               `json:"payment_method"`
}

// GuestOrderRequest 游客下单请求，下单项由前端购物车快照提交
type GuestOrderRequest struct {
	Items         []service.CheckoutItem `json:"items"`
	Customer      service.CustomerInfo   `json:"customer"`
	PaymentMethod string                 `json:"payment_method"`
}

// Checkout 使用购物车下单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.CheckoutCart(c.Request.Context(), uid, req.Customer, req.PaymentMethod)
	if err != nil {
		respondOrderError(c, err, "error.order_create_failed")
		return
	}
	response.Success(c, order)
}

// CreateGuestOrder 游客下单，价格以服务端菜单为准
func (h *Handler) CreateGuestOrder(c *gin.Context) {
	var req GuestOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.Create(c.Request.Context(), service.CreateOrderInput{
		Items:         req.Items,
		Customer:      req.Customer,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondOrderError(c, err, "error.order_create_failed")
		return
	}
	response.Success(c, order)
}

// ListOrders 我的订单
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePageQuery(c)
	orders, total, err := h.OrderService.ListForUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondOrderError(c, err, "error.order_fetch_failed")
		return
	}
	respondPage(c, orders, page, pageSize, total)
}

// GetOrder 我的订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetForUser(orderID, uid)
	if err != nil {
		respondOrderError(c, err, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// TrackOrder 订单追踪，订单号与联系邮箱需同时匹配
func (h *Handler) TrackOrder(c *gin.Context) {
	orderNo := strings.TrimSpace(c.Param("order_no"))
	email := strings.TrimSpace(c.Query("email"))
	if orderNo == "" || email == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	order, err := h.OrderService.Track(orderNo, email)
	if err != nil {
		respondOrderError(c, err, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}
