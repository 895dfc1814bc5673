package admin

import (
	"strings"

	"github.com/rasoi-next/internal/constants"
	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/repository"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 修改订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := parsePageQuery(c)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	orders, total, err := h.OrderService.ListAdmin(repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        c.Query("status"),
		OrderNo:       c.Query("order_no"),
		CustomerEmail: c.Query("email"),
		CreatedFrom:   createdFrom,
		CreatedTo:     createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	respondPage(c, orders, page, pageSize, total)
}

// AdminGetOrder 管理端订单详情（含状态流转记录）
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Get(id)
	if err != nil {
		respondWithMappedError(c, err, handlershared.OrderErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// AdminGetOrderStatusFlow 订单状态流转顺序
func (h *Handler) AdminGetOrderStatusFlow(c *gin.Context) {
	response.Success(c, service.OrderStatusFlow())
}

// AdminUpdateOrderStatus 后台推进订单状态，只允许向后流转
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(c.Request.Context(), service.UpdateOrderStatusInput{
		OrderID:    id,
		Status:     req.Status,
		Source:     constants.OrderStatusSourceAdmin,
		OperatorID: adminID,
	})
	if err != nil {
		respondWithMappedError(c, err, handlershared.OrderErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}

// AdminStopAutoProgress 停止订单自动推进，改为手动
func (h *Handler) AdminStopAutoProgress(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.StopAutoProgress(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, handlershared.OrderErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	requestLog(c).Infow("admin_order_auto_progress_stopped", "order_id", order.ID, "order_no", order.OrderNo)
	response.Success(c, order)
}
