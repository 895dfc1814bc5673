package admin

import (
	"strings"

	handlershared "github.com/rasoi-next/internal/http/handlers/shared"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/repository"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

var customerErrorRules = []handlershared.MappedError{
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrPointsInsufficient, Code: response.CodeBadRequest, Key: "error.points_insufficient"},
	{Target: service.ErrInvalidPoints, Code: response.CodeBadRequest, Key: "error.points_invalid"},
}

// AdjustPointsRequest 后台调整积分请求
type AdjustPointsRequest struct {
	Points int64  `json:"points" binding:"required"`
	Remark string `json:"remark"`
}

// UpdateCustomerStatusRequest 顾客状态请求
type UpdateCustomerStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetCustomers 顾客列表（含会员等级）
func (h *Handler) GetCustomers(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	customers, total, err := h.LoyaltyService.ListCustomers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	respondPage(c, customers, page, pageSize, total)
}

// GetCustomerLoyalty 顾客积分账户
func (h *Handler) GetCustomerLoyalty(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}
	account, err := h.LoyaltyService.GetAccount(userID)
	if err != nil {
		respondWithMappedError(c, err, customerErrorRules, response.CodeInternal, "error.loyalty_fetch_failed")
		return
	}
	response.Success(c, account)
}

// GetCustomerLoyaltyTransactions 顾客积分流水
func (h *Handler) GetCustomerLoyaltyTransactions(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}
	page, pageSize := parsePageQuery(c)
	transactions, total, err := h.LoyaltyService.ListTransactions(repository.LoyaltyTransactionListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Type:     strings.TrimSpace(c.Query("type")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.loyalty_fetch_failed", err)
		return
	}
	respondPage(c, transactions, page, pageSize, total)
}

// AdjustCustomerPoints 后台调整积分，余额不可为负
func (h *Handler) AdjustCustomerPoints(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	account, err := h.LoyaltyService.Adjust(service.AdjustPointsInput{
		UserID:     userID,
		Points:     req.Points,
		Remark:     strings.TrimSpace(req.Remark),
		OperatorID: adminID,
	})
	if err != nil {
		respondWithMappedError(c, err, customerErrorRules, response.CodeInternal, "error.loyalty_adjust_failed")
		return
	}
	requestLog(c).Infow("admin_loyalty_points_adjusted",
		"user_id", userID,
		"points", req.Points,
		"operator_id", adminID,
	)
	response.Success(c, account)
}

// UpdateCustomerStatus 启用/禁用顾客
func (h *Handler) UpdateCustomerStatus(c *gin.Context) {
	userID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateCustomerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAuthService.SetUserStatus(c.Request.Context(), userID, req.Status)
	if err != nil {
		respondWithMappedError(c, err, customerErrorRules, response.CodeInternal, "error.user_update_failed")
		return
	}
	response.Success(c, user)
}
