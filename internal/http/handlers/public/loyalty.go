package public

import (
	"strings"

	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetMyLoyalty 我的积分与会员等级
func (h *Handler) GetMyLoyalty(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	account, err := h.LoyaltyService.GetAccount(uid)
	if err != nil {
		respondWithMappedError(c, err, loyaltyErrorRules, response.CodeInternal, "error.loyalty_fetch_failed")
		return
	}
	response.Success(c, account)
}

// GetMyLoyaltyTransactions 我的积分流水
func (h *Handler) GetMyLoyaltyTransactions(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePageQuery(c)
	transactions, total, err := h.LoyaltyService.ListTransactions(repository.LoyaltyTransactionListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Type:     strings.TrimSpace(c.Query("type")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.loyalty_fetch_failed", err)
		return
	}
	respondPage(c, transactions, page, pageSize, total)
}
