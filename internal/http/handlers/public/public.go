package public

import (
	"strconv"
	"strings"
	"time"

	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/i18n"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"
	"github.com/rasoi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PreviewOrderRequest 下单预览请求
type PreviewOrderRequest struct {
	Items []service.CheckoutItem `json:"items"`
}

// GetConfig 获取前台公共配置
func (h *Handler) GetConfig(c *gin.Context) {
	pricing := h.Pricing
	response.Success(c, gin.H{
		"languages": []string{i18n.LocaleEnUS, i18n.LocaleZhCN},
		"currency":  pricing.Currency,
		"pricing": gin.H{
			"free_delivery_threshold": models.NewMoneyFromDecimal(pricing.FreeDeliveryThreshold),
			"flat_delivery_fee":       models.NewMoneyFromDecimal(pricing.FlatDeliveryFee),
			"tax_rate":                pricing.TaxRate.String(),
		},
		"order": gin.H{
			"estimated_delivery_minutes": h.Config.Order.EstimatedDeliveryMinutes,
			"status_flow":                service.OrderStatusFlow(),
		},
		"payment_methods": service.SupportedPaymentMethods(),
		"loyalty_tiers":   service.LoyaltyTiers(),
	})
}

// GetMenuItems 获取菜品列表
func (h *Handler) GetMenuItems(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	featured, _ := strconv.ParseBool(strings.TrimSpace(c.Query("featured")))

	items, total, err := h.MenuService.ListPublic(c.Request.Context(), repository.MenuItemListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategorySlug: c.Query("category"),
		Attribute:    c.Query("attribute"),
		Search:       c.Query("search"),
		OnlyFeatured: featured,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.menu_fetch_failed", err)
		return
	}
	respondPage(c, items, page, pageSize, total)
}

// GetMenuItemBySlug 获取菜品详情
func (h *Handler) GetMenuItemBySlug(c *gin.Context) {
	item, err := h.MenuService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, menuErrorRules, response.CodeInternal, "error.menu_fetch_failed")
		return
	}
	response.Success(c, item)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetPricingQuote 按小计计算配送费、税费与总额
func (h *Handler) GetPricingQuote(c *gin.Context) {
	subtotal, err := models.ParseMoney(strings.TrimSpace(c.Query("subtotal")))
	if err != nil || subtotal.IsNegative() {
		respondError(c, response.CodeBadRequest, "error.subtotal_invalid", err)
		return
	}
	response.Success(c, h.Pricing.Quote(subtotal.Decimal))
}

// PreviewOrder 按当前菜单价格预览订单金额，游客与登录顾客通用
func (h *Handler) PreviewOrder(c *gin.Context) {
	var req PreviewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	preview, err := h.OrderService.Preview(req.Items)
	if err != nil {
		respondOrderError(c, err, "error.order_preview_failed")
		return
	}
	response.Success(c, preview)
}

// GetRunningCampaigns 进行中的营销活动
func (h *Handler) GetRunningCampaigns(c *gin.Context) {
	campaigns, err := h.CampaignService.ListRunning(time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.campaign_fetch_failed", err)
		return
	}
	response.Success(c, campaigns)
}

// GetLoyaltyTiers 会员等级与权益
func (h *Handler) GetLoyaltyTiers(c *gin.Context) {
	tiers := service.LoyaltyTiers()
	items := make([]gin.H, 0, len(tiers))
	for _, tier := range tiers {
		items = append(items, gin.H{
			"name":       tier.Name,
			"min_points": tier.MinPoints,
			"benefits":   service.BenefitsFor(tier.Name),
		})
	}
	response.Success(c, items)
}
