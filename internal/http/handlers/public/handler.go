package public

import (
	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/provider"
	"github.com/rasoi-next/internal/service"
)

// Handler 店面接口：菜单浏览、计价、购物车、下单与订单追踪、顾客账户与积分
// 游客与登录顾客共用，登录态由路由层中间件写入上下文
type Handler struct {
	Config  *config.Config
	Pricing service.PricingPolicy

	MenuService     *service.MenuService
	CategoryService *service.CategoryService
	CampaignService *service.CampaignService
	CartService     *service.CartService
	OrderService    *service.OrderService
	LoyaltyService  *service.LoyaltyService
	UserAuthService *service.UserAuthService
}

// New 从容器中取出店面所需的服务
func New(c *provider.Container) *Handler {
	return &Handler{
		Config:          c.Config,
		Pricing:         c.Pricing,
		MenuService:     c.MenuService,
		CategoryService: c.CategoryService,
		CampaignService: c.CampaignService,
		CartService:     c.CartService,
		OrderService:    c.OrderService,
		LoyaltyService:  c.LoyaltyService,
		UserAuthService: c.UserAuthService,
	}
}
