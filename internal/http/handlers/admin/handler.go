package admin

import (
	"github.com/rasoi-next/internal/authz"
	"github.com/rasoi-next/internal/provider"
	"github.com/rasoi-next/internal/repository"
	"github.com/rasoi-next/internal/service"
)

// Handler 后台接口：店员登录与权限、菜单维护、订单出餐流转、库存、排班、活动、报表与顾客积分
type Handler struct {
	AdminRepo repository.AdminRepository

	AuthService    *service.AuthService
	AuthzService   *authz.Service
	CaptchaService *service.CaptchaService

	CategoryService  *service.CategoryService
	MenuService      *service.MenuService
	OrderService     *service.OrderService
	InventoryService *service.InventoryService
	StaffService     *service.StaffService
	CampaignService  *service.CampaignService
	ReportService    *service.ReportService

	LoyaltyService  *service.LoyaltyService
	UserAuthService *service.UserAuthService
}

// New 从容器中取出后台所需的服务
func New(c *provider.Container) *Handler {
	return &Handler{
		AdminRepo:        c.AdminRepo,
		AuthService:      c.AuthService,
		AuthzService:     c.AuthzService,
		CaptchaService:   c.CaptchaService,
		CategoryService:  c.CategoryService,
		MenuService:      c.MenuService,
		OrderService:     c.OrderService,
		InventoryService: c.InventoryService,
		StaffService:     c.StaffService,
		CampaignService:  c.CampaignService,
		ReportService:    c.ReportService,
		LoyaltyService:   c.LoyaltyService,
		UserAuthService:  c.UserAuthService,
	}
}
