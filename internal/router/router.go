package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rasoi-next/internal/authz"
	"github.com/rasoi-next/internal/cache"
	"github.com/rasoi-next/internal/config"
	adminhandlers "github.com/rasoi-next/internal/http/handlers/admin"
	publichandlers "github.com/rasoi-next/internal/http/handlers/public"
	"github.com/rasoi-next/internal/http/response"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.Z()
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "rasoi"
	}
	redisClient := cache.Client()
	limit := cfg.Security.LoginRateLimit
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: limit.WindowSeconds,
		MaxRequests:   limit.MaxAttempts,
		BlockSeconds:  limit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: limit.WindowSeconds,
		MaxRequests:   limit.MaxAttempts,
		MessageKey:    "error.too_many_requests",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: limit.WindowSeconds,
		MaxRequests:   limit.MaxAttempts,
		BlockSeconds:  limit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口：菜单、计价、游客下单与订单追踪
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/menu-items", publicHandler.GetMenuItems)
			public.GET("/menu-items/:slug", publicHandler.GetMenuItemBySlug)
			public.GET("/pricing/quote", publicHandler.GetPricingQuote)
			public.GET("/campaigns", publicHandler.GetRunningCampaigns)
			public.GET("/loyalty/tiers", publicHandler.GetLoyaltyTiers)
			public.POST("/orders/preview", publicHandler.PreviewOrder)
			public.POST("/orders", publicHandler.CreateGuestOrder)
			public.GET("/orders/track/:order_no", publicHandler.TrackOrder)
		}

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 顾客接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(c.UserAuthService))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
			user.GET("/me/loyalty", publicHandler.GetMyLoyalty)
			user.GET("/me/loyalty/transactions", publicHandler.GetMyLoyaltyTransactions)

			user.GET("/cart", publicHandler.GetCart)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PATCH("/cart/items/:item_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:item_id", publicHandler.DeleteCartItem)

			user.POST("/orders", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
		}

		admin := apiV1.Group("/admin")
		{
			// 登录与验证码（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)
			admin.GET("/captcha/config", adminHandler.GetCaptchaConfig)
			admin.GET("/captcha/image", adminHandler.GenerateCaptcha)

			authorized := admin.Group("")
			authorized.Use(JWTAuthMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/profile", adminHandler.GetAdminProfile)
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 权限管理
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})

				// 菜单
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
				authorized.GET("/menu-items", adminHandler.GetAdminMenuItems)
				authorized.GET("/menu-items/:id", adminHandler.GetAdminMenuItem)
				authorized.POST("/menu-items", adminHandler.CreateMenuItem)
				authorized.PUT("/menu-items/:id", adminHandler.UpdateMenuItem)
				authorized.DELETE("/menu-items/:id", adminHandler.DeleteMenuItem)

				// 订单
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/status-flow", adminHandler.AdminGetOrderStatusFlow)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
				authorized.POST("/orders/:id/stop-auto-progress", adminHandler.AdminStopAutoProgress)

				// 库存
				authorized.GET("/inventory", adminHandler.GetInventoryItems)
				authorized.GET("/inventory/low-stock", adminHandler.GetLowStockItems)
				authorized.GET("/inventory/:id", adminHandler.GetInventoryItem)
				authorized.POST("/inventory", adminHandler.CreateInventoryItem)
				authorized.PUT("/inventory/:id", adminHandler.UpdateInventoryItem)
				authorized.POST("/inventory/:id/adjust", adminHandler.AdjustInventoryItem)
				authorized.DELETE("/inventory/:id", adminHandler.DeleteInventoryItem)

				// 员工
				authorized.GET("/staff", adminHandler.GetStaffMembers)
				authorized.GET("/staff/:id", adminHandler.GetStaffMember)
				authorized.POST("/staff", adminHandler.CreateStaffMember)
				authorized.PUT("/staff/:id", adminHandler.UpdateStaffMember)
				authorized.DELETE("/staff/:id", adminHandler.DeleteStaffMember)

				// 营销活动
				authorized.GET("/campaigns", adminHandler.GetAdminCampaigns)
				authorized.GET("/campaigns/:id", adminHandler.GetAdminCampaign)
				authorized.POST("/campaigns", adminHandler.CreateCampaign)
				authorized.PUT("/campaigns/:id", adminHandler.UpdateCampaign)
				authorized.DELETE("/campaigns/:id", adminHandler.DeleteCampaign)

				// 经营报表
				authorized.GET("/reports/overview", adminHandler.GetReportOverview)
				authorized.GET("/reports/trends", adminHandler.GetReportTrends)

				// 顾客与会员
				authorized.GET("/customers", adminHandler.GetCustomers)
				authorized.GET("/customers/:id/loyalty", adminHandler.GetCustomerLoyalty)
				authorized.GET("/customers/:id/loyalty/transactions", adminHandler.GetCustomerLoyaltyTransactions)
				authorized.POST("/customers/:id/points", adminHandler.AdjustCustomerPoints)
				authorized.PATCH("/customers/:id/status", adminHandler.UpdateCustomerStatus)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册路由生成可授权的权限清单
func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))
	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") || isAnonymousAdminPath(item.Path) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module != items[j].Module {
			return items[i].Module < items[j].Module
		}
		if items[i].Object != items[j].Object {
			return items[i].Object < items[j].Object
		}
		return items[i].Method < items[j].Method
	})
	return items
}

func isAnonymousAdminPath(path string) bool {
	return path == "/api/v1/admin/login" || strings.HasPrefix(path, "/api/v1/admin/captcha/")
}

// deriveAdminPermissionModule /admin/menu-items/:id -> menu-items
func deriveAdminPermissionModule(object string) string {
	segments := strings.Split(strings.Trim(strings.TrimSpace(object), "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "system"
	}
	if segments[0] != "admin" || len(segments) == 1 {
		return segments[0]
	}
	return segments[1]
}
