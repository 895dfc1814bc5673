package provider

import (
	"github.com/rasoi-next/internal/authz"
	"github.com/rasoi-next/internal/cache"
	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/events"
	"github.com/rasoi-next/internal/logger"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/queue"
	"github.com/rasoi-next/internal/repository"
	"github.com/rasoi-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config         *config.Config
	QueueClient    *queue.Client
	EventPublisher events.Publisher
	Pricing        service.PricingPolicy
	// TimerScheduler 仅在队列未启用时使用，进程内定时推进订单
	TimerScheduler *service.TimerProgressScheduler

	// Repositories
	AdminRepo     repository.AdminRepository
	UserRepo      repository.UserRepository
	CategoryRepo  repository.CategoryRepository
	MenuItemRepo  repository.MenuItemRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	LoyaltyRepo   repository.LoyaltyRepository
	InventoryRepo repository.InventoryRepository
	StaffRepo     repository.StaffRepository
	CampaignRepo  repository.CampaignRepository
	ReportRepo    repository.ReportRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	UserAuthService  *service.UserAuthService
	CaptchaService   *service.CaptchaService
	CategoryService  *service.CategoryService
	MenuService      *service.MenuService
	CartService      *service.CartService
	OrderService     *service.OrderService
	LoyaltyService   *service.LoyaltyService
	InventoryService *service.InventoryService
	StaffService     *service.StaffService
	CampaignService  *service.CampaignService
	ReportService    *service.ReportService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	publisher, err := events.NewPublisher(cfg.Events)
	if err != nil {
		logger.Warnw("provider_init_event_publisher_failed", "error", err, "fallback", "noop")
		publisher = events.NoopPublisher{}
	}

	pricing, err := service.NewPricingPolicy(cfg.Pricing)
	if err != nil {
		logger.Warnw("provider_pricing_config_invalid", "error", err, "fallback", "default")
		pricing = service.DefaultPricingPolicy()
	}

	c := &Container{
		Config:         cfg,
		QueueClient:    queueClient,
		EventPublisher: publisher,
		Pricing:        pricing,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.MenuItemRepo = repository.NewMenuItemRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.LoyaltyRepo = repository.NewLoyaltyRepository(db)
	c.InventoryRepo = repository.NewInventoryRepository(db)
	c.StaffRepo = repository.NewStaffRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.MenuService = service.NewMenuService(c.MenuItemRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.MenuItemRepo, c.Pricing, c.Config.Pricing.MaxItemQuantity)
	c.LoyaltyService = service.NewLoyaltyService(c.UserRepo, c.LoyaltyRepo, c.Config.Loyalty)

	var scheduler service.OrderProgressScheduler
	if c.QueueClient != nil && c.QueueClient.Enabled() {
		scheduler = service.NewQueueProgressScheduler(c.QueueClient)
	} else {
		c.TimerScheduler = service.NewTimerProgressScheduler(service.SystemClock())
		scheduler = c.TimerScheduler
	}
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.MenuItemRepo,
		c.CartRepo,
		c.LoyaltyService,
		c.Pricing,
		scheduler,
		c.EventPublisher,
		c.Config.Order,
	)
	if c.TimerScheduler != nil {
		c.TimerScheduler.SetAdvancer(c.OrderService)
	}

	c.InventoryService = service.NewInventoryService(c.InventoryRepo)
	c.StaffService = service.NewStaffService(c.StaffRepo)
	c.CampaignService = service.NewCampaignService(c.CampaignRepo)
	c.ReportService = service.NewReportService(c.ReportRepo, c.Pricing)
}

// Close 释放外部连接与定时器
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.TimerScheduler != nil {
		c.TimerScheduler.Stop()
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			logger.Warnw("provider_close_event_publisher_failed", "error", err)
		}
	}
}
