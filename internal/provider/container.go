package provider

import (
	"github.com/mymy-shop/internal/authz"
	"github.com/mymy-shop/internal/cache"
	"github.com/mymy-shop/internal/config"
	"github.com/mymy-shop/internal/logger"
	"github.com/mymy-shop/internal/metrics"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/queue"
	"github.com/mymy-shop/internal/repository"
	"github.com/mymy-shop/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo      repository.UserRepository
	OrderRepo     repository.OrderRepository
	ProductRepo   repository.ProductRepository
	CartRepo      repository.CartRepository
	CategoryRepo  repository.CategoryRepository
	SettingRepo   repository.SettingRepository
	NoticeRepo    repository.NoticeRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService    *authz.Service
	UserAuthService *service.UserAuthService
	SettingService  *service.SettingService
	ProductService  *service.ProductService
	CategoryService *service.CategoryService
	CartService     *service.CartService
	OrderService    *service.OrderService
	ReportService   *service.ReportService
	CustomerService *service.CustomerService
	NoticeService   *service.NoticeService
	ExportService   *service.ExportService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端（未启用时为空操作客户端）
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
	}

	if cfg.Metrics.Enabled {
		metrics.Init()
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(models.DB)

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.NoticeRepo = repository.NewNoticeRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
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

	loc := c.Config.Shop.Location()
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.SettingService, loc)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.UserRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.UserRepo, c.CartRepo, c.SettingService, c.QueueClient, loc)
	c.ReportService = service.NewReportService(c.OrderRepo, c.ProductRepo, c.UserRepo, c.DashboardRepo, loc, c.Config.Shop.ReportCacheTTL(), c.Config.Shop.ReportWeekStart(), c.Config.Shop.StatsWeekday())
	c.CustomerService = service.NewCustomerService(c.UserRepo, c.AuthzService)
	c.NoticeService = service.NewNoticeService(c.NoticeRepo, c.OrderRepo)
	c.ExportService = service.NewExportService(c.OrderRepo, c.ProductRepo, c.UserRepo, c.ReportService, loc)

	c.syncAdminRoles()
}

// syncAdminRoles 按会员管理员标记同步 casbin 角色
func (c *Container) syncAdminRoles() {
	users, err := c.UserRepo.ListAll()
	if err != nil {
		logger.Warnw("provider_sync_admin_roles_failed", "error", err)
		return
	}
	for _, user := range users {
		if !user.IsAdmin {
			continue
		}
		if err := c.AuthzService.SyncMemberAdmin(user.ID, true); err != nil {
			logger.Warnw("provider_sync_admin_role_failed", "member_id", user.ID, "error", err)
		}
	}
}
