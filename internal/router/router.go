package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/mymy-shop/internal/authz"
	"github.com/mymy-shop/internal/cache"
	"github.com/mymy-shop/internal/config"
	adminhandlers "github.com/mymy-shop/internal/http/handlers/admin"
	publichandlers "github.com/mymy-shop/internal/http/handlers/public"
	"github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/logger"
	"github.com/mymy-shop/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiPrefix = "/api/v1"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	shared.RegisterValidators()
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cache.Prefix())
	if redisPrefix == "" {
		redisPrefix = "mymy"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	loginLimiter := RateLimitMiddleware(cache.Client(), loginRule, KeyByPhoneAndIP("phone"))

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	if cfg.Metrics.Enabled {
		r.Use(MetricsMiddleware())
	}
	r.Use(CORSMiddleware(cfg.CORS))

	health := func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}

	// API 路由组
	apiV1 := r.Group(apiPrefix)
	{
		apiV1.GET("/health", health)

		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.GetCategories)
		}

		// 会员认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", loginLimiter, publicHandler.UserLogin)
			auth.POST("/register", loginLimiter, publicHandler.UserRegister)
		}

		// 会员接口（需鉴权）
		member := apiV1.Group("")
		member.Use(MemberJWTAuthMiddleware(c.UserAuthService, c.UserRepo))
		{
			member.GET("/me", publicHandler.GetCurrentUser)
			member.PUT("/me", publicHandler.UpdateUserProfile)
			member.GET("/notices", publicHandler.ListNotices)
			member.POST("/notices/read", publicHandler.MarkNoticesRead)
			member.GET("/cart", publicHandler.GetCart)
			member.POST("/cart/items", publicHandler.AddCartItem)
			member.PATCH("/cart/items", publicHandler.UpdateCartItem)
			member.DELETE("/cart/items", publicHandler.DeleteCartItem)
			member.POST("/checkout/channels", publicHandler.ResolveCheckoutChannels)
			member.POST("/checkout/preview", publicHandler.PreviewCheckout)
			member.POST("/orders", publicHandler.CreateOrder)
			member.GET("/orders", publicHandler.ListOrders)
			member.GET("/orders/:id", publicHandler.GetOrder)
			member.POST("/orders/:id/payment-report", publicHandler.ReportPayment)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(MemberJWTAuthMiddleware(c.UserAuthService, c.UserRepo), AdminRBACMiddleware(c.AuthzService))
		{
			// 仪表盘与报表
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)
			admin.GET("/reports/accounting", adminHandler.GetAccounting)
			admin.GET("/reports/products", adminHandler.GetProductPerformance)
			admin.GET("/reports/customers", adminHandler.GetCustomerRanking)

			// 商品管理
			admin.GET("/products", adminHandler.GetAdminProducts)
			admin.GET("/products/code-preview", adminHandler.PreviewProductCode)
			admin.GET("/products/:id", adminHandler.GetAdminProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			// 分类管理
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.DELETE("/categories/:name", adminHandler.DeleteCategory)
			admin.PUT("/categories/:name/code", adminHandler.SetCategoryCode)

			// 订单管理
			admin.GET("/orders", adminHandler.GetAdminOrders)
			admin.GET("/orders/:id", adminHandler.GetAdminOrder)
			admin.POST("/orders/:id/actions", adminHandler.ApplyOrderAction)
			admin.POST("/orders/:id/quick-actions", adminHandler.ApplyOrderQuickAction)

			// 顾客管理
			admin.GET("/customers", adminHandler.GetCustomers)
			admin.GET("/customers/:id", adminHandler.GetCustomer)
			admin.PUT("/customers/:id", adminHandler.UpdateCustomer)

			// 设置
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)

			// 导出
			admin.GET("/exports/:kind", adminHandler.Export)

			// 权限目录
			admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})
		}
	}

	if cfg.Metrics.Enabled {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	r.GET("/health", health)

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册路由生成后台权限目录
func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == http.MethodOptions || method == http.MethodHead {
			continue
		}
		if !strings.HasPrefix(item.Path, apiPrefix+"/admin/") {
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
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 || segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
