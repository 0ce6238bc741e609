package service

import (
	"context"
	"time"

	"github.com/mymy-shop/internal/cache"
	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/logger"
	"github.com/mymy-shop/internal/metrics"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"
)

const topProductsLimit = 5

// ReportService 报表服务（Redis 启用时按代次缓存）
type ReportService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	userRepo      repository.UserRepository
	dashboardRepo repository.DashboardRepository
	loc           *time.Location
	ttl           time.Duration
	weekStart     time.Weekday
	statsWeek     time.Weekday
	now           func() time.Time
}

// NewReportService 创建报表服务
// weekStart 用于会计报表，statsWeek 用于订单页统计卡片
func NewReportService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, dashboardRepo repository.DashboardRepository, loc *time.Location, ttl time.Duration, weekStart, statsWeek time.Weekday) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		dashboardRepo: dashboardRepo,
		loc:           loc,
		ttl:           ttl,
		weekStart:     weekStart,
		statsWeek:     statsWeek,
		now:           time.Now,
	}
}

// DashboardOverview 后台首页
type DashboardOverview struct {
	Metrics      DashboardMetricsReport            `json:"metrics"`
	TopProducts  []models.Product                  `json:"top_products"`
	Stock        repository.DashboardStockStatsRow `json:"stock"`
	StatusCounts map[constants.OrderStatus]int64   `json:"status_counts"`
	Customers    int64                             `json:"customers"`
}

// AccountingQuery 会计报表查询
type AccountingQuery struct {
	Range       string
	CustomStart string
	CustomEnd   string
}

// bumpReportGeneration 报表缓存代次递增
var bumpReportGeneration = cache.BumpReportGeneration

// invalidateReportCache 订单、商品或会员变更后使报表缓存失效，失败仅记录日志
func invalidateReportCache(ctx context.Context, keysAndValues ...interface{}) {
	if err := bumpReportGeneration(ctx); err != nil {
		logger.Warnw("report_cache_invalidate_failed", append(keysAndValues, "error", err)...)
	}
}

// cachedReport 先查缓存，未命中时计算并写回
func cachedReport[T any](ctx context.Context, ttl time.Duration, name string, parts []string, load func() (T, error)) (T, error) {
	var key string
	if cache.Enabled() && ttl > 0 {
		generation, err := cache.ReportGeneration(ctx)
		if err != nil {
			logger.Warnw("report_cache_generation_failed", "report", name, "error", err)
		} else {
			key = cache.ReportKey(generation, name, parts...)
			var cached T
			hit, err := cache.GetJSON(ctx, key, &cached)
			if err != nil {
				logger.Warnw("report_cache_get_failed", "report", name, "error", err)
			}
			metrics.ObserveReportCache(name, hit)
			if hit {
				return cached, nil
			}
		}
	}

	result, err := load()
	if err != nil {
		return result, err
	}
	if key != "" {
		if err := cache.SetJSON(ctx, key, result, ttl); err != nil {
			logger.Warnw("report_cache_set_failed", "report", name, "error", err)
		}
	}
	return result, nil
}

func (s *ReportService) catalog() (map[string]*models.Product, []models.Product, error) {
	products, err := s.productRepo.ListAll()
	if err != nil {
		return nil, nil, err
	}
	catalog := make(map[string]*models.Product, len(products))
	for i := range products {
		catalog[products[i].ID] = &products[i]
	}
	return catalog, products, nil
}

// Accounting 会计报表
func (s *ReportService) Accounting(ctx context.Context, query AccountingQuery) (AccountingReport, error) {
	now := s.now().In(s.loc)
	window, err := ResolveDateRange(query.Range, now, s.weekStart, query.CustomStart, query.CustomEnd)
	if err != nil {
		return AccountingReport{}, err
	}
	parts := []string{now.Format("2006-01-02"), query.Range, query.CustomStart, query.CustomEnd}
	return cachedReport(ctx, s.ttl, "accounting", parts, func() (AccountingReport, error) {
		orders, err := s.orderRepo.ListCreatedBetween(window.From, window.To)
		if err != nil {
			return AccountingReport{}, err
		}
		catalog, _, err := s.catalog()
		if err != nil {
			return AccountingReport{}, err
		}
		return AccountingStats(orders, catalog, window), nil
	})
}

// AccountingOrders 窗口内计入营收的订单（会计明细导出）
func (s *ReportService) AccountingOrders(query AccountingQuery) ([]models.Order, map[string]*models.Product, error) {
	window, err := ResolveDateRange(query.Range, s.now().In(s.loc), s.weekStart, query.CustomStart, query.CustomEnd)
	if err != nil {
		return nil, nil, err
	}
	orders, err := s.orderRepo.ListCreatedBetween(window.From, window.To)
	if err != nil {
		return nil, nil, err
	}
	revenueOrders := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if IsRevenueStatus(order.Status) {
			revenueOrders = append(revenueOrders, order)
		}
	}
	catalog, _, err := s.catalog()
	if err != nil {
		return nil, nil, err
	}
	return revenueOrders, catalog, nil
}

// Dashboard 后台首页
func (s *ReportService) Dashboard(ctx context.Context) (DashboardOverview, error) {
	now := s.now().In(s.loc)
	return cachedReport(ctx, s.ttl, "dashboard", []string{now.Format("2006-01-02")}, func() (DashboardOverview, error) {
		orders, err := s.orderRepo.ListCreatedBetween(nil, nil)
		if err != nil {
			return DashboardOverview{}, err
		}
		catalog, products, err := s.catalog()
		if err != nil {
			return DashboardOverview{}, err
		}
		stock, err := s.dashboardRepo.GetStockStats(constants.LowStockThreshold)
		if err != nil {
			return DashboardOverview{}, err
		}
		counts, err := s.dashboardRepo.CountOrdersByStatus()
		if err != nil {
			return DashboardOverview{}, err
		}
		customers, err := s.dashboardRepo.CountUsers()
		if err != nil {
			return DashboardOverview{}, err
		}
		return DashboardOverview{
			Metrics:      DashboardMetrics(orders, catalog, now),
			TopProducts:  TopProducts(products, topProductsLimit),
			Stock:        stock,
			StatusCounts: counts,
			Customers:    customers,
		}, nil
	})
}

// DashboardStats 订单页统计卡片（today / week / month / all）
func (s *ReportService) DashboardStats(ctx context.Context, rangeName string) (DashboardStatsReport, error) {
	if rangeName == constants.ReportRangeCustom {
		return DashboardStatsReport{}, ErrReportRangeInvalid
	}
	now := s.now().In(s.loc)
	window, err := ResolveDateRange(rangeName, now, s.statsWeek, "", "")
	if err != nil {
		return DashboardStatsReport{}, err
	}
	return cachedReport(ctx, s.ttl, "dashboard_stats", []string{now.Format("2006-01-02"), rangeName}, func() (DashboardStatsReport, error) {
		orders, err := s.orderRepo.ListCreatedBetween(window.From, window.To)
		if err != nil {
			return DashboardStatsReport{}, err
		}
		return DashboardStats(orders, window), nil
	})
}

// ProductPerformance 商品绩效
func (s *ReportService) ProductPerformance(ctx context.Context) ([]ProductPerformanceRow, error) {
	return cachedReport(ctx, s.ttl, "product_performance", nil, func() ([]ProductPerformanceRow, error) {
		_, products, err := s.catalog()
		if err != nil {
			return nil, err
		}
		return ProductPerformance(products), nil
	})
}

// CustomerRanking 顾客排行
func (s *ReportService) CustomerRanking(ctx context.Context, metric string) ([]CustomerRankRow, error) {
	return cachedReport(ctx, s.ttl, "customer_ranking", []string{metric}, func() ([]CustomerRankRow, error) {
		users, err := s.userRepo.ListAll()
		if err != nil {
			return nil, err
		}
		orders, err := s.orderRepo.ListCreatedBetween(nil, nil)
		if err != nil {
			return nil, err
		}
		return CustomerRanking(users, orders, metric), nil
	})
}

// Warmup 预先计算常用报表写入缓存
func (s *ReportService) Warmup(ctx context.Context, ranges []string) error {
	if len(ranges) == 0 {
		ranges = []string{constants.ReportRangeToday, constants.ReportRangeWeek, constants.ReportRangeMonth, constants.ReportRangeAll}
	}
	if _, err := s.Dashboard(ctx); err != nil {
		return err
	}
	for _, rangeName := range ranges {
		if _, err := s.DashboardStats(ctx, rangeName); err != nil {
			return err
		}
		if _, err := s.Accounting(ctx, AccountingQuery{Range: rangeName}); err != nil {
			return err
		}
	}
	return nil
}
