package repository

import (
	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	CountOrdersByStatus() (map[constants.OrderStatus]int64, error)
	GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error)
	CountUsers() (int64, error)
}

// DashboardStockStatsRow 库存统计
type DashboardStockStatsRow struct {
	TotalProducts      int64
	OutOfStockProducts int64
	LowStockProducts   int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

type orderStatusCountRow struct {
	Status constants.OrderStatus
	Total  int64
}

// CountOrdersByStatus 按状态统计订单数
func (r *GormDashboardRepository) CountOrdersByStatus() (map[constants.OrderStatus]int64, error) {
	var rows []orderStatusCountRow
	if err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[constants.OrderStatus]int64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Total
	}
	return result, nil
}

// GetStockStats 库存统计：缺货为 stock <= 0，低库存为 0 < stock < 阈值
func (r *GormDashboardRepository) GetStockStats(lowStockThreshold int) (DashboardStockStatsRow, error) {
	result := DashboardStockStatsRow{}
	base := func() *gorm.DB {
		return r.db.Model(&models.Product{})
	}
	if err := base().Count(&result.TotalProducts).Error; err != nil {
		return result, err
	}
	if err := base().Where("stock <= 0").Count(&result.OutOfStockProducts).Error; err != nil {
		return result, err
	}
	if lowStockThreshold > 0 {
		if err := base().Where("stock > 0 AND stock < ?", lowStockThreshold).Count(&result.LowStockProducts).Error; err != nil {
			return result, err
		}
	}
	return result, nil
}

// CountUsers 会员总数
func (r *GormDashboardRepository) CountUsers() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
