package repository

import (
	"time"

	"github.com/mymy-shop/internal/models"

	"gorm.io/gorm"
)

// NoticeRepository 会员通知数据访问接口
type NoticeRepository interface {
	Create(notice *models.Notice) error
	ListByUser(userID string, page, pageSize int) ([]models.Notice, int64, error)
	MarkRead(userID string, ids []uint, at time.Time) error
}

// GormNoticeRepository GORM 实现
type GormNoticeRepository struct {
	db *gorm.DB
}

// NewNoticeRepository 创建通知仓库
func NewNoticeRepository(db *gorm.DB) *GormNoticeRepository {
	return &GormNoticeRepository{db: db}
}

// Create 新增通知
func (r *GormNoticeRepository) Create(notice *models.Notice) error {
	return r.db.Create(notice).Error
}

// ListByUser 会员通知列表（新的在前）
func (r *GormNoticeRepository) ListByUser(userID string, page, pageSize int) ([]models.Notice, int64, error) {
	query := r.db.Model(&models.Notice{}).Where("user_id = ?", userID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var notices []models.Notice
	if err := applyPagination(query.Order("created_at DESC, id DESC"), page, pageSize).Find(&notices).Error; err != nil {
		return nil, 0, err
	}
	return notices, total, nil
}

// MarkRead 标记已读，ids 为空时标记全部
func (r *GormNoticeRepository) MarkRead(userID string, ids []uint, at time.Time) error {
	query := r.db.Model(&models.Notice{}).Where("user_id = ? AND read_at IS NULL", userID)
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	return query.Update("read_at", at).Error
}
