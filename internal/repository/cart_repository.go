package repository

import (
	"errors"

	"github.com/mymy-shop/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID string) ([]models.CartItem, error)
	GetLine(userID string, key CartLineKey) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	Save(item *models.CartItem) error
	DeleteLine(userID string, key CartLineKey) error
	DeleteLines(userID string, keys []CartLineKey) error
	ClearByUser(userID string) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取会员购物车（按加入顺序）
func (r *GormCartRepository) ListByUser(userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetLine 获取单个购物车行
func (r *GormCartRepository) GetLine(userID string, key CartLineKey) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("user_id = ? AND product_id = ? AND option = ?", userID, key.ProductID, key.Option).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Upsert 同一 商品+规格 已存在时累加数量并刷新单价，否则新增
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	existing, err := r.GetLine(item.UserID, CartLineKey{ProductID: item.ProductID, Option: item.Option})
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(item).Error
	}
	existing.Quantity += item.Quantity
	existing.Price = item.Price
	existing.ProductName = item.ProductName
	existing.ProductImage = item.ProductImage
	if err := r.db.Save(existing).Error; err != nil {
		return err
	}
	*item = *existing
	return nil
}

// Save 保存购物车行
func (r *GormCartRepository) Save(item *models.CartItem) error {
	return r.db.Save(item).Error
}

// DeleteLine 删除单个购物车行
func (r *GormCartRepository) DeleteLine(userID string, key CartLineKey) error {
	return r.db.Where("user_id = ? AND product_id = ? AND option = ?", userID, key.ProductID, key.Option).
		Delete(&models.CartItem{}).Error
}

// DeleteLines 批量删除结帐的购物车行，其余行保留
func (r *GormCartRepository) DeleteLines(userID string, keys []CartLineKey) error {
	for _, key := range keys {
		if err := r.DeleteLine(userID, key); err != nil {
			return err
		}
	}
	return nil
}

// ClearByUser 清空购物车
func (r *GormCartRepository) ClearByUser(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
