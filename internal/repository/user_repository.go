package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mymy-shop/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInsufficientCredits 购物金余额不足（条件更新未命中）
var ErrInsufficientCredits = errors.New("insufficient credits")

// UserRepository 会员数据访问接口
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	ListByIDs(ids []string) ([]models.User, error)
	List(filter UserListFilter) ([]models.User, int64, error)
	ListAll() ([]models.User, error)
	ListIDsWithPrefix(prefix string) ([]string, error)
	Create(user *models.User) error
	Update(user *models.User) error
	ApplyOrderSpend(id string, spend, usedCredits decimal.Decimal) error
	WithTx(tx *gorm.DB) *GormUserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建会员仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByID 根据会员编号获取
func (r *GormUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByPhone 根据手机号获取
func (r *GormUserRepository) GetByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListByIDs 批量获取会员
func (r *GormUserRepository) ListByIDs(ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// List 会员列表（搜索姓名/手机号，按生日月份过滤）
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, count := buildLikeCondition(r.db, []string{"name", "phone"})
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", count)...)
	}
	if filter.BirthMonth >= 1 && filter.BirthMonth <= 12 {
		query = query.Where(birthMonthExpr(r.db)+" = ?", fmt.Sprintf("%02d", filter.BirthMonth))
	}
	if tier := strings.TrimSpace(filter.Tier); tier != "" {
		query = query.Where("tier = ?", tier)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	if err := applyPagination(query.Order("created_at ASC, id ASC"), filter.Page, filter.PageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// ListAll 全部会员
func (r *GormUserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListIDsWithPrefix 列出指定前缀的会员编号
func (r *GormUserRepository) ListIDsWithPrefix(prefix string) ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.User{}).Where("id LIKE ?", prefix+"%").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Create 创建会员
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新会员
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ApplyOrderSpend 下单累加消费并扣减购物金，余额不足时不更新
func (r *GormUserRepository) ApplyOrderSpend(id string, spend, usedCredits decimal.Decimal) error {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND credits >= ?", id, usedCredits).
		Updates(map[string]interface{}{
			"total_spend": gorm.Expr("total_spend + ?", spend),
			"credits":     gorm.Expr("credits - ?", usedCredits),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientCredits
	}
	return nil
}
