package service

import (
	"context"
	"strings"
	"time"

	"github.com/mymy-shop/internal/authz"
	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/logger"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// CustomerService 后台顾客管理
type CustomerService struct {
	userRepo repository.UserRepository
	authz    *authz.Service
}

// NewCustomerService 创建顾客服务
func NewCustomerService(userRepo repository.UserRepository, authzService *authz.Service) *CustomerService {
	return &CustomerService{userRepo: userRepo, authz: authzService}
}

// CustomerUpdateInput 后台编辑顾客（nil 表示不修改）
type CustomerUpdateInput struct {
	Name     *string
	Phone    *string
	Tier     *string
	Credits  *decimal.Decimal
	Address  *string
	Birthday *string
	Note     *string
	IsAdmin  *bool
}

// List 顾客列表（姓名/手机号搜索、生日月份过滤）
func (s *CustomerService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	if filter.BirthMonth < 0 || filter.BirthMonth > 12 {
		return nil, 0, ErrInvalidInput
	}
	return s.userRepo.List(filter)
}

// Get 获取顾客
func (s *CustomerService) Get(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update 后台编辑顾客，管理员标记同步到授权角色
func (s *CustomerService) Update(ctx context.Context, id string, input CustomerUpdateInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrUserNameRequired
		}
		user.Name = name
	}
	if input.Phone != nil {
		phone, err := validPhone(*input.Phone)
		if err != nil {
			return nil, err
		}
		if phone != user.Phone {
			existing, err := s.userRepo.GetByPhone(phone)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, ErrPhoneExists
			}
			user.Phone = phone
		}
	}
	if input.Tier != nil {
		tier := strings.TrimSpace(*input.Tier)
		switch tier {
		case constants.UserTierGeneral, constants.UserTierVip, constants.UserTierWholesale:
			user.Tier = tier
		default:
			return nil, ErrTierInvalid
		}
	}
	if input.Credits != nil {
		if input.Credits.IsNegative() {
			return nil, ErrCreditsInvalid
		}
		user.Credits = models.NewMoneyFromDecimal(*input.Credits)
	}
	if input.Address != nil {
		user.Address = strings.TrimSpace(*input.Address)
	}
	if input.Birthday != nil {
		birthday, err := normalizeBirthday(*input.Birthday)
		if err != nil {
			return nil, err
		}
		user.Birthday = birthday
	}
	if input.Note != nil {
		user.Note = strings.TrimSpace(*input.Note)
	}
	adminChanged := input.IsAdmin != nil && *input.IsAdmin != user.IsAdmin
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	invalidateReportCache(ctx, "member_id", user.ID)
	if adminChanged && s.authz != nil {
		if err := s.authz.SyncMemberAdmin(user.ID, user.IsAdmin); err != nil {
			logger.Errorw("customer_sync_admin_role_failed",
				"member_id", user.ID,
				"is_admin", user.IsAdmin,
				"error", err,
			)
			return nil, err
		}
	}
	return user, nil
}
