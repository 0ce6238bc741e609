package models

import (
	"strings"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/logger"
)

const (
	defaultAdminID    = "M001"
	defaultAdminPhone = "0900000000"
	defaultAdminName  = "Admin User"
)

// EnsureDefaultAdmin 没有任何管理员时创建默认管理员会员
func EnsureDefaultAdmin(phone, name string) (*User, error) {
	var count int64
	if err := DB.Model(&User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	phone = strings.TrimSpace(phone)
	if phone == "" {
		phone = defaultAdminPhone
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultAdminName
	}

	var existing User
	if err := DB.Where("phone = ?", phone).Limit(1).Find(&existing).Error; err != nil {
		return nil, err
	}
	if existing.ID != "" {
		if err := DB.Model(&existing).Update("is_admin", true).Error; err != nil {
			return nil, err
		}
		existing.IsAdmin = true
		logger.Warnw("default_admin_promoted", "member_id", existing.ID, "phone", phone)
		return &existing, nil
	}

	admin := User{
		ID:      defaultAdminID,
		Phone:   phone,
		Name:    name,
		Tier:    constants.UserTierVip,
		IsAdmin: true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return nil, err
	}
	logger.Warnw("default_admin_created", "member_id", admin.ID, "phone", phone)
	return &admin, nil
}
