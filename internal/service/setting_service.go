package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mymy-shop/internal/cache"
	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/logger"
	"github.com/mymy-shop/internal/repository"
)

const shopSettingsCacheTTL = 10 * time.Minute

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetShopSettings 获取商店设置（合并默认值）
// 快照损坏时记录日志并回退默认值，不向上返回错误
func (s *SettingService) GetShopSettings(ctx context.Context) (ShopSettings, error) {
	var cached ShopSettings
	if hit, err := cache.GetJSON(ctx, cache.ShopSettingsKey(), &cached); err != nil {
		logger.Warnw("shop_settings_cache_get_failed", "error", err)
	} else if hit && cached.CategoryCodes != nil {
		return cached, nil
	}

	setting, err := s.repo.GetByKey(constants.SettingKeyShopConfig)
	if err != nil {
		return DefaultShopSettings(), err
	}
	raw := ""
	if setting != nil {
		raw = setting.Value
	}
	merged, err := mergeShopSettings(raw)
	if err != nil {
		logger.Errorw("shop_settings_corrupt_fallback_default",
			"key", constants.SettingKeyShopConfig,
			"error", err,
		)
	}

	if err := cache.SetJSON(ctx, cache.ShopSettingsKey(), merged, shopSettingsCacheTTL); err != nil {
		logger.Warnw("shop_settings_cache_set_failed", "error", err)
	}
	return merged, nil
}

// UpdateShopSettings 校验并保存商店设置
func (s *SettingService) UpdateShopSettings(ctx context.Context, settings ShopSettings) (ShopSettings, error) {
	settings = settings.Clone()
	settings.normalize()
	if err := settings.Validate(); err != nil {
		return ShopSettings{}, err
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		return ShopSettings{}, err
	}
	if _, err := s.repo.Upsert(constants.SettingKeyShopConfig, string(payload)); err != nil {
		return ShopSettings{}, err
	}
	if err := cache.Del(ctx, cache.ShopSettingsKey()); err != nil {
		logger.Warnw("shop_settings_cache_del_failed", "error", err)
	}
	return settings, nil
}

// SetCategoryCode 更新单个分类的货号前缀
func (s *SettingService) SetCategoryCode(ctx context.Context, category, code string) (ShopSettings, error) {
	settings, err := s.GetShopSettings(ctx)
	if err != nil {
		return ShopSettings{}, err
	}
	settings = settings.Clone()
	settings.CategoryCodes[category] = code
	return s.UpdateShopSettings(ctx, settings)
}
