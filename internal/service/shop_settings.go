package service

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
)

// PaymentMethodSettings 全局付款方式开关
type PaymentMethodSettings struct {
	Cash         bool `json:"cash"`
	BankTransfer bool `json:"bankTransfer"`
	COD          bool `json:"cod"`
}

// ShippingMethodSetting 单个物流方式配置
type ShippingMethodSetting struct {
	Enabled bool         `json:"enabled"`
	Fee     models.Money `json:"fee"`
}

// ShippingMethodSettings 全部物流方式配置
type ShippingMethodSettings struct {
	Meetup   ShippingMethodSetting `json:"meetup"`
	Myship   ShippingMethodSetting `json:"myship"`
	Family   ShippingMethodSetting `json:"family"`
	Delivery ShippingMethodSetting `json:"delivery"`
}

// ShippingSettings 运费配置
type ShippingSettings struct {
	FreeThreshold models.Money           `json:"freeThreshold"`
	Methods       ShippingMethodSettings `json:"methods"`
}

// ShopSettings 商店设置快照（以 JSON 存于 settings 表 shop_config 键）
type ShopSettings struct {
	BirthdayGiftGeneral models.Money          `json:"birthdayGiftGeneral"`
	BirthdayGiftVip     models.Money          `json:"birthdayGiftVip"`
	CategoryCodes       map[string]string     `json:"categoryCodes"`
	PaymentMethods      PaymentMethodSettings `json:"paymentMethods"`
	Shipping            ShippingSettings      `json:"shipping"`
}

// DefaultShopSettings 默认设置
func DefaultShopSettings() ShopSettings {
	return ShopSettings{
		BirthdayGiftGeneral: models.NewMoneyFromInt(100),
		BirthdayGiftVip:     models.NewMoneyFromInt(500),
		CategoryCodes: map[string]string{
			"熱銷精選": "H",
			"服飾":   "C",
			"包包":   "B",
			"生活小物": "L",
		},
		PaymentMethods: PaymentMethodSettings{
			Cash:         false,
			BankTransfer: true,
			COD:          true,
		},
		Shipping: ShippingSettings{
			FreeThreshold: models.NewMoneyFromInt(2000),
			Methods: ShippingMethodSettings{
				Meetup:   ShippingMethodSetting{Enabled: true, Fee: models.NewMoneyFromInt(0)},
				Myship:   ShippingMethodSetting{Enabled: true, Fee: models.NewMoneyFromInt(35)},
				Family:   ShippingMethodSetting{Enabled: true, Fee: models.NewMoneyFromInt(39)},
				Delivery: ShippingMethodSetting{Enabled: false, Fee: models.NewMoneyFromInt(100)},
			},
		},
	}
}

// mergeShopSettings 将存储的快照逐层覆盖到默认值上
// 缺失的字段与分类代码保留默认值；快照无法解析时返回默认值与错误
func mergeShopSettings(raw string) (ShopSettings, error) {
	merged := DefaultShopSettings()
	if strings.TrimSpace(raw) == "" {
		return merged, nil
	}
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		return DefaultShopSettings(), err
	}
	if merged.CategoryCodes == nil {
		merged.CategoryCodes = DefaultShopSettings().CategoryCodes
	}
	return merged, nil
}

// Clone 深拷贝
func (s ShopSettings) Clone() ShopSettings {
	cloned := s
	cloned.CategoryCodes = make(map[string]string, len(s.CategoryCodes))
	for k, v := range s.CategoryCodes {
		cloned.CategoryCodes[k] = v
	}
	return cloned
}

// PaymentEnabled 全局是否启用付款方式
func (s ShopSettings) PaymentEnabled(method string) bool {
	switch method {
	case constants.PaymentMethodCash:
		return s.PaymentMethods.Cash
	case constants.PaymentMethodBankTransfer:
		return s.PaymentMethods.BankTransfer
	case constants.PaymentMethodCOD:
		return s.PaymentMethods.COD
	default:
		return false
	}
}

// ShippingMethod 获取物流方式配置
func (s ShopSettings) ShippingMethod(method string) (ShippingMethodSetting, bool) {
	switch method {
	case constants.ShippingMethodMeetup:
		return s.Shipping.Methods.Meetup, true
	case constants.ShippingMethodMyship:
		return s.Shipping.Methods.Myship, true
	case constants.ShippingMethodFamily:
		return s.Shipping.Methods.Family, true
	case constants.ShippingMethodDelivery:
		return s.Shipping.Methods.Delivery, true
	default:
		return ShippingMethodSetting{}, false
	}
}

// EnabledPaymentMethods 全局启用的付款方式（规范顺序）
func (s ShopSettings) EnabledPaymentMethods() []string {
	result := make([]string, 0, len(constants.PaymentMethods))
	for _, method := range constants.PaymentMethods {
		if s.PaymentEnabled(method) {
			result = append(result, method)
		}
	}
	return result
}

// EnabledShippingMethods 全局启用的物流方式（规范顺序）
func (s ShopSettings) EnabledShippingMethods() []string {
	result := make([]string, 0, len(constants.ShippingMethods))
	for _, method := range constants.ShippingMethods {
		if cfg, ok := s.ShippingMethod(method); ok && cfg.Enabled {
			result = append(result, method)
		}
	}
	return result
}

// CategoryPrefix 分类对应的货号前缀，未配置时为 Z
func (s ShopSettings) CategoryPrefix(category string) string {
	code := strings.ToUpper(strings.TrimSpace(s.CategoryCodes[strings.TrimSpace(category)]))
	if code == "" {
		return constants.ProductCodeDefaultPrefix
	}
	return code
}

// normalize 清理分类代码（大写、去空白、移除空值）
func (s *ShopSettings) normalize() {
	codes := make(map[string]string, len(s.CategoryCodes))
	for name, code := range s.CategoryCodes {
		name = strings.TrimSpace(name)
		code = strings.ToUpper(strings.TrimSpace(code))
		if name == "" || code == "" {
			continue
		}
		codes[name] = code
	}
	s.CategoryCodes = codes
}

// Validate 校验设置：金额不可为负，分类代码为单个英文字母
func (s ShopSettings) Validate() error {
	amounts := []models.Money{
		s.BirthdayGiftGeneral,
		s.BirthdayGiftVip,
		s.Shipping.FreeThreshold,
		s.Shipping.Methods.Meetup.Fee,
		s.Shipping.Methods.Myship.Fee,
		s.Shipping.Methods.Family.Fee,
		s.Shipping.Methods.Delivery.Fee,
	}
	for _, amount := range amounts {
		if amount.Decimal.IsNegative() {
			return ErrSettingsInvalid
		}
	}
	for _, code := range s.CategoryCodes {
		if !isCategoryCode(code) {
			return ErrCategoryCodeInvalid
		}
	}
	return nil
}

func isCategoryCode(code string) bool {
	runes := []rune(code)
	if len(runes) != 1 {
		return false
	}
	r := runes[0]
	return r <= unicode.MaxASCII && unicode.IsUpper(r)
}
