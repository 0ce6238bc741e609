package service

import (
	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
)

// ChannelSet 可用的付款与物流方式（规范顺序）
type ChannelSet struct {
	Payment  []string `json:"payment"`
	Shipping []string `json:"shipping"`
	// selected 记录计算时是否有选中的行，用于区分空选择与物流冲突
	selected bool
}

// LogisticsConflict 选中商品的物流方式没有交集
func (c ChannelSet) LogisticsConflict() bool {
	return c.selected && len(c.Shipping) == 0
}

// HasPayment 判断付款方式是否可用
func (c ChannelSet) HasPayment(method string) bool {
	return containsString(c.Payment, method)
}

// HasShipping 判断物流方式是否可用
func (c ChannelSet) HasShipping(method string) bool {
	return containsString(c.Shipping, method)
}

// ResolveChannels 计算选中行可用的付款与物流方式
// 以全局启用的方式为起点，逐个商品的允许清单求交集；
// 商品未设置清单表示全部允许，目录中找不到的商品不做限制。
func ResolveChannels(lines []CheckoutLine, settings ShopSettings, catalog map[string]*models.Product) ChannelSet {
	if len(lines) == 0 {
		return ChannelSet{Payment: []string{}, Shipping: []string{}}
	}

	payment := make(map[string]bool, len(constants.PaymentMethods))
	for _, method := range settings.EnabledPaymentMethods() {
		payment[method] = true
	}
	shipping := make(map[string]bool, len(constants.ShippingMethods))
	for _, method := range settings.EnabledShippingMethods() {
		shipping[method] = true
	}

	for _, line := range lines {
		product := catalog[line.ProductID]
		if product == nil {
			continue
		}
		if product.AllowPayment != nil {
			for method := range payment {
				if !product.AllowPayment.Allows(method) {
					delete(payment, method)
				}
			}
		}
		if product.AllowShipping != nil {
			for method := range shipping {
				if !product.AllowShipping.Allows(method) {
					delete(shipping, method)
				}
			}
		}
	}

	return ChannelSet{
		Payment:  orderedKeys(constants.PaymentMethods, payment),
		Shipping: orderedKeys(constants.ShippingMethods, shipping),
		selected: true,
	}
}

func orderedKeys(canonical []string, set map[string]bool) []string {
	result := make([]string, 0, len(set))
	for _, key := range canonical {
		if set[key] {
			result = append(result, key)
		}
	}
	return result
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
