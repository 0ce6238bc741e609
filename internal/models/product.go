package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品表
type Product struct {
	ID                string          `gorm:"primarykey;type:varchar(64)" json:"id"`                            // 内部ID
	Code              string          `gorm:"uniqueIndex;type:varchar(32);not null" json:"code"`                // 对外货号（SKU）
	Name              string          `gorm:"not null" json:"name"`                                             // 商品名称
	Image             string          `gorm:"type:varchar(1000)" json:"image"`                                  // 主图
	Images            StringArray     `gorm:"type:json" json:"images"`                                          // 图片集（第一张为主图）
	Category          string          `gorm:"index;type:varchar(100)" json:"category"`                          // 分类名称
	Options           StringArray     `gorm:"type:json" json:"options"`                                         // 规格（为空表示单一规格）
	Country           string          `gorm:"type:varchar(50)" json:"country"`                                  // 产地
	LocalPrice        Money           `gorm:"type:decimal(20,2);not null;default:0" json:"local_price"`         // 当地币原价
	ExchangeRate      decimal.Decimal `gorm:"type:decimal(20,6);not null;default:0" json:"exchange_rate"`       // 汇率
	CostMaterial      Money           `gorm:"type:decimal(20,2);not null;default:0" json:"cost_material"`       // 额外成本（包材/加工）
	Weight            decimal.Decimal `gorm:"type:decimal(20,3);not null;default:0" json:"weight"`              // 重量 kg
	ShippingCostPerKg Money           `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_cost_per_kg"` // 国际运费/kg
	PriceGeneral      Money           `gorm:"type:decimal(20,2);not null;default:0" json:"price_general"`       // 一般售价
	PriceVip          Money           `gorm:"type:decimal(20,2);not null;default:0" json:"price_vip"`           // VIP 价（0 表示未提供）
	PriceWholesale    Money           `gorm:"type:decimal(20,2);not null;default:0" json:"price_wholesale"`     // 批发价（0 表示未提供）
	PriceType         string          `gorm:"type:varchar(20);not null;default:'normal'" json:"price_type"`     // 价格类型
	AllowPayment      ChannelSwitch   `gorm:"type:json" json:"allow_payment,omitempty"`                         // 允许的付款方式（空表示全部）
	AllowShipping     ChannelSwitch   `gorm:"type:json" json:"allow_shipping,omitempty"`                        // 允许的物流方式（空表示全部）
	Stock             int             `gorm:"not null;default:0" json:"stock"`                                  // 库存
	SoldCount         int             `gorm:"not null;default:0;index" json:"sold_count"`                       // 累计售出
	Note              string          `gorm:"type:text" json:"note"`                                            // 备注
	BuyURL            string          `gorm:"type:varchar(1000)" json:"buy_url,omitempty"`                      // 采购链接
	CreatedAt         time.Time       `gorm:"index" json:"created_at"`                                          // 创建时间
	UpdatedAt         time.Time       `json:"updated_at"`                                                       // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// LandedUnitCost 到岸单位成本 = 原价×汇率 + 额外成本 + 重量×每公斤运费
func (p *Product) LandedUnitCost() decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	origin := p.LocalPrice.Decimal.Mul(p.ExchangeRate)
	freight := p.Weight.Mul(p.ShippingCostPerKg.Decimal)
	return origin.Add(p.CostMaterial.Decimal).Add(freight)
}
