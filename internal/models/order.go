package models

import (
	"time"

	"github.com/mymy-shop/internal/constants"
)

// Order 订单表
type Order struct {
	ID              string                `gorm:"primarykey;type:varchar(16)" json:"id"`                     // 订单编号 YYYYMMDD + 4 位流水
	UserID          string                `gorm:"type:varchar(32);index;not null" json:"user_id"`            // 会员编号
	Subtotal        Money                 `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`     // 商品小计
	Discount        Money                 `gorm:"type:decimal(20,2);not null;default:0" json:"discount"`     // 渠道预扣折抵
	ShippingFee     Money                 `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"` // 运费
	UsedCredits     Money                 `gorm:"type:decimal(20,2);not null;default:0" json:"used_credits"` // 使用购物金
	FinalTotal      Money                 `gorm:"type:decimal(20,2);not null;default:0" json:"final_total"`  // 应付总额
	PaymentMethod   string                `gorm:"type:varchar(20);index;not null" json:"payment_method"`     // 付款方式
	PaymentName     string                `gorm:"type:varchar(100)" json:"payment_name,omitempty"`           // 汇款人
	PaymentTime     string                `gorm:"type:varchar(50)" json:"payment_time,omitempty"`            // 汇款时间
	PaymentLast5    string                `gorm:"type:varchar(5)" json:"payment_last5,omitempty"`            // 帐号后五码
	ShippingMethod  string                `gorm:"type:varchar(20);not null" json:"shipping_method"`          // 物流方式
	ShippingName    string                `gorm:"type:varchar(100)" json:"shipping_name,omitempty"`          // 收件人
	ShippingPhone   string                `gorm:"type:varchar(32)" json:"shipping_phone,omitempty"`          // 收件电话
	ShippingStore   string                `gorm:"type:varchar(200)" json:"shipping_store,omitempty"`         // 取货门市
	ShippingAddress string                `gorm:"type:varchar(500)" json:"shipping_address,omitempty"`       // 收件地址
	ShippingLink    string                `gorm:"type:varchar(500)" json:"shipping_link,omitempty"`          // 物流单号/追踪链接
	Status          constants.OrderStatus `gorm:"type:varchar(32);index;not null" json:"status"`             // 订单状态
	CreatedAt       time.Time             `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt       time.Time             `json:"updated_at"`                                                // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"` // 订单项快照
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
