package models

// OrderItem 订单项（下单时的购物车快照）
type OrderItem struct {
	ID           uint   `gorm:"primarykey" json:"-"`                                // 主键
	OrderID      string `gorm:"type:varchar(16);index;not null" json:"-"`           // 订单编号
	ProductID    string `gorm:"type:varchar(64);index;not null" json:"product_id"`  // 商品ID
	ProductName  string `gorm:"not null" json:"product_name"`                       // 商品名称快照
	ProductImage string `gorm:"type:varchar(1000)" json:"product_image"`            // 商品图片快照
	Option       string `gorm:"type:varchar(100)" json:"option"`                    // 规格
	Price        Money  `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 成交单价
	Quantity     int    `gorm:"not null" json:"quantity"`                           // 数量
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
