package models

import "time"

// CartItem 购物车项（同一会员下 商品+规格 唯一）
type CartItem struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                                            // 主键
	UserID       string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_cart_user_product_option" json:"user_id"` // 会员编号
	ProductID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_user_product_option" json:"product_id"`
	Option       string    `gorm:"type:varchar(100);not null;default:'';uniqueIndex:idx_cart_user_product_option" json:"option"` // 规格
	ProductName  string    `gorm:"not null" json:"product_name"`                                                   // 商品名称快照
	ProductImage string    `gorm:"type:varchar(1000)" json:"product_image"`                                        // 商品图片快照
	Price        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`                              // 加入时单价
	Quantity     int       `gorm:"not null" json:"quantity"`                                                       // 数量
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                                                        // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                                                     // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
