package models

import "time"

// Notice 会员站内通知（订单状态变化）
type Notice struct {
	ID        uint       `gorm:"primarykey" json:"id"`                           // 主键
	UserID    string     `gorm:"type:varchar(32);index;not null" json:"user_id"` // 会员编号
	OrderID   string     `gorm:"type:varchar(16);index" json:"order_id"`         // 订单编号
	Status    string     `gorm:"type:varchar(32)" json:"status"`                 // 触发时的订单状态
	Content   string     `gorm:"type:text;not null" json:"content"`              // 通知内容
	ReadAt    *time.Time `json:"read_at,omitempty"`                              // 已读时间
	CreatedAt time.Time  `gorm:"index" json:"created_at"`                        // 创建时间
}

// TableName 指定表名
func (Notice) TableName() string {
	return "notices"
}
