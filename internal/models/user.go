package models

import "time"

// User 会员表
type User struct {
	ID         string    `gorm:"primarykey;type:varchar(32)" json:"id"`                   // 会员编号
	Phone      string    `gorm:"uniqueIndex;type:varchar(32);not null" json:"phone"`      // 手机号（登录键）
	Name       string    `gorm:"not null" json:"name"`                                    // 姓名
	Tier       string    `gorm:"type:varchar(20);not null;default:'general'" json:"tier"` // 会员等级
	TotalSpend Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_spend"` // 累计消费
	Credits    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"credits"`     // 购物金余额
	Address    string    `gorm:"type:varchar(500)" json:"address,omitempty"`              // 地址
	Birthday   string    `gorm:"type:varchar(10);index" json:"birthday,omitempty"`        // 生日 YYYY-MM-DD
	Note       string    `gorm:"type:text" json:"note,omitempty"`                         // 备注
	IsAdmin    bool      `gorm:"not null;default:false" json:"is_admin"`                  // 是否管理员
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                              // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
