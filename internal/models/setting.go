package models

import "time"

// Setting 系统设置表（键 -> JSON 快照）
// 快照以原始文本保存，读取时再解析，损坏的内容可以被识别并回退默认值
type Setting struct {
	Key       string    `gorm:"primarykey;type:varchar(64)" json:"key"` // 配置键
	Value     string    `gorm:"type:text" json:"value"`                 // 配置值（JSON）
	UpdatedAt time.Time `json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
