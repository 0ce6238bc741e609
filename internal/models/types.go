package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray 字符串数组类型，用于存储规格、图片等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	raw, ok := scanBytes(value)
	if !ok || len(raw) == 0 {
		*s = StringArray{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

// ChannelSwitch 渠道开关表（方式 -> 是否允许）
// nil 表示未设置，即不做限制
type ChannelSwitch map[string]bool

// Allows 判断渠道是否被允许
func (c ChannelSwitch) Allows(method string) bool {
	if c == nil {
		return true
	}
	return c[method]
}

// Value 实现 driver.Valuer 接口
func (c ChannelSwitch) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(payload), nil
}

// Scan 实现 sql.Scanner 接口
func (c *ChannelSwitch) Scan(value interface{}) error {
	raw, ok := scanBytes(value)
	if !ok || len(raw) == 0 || string(raw) == "null" {
		*c = nil
		return nil
	}
	var decoded map[string]bool
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decode channel switch: %w", err)
	}
	*c = decoded
	return nil
}

func scanBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
