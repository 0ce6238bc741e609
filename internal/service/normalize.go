package service

import (
	"strings"
	"time"

	"golang.org/x/text/width"
)

// NormalizePhone 手机号规范化：全形转半形，去除空白与连字符
func NormalizePhone(raw string) string {
	folded := width.Narrow.String(strings.TrimSpace(raw))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '\t':
			return -1
		}
		return r
	}, folded)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizeLast5 帐号后五码规范化，必须为 5 位数字
func normalizeLast5(raw string) (string, error) {
	value := width.Narrow.String(strings.TrimSpace(raw))
	if len(value) != 5 || !isDigits(value) {
		return "", ErrPaymentLast5Invalid
	}
	return value, nil
}

// normalizeBirthday 生日格式 YYYY-MM-DD，空值允许
func normalizeBirthday(raw string) (string, error) {
	value := width.Narrow.String(strings.TrimSpace(raw))
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return "", ErrBirthdayInvalid
	}
	return value, nil
}

// IsValidPhone 手机号规范化后是否为纯数字
func IsValidPhone(raw string) bool {
	_, err := validPhone(raw)
	return err == nil
}

// IsValidLast5 帐号后五码是否合法
func IsValidLast5(raw string) bool {
	_, err := normalizeLast5(raw)
	return err == nil
}
