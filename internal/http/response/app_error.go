package response

import "fmt"

// AppError 接口错误：业务码 + 文案 key + 原始错误
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	text := fmt.Sprintf("[%d %s] %s", e.Code, e.Key, e.Message)
	if e.Err != nil {
		text += ": " + e.Err.Error()
	}
	return text
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 以文案 key 包装错误，message 为 key 对应的 zh-TW 文案
func WrapError(code int, key, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Message: message,
		Err:     err,
	}
}
