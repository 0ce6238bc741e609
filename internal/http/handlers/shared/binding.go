package shared

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 在 gin 的校验引擎上注册业务校验标签
//
//	tw_phone  手机号（允许全形数字、空白与连字符）
//	last5     帐号后五码
func RegisterValidators() {
	registerOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		engine.RegisterTagNameFunc(func(f reflect.StructField) string {
			tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if tag == "" || tag == "-" {
				return f.Name
			}
			return tag
		})
		_ = engine.RegisterValidation("tw_phone", func(fl validator.FieldLevel) bool {
			return service.IsValidPhone(fl.Field().String())
		})
		_ = engine.RegisterValidation("last5", func(fl validator.FieldLevel) bool {
			return service.IsValidLast5(fl.Field().String())
		})
	})
}

// BindJSON 解析并校验请求体，失败时返回 400
func BindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		RespondError(c, response.CodeBadRequest, validationKey(err), nil)
		RequestLog(c).Debugw("request_bind_failed", "error", err)
		return false
	}
	return true
}

func validationKey(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		switch errs[0].Tag() {
		case "tw_phone":
			return "error.phone_invalid"
		case "last5":
			return "error.payment_last5_invalid"
		}
	}
	return "error.bad_request"
}
