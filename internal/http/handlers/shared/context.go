package shared

import (
	"strings"

	"github.com/mymy-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// MemberIDKey 上下文中的会员编号
const MemberIDKey = "member_id"

// GetMemberID 从上下文读取会员编号并统一处理错误响应。
func GetMemberID(c *gin.Context) (string, bool) {
	value, exists := c.Get(MemberIDKey)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	memberID, ok := value.(string)
	if !ok || strings.TrimSpace(memberID) == "" {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	return memberID, true
}
