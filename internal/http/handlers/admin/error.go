package admin

import (
	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondMappedError(c *gin.Context, err error, rules []handlershared.MappedError) {
	handlershared.RespondMappedError(c, err, rules, response.CodeInternal, "error.internal")
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	return handlershared.BindJSON(c, dest)
}

func pageParams(c *gin.Context) (int, int) {
	return handlershared.PageQuery(c)
}
