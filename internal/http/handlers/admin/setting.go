package admin

import (
	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSettings 获取商店设置
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.SettingService.GetShopSettings(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, settings)
}

// UpdateSettings 保存商店设置（整份覆盖）
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req service.ShopSettings
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.SettingService.UpdateShopSettings(c.Request.Context(), req)
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules)
		return
	}
	response.Success(c, settings)
}
