package admin

import (
	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 新增分类
type CategoryRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	SortOrder int    `json:"sort_order"`
}

// CategoryCodeRequest 分类货号前缀
type CategoryCodeRequest struct {
	Code string `json:"code" binding:"required,len=1,alpha"`
}

// GetAdminCategories 后台分类列表（含商品数与货号前缀）
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListWithCounts()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	settings, err := h.SettingService.GetShopSettings(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"categories": categories,
		"codes":      settings.CategoryCodes,
	})
}

// CreateCategory 新增分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.CategoryService.Create(req.Name, req.SortOrder)
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.CategoryService.Delete(c.Param("name")); err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules)
		return
	}
	response.Success(c, nil)
}

// SetCategoryCode 设置分类货号前缀
func (h *Handler) SetCategoryCode(c *gin.Context) {
	var req CategoryCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.SettingService.SetCategoryCode(c.Request.Context(), c.Param("name"), req.Code)
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules)
		return
	}
	response.Success(c, settings.CategoryCodes)
}
