package admin

import (
	"strings"

	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/repository"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 商品新增/编辑
type ProductRequest struct {
	Code              string          `json:"code" binding:"max=32"`
	Name              string          `json:"name" binding:"required,max=200"`
	Images            []string        `json:"images"`
	Category          string          `json:"category" binding:"max=100"`
	Options           []string        `json:"options"`
	Country           string          `json:"country" binding:"max=50"`
	LocalPrice        decimal.Decimal `json:"local_price"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	CostMaterial      decimal.Decimal `json:"cost_material"`
	Weight            decimal.Decimal `json:"weight"`
	ShippingCostPerKg decimal.Decimal `json:"shipping_cost_per_kg"`
	PriceGeneral      decimal.Decimal `json:"price_general"`
	PriceVip          decimal.Decimal `json:"price_vip"`
	PriceWholesale    decimal.Decimal `json:"price_wholesale"`
	PriceType         string          `json:"price_type"`
	AllowPayment      map[string]bool `json:"allow_payment"`
	AllowShipping     map[string]bool `json:"allow_shipping"`
	Stock             int             `json:"stock" binding:"min=0"`
	Note              string          `json:"note"`
	BuyURL            string          `json:"buy_url" binding:"omitempty,max=1000"`
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Code:              r.Code,
		Name:              r.Name,
		Images:            r.Images,
		Category:          r.Category,
		Options:           r.Options,
		Country:           r.Country,
		LocalPrice:        r.LocalPrice,
		ExchangeRate:      r.ExchangeRate,
		CostMaterial:      r.CostMaterial,
		Weight:            r.Weight,
		ShippingCostPerKg: r.ShippingCostPerKg,
		PriceGeneral:      r.PriceGeneral,
		PriceVip:          r.PriceVip,
		PriceWholesale:    r.PriceWholesale,
		PriceType:         r.PriceType,
		AllowPayment:      r.AllowPayment,
		AllowShipping:     r.AllowShipping,
		Stock:             r.Stock,
		Note:              r.Note,
		BuyURL:            r.BuyURL,
	}
}

// GetAdminProducts 后台商品列表
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := pageParams(c)
	products, total, err := h.ProductService.ListAdmin(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
		InStock:  c.Query("in_stock") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 后台商品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	product, err := h.ProductService.GetByID(c.Param("id"))
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules)
		return
	}
	response.Success(c, product)
}

// PreviewProductCode 预览下一个货号（legacy=true 使用 P 前缀旧格式）
func (h *Handler) PreviewProductCode(c *gin.Context) {
	code, err := h.ProductService.PreviewProductCode(c.Request.Context(), strings.TrimSpace(c.Query("category")), c.Query("legacy") == "true")
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules)
		return
	}
	response.Success(c, gin.H{"code": code})
}

// CreateProduct 新增商品（货号留空自动生成）
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), req.input())
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 编辑商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.ProductService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules)
		return
	}
	response.Success(c, nil)
}
