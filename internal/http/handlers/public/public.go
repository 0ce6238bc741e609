package public

import (
	"strings"
	"time"

	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// ShippingOption 前台物流方式
type ShippingOption struct {
	Method string       `json:"method"`
	Label  string       `json:"label"`
	Fee    models.Money `json:"fee"`
}

// PaymentOption 前台付款方式
type PaymentOption struct {
	Method string `json:"method"`
	Label  string `json:"label"`
}

// PublicProduct 前台商品（不含成本资料）
type PublicProduct struct {
	ID             string               `json:"id"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	Image          string               `json:"image"`
	Images         models.StringArray   `json:"images"`
	Category       string               `json:"category"`
	Options        models.StringArray   `json:"options"`
	Country        string               `json:"country"`
	PriceGeneral   models.Money         `json:"price_general"`
	PriceVip       models.Money         `json:"price_vip"`
	PriceWholesale models.Money         `json:"price_wholesale"`
	PriceType      string               `json:"price_type"`
	AllowPayment   models.ChannelSwitch `json:"allow_payment,omitempty"`
	AllowShipping  models.ChannelSwitch `json:"allow_shipping,omitempty"`
	Stock          int                  `json:"stock"`
	SoldCount      int                  `json:"sold_count"`
	Note           string               `json:"note"`
	CreatedAt      time.Time            `json:"created_at"`
}

func toPublicProduct(p *models.Product) PublicProduct {
	return PublicProduct{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		Image:          p.Image,
		Images:         p.Images,
		Category:       p.Category,
		Options:        p.Options,
		Country:        p.Country,
		PriceGeneral:   p.PriceGeneral,
		PriceVip:       p.PriceVip,
		PriceWholesale: p.PriceWholesale,
		PriceType:      p.PriceType,
		AllowPayment:   p.AllowPayment,
		AllowShipping:  p.AllowShipping,
		Stock:          p.Stock,
		SoldCount:      p.SoldCount,
		Note:           p.Note,
		CreatedAt:      p.CreatedAt,
	}
}

// GetConfig 前台商店配置（启用的渠道、运费与免运门槛）
func (h *Handler) GetConfig(c *gin.Context) {
	settings, err := h.SettingService.GetShopSettings(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	payments := make([]PaymentOption, 0, len(settings.EnabledPaymentMethods()))
	for _, method := range settings.EnabledPaymentMethods() {
		payments = append(payments, PaymentOption{Method: method, Label: service.PaymentMethodLabel(method)})
	}
	shipping := make([]ShippingOption, 0, len(settings.EnabledShippingMethods()))
	for _, method := range settings.EnabledShippingMethods() {
		cfg, _ := settings.ShippingMethod(method)
		shipping = append(shipping, ShippingOption{Method: method, Label: service.ShippingMethodLabel(method), Fee: cfg.Fee})
	}
	response.Success(c, gin.H{
		"payment_methods":         payments,
		"shipping_methods":        shipping,
		"free_shipping_threshold": settings.Shipping.FreeThreshold,
		"store_channel_discount":  models.NewMoneyFromDecimal(service.StoreChannelDiscount),
		"birthday_gift_general":   settings.BirthdayGiftGeneral,
		"birthday_gift_vip":       settings.BirthdayGiftVip,
	})
}

// GetProducts 前台商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListPublic(category, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	items := make([]PublicProduct, 0, len(products))
	for i := range products {
		items = append(items, toPublicProduct(&products[i]))
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// GetProduct 前台商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.GetByID(c.Param("id"))
	if err != nil {
		respondMappedError(c, err, handlershared.ProductErrorRules, "error.internal")
		return
	}
	response.Success(c, toPublicProduct(product))
}

// GetCategories 前台分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}
