package public

import (
	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutChannelsRequest 查询可用渠道（未选中任何行时返回空清单）
type CheckoutChannelsRequest struct {
	Lines []CartLineRequest `json:"lines" binding:"omitempty,dive"`
}

// CheckoutRequest 结帐预览（未选中任何行时金额全为零）
type CheckoutRequest struct {
	Lines          []CartLineRequest `json:"lines" binding:"omitempty,dive"`
	ShippingMethod string            `json:"shipping_method"`
	PaymentMethod  string            `json:"payment_method"`
	UseCredits     bool              `json:"use_credits"`
}

func (r CheckoutRequest) selection(memberID string) service.CheckoutSelection {
	return service.CheckoutSelection{
		UserID:         memberID,
		Lines:          cartLineKeys(r.Lines),
		ShippingMethod: r.ShippingMethod,
		PaymentMethod:  r.PaymentMethod,
		UseCredits:     r.UseCredits,
	}
}

// CreateOrderRequest 下单
type CreateOrderRequest struct {
	Lines          []CartLineRequest    `json:"lines" binding:"required,min=1,dive"`
	ShippingMethod string               `json:"shipping_method" binding:"required"`
	PaymentMethod  string               `json:"payment_method" binding:"required"`
	UseCredits     bool                 `json:"use_credits"`
	PaymentName    string               `json:"payment_name" binding:"max=100"`
	PaymentTime    string               `json:"payment_time" binding:"max=50"`
	PaymentLast5   string               `json:"payment_last5" binding:"omitempty,last5"`
	Receiver       service.ReceiverInfo `json:"receiver"`
}

func (r CreateOrderRequest) input(memberID string) service.CreateOrderInput {
	return service.CreateOrderInput{
		CheckoutSelection: service.CheckoutSelection{
			UserID:         memberID,
			Lines:          cartLineKeys(r.Lines),
			ShippingMethod: r.ShippingMethod,
			PaymentMethod:  r.PaymentMethod,
			UseCredits:     r.UseCredits,
		},
		PaymentName:  r.PaymentName,
		PaymentTime:  r.PaymentTime,
		PaymentLast5: r.PaymentLast5,
		Receiver:     r.Receiver,
	}
}

// ReportPaymentRequest 回报汇款
type ReportPaymentRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Time  string `json:"time" binding:"required,max=50"`
	Last5 string `json:"last5" binding:"required,last5"`
}

// ResolveCheckoutChannels 计算选中商品可用的付款与物流方式
func (h *Handler) ResolveCheckoutChannels(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	var req CheckoutChannelsRequest
	if !bindJSON(c, &req) {
		return
	}
	channels, err := h.OrderService.ResolveCheckoutChannels(c.Request.Context(), memberID, cartLineKeys(req.Lines))
	if err != nil {
		respondMappedError(c, err, handlershared.CheckoutErrorRules, "error.internal")
		return
	}
	response.Success(c, gin.H{
		"channels":           channels,
		"logistics_conflict": channels.LogisticsConflict(),
	})
}

// PreviewCheckout 结帐金额预览
func (h *Handler) PreviewCheckout(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	preview, err := h.OrderService.PreviewCheckout(c.Request.Context(), req.selection(memberID))
	if err != nil {
		respondMappedError(c, err, handlershared.CheckoutErrorRules, "error.internal")
		return
	}
	response.Success(c, preview)
}

// CreateOrder 下单
func (h *Handler) CreateOrder(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.OrderService.CreateOrder(c.Request.Context(), req.input(memberID))
	if err != nil {
		respondMappedError(c, err, handlershared.CheckoutErrorRules, "error.order_create_failed")
		return
	}
	response.Success(c, handlershared.NewOrderView(order))
}

// ListOrders 我的订单
func (h *Handler) ListOrders(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)

	orders, total, err := h.OrderService.ListOrdersByUser(memberID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, handlershared.NewOrderViews(orders), response.BuildPagination(page, pageSize, total))
}

// GetOrder 我的订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderByUser(c.Param("id"), memberID)
	if err != nil {
		respondMappedError(c, err, handlershared.OrderErrorRules, "error.internal")
		return
	}
	response.Success(c, handlershared.NewOrderView(order))
}

// ReportPayment 会员回报汇款资料
func (h *Handler) ReportPayment(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	var req ReportPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.OrderService.ReportPayment(c.Request.Context(), memberID, c.Param("id"), service.ReportPaymentInput{
		Name:  req.Name,
		Time:  req.Time,
		Last5: req.Last5,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.OrderErrorRules, "error.internal")
		return
	}
	response.Success(c, handlershared.NewOrderView(order))
}
