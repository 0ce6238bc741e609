package shared

import (
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/service"
)

// OrderView 订单响应（附带状态与渠道文字）
type OrderView struct {
	models.Order
	PaymentStatusLabel  string `json:"payment_status_label"`
	ShippingStatusLabel string `json:"shipping_status_label"`
	PaymentMethodLabel  string `json:"payment_method_label"`
	ShippingMethodLabel string `json:"shipping_method_label"`
	UserName            string `json:"user_name,omitempty"`
}

// NewOrderView 构建订单响应
func NewOrderView(order *models.Order) OrderView {
	if order == nil {
		return OrderView{}
	}
	return OrderView{
		Order:               *order,
		PaymentStatusLabel:  service.PaymentStatusLabel(order.Status, order.PaymentMethod),
		ShippingStatusLabel: service.ShippingStatusLabel(order.Status),
		PaymentMethodLabel:  service.PaymentMethodLabel(order.PaymentMethod),
		ShippingMethodLabel: service.ShippingMethodLabel(order.ShippingMethod),
	}
}

// NewOrderViews 批量构建订单响应
func NewOrderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, NewOrderView(&orders[i]))
	}
	return views
}
