package service

import (
	"strings"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
)

type statusSet map[constants.OrderStatus]bool

func newStatusSet(statuses ...constants.OrderStatus) statusSet {
	set := make(statusSet, len(statuses))
	for _, status := range statuses {
		set[status] = true
	}
	return set
}

// transitionRule 状态迁移守卫
// allowed 非空时仅允许列出的状态；disallowed 列出被拒绝的状态
type transitionRule struct {
	target     constants.OrderStatus
	allowed    statusSet
	disallowed statusSet
	requireCOD bool
}

// orderTransitionRules 全部订单动作的守卫表
var orderTransitionRules = map[string]transitionRule{
	constants.OrderActionConfirmPayment: {
		target: constants.OrderStatusPaymentConfirmed,
		allowed: newStatusSet(
			constants.OrderStatusPaidVerifying,
			constants.OrderStatusPendingPayment,
			constants.OrderStatusUnpaidAlert,
		),
	},
	constants.OrderActionSendReminder: {
		target: constants.OrderStatusUnpaidAlert,
		allowed: newStatusSet(
			constants.OrderStatusPendingPayment,
			constants.OrderStatusUnpaidAlert,
			constants.OrderStatusPaidVerifying,
		),
	},
	constants.OrderActionMarkShipped: {
		target: constants.OrderStatusShipped,
		disallowed: newStatusSet(
			constants.OrderStatusShipped,
			constants.OrderStatusPendingPayment,
			constants.OrderStatusUnpaidAlert,
			constants.OrderStatusRefundNeeded,
			constants.OrderStatusRefunded,
			constants.OrderStatusCompleted,
			constants.OrderStatusCancelled,
		),
	},
	constants.OrderActionMarkRefundNeeded: {
		target: constants.OrderStatusRefundNeeded,
		disallowed: newStatusSet(
			constants.OrderStatusRefunded,
			constants.OrderStatusRefundNeeded,
			constants.OrderStatusShipped,
			constants.OrderStatusCancelled,
		),
	},
	constants.OrderActionMarkRefunded: {
		target: constants.OrderStatusRefunded,
		disallowed: newStatusSet(
			constants.OrderStatusRefunded,
			constants.OrderStatusCancelled,
		),
	},
	constants.OrderActionMarkCODCollected: {
		target:     constants.OrderStatusCompleted,
		allowed:    newStatusSet(constants.OrderStatusShipped),
		requireCOD: true,
	},
	constants.OrderActionCancel: {
		target: constants.OrderStatusCancelled,
		disallowed: newStatusSet(
			constants.OrderStatusCancelled,
			constants.OrderStatusShipped,
			constants.OrderStatusCompleted,
		),
	},
	constants.OrderActionReportPayment: {
		target: constants.OrderStatusPaidVerifying,
	},
}

// 快捷动作：先要求特定的前置状态，再走对应完整动作的守卫
const (
	QuickActionConfirm    = "quick_confirm"
	QuickActionShip       = "quick_ship"
	QuickActionComplete   = "quick_complete"
	QuickActionRefundDone = "quick_refund_done"
)

type quickActionRule struct {
	action   string
	required constants.OrderStatus
}

var quickActionRules = map[string]quickActionRule{
	QuickActionConfirm:    {action: constants.OrderActionConfirmPayment, required: constants.OrderStatusPaidVerifying},
	QuickActionShip:       {action: constants.OrderActionMarkShipped, required: constants.OrderStatusPaymentConfirmed},
	QuickActionComplete:   {action: constants.OrderActionMarkCODCollected, required: constants.OrderStatusShipped},
	QuickActionRefundDone: {action: constants.OrderActionMarkRefunded, required: constants.OrderStatusRefundNeeded},
}

// CanTransition 判断动作是否可作用于订单，返回目标状态
func CanTransition(action string, order *models.Order) (constants.OrderStatus, error) {
	rule, ok := orderTransitionRules[action]
	if !ok {
		return "", ErrOrderActionInvalid
	}
	if order == nil {
		return "", ErrOrderNotFound
	}
	current := order.Status
	if rule.allowed != nil && !rule.allowed[current] {
		return "", ErrOrderStatusInvalid
	}
	if rule.disallowed[current] {
		return "", ErrOrderStatusInvalid
	}
	if rule.requireCOD && order.PaymentMethod != constants.PaymentMethodCOD {
		return "", ErrOrderStatusInvalid
	}
	return rule.target, nil
}

// ResolveQuickAction 解析快捷动作，返回对应的完整动作
func ResolveQuickAction(quick string, order *models.Order) (string, error) {
	rule, ok := quickActionRules[quick]
	if !ok {
		return "", ErrOrderActionInvalid
	}
	if order == nil {
		return "", ErrOrderNotFound
	}
	if order.Status != rule.required {
		return "", ErrOrderStatusInvalid
	}
	return rule.action, nil
}

// InitialStatus 下单时的初始状态
// 银行转帐：已填后五码为对帐中，否则待付款；货到付款直接待出货；现金为待付款
func InitialStatus(paymentMethod, last5 string) constants.OrderStatus {
	switch paymentMethod {
	case constants.PaymentMethodBankTransfer:
		if strings.TrimSpace(last5) != "" {
			return constants.OrderStatusPaidVerifying
		}
		return constants.OrderStatusPendingPayment
	case constants.PaymentMethodCOD:
		return constants.OrderStatusPaymentConfirmed
	default:
		return constants.OrderStatusPendingPayment
	}
}

// ClassifyCashFlow 资金流分类，已取消的订单不计入任何分类
func ClassifyCashFlow(order *models.Order) (string, bool) {
	if order == nil {
		return "", false
	}
	switch order.Status {
	case constants.OrderStatusRefunded:
		return constants.CashFlowRefunded, true
	case constants.OrderStatusRefundNeeded:
		return constants.CashFlowRefundPending, true
	case constants.OrderStatusPaidVerifying:
		return constants.CashFlowVerifying, true
	case constants.OrderStatusPendingPayment, constants.OrderStatusUnpaidAlert:
		return constants.CashFlowUnpaid, true
	case constants.OrderStatusPaymentConfirmed, constants.OrderStatusShipped, constants.OrderStatusCompleted:
		// 货到付款在完成前款项仍在物流端
		if order.PaymentMethod == constants.PaymentMethodCOD && order.Status != constants.OrderStatusCompleted {
			return constants.CashFlowUnpaid, true
		}
		return constants.CashFlowReceived, true
	default:
		return "", false
	}
}

// IsRevenueStatus 计入营收/成本的状态
func IsRevenueStatus(status constants.OrderStatus) bool {
	switch status {
	case constants.OrderStatusPendingPayment,
		constants.OrderStatusUnpaidAlert,
		constants.OrderStatusRefunded,
		constants.OrderStatusCancelled:
		return false
	}
	return status.IsValid()
}

// isDashboardSaleStatus 仪表盘销售额口径（含待付款）
func isDashboardSaleStatus(status constants.OrderStatus) bool {
	switch status {
	case constants.OrderStatusUnpaidAlert,
		constants.OrderStatusRefunded,
		constants.OrderStatusCancelled:
		return false
	}
	return status.IsValid()
}

// TabStatuses 后台订单列表标签页对应的状态，all 返回 nil
func TabStatuses(tab string) ([]constants.OrderStatus, error) {
	switch strings.TrimSpace(tab) {
	case "", constants.OrderTabAll:
		return nil, nil
	case constants.OrderTabPending:
		return []constants.OrderStatus{constants.OrderStatusPendingPayment, constants.OrderStatusUnpaidAlert}, nil
	case constants.OrderTabVerifying:
		return []constants.OrderStatus{constants.OrderStatusPaidVerifying}, nil
	case constants.OrderTabShipping:
		return []constants.OrderStatus{constants.OrderStatusPaymentConfirmed}, nil
	case constants.OrderTabCompleted:
		return []constants.OrderStatus{constants.OrderStatusShipped, constants.OrderStatusCompleted}, nil
	case constants.OrderTabRefund:
		return []constants.OrderStatus{constants.OrderStatusRefundNeeded, constants.OrderStatusRefunded, constants.OrderStatusCancelled}, nil
	default:
		return nil, ErrInvalidInput
	}
}

// PaymentStatusLabel 付款状态文字
func PaymentStatusLabel(status constants.OrderStatus, paymentMethod string) string {
	cod := paymentMethod == constants.PaymentMethodCOD
	switch status {
	case constants.OrderStatusPendingPayment:
		return "未付款"
	case constants.OrderStatusPaidVerifying:
		return "對帳中"
	case constants.OrderStatusUnpaidAlert:
		return "逾期未付"
	case constants.OrderStatusRefundNeeded:
		return "需退款"
	case constants.OrderStatusRefunded:
		return "已退款"
	case constants.OrderStatusPaymentConfirmed:
		if cod {
			return "待出貨 (未入帳)"
		}
		return "已付款"
	case constants.OrderStatusShipped:
		if cod {
			return "已出貨 (未入帳)"
		}
		return "已出貨"
	case constants.OrderStatusCompleted:
		return "已完成 (已入帳)"
	case constants.OrderStatusCancelled:
		return "已取消"
	default:
		return string(status)
	}
}

// ShippingStatusLabel 出货状态文字
func ShippingStatusLabel(status constants.OrderStatus) string {
	switch status {
	case constants.OrderStatusPaymentConfirmed:
		return "待出貨"
	case constants.OrderStatusShipped:
		return "已出貨"
	case constants.OrderStatusCompleted:
		return "已完成"
	default:
		return "-"
	}
}

// PaymentMethodLabel 付款方式名称
func PaymentMethodLabel(method string) string {
	switch method {
	case constants.PaymentMethodCash:
		return "現金付款"
	case constants.PaymentMethodBankTransfer:
		return "銀行轉帳"
	case constants.PaymentMethodCOD:
		return "貨到付款"
	default:
		return method
	}
}

// ShippingMethodLabel 物流方式名称
func ShippingMethodLabel(method string) string {
	switch method {
	case constants.ShippingMethodMeetup:
		return "面交自取"
	case constants.ShippingMethodMyship:
		return "7-11 賣貨便"
	case constants.ShippingMethodFamily:
		return "全家好賣家"
	case constants.ShippingMethodDelivery:
		return "宅配寄送"
	default:
		return method
	}
}
