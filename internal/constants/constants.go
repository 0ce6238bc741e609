package constants

// OrderStatus 订单状态
type OrderStatus string

// 订单状态常量
const (
	OrderStatusPendingPayment   OrderStatus = "pending_payment"
	OrderStatusPaidVerifying    OrderStatus = "paid_verifying"
	OrderStatusUnpaidAlert      OrderStatus = "unpaid_alert"
	OrderStatusPaymentConfirmed OrderStatus = "payment_confirmed"
	OrderStatusShipped          OrderStatus = "shipped"
	OrderStatusCompleted        OrderStatus = "completed"
	OrderStatusRefundNeeded     OrderStatus = "refund_needed"
	OrderStatusRefunded         OrderStatus = "refunded"
	OrderStatusCancelled        OrderStatus = "cancelled"
)

// OrderStatuses 全部订单状态（固定顺序）
var OrderStatuses = []OrderStatus{
	OrderStatusPendingPayment,
	OrderStatusPaidVerifying,
	OrderStatusUnpaidAlert,
	OrderStatusPaymentConfirmed,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusRefundNeeded,
	OrderStatusRefunded,
	OrderStatusCancelled,
}

// IsValid 判断状态是否属于固定枚举
func (s OrderStatus) IsValid() bool {
	for _, item := range OrderStatuses {
		if item == s {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// 付款方式常量
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCOD          = "cod"
)

// PaymentMethods 付款方式（规范顺序）
var PaymentMethods = []string{
	PaymentMethodCash,
	PaymentMethodBankTransfer,
	PaymentMethodCOD,
}

// 物流方式常量
const (
	ShippingMethodMeetup   = "meetup"
	ShippingMethodMyship   = "myship"
	ShippingMethodFamily   = "family"
	ShippingMethodDelivery = "delivery"
)

// ShippingMethods 物流方式（规范顺序）
var ShippingMethods = []string{
	ShippingMethodMeetup,
	ShippingMethodMyship,
	ShippingMethodFamily,
	ShippingMethodDelivery,
}

// IsStoreShipping 超商取货渠道（7-11 賣貨便 / 全家好賣+）
func IsStoreShipping(method string) bool {
	return method == ShippingMethodMyship || method == ShippingMethodFamily
}

// 会员等级常量
const (
	UserTierGeneral   = "general"
	UserTierVip       = "vip"
	UserTierWholesale = "wholesale"
)

// 商品价格类型常量
const (
	PriceTypeNormal    = "normal"
	PriceTypeEvent     = "event"
	PriceTypeClearance = "clearance"
)

// 资金流分类常量
const (
	CashFlowReceived      = "received"
	CashFlowVerifying     = "verifying"
	CashFlowUnpaid        = "unpaid"
	CashFlowRefundPending = "refund_pending"
	CashFlowRefunded      = "refunded_total"
)

// 订单管理动作常量
const (
	OrderActionConfirmPayment   = "confirm_payment"
	OrderActionSendReminder     = "send_reminder"
	OrderActionMarkShipped      = "mark_shipped"
	OrderActionMarkRefundNeeded = "mark_refund_needed"
	OrderActionMarkRefunded     = "mark_refunded"
	OrderActionMarkCODCollected = "mark_cod_collected"
	OrderActionCancel           = "cancel"
	OrderActionReportPayment    = "report_payment"
)

// 订单列表标签页常量
const (
	OrderTabAll       = "all"
	OrderTabPending   = "pending"
	OrderTabVerifying = "verifying"
	OrderTabShipping  = "shipping"
	OrderTabCompleted = "completed"
	OrderTabRefund    = "refund"
)

// 报表时间范围常量
const (
	ReportRangeToday  = "today"
	ReportRangeWeek   = "week"
	ReportRangeMonth  = "month"
	ReportRangeCustom = "custom"
	ReportRangeAll    = "all"
)

// 导出类型常量
const (
	ExportKindOrders     = "orders"
	ExportKindProducts   = "products"
	ExportKindCustomers  = "customers"
	ExportKindInventory  = "inventory"
	ExportKindAccounting = "accounting"
)

// 队列与任务常量
const (
	QueueDefault          = "default"
	TaskOrderStatusNotify = "order:status_notify"
	TaskReportWarmup      = "report:warmup"
)

// 设置键常量
const (
	SettingKeyShopConfig = "shop_config"
)

// 编号前缀
const (
	ProductCodeDefaultPrefix = "Z"
	ProductCodeLegacyPrefix  = "P"
	MemberIDPrefix           = "M"
)

// 库存状态阈值
const (
	LowStockThreshold = 5
)
