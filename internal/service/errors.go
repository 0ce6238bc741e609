package service

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConfigInvalid = errors.New("config invalid")

	// 会员
	ErrUserNotFound     = errors.New("user not found")
	ErrPhoneExists      = errors.New("phone already registered")
	ErrPhoneInvalid     = errors.New("phone invalid")
	ErrUserNameRequired = errors.New("user name required")
	ErrBirthdayInvalid  = errors.New("birthday invalid")
	ErrTierInvalid      = errors.New("tier invalid")
	ErrCreditsInvalid   = errors.New("credits invalid")
	ErrInvalidToken     = errors.New("invalid token")

	// 商品与分类
	ErrProductNotFound      = errors.New("product not found")
	ErrProductCodeExists    = errors.New("product code already exists")
	ErrProductNameRequired  = errors.New("product name required")
	ErrProductPriceInvalid  = errors.New("product price invalid")
	ErrProductOptionInvalid = errors.New("product option invalid")
	ErrCategoryNameRequired = errors.New("category name required")
	ErrCategoryExists       = errors.New("category already exists")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryCodeInvalid  = errors.New("category code invalid")

	// 购物车与结帐
	ErrCartItemNotFound          = errors.New("cart item not found")
	ErrCartQuantityInvalid       = errors.New("cart quantity invalid")
	ErrCheckoutEmpty             = errors.New("checkout selection empty")
	ErrLogisticsConflict         = errors.New("logistics conflict")
	ErrShippingMethodUnavailable = errors.New("shipping method unavailable")
	ErrPaymentMethodUnavailable  = errors.New("payment method unavailable")
	ErrReceiverRequired          = errors.New("receiver name and phone required")
	ErrReceiverStoreRequired     = errors.New("receiver store required")
	ErrReceiverAddressRequired   = errors.New("receiver address required")
	ErrInsufficientCredits       = errors.New("insufficient credits")

	// 订单
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderStatusInvalid    = errors.New("order status invalid")
	ErrOrderActionInvalid    = errors.New("order action invalid")
	ErrOrderIDExhausted      = errors.New("order id sequence exhausted")
	ErrCancelNeedsConfirm    = errors.New("cancel needs confirm")
	ErrTrackingCodeRequired  = errors.New("tracking code required")
	ErrPaymentReportRequired = errors.New("payment report fields required")
	ErrPaymentLast5Invalid   = errors.New("payment last5 invalid")
	ErrOrderCreateFailed     = errors.New("order create failed")
	ErrOrderUpdateFailed     = errors.New("order update failed")
	ErrOrderFetchFailed      = errors.New("order fetch failed")

	// 设置与报表
	ErrSettingsInvalid    = errors.New("settings invalid")
	ErrReportRangeInvalid = errors.New("report range invalid")
	ErrExportKindInvalid  = errors.New("export kind invalid")
)
