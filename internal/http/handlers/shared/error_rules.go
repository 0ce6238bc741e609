package shared

import (
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/service"
)

// UserErrorRules 会员相关错误
var UserErrorRules = []MappedError{
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrPhoneExists, Code: response.CodeConflict, Key: "error.phone_exists"},
	{Target: service.ErrPhoneInvalid, Code: response.CodeBadRequest, Key: "error.phone_invalid"},
	{Target: service.ErrUserNameRequired, Code: response.CodeBadRequest, Key: "error.user_name_required"},
	{Target: service.ErrBirthdayInvalid, Code: response.CodeBadRequest, Key: "error.birthday_invalid"},
	{Target: service.ErrTierInvalid, Code: response.CodeBadRequest, Key: "error.tier_invalid"},
	{Target: service.ErrCreditsInvalid, Code: response.CodeBadRequest, Key: "error.credits_invalid"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
}

// ProductErrorRules 商品与分类错误
var ProductErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductCodeExists, Code: response.CodeConflict, Key: "error.product_code_exists"},
	{Target: service.ErrProductNameRequired, Code: response.CodeBadRequest, Key: "error.product_name_required"},
	{Target: service.ErrProductPriceInvalid, Code: response.CodeBadRequest, Key: "error.product_price_invalid"},
	{Target: service.ErrProductOptionInvalid, Code: response.CodeBadRequest, Key: "error.product_option_invalid"},
	{Target: service.ErrCategoryNameRequired, Code: response.CodeBadRequest, Key: "error.category_name_required"},
	{Target: service.ErrCategoryExists, Code: response.CodeConflict, Key: "error.category_exists"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCategoryCodeInvalid, Code: response.CodeBadRequest, Key: "error.category_code_invalid"},
	{Target: service.ErrSettingsInvalid, Code: response.CodeBadRequest, Key: "error.settings_invalid"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
}

// CheckoutErrorRules 购物车与结帐错误
var CheckoutErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductOptionInvalid, Code: response.CodeBadRequest, Key: "error.product_option_invalid"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrCartQuantityInvalid, Code: response.CodeBadRequest, Key: "error.cart_quantity_invalid"},
	{Target: service.ErrCheckoutEmpty, Code: response.CodeBadRequest, Key: "error.checkout_empty"},
	{Target: service.ErrLogisticsConflict, Code: response.CodeBadRequest, Key: "error.logistics_conflict"},
	{Target: service.ErrShippingMethodUnavailable, Code: response.CodeBadRequest, Key: "error.shipping_unavailable"},
	{Target: service.ErrPaymentMethodUnavailable, Code: response.CodeBadRequest, Key: "error.payment_unavailable"},
	{Target: service.ErrReceiverRequired, Code: response.CodeBadRequest, Key: "error.receiver_required"},
	{Target: service.ErrReceiverStoreRequired, Code: response.CodeBadRequest, Key: "error.receiver_store_required"},
	{Target: service.ErrReceiverAddressRequired, Code: response.CodeBadRequest, Key: "error.receiver_address_required"},
	{Target: service.ErrInsufficientCredits, Code: response.CodeBadRequest, Key: "error.insufficient_credits"},
	{Target: service.ErrPaymentReportRequired, Code: response.CodeBadRequest, Key: "error.payment_report_required"},
	{Target: service.ErrPaymentLast5Invalid, Code: response.CodeBadRequest, Key: "error.payment_last5_invalid"},
	{Target: service.ErrOrderIDExhausted, Code: response.CodeConflict, Key: "error.order_id_exhausted"},
	{Target: service.ErrUserNotFound, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
}

// OrderErrorRules 订单状态与管理动作错误
var OrderErrorRules = []MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrOrderActionInvalid, Code: response.CodeBadRequest, Key: "error.order_action_invalid"},
	{Target: service.ErrCancelNeedsConfirm, Code: response.CodeBadRequest, Key: "error.cancel_needs_confirm"},
	{Target: service.ErrTrackingCodeRequired, Code: response.CodeBadRequest, Key: "error.tracking_code_required"},
	{Target: service.ErrPaymentReportRequired, Code: response.CodeBadRequest, Key: "error.payment_report_required"},
	{Target: service.ErrPaymentLast5Invalid, Code: response.CodeBadRequest, Key: "error.payment_last5_invalid"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
}

// ReportErrorRules 报表与导出错误
var ReportErrorRules = []MappedError{
	{Target: service.ErrReportRangeInvalid, Code: response.CodeBadRequest, Key: "error.report_range_invalid"},
	{Target: service.ErrExportKindInvalid, Code: response.CodeBadRequest, Key: "error.export_kind_invalid"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
}
