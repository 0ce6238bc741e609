package shared

import "fmt"

// messages 接口错误提示（繁体中文）
var messages = map[string]string{
	"error.bad_request":               "請求參數錯誤",
	"error.unauthorized":              "請先登入",
	"error.forbidden":                 "沒有權限執行此操作",
	"error.not_found":                 "資料不存在",
	"error.internal":                  "系統忙碌中，請稍後再試",
	"error.jwt_secret_missing":        "系統尚未設定登入金鑰",
	"error.auth_header_missing":       "缺少登入憑證",
	"error.auth_header_invalid":       "登入憑證格式錯誤",
	"error.token_invalid":             "登入已失效，請重新登入",
	"error.rate_limited":              "操作過於頻繁，請於 %d 秒後再試",
	"error.login_too_many":            "登入嘗試過多，請於 %d 秒後再試",
	"error.rate_limit_unavailable":    "限流服務暫時無法使用",
	"error.user_not_found":            "查無此會員，請先註冊",
	"error.phone_exists":              "此手機號碼已註冊",
	"error.phone_invalid":             "手機號碼格式錯誤",
	"error.user_name_required":        "請填寫姓名",
	"error.birthday_invalid":          "生日格式錯誤",
	"error.tier_invalid":              "會員等級錯誤",
	"error.credits_invalid":           "購物金金額錯誤",
	"error.product_not_found":         "商品不存在",
	"error.product_code_exists":       "商品貨號已存在",
	"error.product_name_required":     "請填寫商品名稱",
	"error.product_price_invalid":     "商品價格錯誤",
	"error.product_option_invalid":    "商品規格錯誤",
	"error.category_name_required":    "請填寫分類名稱",
	"error.category_exists":           "分類已存在",
	"error.category_not_found":        "分類不存在",
	"error.category_code_invalid":     "分類代碼需為英文字母",
	"error.cart_item_not_found":       "購物車內沒有此商品",
	"error.cart_quantity_invalid":     "數量錯誤",
	"error.checkout_empty":            "請先選擇要結帳的商品",
	"error.logistics_conflict":        "所選商品物流方式衝突，請分開結帳",
	"error.shipping_unavailable":      "此物流方式無法使用",
	"error.payment_unavailable":       "此付款方式無法使用",
	"error.receiver_required":         "請填寫收件人姓名與電話",
	"error.receiver_store_required":   "請填寫取貨門市",
	"error.receiver_address_required": "請填寫收件地址",
	"error.insufficient_credits":      "購物金餘額不足",
	"error.order_not_found":           "訂單不存在",
	"error.order_status_invalid":      "訂單目前狀態無法執行此操作",
	"error.order_action_invalid":      "不支援的訂單操作",
	"error.order_id_exhausted":        "今日訂單編號已用完",
	"error.cancel_needs_confirm":      "取消訂單需再次確認",
	"error.tracking_code_required":    "請填寫物流單號",
	"error.payment_report_required":   "請填寫匯款人、匯款時間與帳號後五碼",
	"error.payment_last5_invalid":     "帳號後五碼需為 5 位數字",
	"error.order_create_failed":       "建立訂單失敗",
	"error.settings_invalid":          "商店設定錯誤",
	"error.report_range_invalid":      "報表區間錯誤",
	"error.export_kind_invalid":       "不支援的匯出類型",
}

// Message 取得提示文字，带参数时格式化
func Message(key string, args ...interface{}) string {
	msg, ok := messages[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
