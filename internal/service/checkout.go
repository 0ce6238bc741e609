package service

import (
	"strings"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"

	"github.com/shopspring/decimal"
)

// StoreChannelDiscount 超商取货渠道开单预扣金额
var StoreChannelDiscount = decimal.NewFromInt(20)

// CheckoutLine 结帐行（购物车快照）
type CheckoutLine struct {
	ProductID    string       `json:"product_id"`
	ProductName  string       `json:"product_name"`
	ProductImage string       `json:"product_image"`
	Option       string       `json:"option"`
	Price        models.Money `json:"price"`
	Quantity     int          `json:"quantity"`
}

// Amount 行小计
func (l CheckoutLine) Amount() decimal.Decimal {
	if l.Quantity <= 0 {
		return decimal.Zero
	}
	return l.Price.Decimal.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CheckoutInput 结帐计算输入
type CheckoutInput struct {
	Lines          []CheckoutLine
	ShippingMethod string
	PaymentMethod  string
	UseCredits     bool
	UserCredits    decimal.Decimal
	Settings       ShopSettings
}

// CheckoutTotals 结帐金额
type CheckoutTotals struct {
	Subtotal    models.Money `json:"subtotal"`
	ShippingFee models.Money `json:"shipping_fee"`
	Discount    models.Money `json:"discount"`
	CreditsUsed models.Money `json:"credits_used"`
	FinalTotal  models.Money `json:"final_total"`
}

// CalculateCheckout 计算结帐金额
//  1. 小计 = Σ 单价×数量
//  2. 运费：达免运门槛为 0；超商取货为 0；其余按配置
//  3. 折抵：超商取货固定 20
//  4. 购物金：min(余额, max(0, 小计+运费-折抵))
//  5. 应付 = max(0, 小计+运费-折抵-购物金)
func CalculateCheckout(input CheckoutInput) CheckoutTotals {
	if len(input.Lines) == 0 {
		return CheckoutTotals{
			Subtotal:    models.ZeroMoney(),
			ShippingFee: models.ZeroMoney(),
			Discount:    models.ZeroMoney(),
			CreditsUsed: models.ZeroMoney(),
			FinalTotal:  models.ZeroMoney(),
		}
	}

	subtotal := decimal.Zero
	for _, line := range input.Lines {
		subtotal = subtotal.Add(line.Amount())
	}

	shippingFee := resolveShippingFee(input.Settings, input.ShippingMethod, subtotal)

	discount := decimal.Zero
	if constants.IsStoreShipping(input.ShippingMethod) {
		discount = StoreChannelDiscount
	}

	creditsUsed := decimal.Zero
	if input.UseCredits {
		owed := decimal.Max(decimal.Zero, subtotal.Add(shippingFee).Sub(discount))
		creditsUsed = decimal.Min(decimal.Max(decimal.Zero, input.UserCredits), owed)
	}

	finalTotal := decimal.Max(decimal.Zero, subtotal.Add(shippingFee).Sub(discount).Sub(creditsUsed))
	return CheckoutTotals{
		Subtotal:    models.Money{Decimal: subtotal},
		ShippingFee: models.Money{Decimal: shippingFee},
		Discount:    models.Money{Decimal: discount},
		CreditsUsed: models.Money{Decimal: creditsUsed},
		FinalTotal:  models.Money{Decimal: finalTotal},
	}
}

func resolveShippingFee(settings ShopSettings, method string, subtotal decimal.Decimal) decimal.Decimal {
	threshold := settings.Shipping.FreeThreshold.Decimal
	if threshold.IsPositive() && subtotal.GreaterThanOrEqual(threshold) {
		return decimal.Zero
	}
	if constants.IsStoreShipping(method) {
		return decimal.Zero
	}
	cfg, ok := settings.ShippingMethod(method)
	if !ok {
		return decimal.Zero
	}
	return decimal.Max(decimal.Zero, cfg.Fee.Decimal)
}

// ReceiverInfo 收件资料
type ReceiverInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Store   string `json:"store"`
	Address string `json:"address"`
}

// ValidateReceiver 校验收件资料：超商取货需门市，宅配需地址
func ValidateReceiver(shippingMethod string, info ReceiverInfo) error {
	if strings.TrimSpace(info.Name) == "" || strings.TrimSpace(info.Phone) == "" {
		return ErrReceiverRequired
	}
	if constants.IsStoreShipping(shippingMethod) && strings.TrimSpace(info.Store) == "" {
		return ErrReceiverStoreRequired
	}
	if shippingMethod == constants.ShippingMethodDelivery && strings.TrimSpace(info.Address) == "" {
		return ErrReceiverAddressRequired
	}
	return nil
}
