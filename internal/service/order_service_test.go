package service

import (
	"context"
	"testing"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testReceiver = ReceiverInfo{Name: "王小美", Phone: "0912-345-678", Store: "信義門市", Address: "新北市板橋區"}

func TestCreateOrderHomeDeliveryBankTransfer(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	f.enableDelivery(t)
	key := f.addToCart(t, "M123", "p1", "白色", 1)
	ctx := context.Background()

	order, err := f.order.CreateOrder(ctx, CreateOrderInput{
		CheckoutSelection: CheckoutSelection{
			UserID:         "M123",
			Lines:          []repository.CartLineKey{key},
			ShippingMethod: constants.ShippingMethodDelivery,
			PaymentMethod:  constants.PaymentMethodBankTransfer,
		},
		Receiver: testReceiver,
	})
	require.NoError(t, err)
	assert.Equal(t, "202505200001", order.ID)
	assert.Equal(t, constants.OrderStatusPendingPayment, order.Status)
	assert.Equal(t, "0912345678", order.ShippingPhone)
	requireMoney(t, 450, order.Subtotal, "subtotal")
	requireMoney(t, 100, order.ShippingFee, "shipping_fee")
	requireMoney(t, 550, order.FinalTotal, "final_total")

	product, err := f.products.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 19, product.Stock)
	assert.Equal(t, 6, product.SoldCount)

	user, err := f.users.GetByID("M123")
	require.NoError(t, err)
	requireMoney(t, 1950, user.TotalSpend, "total_spend")

	remaining, err := f.carts.ListByUser("M123")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestCreateOrderStoreChannelWithLast5(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	key := f.addToCart(t, "M123", "p1", "粉色", 1)

	order, err := f.order.CreateOrder(context.Background(), CreateOrderInput{
		CheckoutSelection: CheckoutSelection{
			UserID:         "M123",
			Lines:          []repository.CartLineKey{key},
			ShippingMethod: constants.ShippingMethodMyship,
			PaymentMethod:  constants.PaymentMethodBankTransfer,
		},
		PaymentName:  "王小美",
		PaymentTime:  "2025-05-20 09:00",
		PaymentLast5: "１２３４５",
		Receiver:     testReceiver,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPaidVerifying, order.Status)
	assert.Equal(t, "12345", order.PaymentLast5)
	requireMoney(t, 0, order.ShippingFee, "shipping_fee")
	requireMoney(t, 20, order.Discount, "discount")
	requireMoney(t, 430, order.FinalTotal, "final_total")
}

func TestCreateOrderUsesCredits(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	key := f.addToCart(t, "M123", "p1", "白色", 1)

	order, err := f.order.CreateOrder(context.Background(), CreateOrderInput{
		CheckoutSelection: CheckoutSelection{
			UserID:         "M123",
			Lines:          []repository.CartLineKey{key},
			ShippingMethod: constants.ShippingMethodMeetup,
			PaymentMethod:  constants.PaymentMethodCOD,
			UseCredits:     true,
		},
		Receiver: testReceiver,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPaymentConfirmed, order.Status)
	requireMoney(t, 100, order.UsedCredits, "used_credits")
	requireMoney(t, 350, order.FinalTotal, "final_total")

	user, err := f.users.GetByID("M123")
	require.NoError(t, err)
	requireMoney(t, 0, user.Credits, "credits")
}

func TestCreateOrderRejectsUnavailableMethods(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	key := f.addToCart(t, "M123", "p1", "白色", 1)
	ctx := context.Background()

	selection := CheckoutSelection{
		UserID:         "M123",
		Lines:          []repository.CartLineKey{key},
		ShippingMethod: constants.ShippingMethodDelivery,
		PaymentMethod:  constants.PaymentMethodBankTransfer,
	}
	_, err := f.order.CreateOrder(ctx, CreateOrderInput{CheckoutSelection: selection, Receiver: testReceiver})
	require.ErrorIs(t, err, ErrShippingMethodUnavailable)

	selection.ShippingMethod = constants.ShippingMethodMeetup
	selection.PaymentMethod = constants.PaymentMethodCash
	_, err = f.order.CreateOrder(ctx, CreateOrderInput{CheckoutSelection: selection, Receiver: testReceiver})
	require.ErrorIs(t, err, ErrPaymentMethodUnavailable)

	selection.Lines = nil
	_, err = f.order.CreateOrder(ctx, CreateOrderInput{CheckoutSelection: selection, Receiver: testReceiver})
	require.ErrorIs(t, err, ErrCheckoutEmpty)

	_, err = f.order.CreateOrder(ctx, CreateOrderInput{
		CheckoutSelection: CheckoutSelection{
			UserID:         "M123",
			Lines:          []repository.CartLineKey{{ProductID: "p9"}},
			ShippingMethod: constants.ShippingMethodMeetup,
			PaymentMethod:  constants.PaymentMethodBankTransfer,
		},
		Receiver: testReceiver,
	})
	require.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCheckoutEmptySelection(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	f.addToCart(t, "M123", "p1", "白色", 1)
	ctx := context.Background()

	channels, err := f.order.ResolveCheckoutChannels(ctx, "M123", nil)
	require.NoError(t, err)
	assert.Empty(t, channels.Payment)
	assert.Empty(t, channels.Shipping)
	assert.NotNil(t, channels.Payment)
	assert.NotNil(t, channels.Shipping)
	assert.False(t, channels.LogisticsConflict())

	preview, err := f.order.PreviewCheckout(ctx, CheckoutSelection{
		UserID:         "M123",
		ShippingMethod: constants.ShippingMethodMyship,
		PaymentMethod:  constants.PaymentMethodBankTransfer,
		UseCredits:     true,
	})
	require.NoError(t, err)
	assert.Empty(t, preview.Channels.Payment)
	assert.Empty(t, preview.Channels.Shipping)
	requireMoney(t, 0, preview.Totals.Subtotal, "subtotal")
	requireMoney(t, 0, preview.Totals.ShippingFee, "shipping fee")
	requireMoney(t, 0, preview.Totals.Discount, "discount")
	requireMoney(t, 0, preview.Totals.CreditsUsed, "credits used")
	requireMoney(t, 0, preview.Totals.FinalTotal, "final total")
}

func TestCheckoutLogisticsConflict(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", "p1").
		Update("allow_shipping", models.ChannelSwitch{constants.ShippingMethodMeetup: true, constants.ShippingMethodMyship: false, constants.ShippingMethodFamily: false, constants.ShippingMethodDelivery: false}).Error)
	require.NoError(t, f.db.Model(&models.Product{}).Where("id = ?", "p2").
		Update("allow_shipping", models.ChannelSwitch{constants.ShippingMethodMeetup: false, constants.ShippingMethodMyship: true, constants.ShippingMethodFamily: false, constants.ShippingMethodDelivery: false}).Error)
	mug := f.addToCart(t, "M123", "p1", "白色", 1)
	tote := f.addToCart(t, "M123", "p2", "黑色", 1)
	ctx := context.Background()

	channels, err := f.order.ResolveCheckoutChannels(ctx, "M123", []repository.CartLineKey{mug, tote})
	require.NoError(t, err)
	assert.True(t, channels.LogisticsConflict())

	_, err = f.order.PreviewCheckout(ctx, CheckoutSelection{
		UserID:         "M123",
		Lines:          []repository.CartLineKey{mug, tote},
		ShippingMethod: constants.ShippingMethodMeetup,
		PaymentMethod:  constants.PaymentMethodBankTransfer,
	})
	require.ErrorIs(t, err, ErrLogisticsConflict)

	preview, err := f.order.PreviewCheckout(ctx, CheckoutSelection{
		UserID:         "M123",
		Lines:          []repository.CartLineKey{tote},
		ShippingMethod: constants.ShippingMethodMyship,
		PaymentMethod:  constants.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{constants.ShippingMethodMyship}, preview.Channels.Shipping)
	requireMoney(t, 870, preview.Totals.FinalTotal, "final_total")
}

func TestOrderIDSequencePerDay(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		key := f.addToCart(t, "M123", "p1", "白色", 1)
		order, err := f.order.CreateOrder(ctx, CreateOrderInput{
			CheckoutSelection: CheckoutSelection{
				UserID:         "M123",
				Lines:          []repository.CartLineKey{key},
				ShippingMethod: constants.ShippingMethodMeetup,
				PaymentMethod:  constants.PaymentMethodBankTransfer,
			},
			Receiver: testReceiver,
		})
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}
	assert.Equal(t, []string{"202505200001", "202505200002"}, ids)
}

func createCODOrder(t *testing.T, f *serviceFixture) *models.Order {
	t.Helper()
	key := f.addToCart(t, "M123", "p2", "黑色", 1)
	order, err := f.order.CreateOrder(context.Background(), CreateOrderInput{
		CheckoutSelection: CheckoutSelection{
			UserID:         "M123",
			Lines:          []repository.CartLineKey{key},
			ShippingMethod: constants.ShippingMethodFamily,
			PaymentMethod:  constants.PaymentMethodCOD,
		},
		Receiver: testReceiver,
	})
	require.NoError(t, err)
	return order
}

func TestCODLifecycle(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()
	order := createCODOrder(t, f)
	require.Equal(t, constants.OrderStatusPaymentConfirmed, order.Status)

	_, err := f.order.MarkCODCollected(ctx, order.ID)
	require.ErrorIs(t, err, ErrOrderStatusInvalid)

	_, err = f.order.MarkShipped(ctx, order.ID, "  ")
	require.ErrorIs(t, err, ErrTrackingCodeRequired)

	shipped, err := f.order.MarkShipped(ctx, order.ID, "F123456789")
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusShipped, shipped.Status)
	assert.Equal(t, "F123456789", shipped.ShippingLink)

	_, err = f.order.Cancel(ctx, order.ID, true)
	require.ErrorIs(t, err, ErrOrderStatusInvalid)

	completed, err := f.order.ApplyQuickAction(ctx, order.ID, QuickActionComplete, "")
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusCompleted, completed.Status)
}

func TestQuickShipTrackingOptional(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	order := createCODOrder(t, f)

	shipped, err := f.order.ApplyQuickAction(context.Background(), order.ID, QuickActionShip, "")
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusShipped, shipped.Status)
	assert.Empty(t, shipped.ShippingLink)
}

func TestBankTransferLifecycle(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()
	key := f.addToCart(t, "M123", "p1", "白色", 1)
	order, err := f.order.CreateOrder(ctx, CreateOrderInput{
		CheckoutSelection: CheckoutSelection{
			UserID:         "M123",
			Lines:          []repository.CartLineKey{key},
			ShippingMethod: constants.ShippingMethodMeetup,
			PaymentMethod:  constants.PaymentMethodBankTransfer,
		},
		Receiver: testReceiver,
	})
	require.NoError(t, err)

	reminded, err := f.order.SendReminder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusUnpaidAlert, reminded.Status)

	_, err = f.order.ReportPayment(ctx, "M123", order.ID, ReportPaymentInput{Name: "王小美", Time: "10:00"})
	require.ErrorIs(t, err, ErrPaymentReportRequired)

	_, err = f.order.ReportPayment(ctx, "M999", order.ID, ReportPaymentInput{Name: "王小美", Time: "10:00", Last5: "54321"})
	require.ErrorIs(t, err, ErrOrderNotFound)

	reported, err := f.order.ReportPayment(ctx, "M123", order.ID, ReportPaymentInput{Name: "王小美", Time: "10:00", Last5: "54321"})
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPaidVerifying, reported.Status)
	assert.Equal(t, "54321", reported.PaymentLast5)

	again, err := f.order.ReportPayment(ctx, "M123", order.ID, ReportPaymentInput{Name: "王小美", Time: "10:05", Last5: "54321"})
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPaidVerifying, again.Status)
	assert.Equal(t, "10:05", again.PaymentTime)

	confirmed, err := f.order.ApplyQuickAction(ctx, order.ID, QuickActionConfirm, "")
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPaymentConfirmed, confirmed.Status)

	refundNeeded, err := f.order.MarkRefundNeeded(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusRefundNeeded, refundNeeded.Status)

	refunded, err := f.order.MarkRefunded(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusRefunded, refunded.Status)

	_, err = f.order.MarkRefunded(ctx, order.ID)
	require.ErrorIs(t, err, ErrOrderStatusInvalid)
}

func TestCancelRequiresConfirmation(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	ctx := context.Background()
	order := createCODOrder(t, f)

	_, err := f.order.Cancel(ctx, order.ID, false)
	require.ErrorIs(t, err, ErrCancelNeedsConfirm)

	stored, err := f.order.GetOrderForAdmin(order.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPaymentConfirmed, stored.Status)

	cancelled, err := f.order.Cancel(ctx, order.ID, true)
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusCancelled, cancelled.Status)

	_, err = f.order.Cancel(ctx, order.ID, true)
	require.ErrorIs(t, err, ErrOrderStatusInvalid)
}

func TestApplyActionRejectsMemberOnlyAction(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	order := createCODOrder(t, f)

	_, err := f.order.ApplyAction(context.Background(), order.ID, constants.OrderActionReportPayment, OrderActionOptions{})
	require.ErrorIs(t, err, ErrOrderActionInvalid)

	_, err = f.order.ApplyAction(context.Background(), "209901010001", constants.OrderActionCancel, OrderActionOptions{Confirm: true})
	require.ErrorIs(t, err, ErrOrderNotFound)
}
