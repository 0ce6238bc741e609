package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/logger"
	"github.com/mymy-shop/internal/metrics"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/queue"
	"github.com/mymy-shop/internal/repository"

	"gorm.io/gorm"
)

const maxDailyOrderSeq = 9999

// OrderService 订单服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	userRepo       repository.UserRepository
	cartRepo       repository.CartRepository
	settingService *SettingService
	queueClient    *queue.Client
	loc            *time.Location
	now            func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, cartRepo repository.CartRepository, settingService *SettingService, queueClient *queue.Client, loc *time.Location) *OrderService {
	if loc == nil {
		loc = time.Local
	}
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		userRepo:       userRepo,
		cartRepo:       cartRepo,
		settingService: settingService,
		queueClient:    queueClient,
		loc:            loc,
		now:            time.Now,
	}
}

// CheckoutSelection 结帐选择
type CheckoutSelection struct {
	UserID         string
	Lines          []repository.CartLineKey
	ShippingMethod string
	PaymentMethod  string
	UseCredits     bool
}

// CheckoutPreview 结帐预览
type CheckoutPreview struct {
	Channels ChannelSet     `json:"channels"`
	Totals   CheckoutTotals `json:"totals"`
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	CheckoutSelection
	PaymentName  string
	PaymentTime  string
	PaymentLast5 string
	Receiver     ReceiverInfo
}

// ReportPaymentInput 会员回报汇款
type ReportPaymentInput struct {
	Name  string
	Time  string
	Last5 string
}

// OrderActionOptions 管理动作附加参数
type OrderActionOptions struct {
	TrackingCode string
	Confirm      bool
}

type checkoutContext struct {
	settings ShopSettings
	lines    []CheckoutLine
	keys     []repository.CartLineKey
	catalog  map[string]*models.Product
	channels ChannelSet
}

// ResolveCheckoutChannels 计算选中购物车行可用的付款与物流方式
func (s *OrderService) ResolveCheckoutChannels(ctx context.Context, userID string, keys []repository.CartLineKey) (ChannelSet, error) {
	if len(keys) == 0 {
		return ResolveChannels(nil, ShopSettings{}, nil), nil
	}
	checkout, err := s.loadCheckout(ctx, userID, keys)
	if err != nil {
		return ChannelSet{}, err
	}
	return checkout.channels, nil
}

// PreviewCheckout 结帐预览：校验所选方式并计算金额
// 未选中任何行时返回空渠道与全零金额
func (s *OrderService) PreviewCheckout(ctx context.Context, selection CheckoutSelection) (*CheckoutPreview, error) {
	if len(selection.Lines) == 0 {
		return &CheckoutPreview{
			Channels: ResolveChannels(nil, ShopSettings{}, nil),
			Totals:   CalculateCheckout(CheckoutInput{}),
		}, nil
	}
	checkout, err := s.loadCheckout(ctx, selection.UserID, selection.Lines)
	if err != nil {
		return nil, err
	}
	if err := checkMethods(checkout.channels, selection.ShippingMethod, selection.PaymentMethod); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(selection.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	totals := CalculateCheckout(CheckoutInput{
		Lines:          checkout.lines,
		ShippingMethod: selection.ShippingMethod,
		PaymentMethod:  selection.PaymentMethod,
		UseCredits:     selection.UseCredits,
		UserCredits:    user.Credits.Decimal,
		Settings:       checkout.settings,
	})
	return &CheckoutPreview{Channels: checkout.channels, Totals: totals}, nil
}

// CreateOrder 提交结帐建立订单
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if err := ValidateReceiver(input.ShippingMethod, input.Receiver); err != nil {
		return nil, err
	}
	last5 := ""
	if strings.TrimSpace(input.PaymentLast5) != "" {
		normalized, err := normalizeLast5(input.PaymentLast5)
		if err != nil {
			return nil, err
		}
		last5 = normalized
	}

	checkout, err := s.loadCheckout(ctx, input.UserID, input.Lines)
	if err != nil {
		return nil, err
	}
	if err := checkMethods(checkout.channels, input.ShippingMethod, input.PaymentMethod); err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	items := make([]models.OrderItem, 0, len(checkout.lines))
	for _, line := range checkout.lines {
		items = append(items, models.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductImage: line.ProductImage,
			Option:       line.Option,
			Price:        line.Price,
			Quantity:     line.Quantity,
		})
	}
	order := &models.Order{
		UserID:          input.UserID,
		PaymentMethod:   input.PaymentMethod,
		PaymentName:     strings.TrimSpace(input.PaymentName),
		PaymentTime:     strings.TrimSpace(input.PaymentTime),
		PaymentLast5:    last5,
		ShippingMethod:  input.ShippingMethod,
		ShippingName:    strings.TrimSpace(input.Receiver.Name),
		ShippingPhone:   NormalizePhone(input.Receiver.Phone),
		ShippingStore:   strings.TrimSpace(input.Receiver.Store),
		ShippingAddress: strings.TrimSpace(input.Receiver.Address),
		Status:          InitialStatus(input.PaymentMethod, last5),
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		user, err := userRepo.GetByID(input.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		totals := CalculateCheckout(CheckoutInput{
			Lines:          checkout.lines,
			ShippingMethod: input.ShippingMethod,
			PaymentMethod:  input.PaymentMethod,
			UseCredits:     input.UseCredits,
			UserCredits:    user.Credits.Decimal,
			Settings:       checkout.settings,
		})
		order.Subtotal = totals.Subtotal
		order.ShippingFee = totals.ShippingFee
		order.Discount = totals.Discount
		order.UsedCredits = totals.CreditsUsed
		order.FinalTotal = totals.FinalTotal

		id, err := nextOrderID(orderRepo, now)
		if err != nil {
			return err
		}
		order.ID = id
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, line := range checkout.lines {
			if err := productRepo.ApplySale(line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		if err := userRepo.ApplyOrderSpend(user.ID, totals.Subtotal.Decimal, totals.CreditsUsed.Decimal); err != nil {
			if errors.Is(err, repository.ErrInsufficientCredits) {
				return ErrInsufficientCredits
			}
			return err
		}
		return cartRepo.DeleteLines(input.UserID, checkout.keys)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound),
			errors.Is(err, ErrInsufficientCredits),
			errors.Is(err, ErrOrderIDExhausted):
			return nil, err
		}
		logger.Errorw("order_create_failed",
			"user_id", input.UserID,
			"payment_method", input.PaymentMethod,
			"shipping_method", input.ShippingMethod,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}

	metrics.ObserveOrderCreated(order.PaymentMethod, order.ShippingMethod, order.FinalTotal.InexactFloat64())
	s.afterOrderChanged(ctx, order.ID, order.Status)
	return order, nil
}

// nextOrderID 订单编号：YYYYMMDD + 当日 4 位流水，撞号时顺延
func nextOrderID(orderRepo repository.OrderRepository, now time.Time) (string, error) {
	prefix := now.Format("20060102")
	count, err := orderRepo.CountByIDPrefix(prefix)
	if err != nil {
		return "", err
	}
	for seq := int(count) + 1; seq <= maxDailyOrderSeq; seq++ {
		id := fmt.Sprintf("%s%04d", prefix, seq)
		existing, err := orderRepo.GetByID(id)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return id, nil
		}
	}
	return "", ErrOrderIDExhausted
}

// ReportPayment 会员回报汇款资料，任何状态均转为对帐中
func (s *OrderService) ReportPayment(ctx context.Context, userID, orderID string, input ReportPaymentInput) (*models.Order, error) {
	name := strings.TrimSpace(input.Name)
	paidAt := strings.TrimSpace(input.Time)
	if name == "" || paidAt == "" || strings.TrimSpace(input.Last5) == "" {
		return nil, ErrPaymentReportRequired
	}
	last5, err := normalizeLast5(input.Last5)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.transition(ctx, order, constants.OrderActionReportPayment, map[string]interface{}{
		"payment_name":  name,
		"payment_time":  paidAt,
		"payment_last5": last5,
	})
}

// ApplyAction 管理员对订单执行动作
func (s *OrderService) ApplyAction(ctx context.Context, orderID, action string, opts OrderActionOptions) (*models.Order, error) {
	if action == constants.OrderActionReportPayment {
		return nil, ErrOrderActionInvalid
	}
	order, err := s.GetOrderForAdmin(orderID)
	if err != nil {
		return nil, err
	}
	return s.applyAction(ctx, order, action, opts, true)
}

// ApplyQuickAction 快捷动作：校验前置状态后走完整动作的守卫
func (s *OrderService) ApplyQuickAction(ctx context.Context, orderID, quick, trackingCode string) (*models.Order, error) {
	order, err := s.GetOrderForAdmin(orderID)
	if err != nil {
		return nil, err
	}
	action, err := ResolveQuickAction(quick, order)
	if err != nil {
		return nil, err
	}
	return s.applyAction(ctx, order, action, OrderActionOptions{TrackingCode: trackingCode, Confirm: true}, false)
}

// ConfirmPayment 确认收款
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID string) (*models.Order, error) {
	return s.ApplyAction(ctx, orderID, constants.OrderActionConfirmPayment, OrderActionOptions{})
}

// SendReminder 发送付款提醒
func (s *OrderService) SendReminder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.ApplyAction(ctx, orderID, constants.OrderActionSendReminder, OrderActionOptions{})
}

// MarkShipped 标记出货（物流单号必填）
func (s *OrderService) MarkShipped(ctx context.Context, orderID, trackingCode string) (*models.Order, error) {
	return s.ApplyAction(ctx, orderID, constants.OrderActionMarkShipped, OrderActionOptions{TrackingCode: trackingCode})
}

// MarkRefundNeeded 标记需退款
func (s *OrderService) MarkRefundNeeded(ctx context.Context, orderID string) (*models.Order, error) {
	return s.ApplyAction(ctx, orderID, constants.OrderActionMarkRefundNeeded, OrderActionOptions{})
}

// MarkRefunded 标记已退款
func (s *OrderService) MarkRefunded(ctx context.Context, orderID string) (*models.Order, error) {
	return s.ApplyAction(ctx, orderID, constants.OrderActionMarkRefunded, OrderActionOptions{})
}

// MarkCODCollected 货到付款已入帐
func (s *OrderService) MarkCODCollected(ctx context.Context, orderID string) (*models.Order, error) {
	return s.ApplyAction(ctx, orderID, constants.OrderActionMarkCODCollected, OrderActionOptions{})
}

// Cancel 取消订单，未确认时拒绝执行
func (s *OrderService) Cancel(ctx context.Context, orderID string, confirm bool) (*models.Order, error) {
	return s.ApplyAction(ctx, orderID, constants.OrderActionCancel, OrderActionOptions{Confirm: confirm})
}

func (s *OrderService) applyAction(ctx context.Context, order *models.Order, action string, opts OrderActionOptions, trackingRequired bool) (*models.Order, error) {
	if _, err := CanTransition(action, order); err != nil {
		return nil, err
	}
	extra := map[string]interface{}{}
	switch action {
	case constants.OrderActionMarkShipped:
		tracking := strings.TrimSpace(opts.TrackingCode)
		if tracking == "" && trackingRequired {
			return nil, ErrTrackingCodeRequired
		}
		if tracking != "" {
			extra["shipping_link"] = tracking
		}
	case constants.OrderActionCancel:
		if !opts.Confirm {
			return nil, ErrCancelNeedsConfirm
		}
	}
	return s.transition(ctx, order, action, extra)
}

// transition 按守卫表条件更新状态，状态已被并发修改时视为不允许
func (s *OrderService) transition(ctx context.Context, order *models.Order, action string, extra map[string]interface{}) (*models.Order, error) {
	target, err := CanTransition(action, order)
	if err != nil {
		return nil, err
	}
	updated, err := s.orderRepo.UpdateStatus(order.ID, order.Status, target, extra)
	if err != nil {
		logger.Errorw("order_update_status_failed",
			"order_id", order.ID,
			"action", action,
			"from", order.Status,
			"to", target,
			"error", err,
		)
		return nil, ErrOrderUpdateFailed
	}
	if !updated {
		return nil, ErrOrderStatusInvalid
	}
	fresh, err := s.orderRepo.GetByID(order.ID)
	if err != nil || fresh == nil {
		return nil, ErrOrderFetchFailed
	}

	metrics.ObserveOrderTransition(action, string(target))
	s.afterOrderChanged(ctx, fresh.ID, fresh.Status)
	return fresh, nil
}

// afterOrderChanged 订单变化后的通知与报表缓存失效，失败仅记录日志
func (s *OrderService) afterOrderChanged(ctx context.Context, orderID string, status constants.OrderStatus) {
	invalidateReportCache(ctx, "order_id", orderID)
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: orderID,
		Status:  string(status),
	}); err != nil {
		logger.Warnw("order_enqueue_status_notify_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
	if err := s.queueClient.EnqueueReportWarmup(queue.ReportWarmupPayload{}); err != nil {
		logger.Warnw("report_enqueue_warmup_failed", "order_id", orderID, "error", err)
	}
}

// loadCheckout 读取选中的购物车行与商品，计算可用渠道
func (s *OrderService) loadCheckout(ctx context.Context, userID string, keys []repository.CartLineKey) (*checkoutContext, error) {
	if len(keys) == 0 {
		return nil, ErrCheckoutEmpty
	}
	settings, err := s.settingService.GetShopSettings(ctx)
	if err != nil {
		return nil, err
	}
	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	byKey := make(map[repository.CartLineKey]models.CartItem, len(cartItems))
	for _, item := range cartItems {
		byKey[repository.CartLineKey{ProductID: item.ProductID, Option: item.Option}] = item
	}

	seen := make(map[repository.CartLineKey]bool, len(keys))
	lines := make([]CheckoutLine, 0, len(keys))
	selected := make([]repository.CartLineKey, 0, len(keys))
	productIDs := make([]string, 0, len(keys))
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		item, ok := byKey[key]
		if !ok {
			return nil, ErrCartItemNotFound
		}
		lines = append(lines, CheckoutLine{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Option:       item.Option,
			Price:        item.Price,
			Quantity:     item.Quantity,
		})
		selected = append(selected, key)
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]*models.Product, len(products))
	for i := range products {
		catalog[products[i].ID] = &products[i]
	}
	return &checkoutContext{
		settings: settings,
		lines:    lines,
		keys:     selected,
		catalog:  catalog,
		channels: ResolveChannels(lines, settings, catalog),
	}, nil
}

func checkMethods(channels ChannelSet, shippingMethod, paymentMethod string) error {
	if channels.LogisticsConflict() {
		return ErrLogisticsConflict
	}
	if !channels.HasShipping(shippingMethod) {
		return ErrShippingMethodUnavailable
	}
	if !channels.HasPayment(paymentMethod) {
		return ErrPaymentMethodUnavailable
	}
	return nil
}
