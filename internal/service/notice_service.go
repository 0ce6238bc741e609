package service

import (
	"fmt"
	"time"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"
)

// NoticeService 会员站内通知
type NoticeService struct {
	noticeRepo repository.NoticeRepository
	orderRepo  repository.OrderRepository
}

// NewNoticeService 创建通知服务
func NewNoticeService(noticeRepo repository.NoticeRepository, orderRepo repository.OrderRepository) *NoticeService {
	return &NoticeService{noticeRepo: noticeRepo, orderRepo: orderRepo}
}

// OrderStatusMessage 订单状态通知文案
func OrderStatusMessage(order *models.Order, status constants.OrderStatus) string {
	switch status {
	case constants.OrderStatusUnpaidAlert:
		return fmt.Sprintf("訂單 %s 尚未完成付款，請盡快匯款並回報帳號後五碼。", order.ID)
	case constants.OrderStatusShipped:
		if order.ShippingLink != "" {
			return fmt.Sprintf("訂單 %s 已出貨，物流單號：%s。", order.ID, order.ShippingLink)
		}
		return fmt.Sprintf("訂單 %s 已出貨。", order.ID)
	default:
		return fmt.Sprintf("訂單 %s 狀態更新：%s。", order.ID, PaymentStatusLabel(status, order.PaymentMethod))
	}
}

// NotifyOrderStatus 为订单所属会员写入一则状态通知
// 订单不存在时返回 ErrOrderNotFound
func (s *NoticeService) NotifyOrderStatus(orderID string, status constants.OrderStatus) (*models.Notice, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !status.IsValid() {
		status = order.Status
	}
	notice := &models.Notice{
		UserID:    order.UserID,
		OrderID:   order.ID,
		Status:    string(status),
		Content:   OrderStatusMessage(order, status),
		CreatedAt: time.Now(),
	}
	if err := s.noticeRepo.Create(notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// ListByUser 会员通知列表（新通知在前）
func (s *NoticeService) ListByUser(userID string, page, pageSize int) ([]models.Notice, int64, error) {
	return s.noticeRepo.ListByUser(userID, page, pageSize)
}

// MarkRead 标记已读，ids 为空时全部标记
func (s *NoticeService) MarkRead(userID string, ids []uint) error {
	return s.noticeRepo.MarkRead(userID, ids, time.Now())
}
