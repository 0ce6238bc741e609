package service

import (
	"strings"

	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"
)

// AdminOrderListInput 后台订单列表查询
type AdminOrderListInput struct {
	Tab      string
	Search   string
	Page     int
	PageSize int
}

// GetOrderByUser 获取会员自己的订单
func (s *OrderService) GetOrderByUser(orderID, userID string) (*models.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 会员订单列表（新单在前）
func (s *OrderService) ListOrdersByUser(userID string, page, pageSize int) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.List(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// ListOrdersForAdmin 后台订单列表：按标签页过滤并搜索
func (s *OrderService) ListOrdersForAdmin(input AdminOrderListInput) ([]models.Order, int64, error) {
	statuses, err := TabStatuses(input.Tab)
	if err != nil {
		return nil, 0, err
	}
	orders, total, err := s.orderRepo.List(repository.OrderListFilter{
		Statuses: statuses,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, ErrOrderFetchFailed
	}
	return orders, total, nil
}

// GetOrderForAdmin 后台获取订单详情
func (s *OrderService) GetOrderForAdmin(orderID string) (*models.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, ErrOrderFetchFailed
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
