package admin

import (
	"strings"

	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderActionRequest 订单管理动作
type OrderActionRequest struct {
	Action       string `json:"action" binding:"required"`
	TrackingCode string `json:"tracking_code" binding:"max=100"`
	Confirm      bool   `json:"confirm"`
}

// QuickActionRequest 列表快捷动作
type QuickActionRequest struct {
	Quick        string `json:"quick" binding:"required"`
	TrackingCode string `json:"tracking_code" binding:"max=100"`
}

// GetAdminOrders 后台订单列表（按标签页过滤）
func (h *Handler) GetAdminOrders(c *gin.Context) {
	page, pageSize := pageParams(c)
	orders, total, err := h.OrderService.ListOrdersForAdmin(service.AdminOrderListInput{
		Tab:      strings.TrimSpace(c.Query("tab")),
		Search:   strings.TrimSpace(c.Query("search")),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.OrderErrorRules)
		return
	}
	views, err := h.orderViewsWithNames(orders)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, views, response.BuildPagination(page, pageSize, total))
}

// GetAdminOrder 后台订单详情
func (h *Handler) GetAdminOrder(c *gin.Context) {
	order, err := h.OrderService.GetOrderForAdmin(c.Param("id"))
	if err != nil {
		respondMappedError(c, err, handlershared.OrderErrorRules)
		return
	}
	views, err := h.orderViewsWithNames([]models.Order{*order})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, views[0])
}

// ApplyOrderAction 执行订单管理动作
func (h *Handler) ApplyOrderAction(c *gin.Context) {
	var req OrderActionRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.OrderService.ApplyAction(c.Request.Context(), c.Param("id"), req.Action, service.OrderActionOptions{
		TrackingCode: req.TrackingCode,
		Confirm:      req.Confirm,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.OrderErrorRules)
		return
	}
	response.Success(c, handlershared.NewOrderView(order))
}

// ApplyOrderQuickAction 执行列表快捷动作
func (h *Handler) ApplyOrderQuickAction(c *gin.Context) {
	var req QuickActionRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.OrderService.ApplyQuickAction(c.Request.Context(), c.Param("id"), req.Quick, req.TrackingCode)
	if err != nil {
		respondMappedError(c, err, handlershared.OrderErrorRules)
		return
	}
	response.Success(c, handlershared.NewOrderView(order))
}

func (h *Handler) orderViewsWithNames(orders []models.Order) ([]handlershared.OrderView, error) {
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.UserID)
	}
	users, err := h.UserRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	views := handlershared.NewOrderViews(orders)
	for i := range views {
		views[i].UserName = names[views[i].UserID]
	}
	return views, nil
}
