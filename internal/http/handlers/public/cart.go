package public

import (
	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/repository"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CartLineRequest 购物车行（商品 + 规格）
type CartLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Option    string `json:"option"`
}

func (r CartLineRequest) key() repository.CartLineKey {
	return repository.CartLineKey{ProductID: r.ProductID, Option: r.Option}
}

func cartLineKeys(lines []CartLineRequest) []repository.CartLineKey {
	keys := make([]repository.CartLineKey, 0, len(lines))
	for _, line := range lines {
		keys = append(keys, line.key())
	}
	return keys
}

// AddCartItemRequest 加入购物车
type AddCartItemRequest struct {
	CartLineRequest
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest 调整数量（delta 可为负，结果至少为 1）
type UpdateCartItemRequest struct {
	CartLineRequest
	Delta int `json:"delta" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	items, err := h.CartService.ListByUser(memberID)
	if err != nil {
		respondMappedError(c, err, handlershared.CheckoutErrorRules, "error.internal")
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddCartItem 加入购物车（同商品同规格累加数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:    memberID,
		ProductID: req.ProductID,
		Option:    req.Option,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.CheckoutErrorRules, "error.internal")
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 调整购物车数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.CartService.UpdateQuantity(memberID, req.key(), req.Delta)
	if err != nil {
		respondMappedError(c, err, handlershared.CheckoutErrorRules, "error.internal")
		return
	}
	response.Success(c, item)
}

// DeleteCartItem 删除购物车行
func (h *Handler) DeleteCartItem(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	var req CartLineRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.CartService.RemoveItem(memberID, req.key()); err != nil {
		respondMappedError(c, err, handlershared.CheckoutErrorRules, "error.internal")
		return
	}
	response.Success(c, nil)
}
