package repository

import (
	"time"

	"github.com/mymy-shop/internal/constants"
)

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page     int
	PageSize int
	Category string
	Search   string
	InStock  bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      string
	Statuses    []constants.OrderStatus
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询会员列表的过滤条件
type UserListFilter struct {
	Page       int
	PageSize   int
	Search     string
	BirthMonth int
	Tier       string
}

// CartLineKey 购物车行唯一键（商品 + 规格）
type CartLineKey struct {
	ProductID string
	Option    string
}
