package service

import (
	"strings"
	"time"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ProductID    string       `json:"product_id"`
	ProductName  string       `json:"product_name"`
	ProductImage string       `json:"product_image"`
	Option       string       `json:"option"`
	Price        models.Money `json:"price"`
	Quantity     int          `json:"quantity"`
	LineTotal    models.Money `json:"line_total"`
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	UserID    string
	ProductID string
	Option    string
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// TierPrice 按会员等级取价：批发/VIP 价为 0 时回退一般售价
func TierPrice(product *models.Product, tier string) models.Money {
	if product == nil {
		return models.ZeroMoney()
	}
	switch tier {
	case constants.UserTierWholesale:
		if product.PriceWholesale.IsPositive() {
			return product.PriceWholesale
		}
	case constants.UserTierVip:
		if product.PriceVip.IsPositive() {
			return product.PriceVip
		}
	}
	return product.PriceGeneral
}

// ListByUser 获取会员购物车
func (s *CartService) ListByUser(userID string) ([]CartItemDetail, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		details = append(details, CartItemDetail{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Option:       item.Option,
			Price:        item.Price,
			Quantity:     item.Quantity,
			LineTotal:    models.NewMoneyFromDecimal(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		})
	}
	return details, nil
}

// AddItem 加入购物车：同一 商品+规格 累加数量并刷新单价
func (s *CartService) AddItem(input AddCartItemInput) (*models.CartItem, error) {
	if input.Quantity <= 0 {
		return nil, ErrCartQuantityInvalid
	}
	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	product, err := s.productRepo.GetByID(strings.TrimSpace(input.ProductID))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	option := strings.TrimSpace(input.Option)
	if len(product.Options) > 0 {
		if !containsString(product.Options, option) {
			return nil, ErrProductOptionInvalid
		}
	} else {
		option = ""
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:       user.ID,
		ProductID:    product.ID,
		Option:       option,
		ProductName:  product.Name,
		ProductImage: primaryImage(product),
		Price:        TierPrice(product, user.Tier),
		Quantity:     input.Quantity,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity 调整数量，结果最少为 1
func (s *CartService) UpdateQuantity(userID string, key repository.CartLineKey, delta int) (*models.CartItem, error) {
	item, err := s.cartRepo.GetLine(userID, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	item.Quantity += delta
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	item.UpdatedAt = time.Now()
	if err := s.cartRepo.Save(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID string, key repository.CartLineKey) error {
	if strings.TrimSpace(key.ProductID) == "" {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteLine(userID, key)
}

// Clear 清空购物车
func (s *CartService) Clear(userID string) error {
	return s.cartRepo.ClearByUser(userID)
}

func primaryImage(product *models.Product) string {
	if product == nil {
		return ""
	}
	if strings.TrimSpace(product.Image) != "" {
		return product.Image
	}
	if len(product.Images) > 0 {
		return product.Images[0]
	}
	return ""
}
