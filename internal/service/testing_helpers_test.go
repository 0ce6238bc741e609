package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testLoc = time.FixedZone("Asia/Taipei", 8*3600)

type serviceFixture struct {
	db       *gorm.DB
	orders   *repository.GormOrderRepository
	products *repository.GormProductRepository
	users    *repository.GormUserRepository
	carts    *repository.GormCartRepository
	settings *SettingService
	cart     *CartService
	order    *OrderService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	previous := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = previous })

	f := &serviceFixture{
		db:       db,
		orders:   repository.NewOrderRepository(db),
		products: repository.NewProductRepository(db),
		users:    repository.NewUserRepository(db),
		carts:    repository.NewCartRepository(db),
		settings: NewSettingService(repository.NewSettingRepository(db)),
	}
	f.cart = NewCartService(f.carts, f.products, f.users)
	f.order = NewOrderService(f.orders, f.products, f.users, f.carts, f.settings, nil, testLoc)
	f.order.now = func() time.Time { return time.Date(2025, 5, 20, 10, 0, 0, 0, testLoc) }
	return f
}

func (f *serviceFixture) seedCatalog(t *testing.T) {
	t.Helper()
	mug := &models.Product{
		ID:                "p1",
		Code:              "L250520001",
		Name:              "可愛貓咪馬克杯",
		Category:          "生活小物",
		Options:           models.StringArray{"白色", "粉色"},
		LocalPrice:        models.NewMoneyFromInt(1000),
		ExchangeRate:      decimal.RequireFromString("0.22"),
		CostMaterial:      models.NewMoneyFromInt(50),
		Weight:            decimal.RequireFromString("0.5"),
		ShippingCostPerKg: models.NewMoneyFromInt(200),
		PriceGeneral:      models.NewMoneyFromInt(450),
		PriceVip:          models.NewMoneyFromInt(400),
		PriceType:         constants.PriceTypeNormal,
		Stock:             20,
		SoldCount:         5,
	}
	tote := &models.Product{
		ID:                "p2",
		Code:              "B250520001",
		Name:              "韓系質感托特包",
		Category:          "包包",
		Options:           models.StringArray{"黑色", "米白"},
		LocalPrice:        models.NewMoneyFromInt(25000),
		ExchangeRate:      decimal.RequireFromString("0.024"),
		CostMaterial:      models.NewMoneyFromInt(30),
		Weight:            decimal.RequireFromString("0.8"),
		ShippingCostPerKg: models.NewMoneyFromInt(200),
		PriceGeneral:      models.NewMoneyFromInt(890),
		PriceType:         constants.PriceTypeNormal,
		Stock:             10,
		SoldCount:         12,
	}
	require.NoError(t, f.products.Create(mug))
	require.NoError(t, f.products.Create(tote))
	require.NoError(t, f.users.Create(&models.User{
		ID:         "M123",
		Phone:      "0912345678",
		Name:       "王小美",
		Tier:       constants.UserTierGeneral,
		TotalSpend: models.NewMoneyFromInt(1500),
		Credits:    models.NewMoneyFromInt(100),
	}))
}

func (f *serviceFixture) enableDelivery(t *testing.T) {
	t.Helper()
	settings, err := f.settings.GetShopSettings(context.Background())
	require.NoError(t, err)
	settings.Shipping.Methods.Delivery.Enabled = true
	_, err = f.settings.UpdateShopSettings(context.Background(), settings)
	require.NoError(t, err)
}

func (f *serviceFixture) addToCart(t *testing.T, userID, productID, option string, qty int) repository.CartLineKey {
	t.Helper()
	_, err := f.cart.AddItem(AddCartItemInput{UserID: userID, ProductID: productID, Option: option, Quantity: qty})
	require.NoError(t, err)
	return repository.CartLineKey{ProductID: productID, Option: option}
}

// countReportInvalidations 记录报表缓存失效次数
func countReportInvalidations(t *testing.T) *int {
	t.Helper()
	count := 0
	previous := bumpReportGeneration
	bumpReportGeneration = func(context.Context) error {
		count++
		return nil
	}
	t.Cleanup(func() { bumpReportGeneration = previous })
	return &count
}
