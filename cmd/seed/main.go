package main

import (
	"context"
	_ "embed"
	"time"

	"github.com/mymy-shop/internal/config"
	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/logger"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"
	"github.com/mymy-shop/internal/service"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm/clause"
)

//go:embed seed.yml
var seedYAML []byte

type seedCategory struct {
	Name      string `yaml:"name"`
	SortOrder int    `yaml:"sort_order"`
}

type seedProduct struct {
	ID                string               `yaml:"id"`
	Code              string               `yaml:"code"`
	Name              string               `yaml:"name"`
	Images            []string             `yaml:"images"`
	Category          string               `yaml:"category"`
	Options           []string             `yaml:"options"`
	Country           string               `yaml:"country"`
	LocalPrice        decimal.Decimal      `yaml:"local_price"`
	ExchangeRate      decimal.Decimal      `yaml:"exchange_rate"`
	CostMaterial      decimal.Decimal      `yaml:"cost_material"`
	Weight            decimal.Decimal      `yaml:"weight"`
	ShippingCostPerKg decimal.Decimal      `yaml:"shipping_cost_per_kg"`
	PriceGeneral      decimal.Decimal      `yaml:"price_general"`
	PriceVip          decimal.Decimal      `yaml:"price_vip"`
	PriceWholesale    decimal.Decimal      `yaml:"price_wholesale"`
	PriceType         string               `yaml:"price_type"`
	Stock             int                  `yaml:"stock"`
	SoldCount         int                  `yaml:"sold_count"`
	Note              string               `yaml:"note"`
	AllowPayment      models.ChannelSwitch `yaml:"allow_payment"`
	AllowShipping     models.ChannelSwitch `yaml:"allow_shipping"`
}

type seedUser struct {
	ID         string          `yaml:"id"`
	Phone      string          `yaml:"phone"`
	Name       string          `yaml:"name"`
	Tier       string          `yaml:"tier"`
	TotalSpend decimal.Decimal `yaml:"total_spend"`
	Credits    decimal.Decimal `yaml:"credits"`
	Address    string          `yaml:"address"`
	Birthday   string          `yaml:"birthday"`
	IsAdmin    bool            `yaml:"is_admin"`
}

type seedOrderItem struct {
	ProductID string          `yaml:"product_id"`
	Option    string          `yaml:"option"`
	Price     decimal.Decimal `yaml:"price"`
	Quantity  int             `yaml:"quantity"`
}

type seedOrder struct {
	ID             string          `yaml:"id"`
	UserID         string          `yaml:"user_id"`
	CreatedOffset  string          `yaml:"created_offset"`
	Subtotal       decimal.Decimal `yaml:"subtotal"`
	Discount       decimal.Decimal `yaml:"discount"`
	ShippingFee    decimal.Decimal `yaml:"shipping_fee"`
	UsedCredits    decimal.Decimal `yaml:"used_credits"`
	FinalTotal     decimal.Decimal `yaml:"final_total"`
	PaymentMethod  string          `yaml:"payment_method"`
	ShippingMethod string          `yaml:"shipping_method"`
	Status         string          `yaml:"status"`
	PaymentName    string          `yaml:"payment_name"`
	PaymentLast5   string          `yaml:"payment_last5"`
	Items          []seedOrderItem `yaml:"items"`
}

type seedFile struct {
	Categories []seedCategory `yaml:"categories"`
	Products   []seedProduct  `yaml:"products"`
	Users      []seedUser     `yaml:"users"`
	Orders     []seedOrder    `yaml:"orders"`
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(seedYAML, &seed); err != nil {
		stdLog.Fatalf("Failed to parse seed.yml: %v", err)
	}

	// 商店设置（已有快照时保留）
	settingService := service.NewSettingService(repository.NewSettingRepository(models.DB))
	settings, err := settingService.GetShopSettings(context.Background())
	if err != nil {
		stdLog.Fatalf("Failed to load settings: %v", err)
	}
	if _, err := settingService.UpdateShopSettings(context.Background(), settings); err != nil {
		stdLog.Fatalf("Failed to save settings: %v", err)
	}
	stdLog.Printf("Shop settings ready")

	insert := models.DB.Clauses(clause.OnConflict{DoNothing: true})

	// 分类
	for _, item := range seed.Categories {
		category := models.Category{Name: item.Name, SortOrder: item.SortOrder}
		result := insert.Create(&category)
		if result.Error != nil {
			stdLog.Printf("Failed to create category %s: %v", item.Name, result.Error)
			continue
		}
		logSeedResult(stdLog.Printf, "category", item.Name, result.RowsAffected)
	}

	// 商品
	catalog := make(map[string]models.Product, len(seed.Products))
	for _, item := range seed.Products {
		product := item.toModel()
		catalog[product.ID] = product
		result := insert.Create(&product)
		if result.Error != nil {
			stdLog.Printf("Failed to create product %s: %v", item.Code, result.Error)
			continue
		}
		logSeedResult(stdLog.Printf, "product", item.Code, result.RowsAffected)
	}

	// 会员
	for _, item := range seed.Users {
		user := item.toModel()
		result := insert.Create(&user)
		if result.Error != nil {
			stdLog.Printf("Failed to create user %s: %v", item.ID, result.Error)
			continue
		}
		logSeedResult(stdLog.Printf, "user", item.ID, result.RowsAffected)
	}

	// 示范订单
	now := time.Now()
	for _, item := range seed.Orders {
		var existing int64
		if err := models.DB.Model(&models.Order{}).Where("id = ?", item.ID).Count(&existing).Error; err != nil {
			stdLog.Printf("Failed to check order %s: %v", item.ID, err)
			continue
		}
		if existing > 0 {
			stdLog.Printf("Order already exists: %s", item.ID)
			continue
		}
		order, err := item.toModel(now, catalog)
		if err != nil {
			stdLog.Printf("Invalid order %s: %v", item.ID, err)
			continue
		}
		if err := models.DB.Create(&order).Error; err != nil {
			stdLog.Printf("Failed to create order %s: %v", item.ID, err)
			continue
		}
		stdLog.Printf("Created order: %s", item.ID)
	}

	stdLog.Printf("Seed completed")
}

func logSeedResult(printf func(string, ...interface{}), kind, key string, affected int64) {
	if affected == 0 {
		printf("%s already exists: %s", kind, key)
		return
	}
	printf("Created %s: %s", kind, key)
}

func (p seedProduct) toModel() models.Product {
	product := models.Product{
		ID:                p.ID,
		Code:              p.Code,
		Name:              p.Name,
		Images:            models.StringArray(p.Images),
		Category:          p.Category,
		Options:           models.StringArray(p.Options),
		Country:           p.Country,
		LocalPrice:        models.NewMoneyFromDecimal(p.LocalPrice),
		ExchangeRate:      p.ExchangeRate,
		CostMaterial:      models.NewMoneyFromDecimal(p.CostMaterial),
		Weight:            p.Weight,
		ShippingCostPerKg: models.NewMoneyFromDecimal(p.ShippingCostPerKg),
		PriceGeneral:      models.NewMoneyFromDecimal(p.PriceGeneral),
		PriceVip:          models.NewMoneyFromDecimal(p.PriceVip),
		PriceWholesale:    models.NewMoneyFromDecimal(p.PriceWholesale),
		PriceType:         p.PriceType,
		AllowPayment:      p.AllowPayment,
		AllowShipping:     p.AllowShipping,
		Stock:             p.Stock,
		SoldCount:         p.SoldCount,
		Note:              p.Note,
	}
	if len(p.Images) > 0 {
		product.Image = p.Images[0]
	}
	return product
}

func (u seedUser) toModel() models.User {
	return models.User{
		ID:         u.ID,
		Phone:      u.Phone,
		Name:       u.Name,
		Tier:       u.Tier,
		TotalSpend: models.NewMoneyFromDecimal(u.TotalSpend),
		Credits:    models.NewMoneyFromDecimal(u.Credits),
		Address:    u.Address,
		Birthday:   u.Birthday,
		IsAdmin:    u.IsAdmin,
	}
}

func (o seedOrder) toModel(now time.Time, catalog map[string]models.Product) (models.Order, error) {
	offset, err := time.ParseDuration(o.CreatedOffset)
	if err != nil {
		return models.Order{}, err
	}
	order := models.Order{
		ID:             o.ID,
		UserID:         o.UserID,
		Subtotal:       models.NewMoneyFromDecimal(o.Subtotal),
		Discount:       models.NewMoneyFromDecimal(o.Discount),
		ShippingFee:    models.NewMoneyFromDecimal(o.ShippingFee),
		UsedCredits:    models.NewMoneyFromDecimal(o.UsedCredits),
		FinalTotal:     models.NewMoneyFromDecimal(o.FinalTotal),
		PaymentMethod:  o.PaymentMethod,
		ShippingMethod: o.ShippingMethod,
		Status:         constants.OrderStatus(o.Status),
		PaymentName:    o.PaymentName,
		PaymentLast5:   o.PaymentLast5,
		CreatedAt:      now.Add(offset),
	}
	for _, item := range o.Items {
		product := catalog[item.ProductID]
		order.Items = append(order.Items, models.OrderItem{
			ProductID:    item.ProductID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			Option:       item.Option,
			Price:        models.NewMoneyFromDecimal(item.Price),
			Quantity:     item.Quantity,
		})
	}
	return order, nil
}
