package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const productCodeSeqDigits = 3

// ProductService 商品业务服务
type ProductService struct {
	repo           repository.ProductRepository
	settingService *SettingService
	loc            *time.Location
	now            func() time.Time
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, settingService *SettingService, loc *time.Location) *ProductService {
	if loc == nil {
		loc = time.Local
	}
	return &ProductService{
		repo:           repo,
		settingService: settingService,
		loc:            loc,
		now:            time.Now,
	}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Code              string
	Name              string
	Images            []string
	Category          string
	Options           []string
	Country           string
	LocalPrice        decimal.Decimal
	ExchangeRate      decimal.Decimal
	CostMaterial      decimal.Decimal
	Weight            decimal.Decimal
	ShippingCostPerKg decimal.Decimal
	PriceGeneral      decimal.Decimal
	PriceVip          decimal.Decimal
	PriceWholesale    decimal.Decimal
	PriceType         string
	AllowPayment      map[string]bool
	AllowShipping     map[string]bool
	Stock             int
	Note              string
	BuyURL            string
}

// ListPublic 前台商品列表
func (s *ProductService) ListPublic(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Category: category,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListAdmin 后台商品列表
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// GetByID 获取商品
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GenerateProductCode 货号：前缀 + YYMMDD + 3 位流水（同前缀同日最大流水 + 1）
func (s *ProductService) GenerateProductCode(prefix string, now time.Time) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = constants.ProductCodeDefaultPrefix
	}
	base := prefix + now.In(s.loc).Format("060102")
	codes, err := s.repo.ListCodesWithPrefix(base)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", base, productCodeSeqDigits, maxSequence(codes, base)+1), nil
}

// GenerateLegacyProductCode 旧版货号（固定前缀 P）
func (s *ProductService) GenerateLegacyProductCode(now time.Time) (string, error) {
	return s.GenerateProductCode(constants.ProductCodeLegacyPrefix, now)
}

// ResolveCategoryPrefix 分类对应的货号前缀，未配置时为 Z
func (s *ProductService) ResolveCategoryPrefix(ctx context.Context, category string) (string, error) {
	settings, err := s.settingService.GetShopSettings(ctx)
	if err != nil {
		return "", err
	}
	return settings.CategoryPrefix(category), nil
}

// PreviewProductCode 按分类预览下一个货号
func (s *ProductService) PreviewProductCode(ctx context.Context, category string, legacy bool) (string, error) {
	now := s.now()
	if legacy {
		return s.GenerateLegacyProductCode(now)
	}
	prefix, err := s.ResolveCategoryPrefix(ctx, category)
	if err != nil {
		return "", err
	}
	return s.GenerateProductCode(prefix, now)
}

// Create 创建商品，货号留空时自动生成
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := &models.Product{ID: uuid.NewString()}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(input.Code)
	if code == "" {
		generated, err := s.PreviewProductCode(ctx, product.Category, false)
		if err != nil {
			return nil, err
		}
		code = generated
	}
	existing, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProductCodeExists
	}
	product.Code = code

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, product.ID)
	return product, nil
}

// Update 更新商品（库存与售出数量以输入为准）
func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if code := strings.TrimSpace(input.Code); code != "" && code != product.Code {
		existing, err := s.repo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, ErrProductCodeExists
		}
		product.Code = code
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, product.ID)
	return product, nil
}

// Delete 删除商品，历史订单保留快照
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(product.ID); err != nil {
		return err
	}
	s.invalidateReports(ctx, product.ID)
	return nil
}

func (s *ProductService) invalidateReports(ctx context.Context, productID string) {
	invalidateReportCache(ctx, "product_id", productID)
}

func applyProductInput(product *models.Product, input ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrProductNameRequired
	}
	for _, amount := range []decimal.Decimal{
		input.LocalPrice, input.ExchangeRate, input.CostMaterial, input.Weight,
		input.ShippingCostPerKg, input.PriceGeneral, input.PriceVip, input.PriceWholesale,
	} {
		if amount.IsNegative() {
			return ErrProductPriceInvalid
		}
	}
	if !input.PriceGeneral.IsPositive() {
		return ErrProductPriceInvalid
	}
	options, err := normalizeOptions(input.Options)
	if err != nil {
		return err
	}
	images := trimNonEmpty(input.Images)

	product.Name = name
	product.Images = models.StringArray(images)
	product.Image = ""
	if len(images) > 0 {
		product.Image = images[0]
	}
	product.Category = strings.TrimSpace(input.Category)
	product.Options = models.StringArray(options)
	product.Country = strings.TrimSpace(input.Country)
	product.LocalPrice = models.NewMoneyFromDecimal(input.LocalPrice)
	product.ExchangeRate = input.ExchangeRate
	product.CostMaterial = models.NewMoneyFromDecimal(input.CostMaterial)
	product.Weight = input.Weight
	product.ShippingCostPerKg = models.NewMoneyFromDecimal(input.ShippingCostPerKg)
	product.PriceGeneral = models.NewMoneyFromDecimal(input.PriceGeneral)
	product.PriceVip = models.NewMoneyFromDecimal(input.PriceVip)
	product.PriceWholesale = models.NewMoneyFromDecimal(input.PriceWholesale)
	product.PriceType = normalizePriceType(input.PriceType)
	product.AllowPayment = normalizeChannelSwitch(input.AllowPayment, constants.PaymentMethods)
	product.AllowShipping = normalizeChannelSwitch(input.AllowShipping, constants.ShippingMethods)
	product.Stock = input.Stock
	product.Note = strings.TrimSpace(input.Note)
	product.BuyURL = strings.TrimSpace(input.BuyURL)
	return nil
}

func normalizePriceType(raw string) string {
	switch strings.TrimSpace(raw) {
	case constants.PriceTypeEvent:
		return constants.PriceTypeEvent
	case constants.PriceTypeClearance:
		return constants.PriceTypeClearance
	default:
		return constants.PriceTypeNormal
	}
}

// normalizeOptions 规格去空白，不允许重复
func normalizeOptions(raw []string) ([]string, error) {
	options := trimNonEmpty(raw)
	seen := make(map[string]bool, len(options))
	for _, option := range options {
		if seen[option] {
			return nil, ErrProductOptionInvalid
		}
		seen[option] = true
	}
	return options, nil
}

// normalizeChannelSwitch 统一渠道键名（bankTransfer -> bank_transfer），丢弃未知方式
// 输入为 nil 时保持 nil，表示全部允许
func normalizeChannelSwitch(raw map[string]bool, known []string) models.ChannelSwitch {
	if raw == nil {
		return nil
	}
	result := make(models.ChannelSwitch, len(known))
	for key, allowed := range raw {
		method := channelKey(key)
		if containsString(known, method) {
			result[method] = allowed
		}
	}
	return result
}

func channelKey(raw string) string {
	key := strings.TrimSpace(raw)
	if key == "bankTransfer" {
		return constants.PaymentMethodBankTransfer
	}
	return key
}

func trimNonEmpty(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, item := range raw {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// maxSequence 取编号中 base 之后数字部分的最大值，无法解析的忽略
func maxSequence(ids []string, base string) int {
	maxSeq := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, base) {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(id, base))
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq
}
