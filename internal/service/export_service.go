package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"
)

// ExportTable 导出表格（由 handler 写成 CSV）
type ExportTable struct {
	Filename string
	Headers  []string
	Rows     [][]string
}

// ExportQuery 导出参数
type ExportQuery struct {
	Kind       string
	OrderTab   string
	Search     string
	BirthMonth int
	Accounting AccountingQuery
}

// ExportService 后台导出服务
type ExportService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	userRepo      repository.UserRepository
	reportService *ReportService
	loc           *time.Location
	now           func() time.Time
}

// NewExportService 创建导出服务
func NewExportService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, reportService *ReportService, loc *time.Location) *ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &ExportService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		userRepo:      userRepo,
		reportService: reportService,
		loc:           loc,
		now:           time.Now,
	}
}

// Export 按类型生成导出表格
func (s *ExportService) Export(query ExportQuery) (*ExportTable, error) {
	switch strings.TrimSpace(query.Kind) {
	case constants.ExportKindOrders:
		return s.exportOrders(query)
	case constants.ExportKindProducts:
		return s.exportProducts()
	case constants.ExportKindCustomers:
		return s.exportCustomers(query)
	case constants.ExportKindInventory:
		return s.exportInventory()
	case constants.ExportKindAccounting:
		return s.exportAccounting(query.Accounting)
	default:
		return nil, ErrExportKindInvalid
	}
}

func (s *ExportService) filename(base string) string {
	return fmt.Sprintf("%s_%s.csv", base, s.now().In(s.loc).Format("2006-01-02"))
}

func (s *ExportService) exportOrders(query ExportQuery) (*ExportTable, error) {
	statuses, err := TabStatuses(query.OrderTab)
	if err != nil {
		return nil, err
	}
	orders, _, err := s.orderRepo.List(repository.OrderListFilter{
		Statuses: statuses,
		Search:   query.Search,
	})
	if err != nil {
		return nil, err
	}
	names, err := s.userNames(orders)
	if err != nil {
		return nil, err
	}

	table := &ExportTable{
		Filename: s.filename("訂單報表"),
		Headers:  []string{"訂單編號", "下單日期", "客戶姓名", "付款方式", "物流方式", "總金額", "訂單狀態", "物流單號", "商品內容"},
		Rows:     make([][]string, 0, len(orders)),
	}
	for i := range orders {
		order := &orders[i]
		items := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, fmt.Sprintf("%s(%s)x%d", item.ProductName, item.Option, item.Quantity))
		}
		table.Rows = append(table.Rows, []string{
			order.ID,
			s.formatDate(order.CreatedAt),
			names[order.UserID],
			PaymentMethodLabel(order.PaymentMethod),
			ShippingMethodLabel(order.ShippingMethod),
			order.FinalTotal.StringFixed(0),
			PaymentStatusLabel(order.Status, order.PaymentMethod),
			order.ShippingLink,
			strings.Join(items, "; "),
		})
	}
	return table, nil
}

func (s *ExportService) userNames(orders []models.Order) (map[string]string, error) {
	ids := make([]string, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))
	for _, order := range orders {
		if _, ok := seen[order.UserID]; ok {
			continue
		}
		seen[order.UserID] = struct{}{}
		ids = append(ids, order.UserID)
	}
	users, err := s.userRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	return names, nil
}

func (s *ExportService) exportProducts() (*ExportTable, error) {
	products, err := s.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	table := &ExportTable{
		Filename: s.filename("商品總表"),
		Headers:  []string{"SKU貨號", "商品名稱", "分類", "規格", "庫存", "已售", "一般售價", "VIP價", "本地成本", "匯率", "預估毛利"},
		Rows:     make([][]string, 0, len(products)),
	}
	for i := range products {
		product := &products[i]
		profit := product.PriceGeneral.Decimal.Sub(product.LandedUnitCost())
		table.Rows = append(table.Rows, []string{
			product.Code,
			product.Name,
			product.Category,
			strings.Join(product.Options, "|"),
			strconv.Itoa(product.Stock),
			strconv.Itoa(product.SoldCount),
			product.PriceGeneral.StringFixed(0),
			product.PriceVip.StringFixed(0),
			product.LocalPrice.String(),
			product.ExchangeRate.String(),
			profit.StringFixed(0),
		})
	}
	return table, nil
}

func (s *ExportService) exportCustomers(query ExportQuery) (*ExportTable, error) {
	if query.BirthMonth < 0 || query.BirthMonth > 12 {
		return nil, ErrInvalidInput
	}
	users, _, err := s.userRepo.List(repository.UserListFilter{
		Search:     query.Search,
		BirthMonth: query.BirthMonth,
	})
	if err != nil {
		return nil, err
	}
	table := &ExportTable{
		Filename: s.filename("會員名單"),
		Headers:  []string{"會員編碼", "會員ID", "姓名", "電話", "等級", "累積消費", "購物金餘額", "生日"},
		Rows:     make([][]string, 0, len(users)),
	}
	for _, user := range users {
		table.Rows = append(table.Rows, []string{
			user.ID,
			user.ID,
			user.Name,
			user.Phone,
			user.Tier,
			user.TotalSpend.StringFixed(0),
			user.Credits.StringFixed(0),
			user.Birthday,
		})
	}
	return table, nil
}

func (s *ExportService) exportInventory() (*ExportTable, error) {
	products, err := s.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	table := &ExportTable{
		Filename: s.filename("庫存盤點表"),
		Headers:  []string{"SKU貨號", "商品名稱", "分類", "庫存數量", "狀態"},
		Rows:     make([][]string, 0, len(products)),
	}
	for _, product := range products {
		table.Rows = append(table.Rows, []string{
			product.Code,
			product.Name,
			product.Category,
			strconv.Itoa(product.Stock),
			StockStatusLabel(product.Stock),
		})
	}
	return table, nil
}

func (s *ExportService) exportAccounting(query AccountingQuery) (*ExportTable, error) {
	orders, catalog, err := s.reportService.AccountingOrders(query)
	if err != nil {
		return nil, err
	}
	rangeName := strings.TrimSpace(query.Range)
	if rangeName == "" {
		rangeName = constants.ReportRangeAll
	}
	table := &ExportTable{
		Filename: s.filename("銷售報表_明細_" + rangeName),
		Headers:  []string{"訂單編號", "日期", "商品內容", "總營收", "商品成本", "預估利潤", "毛利率%"},
		Rows:     make([][]string, 0, len(orders)),
	}
	for i := range orders {
		order := &orders[i]
		names := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			names = append(names, item.ProductName)
		}
		revenue := order.FinalTotal.Decimal
		cost := orderCost(order, catalog)
		profit := revenue.Sub(cost)
		table.Rows = append(table.Rows, []string{
			order.ID,
			s.formatDate(order.CreatedAt),
			strings.Join(names, ";"),
			revenue.StringFixed(0),
			cost.StringFixed(0),
			profit.StringFixed(0),
			strconv.FormatFloat(marginPercent(revenue, profit), 'f', 1, 64),
		})
	}
	return table, nil
}

func (s *ExportService) formatDate(t time.Time) string {
	return t.In(s.loc).Format("2006/01/02")
}
