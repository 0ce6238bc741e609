package service

import (
	"sort"
	"strings"
	"time"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DateWindow 报表时间窗口，边界为 nil 表示不限
type DateWindow struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Contains 判断时间是否落在窗口内（两端包含）
func (w DateWindow) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}

// ResolveDateRange 解析报表时间范围
// week 从 weekStart 当天零点开始；custom 起始日包含，结束日包含到当天最后一刻，未填起始日视为不限
func ResolveDateRange(rangeName string, now time.Time, weekStart time.Weekday, customStart, customEnd string) (DateWindow, error) {
	loc := now.Location()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	switch strings.TrimSpace(rangeName) {
	case constants.ReportRangeToday:
		return DateWindow{From: &startOfDay}, nil
	case constants.ReportRangeWeek:
		offset := (int(now.Weekday()) - int(weekStart) + 7) % 7
		from := startOfDay.AddDate(0, 0, -offset)
		return DateWindow{From: &from}, nil
	case constants.ReportRangeMonth:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return DateWindow{From: &from}, nil
	case constants.ReportRangeCustom:
		start := strings.TrimSpace(customStart)
		if start == "" {
			return DateWindow{}, nil
		}
		from, err := time.ParseInLocation("2006-01-02", start, loc)
		if err != nil {
			return DateWindow{}, ErrReportRangeInvalid
		}
		window := DateWindow{From: &from}
		if end := strings.TrimSpace(customEnd); end != "" {
			endDay, err := time.ParseInLocation("2006-01-02", end, loc)
			if err != nil {
				return DateWindow{}, ErrReportRangeInvalid
			}
			to := endDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
			window.To = &to
		}
		return window, nil
	case "", constants.ReportRangeAll:
		return DateWindow{}, nil
	default:
		return DateWindow{}, ErrReportRangeInvalid
	}
}

// PaymentBuckets 资金流分类汇总
type PaymentBuckets struct {
	Total         models.Money `json:"total"`
	Received      models.Money `json:"received"`
	Verifying     models.Money `json:"verifying"`
	Unpaid        models.Money `json:"unpaid"`
	Refund        models.Money `json:"refund"`
	RefundedTotal models.Money `json:"refunded_total"`
}

// AccountingReport 会计报表
type AccountingReport struct {
	Revenue   models.Money   `json:"revenue"`
	Cost      models.Money   `json:"cost"`
	Profit    models.Money   `json:"profit"`
	Margin    float64        `json:"margin"`
	Discounts models.Money   `json:"discounts"`
	Count     int            `json:"count"`
	MaxOrder  models.Money   `json:"max_order"`
	MinOrder  models.Money   `json:"min_order"`
	AvgOrder  models.Money   `json:"avg_order"`
	Payment   PaymentBuckets `json:"payment"`
}

// orderCost 订单商品成本，已删除的商品成本计 0
func orderCost(order *models.Order, catalog map[string]*models.Product) decimal.Decimal {
	cost := decimal.Zero
	for _, item := range order.Items {
		product := catalog[item.ProductID]
		if product == nil {
			continue
		}
		cost = cost.Add(product.LandedUnitCost().Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return cost
}

// marginPercent 毛利率（百分比，保留 2 位）
func marginPercent(revenue, profit decimal.Decimal) float64 {
	if revenue.IsZero() {
		return 0
	}
	return profit.Div(revenue).Mul(hundred).Round(2).InexactFloat64()
}

// AccountingStats 汇总窗口内订单的营收、成本与资金流
func AccountingStats(orders []models.Order, catalog map[string]*models.Product, window DateWindow) AccountingReport {
	revenue := decimal.Zero
	cost := decimal.Zero
	discounts := decimal.Zero
	buckets := map[string]decimal.Decimal{}
	var maxOrder, minOrder decimal.Decimal
	count := 0
	nonPending := 0

	for i := range orders {
		order := &orders[i]
		if !window.Contains(order.CreatedAt) {
			continue
		}
		total := order.FinalTotal.Decimal
		if count == 0 || total.GreaterThan(maxOrder) {
			maxOrder = total
		}
		if count == 0 || total.LessThan(minOrder) {
			minOrder = total
		}
		count++
		if order.Status != constants.OrderStatusPendingPayment {
			nonPending++
		}

		if bucket, ok := ClassifyCashFlow(order); ok {
			buckets[bucket] = buckets[bucket].Add(total)
		}
		if IsRevenueStatus(order.Status) {
			revenue = revenue.Add(total)
			cost = cost.Add(orderCost(order, catalog))
			discounts = discounts.Add(order.Discount.Decimal).Add(order.UsedCredits.Decimal)
		}
	}

	avg := decimal.Zero
	if count > 0 {
		divisor := nonPending
		if divisor == 0 {
			divisor = 1
		}
		avg = revenue.Div(decimal.NewFromInt(int64(divisor)))
	}
	profit := revenue.Sub(cost)
	received := buckets[constants.CashFlowReceived]
	verifying := buckets[constants.CashFlowVerifying]
	unpaid := buckets[constants.CashFlowUnpaid]
	refund := buckets[constants.CashFlowRefundPending]

	return AccountingReport{
		Revenue:   models.NewMoneyFromDecimal(revenue),
		Cost:      models.NewMoneyFromDecimal(cost),
		Profit:    models.NewMoneyFromDecimal(profit),
		Margin:    marginPercent(revenue, profit),
		Discounts: models.NewMoneyFromDecimal(discounts),
		Count:     count,
		MaxOrder:  models.NewMoneyFromDecimal(maxOrder),
		MinOrder:  models.NewMoneyFromDecimal(minOrder),
		AvgOrder:  models.NewMoneyFromDecimal(avg),
		Payment: PaymentBuckets{
			Total:         models.NewMoneyFromDecimal(received.Add(verifying).Add(unpaid).Add(refund)),
			Received:      models.NewMoneyFromDecimal(received),
			Verifying:     models.NewMoneyFromDecimal(verifying),
			Unpaid:        models.NewMoneyFromDecimal(unpaid),
			Refund:        models.NewMoneyFromDecimal(refund),
			RefundedTotal: models.NewMoneyFromDecimal(buckets[constants.CashFlowRefunded]),
		},
	}
}

// DashboardMetricsReport 后台首页经营指标
type DashboardMetricsReport struct {
	TodayRevenue models.Money `json:"today_revenue"`
	MonthSales   models.Money `json:"month_sales"`
	MonthProfit  models.Money `json:"month_profit"`
	ToConfirm    int          `json:"to_confirm"`
	ToShip       int          `json:"to_ship"`
	Unpaid       int          `json:"unpaid"`
	Processing   int          `json:"processing"`
}

// DashboardMetrics 今日营收、本月销售与利润，以及全部订单的待办计数
func DashboardMetrics(orders []models.Order, catalog map[string]*models.Product, now time.Time) DashboardMetricsReport {
	loc := now.Location()
	todayRevenue := decimal.Zero
	monthSales := decimal.Zero
	monthCost := decimal.Zero
	var report DashboardMetricsReport

	for i := range orders {
		order := &orders[i]
		switch order.Status {
		case constants.OrderStatusPaidVerifying:
			report.ToConfirm++
		case constants.OrderStatusPaymentConfirmed:
			report.ToShip++
		case constants.OrderStatusPendingPayment, constants.OrderStatusUnpaidAlert:
			report.Unpaid++
		case constants.OrderStatusRefundNeeded:
			report.Processing++
		}
		if !isDashboardSaleStatus(order.Status) {
			continue
		}
		created := order.CreatedAt.In(loc)
		if created.Year() == now.Year() && created.YearDay() == now.YearDay() {
			todayRevenue = todayRevenue.Add(order.FinalTotal.Decimal)
		}
		if created.Year() == now.Year() && created.Month() == now.Month() {
			monthSales = monthSales.Add(order.FinalTotal.Decimal)
			monthCost = monthCost.Add(orderCost(order, catalog))
		}
	}

	report.TodayRevenue = models.NewMoneyFromDecimal(todayRevenue)
	report.MonthSales = models.NewMoneyFromDecimal(monthSales)
	report.MonthProfit = models.NewMoneyFromDecimal(monthSales.Sub(monthCost))
	return report
}

// DashboardStatsReport 订单页统计卡片
type DashboardStatsReport struct {
	Count          int          `json:"count"`
	PendingRevenue models.Money `json:"pending_revenue"`
	ToShip         int          `json:"to_ship"`
	ToConfirm      int          `json:"to_confirm"`
}

// DashboardStats 区间内订单数与待收款（未付款 + 货到付款未入帐，已取消忽略）
func DashboardStats(orders []models.Order, window DateWindow) DashboardStatsReport {
	pending := decimal.Zero
	var report DashboardStatsReport
	for i := range orders {
		order := &orders[i]
		if !window.Contains(order.CreatedAt) {
			continue
		}
		report.Count++
		switch order.Status {
		case constants.OrderStatusCancelled:
		case constants.OrderStatusPendingPayment, constants.OrderStatusUnpaidAlert:
			pending = pending.Add(order.FinalTotal.Decimal)
		case constants.OrderStatusPaymentConfirmed, constants.OrderStatusShipped:
			if order.PaymentMethod == constants.PaymentMethodCOD {
				pending = pending.Add(order.FinalTotal.Decimal)
			}
		}
		switch order.Status {
		case constants.OrderStatusPaymentConfirmed:
			report.ToShip++
		case constants.OrderStatusPaidVerifying:
			report.ToConfirm++
		}
	}
	report.PendingRevenue = models.NewMoneyFromDecimal(pending)
	return report
}

// TopProducts 售出数量前 n 名
func TopProducts(products []models.Product, n int) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SoldCount > sorted[j].SoldCount
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// ProductPerformanceRow 商品绩效
type ProductPerformanceRow struct {
	ProductID string       `json:"product_id"`
	Code      string       `json:"code"`
	Name      string       `json:"name"`
	Sold      int          `json:"sold"`
	Revenue   models.Money `json:"revenue"`
	Cost      models.Money `json:"cost"`
	Profit    models.Money `json:"profit"`
	Margin    float64      `json:"margin"`
}

// ProductPerformance 按售出数量估算营收与成本，利润高者在前
func ProductPerformance(products []models.Product) []ProductPerformanceRow {
	rows := make([]ProductPerformanceRow, 0, len(products))
	for i := range products {
		product := &products[i]
		sold := decimal.NewFromInt(int64(product.SoldCount))
		revenue := sold.Mul(product.PriceGeneral.Decimal)
		cost := sold.Mul(product.LandedUnitCost())
		profit := revenue.Sub(cost)
		rows = append(rows, ProductPerformanceRow{
			ProductID: product.ID,
			Code:      product.Code,
			Name:      product.Name,
			Sold:      product.SoldCount,
			Revenue:   models.NewMoneyFromDecimal(revenue),
			Cost:      models.NewMoneyFromDecimal(cost),
			Profit:    models.NewMoneyFromDecimal(profit),
			Margin:    marginPercent(revenue, profit),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Profit.GreaterThan(rows[j].Profit.Decimal)
	})
	return rows
}

// 顾客排行指标
const (
	RankMetricSpend  = "spend"
	RankMetricCount  = "count"
	RankMetricRecent = "recent"
	RankMetricName   = "name"
)

// CustomerRankRow 顾客排行
type CustomerRankRow struct {
	UserID      string       `json:"user_id"`
	Name        string       `json:"name"`
	Tier        string       `json:"tier"`
	Spend       models.Money `json:"spend"`
	OrderCount  int          `json:"order_count"`
	LastOrderAt *time.Time   `json:"last_order_at,omitempty"`
}

// CustomerRanking 顾客排行：默认按累计消费，亦可按订单数、最近下单或姓名
// 已取消的订单不计入订单数
func CustomerRanking(users []models.User, orders []models.Order, metric string) []CustomerRankRow {
	counts := make(map[string]int, len(users))
	last := make(map[string]time.Time, len(users))
	for i := range orders {
		order := &orders[i]
		if order.Status == constants.OrderStatusCancelled {
			continue
		}
		counts[order.UserID]++
		if order.CreatedAt.After(last[order.UserID]) {
			last[order.UserID] = order.CreatedAt
		}
	}

	rows := make([]CustomerRankRow, 0, len(users))
	for _, user := range users {
		row := CustomerRankRow{
			UserID:     user.ID,
			Name:       user.Name,
			Tier:       user.Tier,
			Spend:      user.TotalSpend,
			OrderCount: counts[user.ID],
		}
		if at, ok := last[user.ID]; ok {
			lastAt := at
			row.LastOrderAt = &lastAt
		}
		rows = append(rows, row)
	}

	var less func(i, j int) bool
	switch metric {
	case RankMetricCount:
		less = func(i, j int) bool { return rows[i].OrderCount > rows[j].OrderCount }
	case RankMetricRecent:
		less = func(i, j int) bool {
			if rows[j].LastOrderAt == nil {
				return rows[i].LastOrderAt != nil
			}
			return rows[i].LastOrderAt != nil && rows[i].LastOrderAt.After(*rows[j].LastOrderAt)
		}
	case RankMetricName:
		less = func(i, j int) bool { return rows[i].Name < rows[j].Name }
	default:
		less = func(i, j int) bool { return rows[i].Spend.GreaterThan(rows[j].Spend.Decimal) }
	}
	sort.SliceStable(rows, less)
	return rows
}

// StockStatusLabel 库存状态文字
func StockStatusLabel(stock int) string {
	switch {
	case stock <= 0:
		return "缺貨"
	case stock < constants.LowStockThreshold:
		return "低庫存"
	default:
		return "充足"
	}
}
