package service

import (
	"context"
	"testing"
	"time"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportOrder(id string, status constants.OrderStatus, payment string, total int64, createdAt time.Time) models.Order {
	return models.Order{
		ID:            id,
		UserID:        "M123",
		Status:        status,
		PaymentMethod: payment,
		FinalTotal:    models.NewMoneyFromInt(total),
		CreatedAt:     createdAt,
	}
}

func TestAccountingStatsScenario(t *testing.T) {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, testLoc)
	orders := []models.Order{
		reportOrder("202505200001", constants.OrderStatusPendingPayment, constants.PaymentMethodBankTransfer, 100, now),
		reportOrder("202505200002", constants.OrderStatusPaymentConfirmed, constants.PaymentMethodBankTransfer, 200, now),
		reportOrder("202505200003", constants.OrderStatusRefunded, constants.PaymentMethodBankTransfer, 300, now),
	}

	report := AccountingStats(orders, map[string]*models.Product{}, DateWindow{})
	requireMoney(t, 200, report.Revenue, "revenue")
	requireMoney(t, 100, report.Payment.Unpaid, "unpaid")
	requireMoney(t, 300, report.Payment.RefundedTotal, "refunded_total")
	requireMoney(t, 200, report.Payment.Received, "received")
	requireMoney(t, 300, report.Payment.Total, "total")
	requireMoney(t, 300, report.MaxOrder, "max_order")
	requireMoney(t, 100, report.MinOrder, "min_order")
	requireMoney(t, 100, report.AvgOrder, "avg_order")
	assert.Equal(t, 3, report.Count)
	assert.Equal(t, 100.0, report.Margin)
}

func TestAccountingStatsCostAndMargin(t *testing.T) {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, testLoc)
	mug := &models.Product{
		ID:                "p1",
		LocalPrice:        models.NewMoneyFromInt(1000),
		ExchangeRate:      decimal.RequireFromString("0.22"),
		CostMaterial:      models.NewMoneyFromInt(50),
		Weight:            decimal.RequireFromString("0.5"),
		ShippingCostPerKg: models.NewMoneyFromInt(200),
	}
	order := reportOrder("202505200001", constants.OrderStatusCompleted, constants.PaymentMethodCOD, 900, now)
	order.Items = []models.OrderItem{{ProductID: "p1", Quantity: 2}, {ProductID: "gone", Quantity: 1}}

	report := AccountingStats([]models.Order{order}, map[string]*models.Product{"p1": mug}, DateWindow{})
	requireMoney(t, 740, report.Cost, "cost")
	requireMoney(t, 160, report.Profit, "profit")
	assert.InDelta(t, 17.78, report.Margin, 0.001)
	requireMoney(t, 900, report.Payment.Received, "received")
}

func TestResolveDateRange(t *testing.T) {
	// 2025-05-22 是周四
	now := time.Date(2025, 5, 22, 15, 30, 0, 0, testLoc)

	weekCases := []struct {
		name      string
		now       time.Time
		weekStart time.Weekday
		want      time.Time
	}{
		{name: "monday start midweek", now: now, weekStart: time.Monday, want: time.Date(2025, 5, 19, 0, 0, 0, 0, testLoc)},
		{name: "monday start on sunday", now: time.Date(2025, 5, 25, 8, 0, 0, 0, testLoc), weekStart: time.Monday, want: time.Date(2025, 5, 19, 0, 0, 0, 0, testLoc)},
		{name: "monday start on monday", now: time.Date(2025, 5, 19, 0, 0, 0, 0, testLoc), weekStart: time.Monday, want: time.Date(2025, 5, 19, 0, 0, 0, 0, testLoc)},
		{name: "sunday start midweek", now: now, weekStart: time.Sunday, want: time.Date(2025, 5, 18, 0, 0, 0, 0, testLoc)},
		{name: "sunday start on sunday", now: time.Date(2025, 5, 25, 8, 0, 0, 0, testLoc), weekStart: time.Sunday, want: time.Date(2025, 5, 25, 0, 0, 0, 0, testLoc)},
		{name: "sunday start on saturday", now: time.Date(2025, 5, 24, 23, 0, 0, 0, testLoc), weekStart: time.Sunday, want: time.Date(2025, 5, 18, 0, 0, 0, 0, testLoc)},
	}
	for _, tc := range weekCases {
		t.Run(tc.name, func(t *testing.T) {
			window, err := ResolveDateRange(constants.ReportRangeWeek, tc.now, tc.weekStart, "", "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, *window.From)
			assert.Nil(t, window.To)
		})
	}

	window, err := ResolveDateRange(constants.ReportRangeToday, now, time.Monday, "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 22, 0, 0, 0, 0, testLoc), *window.From)

	window, err = ResolveDateRange(constants.ReportRangeMonth, now, time.Monday, "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, testLoc), *window.From)

	window, err = ResolveDateRange(constants.ReportRangeCustom, now, time.Monday, "2025-05-01", "2025-05-10")
	require.NoError(t, err)
	assert.True(t, window.Contains(time.Date(2025, 5, 10, 23, 59, 0, 0, testLoc)))
	assert.False(t, window.Contains(time.Date(2025, 5, 11, 0, 0, 0, 0, testLoc)))
	assert.False(t, window.Contains(time.Date(2025, 4, 30, 23, 59, 0, 0, testLoc)))

	window, err = ResolveDateRange(constants.ReportRangeCustom, now, time.Monday, "", "2025-05-10")
	require.NoError(t, err)
	assert.Nil(t, window.From)
	assert.Nil(t, window.To)

	_, err = ResolveDateRange(constants.ReportRangeCustom, now, time.Monday, "05/01/2025", "")
	require.ErrorIs(t, err, ErrReportRangeInvalid)

	_, err = ResolveDateRange("fortnight", now, time.Monday, "", "")
	require.ErrorIs(t, err, ErrReportRangeInvalid)
}

func TestDashboardStats(t *testing.T) {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, testLoc)
	orders := []models.Order{
		reportOrder("1", constants.OrderStatusPendingPayment, constants.PaymentMethodBankTransfer, 100, now),
		reportOrder("2", constants.OrderStatusPaymentConfirmed, constants.PaymentMethodCOD, 200, now),
		reportOrder("3", constants.OrderStatusPaymentConfirmed, constants.PaymentMethodBankTransfer, 400, now),
		reportOrder("4", constants.OrderStatusPaidVerifying, constants.PaymentMethodBankTransfer, 800, now),
		reportOrder("5", constants.OrderStatusCancelled, constants.PaymentMethodBankTransfer, 1600, now),
		reportOrder("6", constants.OrderStatusPendingPayment, constants.PaymentMethodBankTransfer, 3200, now.AddDate(0, -1, 0)),
	}
	window, err := ResolveDateRange(constants.ReportRangeMonth, now, time.Monday, "", "")
	require.NoError(t, err)

	stats := DashboardStats(orders, window)
	assert.Equal(t, 5, stats.Count)
	requireMoney(t, 300, stats.PendingRevenue, "pending_revenue")
	assert.Equal(t, 2, stats.ToShip)
	assert.Equal(t, 1, stats.ToConfirm)
}

func TestDashboardMetrics(t *testing.T) {
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, testLoc)
	orders := []models.Order{
		reportOrder("1", constants.OrderStatusPendingPayment, constants.PaymentMethodBankTransfer, 100, now),
		reportOrder("2", constants.OrderStatusPaidVerifying, constants.PaymentMethodBankTransfer, 200, now.AddDate(0, 0, -3)),
		reportOrder("3", constants.OrderStatusRefunded, constants.PaymentMethodBankTransfer, 400, now),
		reportOrder("4", constants.OrderStatusRefundNeeded, constants.PaymentMethodBankTransfer, 800, now.AddDate(0, -2, 0)),
	}
	metrics := DashboardMetrics(orders, map[string]*models.Product{}, now)
	requireMoney(t, 100, metrics.TodayRevenue, "today_revenue")
	requireMoney(t, 300, metrics.MonthSales, "month_sales")
	requireMoney(t, 300, metrics.MonthProfit, "month_profit")
	assert.Equal(t, 1, metrics.ToConfirm)
	assert.Equal(t, 1, metrics.Unpaid)
	assert.Equal(t, 1, metrics.Processing)
}

func TestCustomerRanking(t *testing.T) {
	base := time.Date(2025, 5, 20, 12, 0, 0, 0, testLoc)
	users := []models.User{
		{ID: "M1", Name: "Chen", TotalSpend: models.NewMoneyFromInt(500)},
		{ID: "M2", Name: "Amy", TotalSpend: models.NewMoneyFromInt(3000)},
		{ID: "M3", Name: "Bob", TotalSpend: models.NewMoneyFromInt(1000)},
	}
	orders := []models.Order{
		{ID: "1", UserID: "M1", Status: constants.OrderStatusCompleted, CreatedAt: base},
		{ID: "2", UserID: "M1", Status: constants.OrderStatusShipped, CreatedAt: base.Add(time.Hour)},
		{ID: "3", UserID: "M3", Status: constants.OrderStatusPaidVerifying, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "4", UserID: "M2", Status: constants.OrderStatusCancelled, CreatedAt: base.Add(3 * time.Hour)},
	}

	ids := func(rows []CustomerRankRow) []string {
		out := make([]string, 0, len(rows))
		for _, row := range rows {
			out = append(out, row.UserID)
		}
		return out
	}
	assert.Equal(t, []string{"M2", "M3", "M1"}, ids(CustomerRanking(users, orders, RankMetricSpend)))
	assert.Equal(t, []string{"M1", "M3", "M2"}, ids(CustomerRanking(users, orders, RankMetricCount)))
	assert.Equal(t, []string{"M3", "M1", "M2"}, ids(CustomerRanking(users, orders, RankMetricRecent)))
	assert.Equal(t, []string{"M2", "M3", "M1"}, ids(CustomerRanking(users, orders, RankMetricName)))
}

func TestProductPerformanceAndTopProducts(t *testing.T) {
	products := []models.Product{
		{ID: "p1", SoldCount: 5, PriceGeneral: models.NewMoneyFromInt(450), LocalPrice: models.NewMoneyFromInt(1000), ExchangeRate: decimal.RequireFromString("0.22")},
		{ID: "p2", SoldCount: 12, PriceGeneral: models.NewMoneyFromInt(100), LocalPrice: models.NewMoneyFromInt(90), ExchangeRate: decimal.NewFromInt(1)},
		{ID: "p3", SoldCount: 0, PriceGeneral: models.NewMoneyFromInt(999)},
	}
	rows := ProductPerformance(products)
	require.Len(t, rows, 3)
	assert.Equal(t, "p1", rows[0].ProductID)
	requireMoney(t, 1150, rows[0].Profit, "profit")
	assert.Equal(t, 0.0, rows[2].Margin)

	top := TopProducts(products, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "p2", top[0].ID)
	assert.Equal(t, "p1", top[1].ID)
}

func TestStockStatusLabel(t *testing.T) {
	assert.Equal(t, "缺貨", StockStatusLabel(0))
	assert.Equal(t, "低庫存", StockStatusLabel(constants.LowStockThreshold-1))
	assert.Equal(t, "充足", StockStatusLabel(constants.LowStockThreshold))
}

func TestReportServiceWeekBoundaries(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	// 2025-05-20 是周二，05-18 是上一个周日
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, testLoc)
	sunday := time.Date(2025, 5, 18, 9, 0, 0, 0, testLoc)
	for _, order := range []models.Order{
		reportOrder("202505180001", constants.OrderStatusPaymentConfirmed, constants.PaymentMethodBankTransfer, 300, sunday),
		reportOrder("202505200001", constants.OrderStatusPaymentConfirmed, constants.PaymentMethodBankTransfer, 200, now),
	} {
		order := order
		require.NoError(t, f.orders.Create(&order))
	}
	ctx := context.Background()

	reports := NewReportService(f.orders, f.products, f.users, repository.NewDashboardRepository(f.db), testLoc, 0, time.Monday, time.Sunday)
	reports.now = func() time.Time { return now }

	accounting, err := reports.Accounting(ctx, AccountingQuery{Range: constants.ReportRangeWeek})
	require.NoError(t, err)
	assert.Equal(t, 1, accounting.Count)
	requireMoney(t, 200, accounting.Revenue, "revenue")

	stats, err := reports.DashboardStats(ctx, constants.ReportRangeWeek)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 2, stats.ToShip)

	sundayWeek := NewReportService(f.orders, f.products, f.users, repository.NewDashboardRepository(f.db), testLoc, 0, time.Sunday, time.Sunday)
	sundayWeek.now = func() time.Time { return now }
	accounting, err = sundayWeek.Accounting(ctx, AccountingQuery{Range: constants.ReportRangeWeek})
	require.NoError(t, err)
	assert.Equal(t, 2, accounting.Count)
	requireMoney(t, 500, accounting.Revenue, "revenue")
}

func TestReportServiceAccountingFromDatabase(t *testing.T) {
	f := newServiceFixture(t)
	f.seedCatalog(t)
	now := time.Date(2025, 5, 20, 12, 0, 0, 0, testLoc)
	for _, order := range []models.Order{
		reportOrder("202505200001", constants.OrderStatusPendingPayment, constants.PaymentMethodBankTransfer, 100, now),
		reportOrder("202505200002", constants.OrderStatusPaymentConfirmed, constants.PaymentMethodBankTransfer, 200, now),
		reportOrder("202504010001", constants.OrderStatusRefunded, constants.PaymentMethodBankTransfer, 300, now.AddDate(0, -1, 0)),
	} {
		order := order
		require.NoError(t, f.orders.Create(&order))
	}

	reports := NewReportService(f.orders, f.products, f.users, repository.NewDashboardRepository(f.db), testLoc, time.Minute, time.Monday, time.Sunday)
	reports.now = func() time.Time { return now }
	ctx := context.Background()

	month, err := reports.Accounting(ctx, AccountingQuery{Range: constants.ReportRangeMonth})
	require.NoError(t, err)
	requireMoney(t, 200, month.Revenue, "revenue")
	requireMoney(t, 0, month.Payment.RefundedTotal, "refunded_total")
	assert.Equal(t, 2, month.Count)

	all, err := reports.Accounting(ctx, AccountingQuery{Range: constants.ReportRangeAll})
	require.NoError(t, err)
	requireMoney(t, 300, all.Payment.RefundedTotal, "refunded_total")

	_, err = reports.DashboardStats(ctx, constants.ReportRangeCustom)
	require.ErrorIs(t, err, ErrReportRangeInvalid)

	overview, err := reports.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), overview.Customers)
	require.NotEmpty(t, overview.TopProducts)
	assert.Equal(t, "p2", overview.TopProducts[0].ID)

	ranking, err := reports.CustomerRanking(ctx, RankMetricCount)
	require.NoError(t, err)
	require.Len(t, ranking, 1)
	assert.Equal(t, 3, ranking[0].OrderCount)

	require.NoError(t, reports.Warmup(ctx, nil))
}
