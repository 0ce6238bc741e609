package admin

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mymy-shop/internal/constants"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/provider"
	"github.com/mymy-shop/internal/repository"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAdminHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	previous := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = previous })

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	settingService := service.NewSettingService(repository.NewSettingRepository(db))
	reportService := service.NewReportService(orderRepo, productRepo, userRepo, repository.NewDashboardRepository(db), time.UTC, 0, time.Monday, time.Sunday)

	h := New(&provider.Container{
		UserRepo:       userRepo,
		OrderRepo:      orderRepo,
		SettingService: settingService,
		OrderService:   service.NewOrderService(orderRepo, productRepo, userRepo, cartRepo, settingService, nil, time.UTC),
		ReportService:  reportService,
		ExportService:  service.NewExportService(orderRepo, productRepo, userRepo, reportService, time.UTC),
	})

	r := gin.New()
	r.GET("/orders", h.GetAdminOrders)
	r.POST("/orders/:id/actions", h.ApplyOrderAction)
	r.POST("/orders/:id/quick-actions", h.ApplyOrderQuickAction)
	r.GET("/exports/:kind", h.Export)
	r.GET("/settings", h.GetSettings)
	return r, db
}

func seedAdminOrder(t *testing.T, db *gorm.DB, id string, status constants.OrderStatus) {
	t.Helper()
	if err := db.Create(&models.User{ID: "M123", Phone: "0912345678", Name: "王小美", Tier: constants.UserTierGeneral}).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := &models.Order{
		ID:             id,
		UserID:         "M123",
		Subtotal:       models.NewMoneyFromInt(450),
		FinalTotal:     models.NewMoneyFromInt(550),
		ShippingFee:    models.NewMoneyFromInt(100),
		PaymentMethod:  constants.PaymentMethodBankTransfer,
		ShippingMethod: constants.ShippingMethodDelivery,
		Status:         status,
		CreatedAt:      time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "可愛貓咪馬克杯", Option: "白色", Price: models.NewMoneyFromInt(450), Quantity: 1},
		},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected http status: %d", w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func TestApplyOrderActionCancelNeedsConfirm(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	seedAdminOrder(t, db, "202505200001", constants.OrderStatusPendingPayment)

	resp := doJSON(t, r, http.MethodPost, "/orders/202505200001/actions", OrderActionRequest{Action: constants.OrderActionCancel})
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPost, "/orders/202505200001/actions", OrderActionRequest{Action: constants.OrderActionCancel, Confirm: true})
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("expected success, got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	var view struct {
		Status             string `json:"status"`
		PaymentStatusLabel string `json:"payment_status_label"`
	}
	if err := json.Unmarshal(resp.Data, &view); err != nil {
		t.Fatalf("decode order failed: %v", err)
	}
	if view.Status != string(constants.OrderStatusCancelled) || view.PaymentStatusLabel != "已取消" {
		t.Fatalf("unexpected order view: %+v", view)
	}
}

func TestApplyOrderQuickActionGuards(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	seedAdminOrder(t, db, "202505200001", constants.OrderStatusPendingPayment)

	resp := doJSON(t, r, http.MethodPost, "/orders/202505200001/quick-actions", QuickActionRequest{Quick: service.QuickActionConfirm})
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
	resp = doJSON(t, r, http.MethodPost, "/orders/209901010001/quick-actions", QuickActionRequest{Quick: service.QuickActionConfirm})
	if resp.StatusCode != response.CodeNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
}

func TestGetAdminOrdersIncludesCustomerName(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	seedAdminOrder(t, db, "202505200001", constants.OrderStatusPendingPayment)

	resp := doJSON(t, r, http.MethodGet, "/orders?tab=pending", nil)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("expected success, got %d", resp.StatusCode)
	}
	var views []struct {
		ID       string `json:"id"`
		UserName string `json:"user_name"`
	}
	if err := json.Unmarshal(resp.Data, &views); err != nil {
		t.Fatalf("decode orders failed: %v", err)
	}
	if len(views) != 1 || views[0].UserName != "王小美" {
		t.Fatalf("unexpected orders: %+v", views)
	}

	resp = doJSON(t, r, http.MethodGet, "/orders?tab=archived", nil)
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected bad request for unknown tab, got %d", resp.StatusCode)
	}
}

func TestExportOrdersCSV(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	seedAdminOrder(t, db, "202505200001", constants.OrderStatusPendingPayment)

	req := httptest.NewRequest(http.MethodGet, "/exports/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected http status: %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("unexpected content type: %s", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "filename*=UTF-8''") {
		t.Fatalf("unexpected content disposition: %s", w.Header().Get("Content-Disposition"))
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, response.UTF8BOM) {
		t.Fatalf("expected utf-8 bom prefix")
	}
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(body, response.UTF8BOM))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv failed: %v", err)
	}
	if len(records) != 2 || records[0][0] != "訂單編號" || records[1][0] != "202505200001" {
		t.Fatalf("unexpected csv records: %v", records)
	}
	if records[1][5] != "550" || records[1][6] != "未付款" {
		t.Fatalf("unexpected order row: %v", records[1])
	}
}

func TestExportUnknownKind(t *testing.T) {
	r, _ := setupAdminHandlerTest(t)
	resp := doJSON(t, r, http.MethodGet, "/exports/ledger", nil)
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestGetSettingsReturnsDefaults(t *testing.T) {
	r, _ := setupAdminHandlerTest(t)
	resp := doJSON(t, r, http.MethodGet, "/settings", nil)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("expected success, got %d", resp.StatusCode)
	}
	var settings service.ShopSettings
	if err := json.Unmarshal(resp.Data, &settings); err != nil {
		t.Fatalf("decode settings failed: %v", err)
	}
	if !settings.PaymentMethods.BankTransfer || settings.PaymentMethods.Cash {
		t.Fatalf("unexpected payment defaults: %+v", settings.PaymentMethods)
	}
	if settings.CategoryCodes["包包"] != "B" {
		t.Fatalf("unexpected category codes: %v", settings.CategoryCodes)
	}
}
