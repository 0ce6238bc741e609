package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mymy-shop/internal/constants"
	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/provider"
	"github.com/mymy-shop/internal/repository"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCheckoutHandlerTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handlershared.RegisterValidators()

	dsn := fmt.Sprintf("file:public_checkout_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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

	if err := db.Create(&models.User{ID: "M123", Phone: "0912345678", Name: "王小美", Tier: constants.UserTierGeneral, Credits: models.NewMoneyFromInt(100)}).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if err := db.Create(&models.Product{
		ID:           "p1",
		Code:         "L250520001",
		Name:         "可愛貓咪馬克杯",
		Category:     "生活小物",
		Options:      models.StringArray{"白色", "粉色"},
		PriceGeneral: models.NewMoneyFromInt(450),
		PriceType:    constants.PriceTypeNormal,
		Stock:        20,
	}).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	settingService := service.NewSettingService(repository.NewSettingRepository(db))
	h := New(&provider.Container{
		UserRepo:       userRepo,
		SettingService: settingService,
		CartService:    service.NewCartService(cartRepo, productRepo, userRepo),
		OrderService:   service.NewOrderService(orderRepo, productRepo, userRepo, cartRepo, settingService, nil, time.UTC),
	})

	r := gin.New()
	r.GET("/config", h.GetConfig)
	member := r.Group("", func(c *gin.Context) {
		if id := c.GetHeader("X-Member"); id != "" {
			c.Set(handlershared.MemberIDKey, id)
		}
		c.Next()
	})
	member.POST("/cart/items", h.AddCartItem)
	member.POST("/checkout/channels", h.ResolveCheckoutChannels)
	member.POST("/checkout/preview", h.PreviewCheckout)
	member.POST("/orders", h.CreateOrder)
	return r
}

type apiResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func call(t *testing.T, r *gin.Engine, method, path, member string, body interface{}) apiResponse {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if member != "" {
		req.Header.Set("X-Member", member)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func orderRequest(checkout CheckoutRequest, fill func(req *CreateOrderRequest)) CreateOrderRequest {
	req := CreateOrderRequest{
		Lines:          checkout.Lines,
		ShippingMethod: checkout.ShippingMethod,
		PaymentMethod:  checkout.PaymentMethod,
		UseCredits:     checkout.UseCredits,
	}
	fill(&req)
	return req
}

func TestGetConfigListsEnabledChannels(t *testing.T) {
	r := setupCheckoutHandlerTest(t)
	resp := call(t, r, http.MethodGet, "/config", "", nil)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("expected success, got %d", resp.StatusCode)
	}
	var data struct {
		PaymentMethods  []PaymentOption  `json:"payment_methods"`
		ShippingMethods []ShippingOption `json:"shipping_methods"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode config failed: %v", err)
	}
	if len(data.PaymentMethods) != 2 || len(data.ShippingMethods) != 3 {
		t.Fatalf("unexpected channels: %+v", data)
	}
}

func TestCheckoutFlow(t *testing.T) {
	r := setupCheckoutHandlerTest(t)
	line := CartLineRequest{ProductID: "p1", Option: "白色"}

	resp := call(t, r, http.MethodPost, "/cart/items", "", AddCartItemRequest{CartLineRequest: line, Quantity: 1})
	if resp.StatusCode != response.CodeUnauthorized {
		t.Fatalf("expected unauthorized without member, got %d", resp.StatusCode)
	}
	resp = call(t, r, http.MethodPost, "/cart/items", "M123", AddCartItemRequest{CartLineRequest: line, Quantity: 1})
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("add cart item failed: %d %s", resp.StatusCode, resp.Msg)
	}

	checkout := CheckoutRequest{
		Lines:          []CartLineRequest{line},
		ShippingMethod: constants.ShippingMethodMyship,
		PaymentMethod:  constants.PaymentMethodBankTransfer,
	}
	resp = call(t, r, http.MethodPost, "/checkout/preview", "M123", checkout)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("preview failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var preview service.CheckoutPreview
	if err := json.Unmarshal(resp.Data, &preview); err != nil {
		t.Fatalf("decode preview failed: %v", err)
	}
	if preview.Totals.FinalTotal.String() != "430.00" {
		t.Fatalf("unexpected final total: %s", preview.Totals.FinalTotal.String())
	}

	resp = call(t, r, http.MethodPost, "/orders", "M123", orderRequest(checkout, func(req *CreateOrderRequest) {
		req.PaymentLast5 = "123"
		req.Receiver = service.ReceiverInfo{Name: "王小美", Phone: "0912345678", Store: "信義門市"}
	}))
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected invalid last5 to be rejected, got %d", resp.StatusCode)
	}

	resp = call(t, r, http.MethodPost, "/orders", "M123", orderRequest(checkout, func(req *CreateOrderRequest) {
		req.Receiver = service.ReceiverInfo{Name: "王小美", Phone: "0912345678"}
	}))
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected missing store to be rejected, got %d", resp.StatusCode)
	}

	resp = call(t, r, http.MethodPost, "/orders", "M123", orderRequest(checkout, func(req *CreateOrderRequest) {
		req.PaymentName = "王小美"
		req.PaymentLast5 = "12345"
		req.Receiver = service.ReceiverInfo{Name: "王小美", Phone: "0912345678", Store: "信義門市"}
	}))
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("create order failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var order struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Data, &order); err != nil {
		t.Fatalf("decode order failed: %v", err)
	}
	if order.Status != string(constants.OrderStatusPaidVerifying) || len(order.ID) != 12 {
		t.Fatalf("unexpected order: %+v", order)
	}

	resp = call(t, r, http.MethodPost, "/orders", "M123", orderRequest(checkout, func(req *CreateOrderRequest) {
		req.Receiver = service.ReceiverInfo{Name: "王小美", Phone: "0912345678", Store: "信義門市"}
	}))
	if resp.StatusCode == response.CodeOK {
		t.Fatalf("expected checkout of consumed cart line to fail")
	}
}

func TestCheckoutEmptySelection(t *testing.T) {
	r := setupCheckoutHandlerTest(t)

	resp := call(t, r, http.MethodPost, "/checkout/channels", "M123", CheckoutChannelsRequest{})
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("channels of empty selection failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var channels struct {
		Channels struct {
			Payment  []string `json:"payment"`
			Shipping []string `json:"shipping"`
		} `json:"channels"`
		LogisticsConflict bool `json:"logistics_conflict"`
	}
	if err := json.Unmarshal(resp.Data, &channels); err != nil {
		t.Fatalf("decode channels failed: %v", err)
	}
	if channels.Channels.Payment == nil || channels.Channels.Shipping == nil {
		t.Fatalf("expected empty lists, got %s", string(resp.Data))
	}
	if len(channels.Channels.Payment) != 0 || len(channels.Channels.Shipping) != 0 || channels.LogisticsConflict {
		t.Fatalf("unexpected channels: %+v", channels)
	}

	resp = call(t, r, http.MethodPost, "/checkout/preview", "M123", CheckoutRequest{
		ShippingMethod: constants.ShippingMethodMyship,
		PaymentMethod:  constants.PaymentMethodBankTransfer,
		UseCredits:     true,
	})
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("preview of empty selection failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var preview service.CheckoutPreview
	if err := json.Unmarshal(resp.Data, &preview); err != nil {
		t.Fatalf("decode preview failed: %v", err)
	}
	if !preview.Totals.FinalTotal.IsZero() || !preview.Totals.Subtotal.IsZero() || !preview.Totals.CreditsUsed.IsZero() {
		t.Fatalf("expected zero totals, got %+v", preview.Totals)
	}

	resp = call(t, r, http.MethodPost, "/orders", "M123", CreateOrderRequest{
		ShippingMethod: constants.ShippingMethodMyship,
		PaymentMethod:  constants.PaymentMethodBankTransfer,
		Receiver:       service.ReceiverInfo{Name: "王小美", Phone: "0912345678", Store: "信義門市"},
	})
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected empty order to be rejected, got %d", resp.StatusCode)
	}
}
