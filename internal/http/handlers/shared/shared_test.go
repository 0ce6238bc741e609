package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
)

func TestPageQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		query        string
		wantPage     int
		wantPageSize int
	}{
		{query: "", wantPage: 1, wantPageSize: 20},
		{query: "page=3&page_size=50", wantPage: 3, wantPageSize: 50},
		{query: "page=0&page_size=500", wantPage: 1, wantPageSize: 100},
		{query: "page=abc&page_size=-1", wantPage: 1, wantPageSize: 20},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/orders?"+tc.query, nil)
		page, pageSize := PageQuery(c)
		if page != tc.wantPage || pageSize != tc.wantPageSize {
			t.Fatalf("query %q want (%d,%d) got (%d,%d)", tc.query, tc.wantPage, tc.wantPageSize, page, pageSize)
		}
	}
}

func TestRespondMappedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "mapped", err: fmt.Errorf("load order: %w", service.ErrOrderNotFound), wantCode: response.CodeNotFound, wantMsg: Message("error.order_not_found")},
		{name: "fallback", err: errors.New("db down"), wantCode: response.CodeInternal, wantMsg: Message("error.internal")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/orders/1", nil)
			RespondMappedError(c, tc.err, OrderErrorRules, response.CodeInternal, "error.internal")

			var resp response.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response failed: %v", err)
			}
			if resp.StatusCode != tc.wantCode || resp.Msg != tc.wantMsg {
				t.Fatalf("want (%d,%s) got (%d,%s)", tc.wantCode, tc.wantMsg, resp.StatusCode, resp.Msg)
			}
		})
	}
}

func TestWrapErrorKeepsCause(t *testing.T) {
	cause := service.ErrOrderNotFound
	appErr := response.WrapError(response.CodeNotFound, "error.order_not_found", Message("error.order_not_found"), cause)
	if !errors.Is(appErr, cause) {
		t.Fatalf("wrapped error should unwrap to cause")
	}
	want := "[404 error.order_not_found] 訂單不存在: " + cause.Error()
	if appErr.Error() != want {
		t.Fatalf("want %q got %q", want, appErr.Error())
	}
}
