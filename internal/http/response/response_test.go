package response

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCSVWritesBOMAndRows(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	err := CSV(c, "訂單報表_2025-05-20.csv", []string{"訂單編號", "總金額"}, [][]string{{"202505200001", "550"}})
	if err != nil {
		t.Fatalf("write csv failed: %v", err)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "filename*=UTF-8''%E8%A8%82%E5%96%AE") {
		t.Fatalf("unexpected disposition: %s", got)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, UTF8BOM) {
		t.Fatalf("csv should start with BOM")
	}
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(body, UTF8BOM))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv failed: %v", err)
	}
	if len(records) != 2 || records[0][0] != "訂單編號" || records[1][1] != "550" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestErrorAttachesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders", nil)
	c.Set("request_id", "req-1")

	Error(c, CodeBadRequest, "參數錯誤")

	var resp struct {
		StatusCode int               `json:"status_code"`
		Msg        string            `json:"msg"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.StatusCode != CodeBadRequest || resp.Data["request_id"] != "req-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBuildPagination(t *testing.T) {
	cases := []struct {
		page, pageSize int
		total          int64
		wantPages      int64
	}{
		{page: 1, pageSize: 20, total: 0, wantPages: 0},
		{page: 1, pageSize: 20, total: 20, wantPages: 1},
		{page: 2, pageSize: 20, total: 41, wantPages: 3},
		{page: 1, pageSize: 0, total: 5, wantPages: 0},
	}
	for _, tc := range cases {
		if got := BuildPagination(tc.page, tc.pageSize, tc.total); got.TotalPage != tc.wantPages {
			t.Fatalf("total %d size %d want %d pages got %d", tc.total, tc.pageSize, tc.wantPages, got.TotalPage)
		}
	}
}
