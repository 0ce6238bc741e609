package admin

import (
	"strings"

	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// GetDashboard 后台首页（本月指标、热销商品、库存与订单状态统计）
func (h *Handler) GetDashboard(c *gin.Context) {
	overview, err := h.ReportService.Dashboard(c.Request.Context())
	if err != nil {
		respondMappedError(c, err, handlershared.ReportErrorRules)
		return
	}
	response.Success(c, overview)
}

// GetDashboardStats 订单统计卡片
func (h *Handler) GetDashboardStats(c *gin.Context) {
	rangeName := strings.TrimSpace(c.DefaultQuery("range", "all"))
	stats, err := h.ReportService.DashboardStats(c.Request.Context(), rangeName)
	if err != nil {
		respondMappedError(c, err, handlershared.ReportErrorRules)
		return
	}
	response.Success(c, stats)
}

// GetAccounting 会计报表
func (h *Handler) GetAccounting(c *gin.Context) {
	report, err := h.ReportService.Accounting(c.Request.Context(), accountingQuery(c))
	if err != nil {
		respondMappedError(c, err, handlershared.ReportErrorRules)
		return
	}
	response.Success(c, report)
}

// GetProductPerformance 商品绩效
func (h *Handler) GetProductPerformance(c *gin.Context) {
	rows, err := h.ReportService.ProductPerformance(c.Request.Context())
	if err != nil {
		respondMappedError(c, err, handlershared.ReportErrorRules)
		return
	}
	response.Success(c, rows)
}

func accountingQuery(c *gin.Context) service.AccountingQuery {
	return service.AccountingQuery{
		Range:       strings.TrimSpace(c.DefaultQuery("range", "all")),
		CustomStart: strings.TrimSpace(c.Query("start")),
		CustomEnd:   strings.TrimSpace(c.Query("end")),
	}
}
