package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/logger"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// Export 导出 CSV（orders / products / customers / inventory / accounting）
func (h *Handler) Export(c *gin.Context) {
	birthMonth, _ := strconv.Atoi(strings.TrimSpace(c.Query("birth_month")))
	table, err := h.ExportService.Export(service.ExportQuery{
		Kind:       c.Param("kind"),
		OrderTab:   strings.TrimSpace(c.Query("tab")),
		Search:     strings.TrimSpace(c.Query("search")),
		BirthMonth: birthMonth,
		Accounting: accountingQuery(c),
	})
	if err != nil {
		respondMappedError(c, err, append(handlershared.ReportErrorRules, handlershared.OrderErrorRules...))
		return
	}

	if err := response.CSV(c, table.Filename, table.Headers, table.Rows); err != nil {
		logger.Warnw("export_write_failed", "kind", c.Param("kind"), "error", err)
	}
}
