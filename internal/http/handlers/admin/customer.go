package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/repository"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CustomerUpdateRequest 后台编辑顾客（缺省字段不修改）
type CustomerUpdateRequest struct {
	Name     *string          `json:"name" binding:"omitempty,max=100"`
	Phone    *string          `json:"phone" binding:"omitempty,tw_phone"`
	Tier     *string          `json:"tier"`
	Credits  *decimal.Decimal `json:"credits"`
	Address  *string          `json:"address" binding:"omitempty,max=500"`
	Birthday *string          `json:"birthday"`
	Note     *string          `json:"note"`
	IsAdmin  *bool            `json:"is_admin"`
}

// GetCustomers 顾客列表
func (h *Handler) GetCustomers(c *gin.Context) {
	page, pageSize := pageParams(c)
	birthMonth := 0
	if raw := strings.TrimSpace(c.Query("birth_month")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		birthMonth = parsed
	}
	users, total, err := h.CustomerService.List(repository.UserListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.Query("search")),
		BirthMonth: birthMonth,
		Tier:       strings.TrimSpace(c.Query("tier")),
	})
	if err != nil {
		respondMappedError(c, err, handlershared.UserErrorRules)
		return
	}
	response.SuccessWithPage(c, users, response.BuildPagination(page, pageSize, total))
}

// GetCustomer 顾客详情
func (h *Handler) GetCustomer(c *gin.Context) {
	user, err := h.CustomerService.Get(c.Param("id"))
	if err != nil {
		respondMappedError(c, err, handlershared.UserErrorRules)
		return
	}
	response.Success(c, user)
}

// UpdateCustomer 编辑顾客
func (h *Handler) UpdateCustomer(c *gin.Context) {
	var req CustomerUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.CustomerService.Update(c.Request.Context(), c.Param("id"), service.CustomerUpdateInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Tier:     req.Tier,
		Credits:  req.Credits,
		Address:  req.Address,
		Birthday: req.Birthday,
		Note:     req.Note,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.UserErrorRules)
		return
	}
	response.Success(c, user)
}

// GetCustomerRanking 顾客排行（metric: spend / count / recent / name）
func (h *Handler) GetCustomerRanking(c *gin.Context) {
	rows, err := h.ReportService.CustomerRanking(c.Request.Context(), c.DefaultQuery("metric", service.RankMetricSpend))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rows)
}
