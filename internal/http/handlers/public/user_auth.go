package public

import (
	"time"

	handlershared "github.com/mymy-shop/internal/http/handlers/shared"
	"github.com/mymy-shop/internal/http/response"
	"github.com/mymy-shop/internal/models"
	"github.com/mymy-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 手机号登录
type LoginRequest struct {
	Phone string `json:"phone" binding:"required,tw_phone"`
}

// RegisterRequest 注册
type RegisterRequest struct {
	Phone string `json:"phone" binding:"required,tw_phone"`
	Name  string `json:"name" binding:"required,max=100"`
}

// UpdateProfileRequest 更新个人资料（未传字段不修改）
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	Birthday *string `json:"birthday"`
	Note     *string `json:"note"`
}

// MarkNoticesReadRequest 标记通知已读（ids 为空表示全部）
type MarkNoticesReadRequest struct {
	IDs []uint `json:"ids"`
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// UserLogin 手机号登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, expiresAt, err := h.UserAuthService.Login(req.Phone)
	if err != nil {
		respondMappedError(c, err, handlershared.UserErrorRules, "error.internal")
		return
	}
	response.Success(c, AuthResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// UserRegister 注册会员
func (h *Handler) UserRegister(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, expiresAt, err := h.UserAuthService.Register(c.Request.Context(), req.Phone, req.Name)
	if err != nil {
		respondMappedError(c, err, handlershared.UserErrorRules, "error.internal")
		return
	}
	response.Success(c, AuthResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// GetCurrentUser 当前会员资料
func (h *Handler) GetCurrentUser(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(memberID)
	if err != nil {
		respondMappedError(c, err, handlershared.UserErrorRules, "error.internal")
		return
	}
	response.Success(c, user)
}

// UpdateUserProfile 更新个人资料
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.UserAuthService.UpdateProfile(c.Request.Context(), memberID, service.ProfileInput{
		Name:     req.Name,
		Address:  req.Address,
		Birthday: req.Birthday,
		Note:     req.Note,
	})
	if err != nil {
		respondMappedError(c, err, handlershared.UserErrorRules, "error.internal")
		return
	}
	response.Success(c, user)
}

// ListNotices 会员通知列表
func (h *Handler) ListNotices(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)

	notices, total, err := h.NoticeService.ListByUser(memberID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, notices, response.BuildPagination(page, pageSize, total))
}

// MarkNoticesRead 标记通知已读
func (h *Handler) MarkNoticesRead(c *gin.Context) {
	memberID, ok := getMemberID(c)
	if !ok {
		return
	}
	var req MarkNoticesReadRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.NoticeService.MarkRead(memberID, req.IDs); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, nil)
}
