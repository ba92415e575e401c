package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/service"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/jwt"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 管理员登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Refresh 刷新 Token（旧 Refresh Token 作废）
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout 退出登录
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := MustGetToken(c)
	if !ok {
		return
	}

	if err := h.authSvc.SignOut(c.Request.Context(), token); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

// Session 当前会话
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	token, ok := MustGetToken(c)
	if !ok {
		return
	}

	session, err := h.authSvc.GetSession(c.Request.Context(), token)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, session)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, codeBadCreds, err.Error())
	case errors.Is(err, service.ErrTokenRevoked),
		errors.Is(err, service.ErrNotRefreshToken),
		errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenInvalid):
		response.Unauthorized(c, codeUnauthorized, "Session expired. Please sign in again.")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
