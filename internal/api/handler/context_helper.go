package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/api/middleware"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/store"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// 业务错误码
const (
	codeInvalidParam = 10001
	codeUnauthorized = 10002
	codeValidation   = 20001
	codeDependency   = 20002
	codeBadCreds     = 20003
	codeExportEmpty  = 30001
	codeNotFound     = 40401
)

// MustGetToken 从 Gin 上下文中安全提取 JWT 原文。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
func MustGetToken(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.CtxToken)
	if s == "" {
		response.Unauthorized(c, codeUnauthorized, "Not signed in")
		return "", false
	}
	return s, true
}

// bindJSON 解析请求体；校验失败时按字段返回提示
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		renderBindError(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		renderBindError(c, err)
		return false
	}
	return true
}

func renderBindError(c *gin.Context, err error) {
	if middleware.IsBodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, codeInvalidParam, "Request body too large")
		return
	}
	if verr := store.FromValidation(err); verr != nil {
		renderError(c, verr)
		return
	}
	response.BadRequest(c, codeInvalidParam, "Invalid request body")
}

// renderError 将 Store 返回的分类错误映射为统一响应
// 远端失败只返回通用提示，原始错误交给请求日志
func renderError(c *gin.Context, err error) {
	e, ok := apperrors.As(err)
	if !ok {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	switch e.Kind {
	case apperrors.KindValidation:
		response.FieldError(c, codeValidation, e.Field, e.Message)
	case apperrors.KindDependency:
		response.Conflict(c, codeDependency, e.Message)
	case apperrors.KindNotFound:
		response.NotFound(c, codeNotFound, e.Message)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

func notFound(c *gin.Context, entity string) {
	renderError(c, apperrors.NotFound(entity))
}
