package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/views"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// InternHandler 学员模块 HTTP 处理器
type InternHandler struct {
	st Store
}

// NewInternHandler 创建 InternHandler
func NewInternHandler(st Store) *InternHandler {
	return &InternHandler{st: st}
}

// ListInterns 学员列表，可按方向、批次、关键字过滤
// GET /api/v1/interns?stream=&batch=&q=&page=&page_size=
func (h *InternHandler) ListInterns(c *gin.Context) {
	var req dto.InternListRequest
	if !bindQuery(c, &req) {
		return
	}

	interns := h.st.Interns()
	if req.Stream != "" {
		interns = views.InternsByStream(interns, h.st.Streams(), req.Stream)
	}
	if req.Batch != "" {
		interns = views.InternsByBatch(interns, req.Batch)
	}
	interns = views.SearchInterns(interns, req.Query)

	if !req.Paged() {
		response.OK(c, gin.H{"list": interns})
		return
	}
	response.OKPage(c, page(interns, req.GetOffset(), req.GetPageSize()), int64(len(interns)), req.GetPage(), req.GetPageSize())
}

// GetIntern 学员详情
// GET /api/v1/interns/:id
func (h *InternHandler) GetIntern(c *gin.Context) {
	intern, ok := h.st.InternByID(c.Param("id"))
	if !ok {
		notFound(c, "intern")
		return
	}
	response.OK(c, intern)
}

// CreateIntern 新增学员，方向与批次按名称解析，不存在时自动创建
// POST /api/v1/interns
func (h *InternHandler) CreateIntern(c *gin.Context) {
	var req dto.CreateInternRequest
	if !bindJSON(c, &req) {
		return
	}

	intern, err := h.st.AddIntern(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Created(c, intern)
}

// UpdateIntern 学员部分更新
// PUT /api/v1/interns/:id
func (h *InternHandler) UpdateIntern(c *gin.Context) {
	var req dto.UpdateInternRequest
	if !bindJSON(c, &req) {
		return
	}

	intern, err := h.st.UpdateIntern(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.OK(c, intern)
}

// UpdateInternStatus 修改学员状态
// PATCH /api/v1/interns/:id/status
func (h *InternHandler) UpdateInternStatus(c *gin.Context) {
	var req dto.UpdateInternStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	intern, err := h.st.UpdateInternStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		renderError(c, err)
		return
	}

	response.OK(c, intern)
}

// DeleteIntern 删除学员
// DELETE /api/v1/interns/:id
func (h *InternHandler) DeleteIntern(c *gin.Context) {
	if err := h.st.DeleteIntern(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	response.OK(c, nil)
}

// page 内存分页，越界返回空切片
func page[T any](items []T, offset, size int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
