package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/views"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// StreamHandler 方向模块 HTTP 处理器
type StreamHandler struct {
	st Store
}

// NewStreamHandler 创建 StreamHandler
func NewStreamHandler(st Store) *StreamHandler {
	return &StreamHandler{st: st}
}

// ListStreams 方向列表；默认仅未归档，status=archived 仅归档，status=all 全部
// GET /api/v1/streams
func (h *StreamHandler) ListStreams(c *gin.Context) {
	streams := h.st.Streams()
	switch c.Query("status") {
	case "all":
	case "archived":
		streams = views.ArchivedStreams(streams)
	default:
		streams = views.AvailableStreams(streams)
	}
	response.OK(c, gin.H{"list": streams})
}

// GetStreamBySlug 按 slug 查询方向
// GET /api/v1/streams/slug/:slug
func (h *StreamHandler) GetStreamBySlug(c *gin.Context) {
	stream, ok := h.st.StreamBySlug(c.Param("slug"))
	if !ok {
		notFound(c, "stream")
		return
	}
	response.OK(c, stream)
}

// Stats 各方向学员统计（未归档方向）
// GET /api/v1/streams/stats
func (h *StreamHandler) Stats(c *gin.Context) {
	response.OK(c, gin.H{"list": views.StreamStats(views.AvailableStreams(h.st.Streams()), h.st.Interns())})
}

// CreateStream 新增自定义方向
// POST /api/v1/streams
func (h *StreamHandler) CreateStream(c *gin.Context) {
	var req dto.CreateStreamRequest
	if !bindJSON(c, &req) {
		return
	}

	stream, err := h.st.AddCustomStream(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Created(c, stream)
}

// DeleteStream 删除自定义方向；默认方向或仍有学员时拒绝
// DELETE /api/v1/streams/:id
func (h *StreamHandler) DeleteStream(c *gin.Context) {
	if err := h.st.DeleteCustomStream(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	response.OK(c, nil)
}

// ArchiveStream 归档方向
// PUT /api/v1/streams/:id/archive
func (h *StreamHandler) ArchiveStream(c *gin.Context) {
	stream, err := h.st.ArchiveStream(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.OK(c, stream)
}

// RestoreStream 恢复方向
// PUT /api/v1/streams/:id/restore
func (h *StreamHandler) RestoreStream(c *gin.Context) {
	stream, err := h.st.RestoreStream(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.OK(c, stream)
}
