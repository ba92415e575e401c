package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/views"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// BatchHandler 批次模块 HTTP 处理器
type BatchHandler struct {
	st Store
}

// NewBatchHandler 创建 BatchHandler
func NewBatchHandler(st Store) *BatchHandler {
	return &BatchHandler{st: st}
}

// ListBatches 批次列表；默认返回未归档批次及学员数，status=archived 返回归档批次
// GET /api/v1/batches
func (h *BatchHandler) ListBatches(c *gin.Context) {
	switch c.Query("status") {
	case "archived":
		response.OK(c, gin.H{"list": views.ArchivedBatches(h.st.Batches())})
	case "all":
		response.OK(c, gin.H{"list": h.st.Batches()})
	default:
		response.OK(c, gin.H{"list": views.AvailableBatches(h.st.Batches(), h.st.Interns())})
	}
}

// GetBatch 批次详情
// GET /api/v1/batches/:id
func (h *BatchHandler) GetBatch(c *gin.Context) {
	batch, ok := h.st.BatchByID(c.Param("id"))
	if !ok {
		notFound(c, "batch")
		return
	}
	response.OK(c, batch)
}

// ListBatchInterns 批次下的学员
// GET /api/v1/batches/:id/interns
func (h *BatchHandler) ListBatchInterns(c *gin.Context) {
	batch, ok := h.st.BatchByID(c.Param("id"))
	if !ok {
		notFound(c, "batch")
		return
	}
	response.OK(c, gin.H{"list": views.InternsByBatch(h.st.Interns(), batch.ID)})
}

// Stats 各批次学员统计（未归档批次）
// GET /api/v1/batches/stats
func (h *BatchHandler) Stats(c *gin.Context) {
	interns := h.st.Interns()
	response.OK(c, gin.H{"list": views.BatchStats(activeBatches(h.st.Batches(), interns), interns)})
}

// CreateBatch 新增批次
// POST /api/v1/batches
func (h *BatchHandler) CreateBatch(c *gin.Context) {
	var req dto.CreateBatchRequest
	if !bindJSON(c, &req) {
		return
	}

	batch, err := h.st.AddBatch(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Created(c, batch)
}

// UpdateBatch 批次部分更新
// PUT /api/v1/batches/:id
func (h *BatchHandler) UpdateBatch(c *gin.Context) {
	var req dto.UpdateBatchRequest
	if !bindJSON(c, &req) {
		return
	}

	batch, err := h.st.UpdateBatch(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.OK(c, batch)
}

// DeleteBatch 删除批次；仍有学员时拒绝
// DELETE /api/v1/batches/:id
func (h *BatchHandler) DeleteBatch(c *gin.Context) {
	if err := h.st.DeleteBatch(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	response.OK(c, nil)
}

// ArchiveBatch 归档批次
// PUT /api/v1/batches/:id/archive
func (h *BatchHandler) ArchiveBatch(c *gin.Context) {
	batch, err := h.st.ArchiveBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.OK(c, batch)
}

// RestoreBatch 恢复批次
// PUT /api/v1/batches/:id/restore
func (h *BatchHandler) RestoreBatch(c *gin.Context) {
	batch, err := h.st.RestoreBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	response.OK(c, batch)
}

func activeBatches(batches []dto.BatchView, interns []dto.InternView) []dto.BatchView {
	available := views.AvailableBatches(batches, interns)
	out := make([]dto.BatchView, 0, len(available))
	for _, b := range available {
		out = append(out, b.BatchView)
	}
	return out
}
