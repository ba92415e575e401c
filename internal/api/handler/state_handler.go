package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/views"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// recentInternLimit 首页最近加入学员数
const recentInternLimit = 5

// StateHandler 内存状态与首页汇总 HTTP 处理器
type StateHandler struct {
	st     Store
	logger *zap.Logger
}

// NewStateHandler 创建 StateHandler
func NewStateHandler(st Store, logger *zap.Logger) *StateHandler {
	return &StateHandler{st: st, logger: logger}
}

// GetState 内存状态概览
// GET /api/v1/state
func (h *StateHandler) GetState(c *gin.Context) {
	response.OK(c, h.snapshot())
}

// Reload 重新加载全部集合
// POST /api/v1/state/reload
func (h *StateHandler) Reload(c *gin.Context) {
	// 客户端断开不应中断加载
	h.st.LoadAll(context.WithoutCancel(c.Request.Context()))
	h.logger.Info("手动重新加载完成")
	response.OK(c, h.snapshot())
}

// SelectBatch 设置当前批次
// PUT /api/v1/state/selected-batch
func (h *StateHandler) SelectBatch(c *gin.Context) {
	var req dto.SelectBatchRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.st.SelectBatch(req.BatchID); err != nil {
		renderError(c, err)
		return
	}

	batch, _ := h.st.SelectedBatch()
	response.OK(c, batch)
}

// ClearSelectedBatch 清除当前批次
// DELETE /api/v1/state/selected-batch
func (h *StateHandler) ClearSelectedBatch(c *gin.Context) {
	h.st.ClearSelectedBatch()
	response.OK(c, nil)
}

// Dashboard 首页汇总
// GET /api/v1/dashboard
func (h *StateHandler) Dashboard(c *gin.Context) {
	interns := h.st.Interns()
	streams := views.AvailableStreams(h.st.Streams())
	batches := activeBatches(h.st.Batches(), interns)

	response.OK(c, dto.DashboardResponse{
		Interns:       views.Count(interns),
		StreamCount:   len(streams),
		BatchCount:    len(batches),
		ProjectCount:  len(h.st.Projects()),
		RecentInterns: views.RecentInterns(interns, recentInternLimit),
		Streams:       views.StreamStats(streams, interns),
		Batches:       views.BatchStats(batches, interns),
		Loading:       h.st.Loading(),
	})
}

// Archived 已归档的方向与批次
// GET /api/v1/archived
func (h *StateHandler) Archived(c *gin.Context) {
	response.OK(c, dto.ArchivedResponse{
		Streams: views.ArchivedStreams(h.st.Streams()),
		Batches: views.ArchivedBatches(h.st.Batches()),
	})
}

func (h *StateHandler) snapshot() dto.StateResponse {
	state := dto.StateResponse{
		Loading:     h.st.Loading(),
		Interns:     len(h.st.Interns()),
		Streams:     len(h.st.Streams()),
		Batches:     len(h.st.Batches()),
		GlobalWeeks: len(h.st.GlobalWeeks()),
		Projects:    len(h.st.Projects()),
		Evaluations: len(h.st.Evaluations()),
		WeeklyTasks: len(h.st.WeeklyTasks()),
		Attendance:  len(h.st.Attendance()),
	}
	if b, ok := h.st.SelectedBatch(); ok {
		state.SelectedBatchID = b.ID
	}
	return state
}
