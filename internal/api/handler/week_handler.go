package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// WeekHandler 全局周次 HTTP 处理器
type WeekHandler struct {
	st Store
}

// NewWeekHandler 创建 WeekHandler
func NewWeekHandler(st Store) *WeekHandler {
	return &WeekHandler{st: st}
}

// ListWeeks 周次列表（按周序号）
// GET /api/v1/weeks
func (h *WeekHandler) ListWeeks(c *gin.Context) {
	response.OK(c, gin.H{"list": h.st.GlobalWeeks()})
}

// CreateWeek 新增周次，名称须为 "Week <n>"
// POST /api/v1/weeks
func (h *WeekHandler) CreateWeek(c *gin.Context) {
	var req dto.CreateGlobalWeekRequest
	if !bindJSON(c, &req) {
		return
	}

	week, err := h.st.AddGlobalWeek(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Created(c, week)
}

// DeleteWeek 删除周次及其评估
// DELETE /api/v1/weeks/:id
func (h *WeekHandler) DeleteWeek(c *gin.Context) {
	if err := h.st.DeleteGlobalWeek(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	response.OK(c, nil)
}
