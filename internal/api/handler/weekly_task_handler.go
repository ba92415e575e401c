package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/views"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// WeeklyTaskHandler 周任务 HTTP 处理器
type WeeklyTaskHandler struct {
	st Store
}

// NewWeeklyTaskHandler 创建 WeeklyTaskHandler
func NewWeeklyTaskHandler(st Store) *WeeklyTaskHandler {
	return &WeeklyTaskHandler{st: st}
}

// ListWeeklyTasks 周任务列表（通用任务与学员分配）
// GET /api/v1/weekly-tasks?batch_id=&stream_id=&week=
func (h *WeeklyTaskHandler) ListWeeklyTasks(c *gin.Context) {
	var req dto.WeeklyTaskListRequest
	if !bindQuery(c, &req) {
		return
	}
	response.OK(c, gin.H{"list": views.TasksForContext(h.st.WeeklyTasks(), req)})
}

// CreateWeeklyTask 新增通用任务
// POST /api/v1/weekly-tasks
func (h *WeeklyTaskHandler) CreateWeeklyTask(c *gin.Context) {
	var req dto.CreateWeeklyTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.st.AddWeeklyTask(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Created(c, task)
}

// CreateAssignment 为学员分配任务；同一任务同一学员已有分配时更新
// POST /api/v1/weekly-tasks/assignments
func (h *WeeklyTaskHandler) CreateAssignment(c *gin.Context) {
	var req dto.TaskAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.st.AddTaskAssignment(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.OK(c, task)
}

// UpdateAssignment 修改学员任务分配（状态、链接、评分）
// PUT /api/v1/weekly-tasks/assignments/:id
func (h *WeeklyTaskHandler) UpdateAssignment(c *gin.Context) {
	var req dto.TaskAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.st.UpdateTaskAssignment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.OK(c, task)
}

// UpdateStatus 修改任务状态
// PATCH /api/v1/weekly-tasks/:id/status
func (h *WeeklyTaskHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateTaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.st.UpdateWeeklyTaskStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.OK(c, task)
}

// DeleteWeeklyTask 删除任务；删除通用任务时一并删除其分配
// DELETE /api/v1/weekly-tasks/:id
func (h *WeeklyTaskHandler) DeleteWeeklyTask(c *gin.Context) {
	if err := h.st.DeleteWeeklyTask(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	response.OK(c, nil)
}
