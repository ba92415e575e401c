package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/views"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// ProjectHandler 项目模块 HTTP 处理器
type ProjectHandler struct {
	st Store
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(st Store) *ProjectHandler {
	return &ProjectHandler{st: st}
}

// ListProjects 项目列表
// GET /api/v1/projects?batch_id=
// GET /api/v1/batches/:id/projects
// 未指定批次时使用当前选中批次，仍无批次则返回全部
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects := h.st.Projects()
	if batchID, ok := h.batchID(c); ok {
		projects = views.ProjectsForBatch(projects, batchID)
	}
	response.OK(c, gin.H{"list": projects})
}

// GetProject 项目详情
// GET /api/v1/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := h.st.ProjectByID(c.Param("id"))
	if !ok {
		notFound(c, "project")
		return
	}
	response.OK(c, project)
}

// CreateProject 在批次下新增项目
// POST /api/v1/projects?batch_id=
// POST /api/v1/batches/:id/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	batchID, ok := h.batchID(c)
	if !ok {
		renderError(c, apperrors.Invalid("batchId", "Please select a batch first"))
		return
	}

	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.st.AddProject(c.Request.Context(), batchID, &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.Created(c, project)
}

// UpdateProject 项目部分更新；assignedInterns 为整体替换
// PUT /api/v1/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.st.UpdateProject(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.OK(c, project)
}

// DeleteProject 删除项目
// DELETE /api/v1/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.st.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	response.OK(c, nil)
}

// batchID 路径参数 > 查询参数 > 当前选中批次
func (h *ProjectHandler) batchID(c *gin.Context) (string, bool) {
	if id := c.Param("id"); id != "" {
		return id, true
	}
	if id := c.Query("batch_id"); id != "" {
		return id, true
	}
	if b, ok := h.st.SelectedBatch(); ok {
		return b.ID, true
	}
	return "", false
}
