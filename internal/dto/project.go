package dto

import "github.com/harithad-26/sparks-intern-progress-tracker/internal/model"

// ── 项目模块 DTO ──

// ProjectView 项目视图
type ProjectView struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Status          string   `json:"status"`
	Remarks         string   `json:"remarks"`
	BatchID         string   `json:"batchId"`
	AssignedInterns []string `json:"assignedInterns"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// CreateProjectRequest 新增项目（所属批次取自路径）
type CreateProjectRequest struct {
	Title           string   `json:"title"           binding:"required,max=200"`
	Description     string   `json:"description"     binding:"required,max=5000"`
	Status          string   `json:"status"          binding:"omitempty,oneof=not_started in_progress completed"`
	Remarks         string   `json:"remarks"         binding:"omitempty,max=5000"`
	AssignedInterns []string `json:"assignedInterns" binding:"omitempty,dive,required"`
}

// UpdateProjectRequest 项目部分更新；AssignedInterns 非 nil 时整体替换分配
type UpdateProjectRequest struct {
	Title           *string  `json:"title"           binding:"omitempty,min=1,max=200"`
	Description     *string  `json:"description"     binding:"omitempty,min=1,max=5000"`
	Status          *string  `json:"status"          binding:"omitempty,oneof=not_started in_progress completed"`
	Remarks         *string  `json:"remarks"         binding:"omitempty,max=5000"`
	AssignedInterns []string `json:"assignedInterns" binding:"omitempty,dive,required"`
}

// ProjectFromModel 持久化模型 → 视图；Assignments 需已预加载
func ProjectFromModel(m *model.Project) ProjectView {
	interns := make([]string, 0, len(m.Assignments))
	for _, a := range m.Assignments {
		interns = append(interns, a.InternID)
	}
	return ProjectView{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		Status:          m.Status,
		Remarks:         m.Remarks,
		BatchID:         m.BatchID,
		AssignedInterns: interns,
		CreatedAt:       formatTimestamp(m.CreatedAt),
		UpdatedAt:       formatTimestamp(m.UpdatedAt),
	}
}

// ToModel 请求 → 持久化模型（不含分配行）
func (r *CreateProjectRequest) ToModel(batchID string) *model.Project {
	status := r.Status
	if status == "" {
		status = model.ProjectNotStarted
	}
	return &model.Project{
		Title:       r.Title,
		Description: r.Description,
		Status:      status,
		Remarks:     r.Remarks,
		BatchID:     batchID,
	}
}

// Changes 返回需要写入的列
func (r *UpdateProjectRequest) Changes() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.Remarks != nil {
		updates["remarks"] = *r.Remarks
	}
	return updates
}

// BuildAssignments 生成项目分配行，重复 ID 只保留一次
func BuildAssignments(projectID string, internIDs []string) []model.ProjectAssignment {
	seen := make(map[string]bool, len(internIDs))
	rows := make([]model.ProjectAssignment, 0, len(internIDs))
	for _, id := range internIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, model.ProjectAssignment{ProjectID: projectID, InternID: id})
	}
	return rows
}
