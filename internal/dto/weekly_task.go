package dto

import (
	"math"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// ── 周任务 DTO ──

// Grades 四项 0-10 评分
type Grades struct {
	OnTimeSubmission  float64 `json:"onTimeSubmission"  binding:"min=0,max=10"`
	ProjectPerfection float64 `json:"projectPerfection" binding:"min=0,max=10"`
	TeamWork          float64 `json:"teamWork"          binding:"min=0,max=10"`
	Uniqueness        float64 `json:"uniqueness"        binding:"min=0,max=10"`
}

// Total 四项平均分，保留两位小数
func (g Grades) Total() float64 {
	avg := (g.OnTimeSubmission + g.ProjectPerfection + g.TeamWork + g.Uniqueness) / 4
	return math.Round(avg*100) / 100
}

// WeeklyTaskView 周任务视图
type WeeklyTaskView struct {
	ID           string  `json:"id"`
	Week         string  `json:"week"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	BatchID      string  `json:"batchId,omitempty"`
	StreamID     string  `json:"streamId,omitempty"`
	InternID     string  `json:"internId,omitempty"`
	TaskID       string  `json:"taskId,omitempty"`
	IsAssignment bool    `json:"isAssignment"`
	Status       string  `json:"status"`
	ProjectLink  string  `json:"projectLink"`
	Remarks      string  `json:"remarks"`
	Grades       Grades  `json:"grades"`
	TotalGrade   float64 `json:"totalGrade"`
	CreatedAt    string  `json:"createdAt"`
}

// CreateWeeklyTaskRequest 新增通用任务
type CreateWeeklyTaskRequest struct {
	Week        string `json:"week"        binding:"required,max=30"`
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	BatchID     string `json:"batchId"`
	StreamID    string `json:"streamId"`
}

// TaskAssignmentRequest 为学员分配任务 / 更新分配
type TaskAssignmentRequest struct {
	TaskID      string `json:"taskId"      binding:"required"`
	InternID    string `json:"internId"    binding:"required"`
	Status      string `json:"status"      binding:"omitempty,oneof='Not Tried' 'Not Completed' 'Partially Completed' 'Completed'"`
	ProjectLink string `json:"projectLink" binding:"omitempty,max=2000"`
	Remarks     string `json:"remarks"     binding:"omitempty,max=5000"`
	Grades      Grades `json:"grades"`
}

// UpdateTaskStatusRequest 仅修改完成状态
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof='Not Tried' 'Not Completed' 'Partially Completed' 'Completed'"`
}

// WeeklyTaskListRequest 周任务过滤
type WeeklyTaskListRequest struct {
	BatchID  string `form:"batch_id"`
	StreamID string `form:"stream_id"`
	Week     string `form:"week"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WeeklyTaskFromModel 持久化模型 → 视图
func WeeklyTaskFromModel(m *model.WeeklyTask) WeeklyTaskView {
	return WeeklyTaskView{
		ID:           m.ID,
		Week:         m.Week,
		Title:        m.Title,
		Description:  m.Description,
		BatchID:      deref(m.BatchID),
		StreamID:     deref(m.StreamID),
		InternID:     deref(m.InternID),
		TaskID:       deref(m.TaskID),
		IsAssignment: m.IsAssignment(),
		Status:       m.Status,
		ProjectLink:  m.ProjectLink,
		Remarks:      m.Remarks,
		Grades: Grades{
			OnTimeSubmission:  m.OnTimeSubmission,
			ProjectPerfection: m.ProjectPerfection,
			TeamWork:          m.TeamWork,
			Uniqueness:        m.Uniqueness,
		},
		TotalGrade: m.TotalGrade,
		CreatedAt:  formatTimestamp(m.CreatedAt),
	}
}

// ToModel 通用任务请求 → 持久化模型
func (r *CreateWeeklyTaskRequest) ToModel() *model.WeeklyTask {
	return &model.WeeklyTask{
		Week:        r.Week,
		Title:       r.Title,
		Description: r.Description,
		BatchID:     optional(r.BatchID),
		StreamID:    optional(r.StreamID),
		Status:      model.TaskNotTried,
	}
}

// Apply 将分配请求写入模型；周次/标题/上下文继承自通用任务
func (r *TaskAssignmentRequest) Apply(m *model.WeeklyTask, parent *model.WeeklyTask) {
	m.Week = parent.Week
	m.Title = parent.Title
	m.Description = parent.Description
	m.BatchID = parent.BatchID
	m.StreamID = parent.StreamID
	m.TaskID = &parent.ID
	m.InternID = &r.InternID
	m.Status = r.Status
	if m.Status == "" {
		m.Status = model.TaskNotTried
	}
	m.ProjectLink = r.ProjectLink
	m.Remarks = r.Remarks
	m.OnTimeSubmission = r.Grades.OnTimeSubmission
	m.ProjectPerfection = r.Grades.ProjectPerfection
	m.TeamWork = r.Grades.TeamWork
	m.Uniqueness = r.Grades.Uniqueness
	m.TotalGrade = r.Grades.Total()
}
