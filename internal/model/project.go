package model

import "time"

// 项目状态
const (
	ProjectNotStarted = "not_started"
	ProjectInProgress = "in_progress"
	ProjectCompleted  = "completed"
)

// Project 项目表 — 对应 projects
type Project struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string `gorm:"type:text"                                      json:"description"`
	Status      string `gorm:"type:varchar(20);not null;default:'not_started'" json:"status"`
	Remarks     string `gorm:"type:text"                                      json:"remarks"`
	BatchID     string `gorm:"type:uuid;not null"                             json:"batch_id"`
	BaseModel

	Assignments []ProjectAssignment `gorm:"foreignKey:ProjectID" json:"assignments,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// ProjectAssignment 项目-学员关联表 — 对应 project_assignments
type ProjectAssignment struct {
	ProjectID string    `gorm:"type:uuid;primaryKey" json:"project_id"`
	InternID  string    `gorm:"type:uuid;primaryKey" json:"intern_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (ProjectAssignment) TableName() string { return "project_assignments" }
