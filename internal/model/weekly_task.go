package model

// 周任务完成状态
const (
	TaskNotTried           = "Not Tried"
	TaskNotCompleted       = "Not Completed"
	TaskPartiallyCompleted = "Partially Completed"
	TaskCompleted          = "Completed"
)

// WeeklyTask 周任务表 — 对应 weekly_tasks
// 同一张表承载两种记录：
//   - 通用任务：InternID 为空，仅有周次/标题/描述
//   - 个人分配：InternID 非空，TaskID 指向通用任务，带状态与四项 0-10 评分
type WeeklyTask struct {
	ID                string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Week              string  `gorm:"type:varchar(30);not null"                      json:"week"`
	Title             string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Description       string  `gorm:"type:text"                                      json:"description"`
	BatchID           *string `gorm:"type:uuid"                                      json:"batch_id"`
	StreamID          *string `gorm:"type:uuid"                                      json:"stream_id"`
	InternID          *string `gorm:"type:uuid"                                      json:"intern_id"`
	TaskID            *string `gorm:"type:uuid"                                      json:"task_id"`
	Status            string  `gorm:"type:varchar(30);not null;default:'Not Tried'"  json:"status"`
	ProjectLink       string  `gorm:"type:text"                                      json:"project_link"`
	Remarks           string  `gorm:"type:text"                                      json:"remarks"`
	OnTimeSubmission  float64 `gorm:"type:numeric(4,2);not null;default:0"           json:"on_time_submission"`
	ProjectPerfection float64 `gorm:"type:numeric(4,2);not null;default:0"           json:"project_perfection"`
	TeamWork          float64 `gorm:"type:numeric(4,2);not null;default:0"           json:"team_work"`
	Uniqueness        float64 `gorm:"type:numeric(4,2);not null;default:0"           json:"uniqueness"`
	TotalGrade        float64 `gorm:"type:numeric(4,2);not null;default:0"           json:"total_grade"`
	BaseModel
}

// TableName 指定表名
func (WeeklyTask) TableName() string { return "weekly_tasks" }

// IsAssignment 是否为个人分配记录
func (t *WeeklyTask) IsAssignment() bool {
	return t.InternID != nil && *t.InternID != ""
}
