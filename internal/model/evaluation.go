package model

// PerformanceEvaluation 绩效评估表 — 对应 performance_evaluations
// 每个 (学员, 周次) 至多一条；评分 0 表示未评，1-5 为有效分
type PerformanceEvaluation struct {
	ID                string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InternID          string `gorm:"type:uuid;not null"                             json:"intern_id"`
	WeekID            string `gorm:"type:uuid;not null"                             json:"week_id"`
	Interest          int    `gorm:"not null;default:0"                             json:"interest"`
	Enthusiasm        int    `gorm:"not null;default:0"                             json:"enthusiasm"`
	TechnicalSkills   int    `gorm:"not null;default:0"                             json:"technical_skills"`
	DeadlineAdherence int    `gorm:"not null;default:0"                             json:"deadline_adherence"`
	TeamCollaboration int    `gorm:"not null;default:0"                             json:"team_collaboration"`
	Comments          string `gorm:"type:text"                                      json:"comments"`
	BaseModel

	Week *GlobalWeek `gorm:"foreignKey:WeekID" json:"week,omitempty"`
}

// TableName 指定表名
func (PerformanceEvaluation) TableName() string { return "performance_evaluations" }

// Ratings 按固定顺序返回五项评分
func (e *PerformanceEvaluation) Ratings() [5]int {
	return [5]int{e.Interest, e.Enthusiasm, e.TechnicalSkills, e.DeadlineAdherence, e.TeamCollaboration}
}
