package model

// GlobalWeek 全局周次表 — 对应 global_weeks
type GlobalWeek struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"type:varchar(30);not null"                      json:"name"` // "Week <N>"
	Description string `gorm:"type:text"                                      json:"description"`
	WeekOrder   int    `gorm:"not null"                                       json:"week_order"`
	BaseModel
}

// TableName 指定表名
func (GlobalWeek) TableName() string { return "global_weeks" }
