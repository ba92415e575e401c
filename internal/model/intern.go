package model

import "gorm.io/datatypes"

// 学员状态
const (
	InternActive    = "active"
	InternDropped   = "dropped"
	InternCompleted = "completed"
)

// Intern 学员表 — 对应 interns
// BatchID 必填；StreamID 可空（未分配方向）
type Intern struct {
	ID           string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string          `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone        string          `gorm:"type:varchar(30)"                               json:"phone"`
	College      string          `gorm:"type:varchar(200)"                              json:"college"`
	AcademicYear string          `gorm:"type:varchar(30)"                               json:"academic_year"`
	Status       string          `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	JoinedDate   *datatypes.Date `gorm:"type:date"                                      json:"joined_date"`
	Notes        string          `gorm:"type:text"                                      json:"notes"`
	StreamID     *string         `gorm:"type:uuid"                                      json:"stream_id"`
	BatchID      string          `gorm:"type:uuid;not null"                             json:"batch_id"`
	BaseModel

	Stream *Stream `gorm:"foreignKey:StreamID" json:"stream,omitempty"`
	Batch  *Batch  `gorm:"foreignKey:BatchID"  json:"batch,omitempty"`
}

// TableName 指定表名
func (Intern) TableName() string { return "interns" }
