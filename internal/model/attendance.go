package model

import "time"

// 考勤状态；空串表示未标记
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceHalfDay = "half-day"
	AttendanceUnset   = ""
)

// AttendanceRecord 考勤表 — 对应 attendance_records
// 唯一键 (intern_id, context, month, week)；Context 为批次/方向名称，Month 形如 "September 2025"
type AttendanceRecord struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InternID  string    `gorm:"type:uuid;not null"                             json:"intern_id"`
	Context   string    `gorm:"type:varchar(120);not null;default:'All'"       json:"context"`
	Month     string    `gorm:"type:varchar(30);not null"                      json:"month"`
	Week      int       `gorm:"not null"                                       json:"week"` // 1-4
	Status    string    `gorm:"type:varchar(20);not null;default:''"           json:"status"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (AttendanceRecord) TableName() string { return "attendance_records" }
