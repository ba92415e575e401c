package model

import "gorm.io/datatypes"

// Batch 批次表 — 对应 batches
type Batch struct {
	ID          string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string          `gorm:"type:varchar(100);not null"                     json:"name"`
	Description string          `gorm:"type:text"                                      json:"description"`
	StartDate   *datatypes.Date `gorm:"type:date"                                      json:"start_date"`
	EndDate     *datatypes.Date `gorm:"type:date"                                      json:"end_date"`
	Status      string          `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | archived
	BaseModel
}

// TableName 指定表名
func (Batch) TableName() string { return "batches" }
