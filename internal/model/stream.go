package model

// Stream 方向表 — 对应 streams
// IsDefault 为 true 的内置方向只能归档，不能删除
type Stream struct {
	ID          string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Slug        string `gorm:"type:varchar(120);not null"                     json:"slug"`
	Description string `gorm:"type:text"                                      json:"description"`
	IsDefault   bool   `gorm:"not null;default:false"                         json:"is_default"`
	Status      string `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | archived
	BaseModel
}

// TableName 指定表名
func (Stream) TableName() string { return "streams" }
