package dto

import "github.com/harithad-26/sparks-intern-progress-tracker/internal/model"

// ── 方向模块 DTO ──

// StreamView 方向视图
type StreamView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsDefault   bool   `json:"isDefault"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// CreateStreamRequest 新增自定义方向
type CreateStreamRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// StreamFromModel 持久化模型 → 视图
func StreamFromModel(m *model.Stream) StreamView {
	return StreamView{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		IsDefault:   m.IsDefault,
		Status:      m.Status,
		CreatedAt:   formatTimestamp(m.CreatedAt),
	}
}
