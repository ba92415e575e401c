package dto

import (
	"time"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// ── 批次模块 DTO ──

// BatchView 批次视图
type BatchView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// CreateBatchRequest 新增批次
type CreateBatchRequest struct {
	Name        string `json:"name"        binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	StartDate   string `json:"startDate"   binding:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"endDate"     binding:"omitempty,datetime=2006-01-02"`
}

// UpdateBatchRequest 批次部分更新
type UpdateBatchRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

// BatchFromModel 持久化模型 → 视图
func BatchFromModel(m *model.Batch) BatchView {
	return BatchView{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		StartDate:   FormatDate(m.StartDate),
		EndDate:     FormatDate(m.EndDate),
		Status:      m.Status,
		CreatedAt:   formatTimestamp(m.CreatedAt),
	}
}

// ToModel 请求 → 持久化模型
func (r *CreateBatchRequest) ToModel() (*model.Batch, error) {
	start, err := ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	return &model.Batch{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   start,
		EndDate:     end,
		Status:      model.StatusActive,
	}, nil
}

// DateRangeValid 结束日期不得早于开始日期；任一为空视为合法
func DateRangeValid(start, end string) bool {
	if start == "" || end == "" {
		return true
	}
	s, err1 := time.Parse(dateLayout, start)
	e, err2 := time.Parse(dateLayout, end)
	if err1 != nil || err2 != nil {
		return true // 格式问题交由 ParseDate 报错
	}
	return !e.Before(s)
}
