package dto

import (
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// ── 学员模块 DTO ──

// InternView 学员视图（前端字段为 camelCase，domain/batch 为名称）
type InternView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	College      string `json:"college"`
	AcademicYear string `json:"academicYear"`
	Status       string `json:"status"`
	JoinedDate   string `json:"joinedDate"`
	Notes        string `json:"notes"`
	Domain       string `json:"domain"`
	Batch        string `json:"batch"`
	StreamID     string `json:"streamId,omitempty"`
	BatchID      string `json:"batchId"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// CreateInternRequest 新增学员请求
// batch 为必填项，但缺失时返回专门的 MissingBatch 错误，因此不加 required 标签
type CreateInternRequest struct {
	Name         string `json:"name"         binding:"required,max=100"`
	Email        string `json:"email"        binding:"required,email,max=255"`
	Phone        string `json:"phone"        binding:"omitempty,max=30"`
	College      string `json:"college"      binding:"omitempty,max=200"`
	AcademicYear string `json:"academicYear" binding:"omitempty,max=30"`
	Status       string `json:"status"       binding:"omitempty,oneof=active dropped completed"`
	JoinedDate   string `json:"joinedDate"   binding:"omitempty,datetime=2006-01-02"`
	Notes        string `json:"notes"        binding:"omitempty,max=2000"`
	Domain       string `json:"domain"       binding:"omitempty,max=100"`
	Batch        string `json:"batch"        binding:"omitempty,max=100"`
}

// UpdateInternRequest 学员部分更新请求，nil 字段不修改
type UpdateInternRequest struct {
	Name         *string `json:"name"         binding:"omitempty,min=1,max=100"`
	Email        *string `json:"email"        binding:"omitempty,email,max=255"`
	Phone        *string `json:"phone"        binding:"omitempty,max=30"`
	College      *string `json:"college"      binding:"omitempty,max=200"`
	AcademicYear *string `json:"academicYear" binding:"omitempty,max=30"`
	Status       *string `json:"status"       binding:"omitempty,oneof=active dropped completed"`
	JoinedDate   *string `json:"joinedDate"   binding:"omitempty"`
	Notes        *string `json:"notes"        binding:"omitempty,max=2000"`
	Domain       *string `json:"domain"       binding:"omitempty,max=100"`
	Batch        *string `json:"batch"        binding:"omitempty,max=100"`
}

// UpdateInternStatusRequest 状态下拉快捷修改
type UpdateInternStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active dropped completed"`
}

// InternListRequest 学员列表查询参数
type InternListRequest struct {
	Stream string `form:"stream"` // slug 或名称
	Batch  string `form:"batch"`  // 批次 ID 或名称
	Query  string `form:"q"`
	PaginationRequest
}

// InternFromModel 持久化模型 → 视图；Stream/Batch 需已预加载
func InternFromModel(m *model.Intern) InternView {
	v := InternView{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		College:      m.College,
		AcademicYear: m.AcademicYear,
		Status:       m.Status,
		JoinedDate:   FormatDate(m.JoinedDate),
		Notes:        m.Notes,
		StreamID:     deref(m.StreamID),
		BatchID:      m.BatchID,
		CreatedAt:    formatTimestamp(m.CreatedAt),
		UpdatedAt:    formatTimestamp(m.UpdatedAt),
	}
	if m.Stream != nil {
		v.Domain = m.Stream.Name
	}
	if m.Batch != nil {
		v.Batch = m.Batch.Name
	}
	return v
}

// ToModel 请求 → 持久化模型；外键由调用方解析后传入
func (r *CreateInternRequest) ToModel(streamID *string, batchID string) (*model.Intern, error) {
	joined, err := ParseDate(r.JoinedDate)
	if err != nil {
		return nil, err
	}
	status := r.Status
	if status == "" {
		status = model.InternActive
	}
	return &model.Intern{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		College:      r.College,
		AcademicYear: r.AcademicYear,
		Status:       status,
		JoinedDate:   joined,
		Notes:        r.Notes,
		StreamID:     streamID,
		BatchID:      batchID,
	}, nil
}

// Changes 返回需要写入的列（不含 domain/batch，外键由调用方处理）
func (r *UpdateInternRequest) Changes() (map[string]interface{}, error) {
	updates := make(map[string]interface{})
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.College != nil {
		updates["college"] = *r.College
	}
	if r.AcademicYear != nil {
		updates["academic_year"] = *r.AcademicYear
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.JoinedDate != nil {
		joined, err := ParseDate(*r.JoinedDate)
		if err != nil {
			return nil, err
		}
		updates["joined_date"] = joined
	}
	if r.Notes != nil {
		updates["notes"] = *r.Notes
	}
	return updates, nil
}
