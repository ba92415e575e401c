package dto

import "github.com/harithad-26/sparks-intern-progress-tracker/internal/model"

// ── 考勤 DTO ──

// DefaultAttendanceContext 未指定批次/方向时的考勤上下文
const DefaultAttendanceContext = "All"

// AttendanceView 考勤视图：一个 (学员, 周) 格子
type AttendanceView struct {
	InternID string `json:"internId"`
	Context  string `json:"context"`
	Month    string `json:"month"`
	Week     int    `json:"week"`
	Status   string `json:"status"`
}

// AttendanceEntry 保存请求中的单个格子
type AttendanceEntry struct {
	InternID string `json:"internId" binding:"required"`
	Week     int    `json:"week"     binding:"required,min=1,max=4"`
	Status   string `json:"status"   binding:"omitempty,oneof=present absent half-day"`
}

// SaveAttendanceRequest 整月覆盖保存：同一 (context, month) 的旧记录全部替换
type SaveAttendanceRequest struct {
	Context string            `json:"context" binding:"omitempty,max=120"`
	Month   string            `json:"month"   binding:"required,datetime=January 2006"`
	Entries []AttendanceEntry `json:"entries" binding:"dive"`
}

// AttendanceQuery 考勤查询参数
type AttendanceQuery struct {
	Context string `form:"context"`
	Month   string `form:"month"`
}

// ResolvedContext 空上下文归入 "All"
func (r *SaveAttendanceRequest) ResolvedContext() string {
	if r.Context == "" {
		return DefaultAttendanceContext
	}
	return r.Context
}

// AttendanceFromModel 持久化模型 → 视图
func AttendanceFromModel(m *model.AttendanceRecord) AttendanceView {
	return AttendanceView{
		InternID: m.InternID,
		Context:  m.Context,
		Month:    m.Month,
		Week:     m.Week,
		Status:   m.Status,
	}
}

// ToModels 请求 → 持久化行；同一 (学员, 周) 重复出现时后者覆盖前者
func (r *SaveAttendanceRequest) ToModels() []model.AttendanceRecord {
	ctx := r.ResolvedContext()
	type slot struct {
		intern string
		week   int
	}
	index := make(map[slot]int, len(r.Entries))
	rows := make([]model.AttendanceRecord, 0, len(r.Entries))
	for _, e := range r.Entries {
		k := slot{e.InternID, e.Week}
		rec := model.AttendanceRecord{
			InternID: e.InternID,
			Context:  ctx,
			Month:    r.Month,
			Week:     e.Week,
			Status:   e.Status,
		}
		if i, ok := index[k]; ok {
			rows[i] = rec
			continue
		}
		index[k] = len(rows)
		rows = append(rows, rec)
	}
	return rows
}
