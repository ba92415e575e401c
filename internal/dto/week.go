package dto

import "github.com/harithad-26/sparks-intern-progress-tracker/internal/model"

// ── 周次模块 DTO ──

// GlobalWeekView 全局周次视图
type GlobalWeekView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	WeekOrder   int    `json:"weekOrder"`
}

// CreateGlobalWeekRequest 新增周次；名称格式在业务层校验以返回字段级提示
type CreateGlobalWeekRequest struct {
	Name        string `json:"name"        binding:"required,max=30"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// GlobalWeekFromModel 持久化模型 → 视图
func GlobalWeekFromModel(m *model.GlobalWeek) GlobalWeekView {
	return GlobalWeekView{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		WeekOrder:   m.WeekOrder,
	}
}
