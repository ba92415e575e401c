package dto

import "github.com/harithad-26/sparks-intern-progress-tracker/internal/model"

// ── 绩效评估 DTO ──

// Ratings 五项评分；0 为未评
type Ratings struct {
	Interest          int `json:"interest"          binding:"min=0,max=5"`
	Enthusiasm        int `json:"enthusiasm"        binding:"min=0,max=5"`
	TechnicalSkills   int `json:"technicalSkills"   binding:"min=0,max=5"`
	DeadlineAdherence int `json:"deadlineAdherence" binding:"min=0,max=5"`
	TeamCollaboration int `json:"teamCollaboration" binding:"min=0,max=5"`
}

// Values 按固定顺序返回五项评分
func (r Ratings) Values() [5]int {
	return [5]int{r.Interest, r.Enthusiasm, r.TechnicalSkills, r.DeadlineAdherence, r.TeamCollaboration}
}

// EvaluationView 评估视图
type EvaluationView struct {
	ID       string  `json:"id"`
	InternID string  `json:"internId"`
	WeekID   string  `json:"weekId"`
	Week     string  `json:"week"`
	Ratings  Ratings `json:"ratings"`
	Comments string  `json:"comments"`
	// EvaluatedAt 最近一次保存时间
	EvaluatedAt string `json:"evaluatedAt"`
}

// SaveEvaluationRequest 保存（新增或覆盖）评估
type SaveEvaluationRequest struct {
	InternID string  `json:"internId" binding:"required"`
	WeekID   string  `json:"weekId"   binding:"required"`
	Ratings  Ratings `json:"ratings"`
	Comments string  `json:"comments" binding:"omitempty,max=5000"`
}

// EvaluationListRequest 评估列表过滤
type EvaluationListRequest struct {
	BatchID  string `form:"batch_id"`
	Stream   string `form:"stream"`
	InternID string `form:"intern_id"`
}

// EvaluationFromModel 持久化模型 → 视图；weekName 由调用方按 WeekID 解析
func EvaluationFromModel(m *model.PerformanceEvaluation, weekName string) EvaluationView {
	if weekName == "" && m.Week != nil {
		weekName = m.Week.Name
	}
	return EvaluationView{
		ID:       m.ID,
		InternID: m.InternID,
		WeekID:   m.WeekID,
		Week:     weekName,
		Ratings: Ratings{
			Interest:          m.Interest,
			Enthusiasm:        m.Enthusiasm,
			TechnicalSkills:   m.TechnicalSkills,
			DeadlineAdherence: m.DeadlineAdherence,
			TeamCollaboration: m.TeamCollaboration,
		},
		Comments:    m.Comments,
		EvaluatedAt: formatTimestamp(m.UpdatedAt),
	}
}

// Apply 将请求写入模型（新增与覆盖共用）
func (r *SaveEvaluationRequest) Apply(m *model.PerformanceEvaluation) {
	m.InternID = r.InternID
	m.WeekID = r.WeekID
	m.Interest = r.Ratings.Interest
	m.Enthusiasm = r.Ratings.Enthusiasm
	m.TechnicalSkills = r.Ratings.TechnicalSkills
	m.DeadlineAdherence = r.Ratings.DeadlineAdherence
	m.TeamCollaboration = r.Ratings.TeamCollaboration
	m.Comments = r.Comments
}
