package dto

// ── 汇总视图 DTO ──

// CountStats 总数/在读/退出/结业
type CountStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Dropped   int `json:"dropped"`
	Completed int `json:"completed"`
}

// StreamStats 单个方向统计
type StreamStats struct {
	Stream StreamView `json:"stream"`
	CountStats
}

// BatchStats 单个批次统计
type BatchStats struct {
	Batch BatchView `json:"batch"`
	CountStats
}

// AvailableBatch 可选批次（附学员数）
type AvailableBatch struct {
	BatchView
	InternCount int `json:"internCount"`
}

// EvaluationStats 评估统计；平均分忽略未评（0）项
type EvaluationStats struct {
	Count          int                `json:"count"`
	InternCount    int                `json:"internCount"`
	Weeks          []string           `json:"weeks"`
	Averages       map[string]float64 `json:"averages"`
	OverallAverage float64            `json:"overallAverage"`
}

// AttendanceStats 考勤统计
type AttendanceStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	HalfDay int `json:"halfDay"`
	Unset   int `json:"unset"`
}

// DashboardResponse 首页汇总
type DashboardResponse struct {
	Interns       CountStats    `json:"interns"`
	StreamCount   int           `json:"streamCount"`
	BatchCount    int           `json:"batchCount"`
	ProjectCount  int           `json:"projectCount"`
	RecentInterns []InternView  `json:"recentInterns"`
	Streams       []StreamStats `json:"streams"`
	Batches       []BatchStats  `json:"batches"`
	Loading       bool          `json:"loading"`
}

// ArchivedResponse 归档项目视图
type ArchivedResponse struct {
	Streams []StreamView `json:"streams"`
	Batches []BatchView  `json:"batches"`
}

// SelectBatchRequest 设置当前选中批次
type SelectBatchRequest struct {
	BatchID string `json:"batchId" binding:"required"`
}

// StateResponse 内存状态概览
type StateResponse struct {
	Loading         bool   `json:"loading"`
	SelectedBatchID string `json:"selectedBatchId"`
	Interns         int    `json:"interns"`
	Streams         int    `json:"streams"`
	Batches         int    `json:"batches"`
	GlobalWeeks     int    `json:"globalWeeks"`
	Projects        int    `json:"projects"`
	Evaluations     int    `json:"evaluations"`
	WeeklyTasks     int    `json:"weeklyTasks"`
	Attendance      int    `json:"attendance"`
}
