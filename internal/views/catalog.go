package views

import (
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// ── 方向与批次 ──

// StreamStats 每个方向的学员统计，按方向名称匹配
func StreamStats(streams []dto.StreamView, interns []dto.InternView) []dto.StreamStats {
	out := make([]dto.StreamStats, 0, len(streams))
	for _, s := range streams {
		members := filter(interns, func(v dto.InternView) bool { return v.Domain == s.Name })
		out = append(out, dto.StreamStats{Stream: s, CountStats: Count(members)})
	}
	return out
}

// BatchStats 每个批次的学员统计
func BatchStats(batches []dto.BatchView, interns []dto.InternView) []dto.BatchStats {
	out := make([]dto.BatchStats, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.BatchStats{Batch: b, CountStats: Count(InternsByBatch(interns, b.ID))})
	}
	return out
}

// AvailableStreams 未归档的方向
func AvailableStreams(streams []dto.StreamView) []dto.StreamView {
	return filter(streams, func(s dto.StreamView) bool { return s.Status != model.StatusArchived })
}

// ArchivedStreams 已归档的方向（默认与自定义）
func ArchivedStreams(streams []dto.StreamView) []dto.StreamView {
	return filter(streams, func(s dto.StreamView) bool { return s.Status == model.StatusArchived })
}

// AvailableBatches 未归档的批次，附学员数
func AvailableBatches(batches []dto.BatchView, interns []dto.InternView) []dto.AvailableBatch {
	out := make([]dto.AvailableBatch, 0, len(batches))
	for _, b := range batches {
		if b.Status == model.StatusArchived {
			continue
		}
		out = append(out, dto.AvailableBatch{BatchView: b, InternCount: len(InternsByBatch(interns, b.ID))})
	}
	return out
}

// ArchivedBatches 已归档的批次
func ArchivedBatches(batches []dto.BatchView) []dto.BatchView {
	return filter(batches, func(b dto.BatchView) bool { return b.Status == model.StatusArchived })
}

// ProjectsForBatch 批次下的项目
func ProjectsForBatch(projects []dto.ProjectView, batchID string) []dto.ProjectView {
	return filter(projects, func(p dto.ProjectView) bool { return p.BatchID == batchID })
}

// TasksForContext 按批次/方向/周次过滤周任务，空条件不参与过滤
// 未绑定批次或方向的通用任务对所有上下文可见
func TasksForContext(tasks []dto.WeeklyTaskView, req dto.WeeklyTaskListRequest) []dto.WeeklyTaskView {
	return filter(tasks, func(t dto.WeeklyTaskView) bool {
		if req.BatchID != "" && t.BatchID != "" && t.BatchID != req.BatchID {
			return false
		}
		if req.StreamID != "" && t.StreamID != "" && t.StreamID != req.StreamID {
			return false
		}
		return req.Week == "" || t.Week == req.Week
	})
}

// AttendanceStats 考勤格子按状态计数
func AttendanceStats(records []dto.AttendanceView) dto.AttendanceStats {
	var st dto.AttendanceStats
	for _, r := range records {
		switch r.Status {
		case model.AttendancePresent:
			st.Present++
		case model.AttendanceAbsent:
			st.Absent++
		case model.AttendanceHalfDay:
			st.HalfDay++
		default:
			st.Unset++
		}
	}
	return st
}
