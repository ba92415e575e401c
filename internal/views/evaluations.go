package views

import (
	"math"
	"sort"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
)

// ratingCategories 统计输出中的评分项名称，与 Ratings 的 json 字段一致
var ratingCategories = [5]string{
	"interest",
	"enthusiasm",
	"technicalSkills",
	"deadlineAdherence",
	"teamCollaboration",
}

func internSet(interns []dto.InternView, keep func(dto.InternView) bool) map[string]bool {
	set := make(map[string]bool)
	for _, v := range interns {
		if keep(v) {
			set[v.ID] = true
		}
	}
	return set
}

// EvaluationsForBatch 批次内学员的评估
func EvaluationsForBatch(evals []dto.EvaluationView, interns []dto.InternView, batchID string) []dto.EvaluationView {
	members := internSet(interns, func(v dto.InternView) bool { return v.BatchID == batchID })
	return filter(evals, func(e dto.EvaluationView) bool { return members[e.InternID] })
}

// EvaluationsForStream 方向内学员的评估；key 可为 slug 或名称
func EvaluationsForStream(evals []dto.EvaluationView, interns []dto.InternView, streams []dto.StreamView, key string) []dto.EvaluationView {
	in := InternsByStream(interns, streams, key)
	members := internSet(in, func(dto.InternView) bool { return true })
	return filter(evals, func(e dto.EvaluationView) bool { return members[e.InternID] })
}

// InternEvaluationHistory 单个学员的评估，按周次顺序排列；未知周次排在最后
func InternEvaluationHistory(evals []dto.EvaluationView, weeks []dto.GlobalWeekView, internID string) []dto.EvaluationView {
	order := make(map[string]int, len(weeks))
	for _, w := range weeks {
		order[w.ID] = w.WeekOrder
	}
	rank := func(id string) int {
		if o, ok := order[id]; ok {
			return o
		}
		return math.MaxInt
	}
	out := filter(evals, func(e dto.EvaluationView) bool { return e.InternID == internID })
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i].WeekID) < rank(out[j].WeekID) })
	return out
}

// EvaluationStatistics 评估汇总；各项平均分只统计已评（>0）的分数，保留两位小数
func EvaluationStatistics(evals []dto.EvaluationView) dto.EvaluationStats {
	st := dto.EvaluationStats{
		Count:    len(evals),
		Weeks:    []string{},
		Averages: make(map[string]float64, len(ratingCategories)),
	}

	var (
		sums      [5]int
		counts    [5]int
		total     int
		rated     int
		interns   = make(map[string]bool)
		weeksSeen = make(map[string]bool)
	)
	for _, e := range evals {
		interns[e.InternID] = true
		if e.Week != "" && !weeksSeen[e.Week] {
			weeksSeen[e.Week] = true
			st.Weeks = append(st.Weeks, e.Week)
		}
		for i, v := range e.Ratings.Values() {
			if v > 0 {
				sums[i] += v
				counts[i]++
				total += v
				rated++
			}
		}
	}

	st.InternCount = len(interns)
	for i, name := range ratingCategories {
		if counts[i] > 0 {
			st.Averages[name] = round2(float64(sums[i]) / float64(counts[i]))
		} else {
			st.Averages[name] = 0
		}
	}
	if rated > 0 {
		st.OverallAverage = round2(float64(total) / float64(rated))
	}
	return st
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
