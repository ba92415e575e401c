// Package views 内存集合上的派生视图：过滤、检索与统计
// 全部为纯函数，不修改入参，结果保持输入顺序
package views

import (
	"sort"
	"strings"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// InternsByStream 按方向过滤；key 可为 slug 或名称
func InternsByStream(interns []dto.InternView, streams []dto.StreamView, key string) []dto.InternView {
	name := key
	for _, s := range streams {
		if s.Slug == key {
			name = s.Name
			break
		}
	}
	return filter(interns, func(v dto.InternView) bool { return v.Domain == name })
}

// InternsByBatch 按批次过滤；key 可为批次 ID 或名称
func InternsByBatch(interns []dto.InternView, key string) []dto.InternView {
	return filter(interns, func(v dto.InternView) bool { return v.BatchID == key || v.Batch == key })
}

// SearchInterns 不区分大小写的子串检索；空白检索词返回全部
func SearchInterns(interns []dto.InternView, term string) []dto.InternView {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]dto.InternView(nil), interns...)
	}
	return filter(interns, func(v dto.InternView) bool {
		for _, f := range []string{
			v.Name, v.Email, v.College, v.Domain, v.Status,
			v.Phone, v.AcademicYear, v.Batch, v.Notes,
		} {
			if f != "" && strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	})
}

// RecentInterns 最近加入的 n 名学员
func RecentInterns(interns []dto.InternView, n int) []dto.InternView {
	out := append([]dto.InternView(nil), interns...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Count 按状态计数
func Count(interns []dto.InternView) dto.CountStats {
	var c dto.CountStats
	for _, v := range interns {
		c.Total++
		switch v.Status {
		case model.InternActive:
			c.Active++
		case model.InternDropped:
			c.Dropped++
		case model.InternCompleted:
			c.Completed++
		}
	}
	return c
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
