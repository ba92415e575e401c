package store

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/redis"
)

var weekNamePattern = regexp.MustCompile(`(?i)^Week (\d+)$`)

const weekNameMessage = "Week name must follow format: Week 1, Week 2, etc."

// weekNumber 解析 "Week N" 中的 N；格式不符返回 false
func weekNumber(name string) (int, bool) {
	m := weekNamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// snapshotWeeks 周次离线快照，写入失败只记录告警
func (s *Store) snapshotWeeks(ctx context.Context, views []dto.GlobalWeekView) {
	if err := s.cache.PutSnapshot(ctx, redis.GlobalWeeksKey, views, s.cacheTTL); err != nil {
		s.logger.Warn("写入周次快照失败", zap.Error(err))
	}
}

// AddGlobalWeek 新增全局周次；名称须为 "Week N" 且不区分大小写唯一
func (s *Store) AddGlobalWeek(ctx context.Context, req *dto.CreateGlobalWeekRequest) (dto.GlobalWeekView, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return dto.GlobalWeekView{}, err
	}
	n, ok := weekNumber(req.Name)
	if !ok {
		return dto.GlobalWeekView{}, apperrors.Invalid("name", weekNameMessage)
	}

	s.mu.RLock()
	for _, w := range s.weeks {
		if strings.EqualFold(w.Name, req.Name) {
			s.mu.RUnlock()
			return dto.GlobalWeekView{}, apperrors.DuplicateName("name", "week")
		}
	}
	s.mu.RUnlock()

	row := &model.GlobalWeek{Name: req.Name, Description: req.Description, WeekOrder: n}
	if err := s.repo.GlobalWeek.Create(ctx, row); err != nil {
		if isDuplicate(err) {
			return dto.GlobalWeekView{}, apperrors.DuplicateName("name", "week")
		}
		return dto.GlobalWeekView{}, s.remoteErr("add week", "week", err)
	}

	view := dto.GlobalWeekFromModel(row)
	s.mu.Lock()
	s.weeks = append(s.weeks, view)
	sort.SliceStable(s.weeks, func(i, j int) bool { return s.weeks[i].WeekOrder < s.weeks[j].WeekOrder })
	snapshot := clone(s.weeks)
	s.mu.Unlock()

	s.snapshotWeeks(ctx, snapshot)
	return view, nil
}

// DeleteGlobalWeek 删除周次；该周的绩效评估由外键级联删除，内存同步清理
func (s *Store) DeleteGlobalWeek(ctx context.Context, id string) error {
	if err := s.repo.GlobalWeek.Delete(ctx, id); err != nil {
		return s.remoteErr("delete week", "week", err)
	}

	s.mu.Lock()
	s.weeks = filter(s.weeks, func(v dto.GlobalWeekView) bool { return v.ID != id })
	s.evaluations = filter(s.evaluations, func(v dto.EvaluationView) bool { return v.WeekID != id })
	snapshot := clone(s.weeks)
	s.mu.Unlock()

	s.snapshotWeeks(ctx, snapshot)
	s.logger.Info("删除周次", zap.String("id", id))
	return nil
}

// weekName 按 ID 解析周次名称
func (s *Store) weekName(id string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.weeks {
		if w.ID == id {
			return w.Name, true
		}
	}
	return "", false
}
