package store

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/repository"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/database"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/redis"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/slug"
)

// resolved 名称解析结果；Created 为 true 表示本次自动新建，提交后需并入内存
type resolved[T any] struct {
	Row     *T
	Created bool
}

// ═══════════════════════════════════════════════════════════
// 名称 → 外键解析
//
// 设计说明：
//   - 按名称精确匹配（区分大小写）查找，找不到则自动新建
//   - 精确匹配失败时按大小写不敏感匹配内存中的已有记录，不重复新建
//   - 在调用方的事务内执行，学员写入失败时自动新建的记录一并回滚
// ═══════════════════════════════════════════════════════════

func (s *Store) resolveBatch(ctx context.Context, tx *repository.Repository, name string) (resolved[model.Batch], error) {
	row, err := tx.Batch.GetByName(ctx, name)
	if err == nil {
		return resolved[model.Batch]{Row: row}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return resolved[model.Batch]{}, err
	}

	if existing, ok := s.batchByNameFold(name); ok {
		row, err := tx.Batch.GetByID(ctx, existing.ID)
		return resolved[model.Batch]{Row: row}, err
	}

	row = &model.Batch{Name: name, Status: model.StatusActive}
	if err := tx.Batch.Create(ctx, row); err != nil {
		return resolved[model.Batch]{}, err
	}
	s.logger.Info("自动创建批次", zap.String("name", name))
	return resolved[model.Batch]{Row: row, Created: true}, nil
}

func (s *Store) resolveStream(ctx context.Context, tx *repository.Repository, name string) (resolved[model.Stream], error) {
	row, err := tx.Stream.GetByName(ctx, name)
	if err == nil {
		return resolved[model.Stream]{Row: row}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return resolved[model.Stream]{}, err
	}

	if existing, ok := s.streamByNameFold(name); ok {
		row, err := tx.Stream.GetByID(ctx, existing.ID)
		return resolved[model.Stream]{Row: row}, err
	}

	row = &model.Stream{
		Name:   name,
		Slug:   s.uniqueSlug(slug.Make(name)),
		Status: model.StatusActive,
	}
	if err := tx.Stream.Create(ctx, row); err != nil {
		return resolved[model.Stream]{}, err
	}
	s.logger.Info("自动创建方向", zap.String("name", name), zap.String("slug", row.Slug))
	return resolved[model.Stream]{Row: row, Created: true}, nil
}

func (s *Store) batchByNameFold(name string) (dto.BatchView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.batches {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return dto.BatchView{}, false
}

func (s *Store) streamByNameFold(name string) (dto.StreamView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.streams {
		if strings.EqualFold(st.Name, name) {
			return st, true
		}
	}
	return dto.StreamView{}, false
}

// uniqueSlug 与已有 slug 冲突时追加 -2、-3 …
func (s *Store) uniqueSlug(base string) string {
	if base == "" {
		base = "stream"
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	taken := make(map[string]bool, len(s.streams))
	for _, st := range s.streams {
		taken[st.Slug] = true
	}
	candidate := base
	for i := 2; taken[candidate]; i++ {
		candidate = base + "-" + strconv.Itoa(i)
	}
	return candidate
}

// mergeResolved 将自动新建的方向/批次并入内存
func (s *Store) mergeResolved(st resolved[model.Stream], b resolved[model.Batch]) {
	if !st.Created && !b.Created {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.Created && st.Row != nil {
		s.streams = insertStreamSorted(s.streams, dto.StreamFromModel(st.Row))
	}
	if b.Created && b.Row != nil {
		s.batches = append(s.batches, dto.BatchFromModel(b.Row))
	}
}

// ═══════════════════════════════════════════════════════════
// AddIntern 新增学员
//
// 设计说明：
//   - batch 必填，缺失时在任何写入之前返回 MissingBatch
//   - domain/batch 名称解析与学员写入处于同一事务
//   - 成功后新记录插入内存列表头部
// ═══════════════════════════════════════════════════════════

// AddIntern 新增学员并返回视图
func (s *Store) AddIntern(ctx context.Context, req *dto.CreateInternRequest) (dto.InternView, error) {
	req.Batch = strings.TrimSpace(req.Batch)
	req.Domain = strings.TrimSpace(req.Domain)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Batch == "" {
		return dto.InternView{}, apperrors.MissingBatch()
	}
	if err := validateStruct(req); err != nil {
		return dto.InternView{}, err
	}

	var (
		intern *model.Intern
		st     resolved[model.Stream]
		b      resolved[model.Batch]
	)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if b, err = s.resolveBatch(ctx, tx, req.Batch); err != nil {
			return err
		}
		var streamID *string
		if req.Domain != "" {
			if st, err = s.resolveStream(ctx, tx, req.Domain); err != nil {
				return err
			}
			streamID = &st.Row.ID
		}

		if intern, err = req.ToModel(streamID, b.Row.ID); err != nil {
			return apperrors.Invalid("joinedDate", err.Error())
		}
		if err := tx.Intern.Create(ctx, intern); err != nil {
			return err
		}
		intern.Batch = b.Row
		intern.Stream = st.Row
		return nil
	})
	if err != nil {
		return dto.InternView{}, s.remoteErr("add intern", "intern", err)
	}

	s.mergeResolved(st, b)
	view := dto.InternFromModel(intern)

	s.mu.Lock()
	s.interns = append([]dto.InternView{view}, s.interns...)
	s.mu.Unlock()

	s.logger.Info("新增学员", zap.String("id", view.ID), zap.String("batch", view.Batch))
	return view, nil
}

// UpdateIntern 部分更新学员；仅写入请求中显式提供的字段
// batch 提供但为空返回 MissingBatch；domain 提供但为空表示清除方向
func (s *Store) UpdateIntern(ctx context.Context, id string, req *dto.UpdateInternRequest) (dto.InternView, error) {
	if req.Batch != nil {
		trimmed := strings.TrimSpace(*req.Batch)
		if trimmed == "" {
			return dto.InternView{}, apperrors.MissingBatch()
		}
		req.Batch = &trimmed
	}
	if req.Domain != nil {
		trimmed := strings.TrimSpace(*req.Domain)
		req.Domain = &trimmed
	}
	if err := validateStruct(req); err != nil {
		return dto.InternView{}, err
	}
	updates, err := req.Changes()
	if err != nil {
		return dto.InternView{}, apperrors.Invalid("joinedDate", err.Error())
	}

	var (
		fresh *model.Intern
		st    resolved[model.Stream]
		b     resolved[model.Batch]
	)
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		if req.Batch != nil {
			if b, err = s.resolveBatch(ctx, tx, *req.Batch); err != nil {
				return err
			}
			updates["batch_id"] = b.Row.ID
		}
		if req.Domain != nil {
			if *req.Domain == "" {
				updates["stream_id"] = nil
			} else {
				if st, err = s.resolveStream(ctx, tx, *req.Domain); err != nil {
					return err
				}
				updates["stream_id"] = st.Row.ID
			}
		}

		if len(updates) > 0 {
			if err := tx.Intern.Update(ctx, id, updates); err != nil {
				return err
			}
		}
		fresh, err = tx.Intern.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return dto.InternView{}, s.remoteErr("update intern", "intern", err)
	}

	s.mergeResolved(st, b)
	view := dto.InternFromModel(fresh)
	s.replaceIntern(view)
	return view, nil
}

// UpdateInternStatus 状态下拉快捷修改
func (s *Store) UpdateInternStatus(ctx context.Context, id, status string) (dto.InternView, error) {
	return s.UpdateIntern(ctx, id, &dto.UpdateInternRequest{Status: &status})
}

func (s *Store) replaceIntern(view dto.InternView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.interns {
		if s.interns[i].ID == view.ID {
			s.interns[i] = view
			return
		}
	}
	s.interns = append([]dto.InternView{view}, s.interns...)
}

// DeleteIntern 删除学员；其评估、考勤、周任务分配与项目分配由外键级联删除，内存同步清理
func (s *Store) DeleteIntern(ctx context.Context, id string) error {
	if err := s.repo.Intern.Delete(ctx, id); err != nil {
		return s.remoteErr("delete intern", "intern", err)
	}

	s.mu.Lock()
	stale := make(map[string]bool)
	for _, a := range s.attendance {
		if a.InternID == id {
			stale[redis.AttendanceKey(a.Context, a.Month)] = true
		}
	}
	s.interns = filter(s.interns, func(v dto.InternView) bool { return v.ID != id })
	s.evaluations = filter(s.evaluations, func(v dto.EvaluationView) bool { return v.InternID != id })
	s.attendance = filter(s.attendance, func(v dto.AttendanceView) bool { return v.InternID != id })
	s.weeklyTasks = filter(s.weeklyTasks, func(v dto.WeeklyTaskView) bool { return v.InternID != id })
	for i := range s.projects {
		s.projects[i].AssignedInterns = filter(s.projects[i].AssignedInterns, func(v string) bool { return v != id })
	}
	s.mu.Unlock()

	// 含该学员的考勤快照已过期
	for key := range stale {
		if err := s.cache.InvalidateSnapshot(ctx, key); err != nil {
			s.logger.Warn("清除考勤快照失败", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// filter 返回满足 keep 的元素组成的新切片
func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// isDuplicate 唯一索引冲突视为重名
func isDuplicate(err error) bool {
	return database.IsUniqueViolation(err)
}
