package store

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/repository"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/database"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
)

// batchNameTaken 不区分大小写的重名检查，exceptID 为自身 ID（更新时排除）
func (s *Store) batchNameTaken(name, exceptID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.batches {
		if b.ID != exceptID && strings.EqualFold(b.Name, name) {
			return true
		}
	}
	return false
}

// AddBatch 新增批次
func (s *Store) AddBatch(ctx context.Context, req *dto.CreateBatchRequest) (dto.BatchView, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return dto.BatchView{}, err
	}
	if !dto.DateRangeValid(req.StartDate, req.EndDate) {
		return dto.BatchView{}, apperrors.Invalid("endDate", "End date must be after start date")
	}
	if s.batchNameTaken(req.Name, "") {
		return dto.BatchView{}, apperrors.DuplicateName("name", "batch")
	}

	row, err := req.ToModel()
	if err != nil {
		return dto.BatchView{}, apperrors.Invalid("startDate", err.Error())
	}
	if err := s.repo.Batch.Create(ctx, row); err != nil {
		if isDuplicate(err) {
			return dto.BatchView{}, apperrors.DuplicateName("name", "batch")
		}
		return dto.BatchView{}, s.remoteErr("add batch", "batch", err)
	}

	view := dto.BatchFromModel(row)
	s.mu.Lock()
	s.batches = append(s.batches, view)
	s.mu.Unlock()

	s.logger.Info("新增批次", zap.String("id", view.ID), zap.String("name", view.Name))
	return view, nil
}

// UpdateBatch 部分更新批次；改名同步到学员视图中的批次名称
func (s *Store) UpdateBatch(ctx context.Context, id string, req *dto.UpdateBatchRequest) (dto.BatchView, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if err := validateStruct(req); err != nil {
		return dto.BatchView{}, err
	}
	current, ok := s.BatchByID(id)
	if !ok {
		return dto.BatchView{}, apperrors.NotFound("batch")
	}
	if req.Name != nil && s.batchNameTaken(*req.Name, id) {
		return dto.BatchView{}, apperrors.DuplicateName("name", "batch")
	}

	start, end := current.StartDate, current.EndDate
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StartDate != nil {
		d, err := dto.ParseDate(*req.StartDate)
		if err != nil {
			return dto.BatchView{}, apperrors.Invalid("startDate", err.Error())
		}
		updates["start_date"] = d
		start = *req.StartDate
	}
	if req.EndDate != nil {
		d, err := dto.ParseDate(*req.EndDate)
		if err != nil {
			return dto.BatchView{}, apperrors.Invalid("endDate", err.Error())
		}
		updates["end_date"] = d
		end = *req.EndDate
	}
	if !dto.DateRangeValid(start, end) {
		return dto.BatchView{}, apperrors.Invalid("endDate", "End date must be after start date")
	}

	var fresh *model.Batch
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if len(updates) > 0 {
			if err := tx.Batch.Update(ctx, id, updates); err != nil {
				return err
			}
		}
		var err error
		fresh, err = tx.Batch.GetByID(ctx, id)
		return err
	})
	if err != nil {
		if isDuplicate(err) {
			return dto.BatchView{}, apperrors.DuplicateName("name", "batch")
		}
		return dto.BatchView{}, s.remoteErr("update batch", "batch", err)
	}

	view := dto.BatchFromModel(fresh)
	s.mu.Lock()
	for i := range s.batches {
		if s.batches[i].ID == id {
			s.batches[i] = view
		}
	}
	if view.Name != current.Name {
		for i := range s.interns {
			if s.interns[i].BatchID == id {
				s.interns[i].Batch = view.Name
			}
		}
	}
	s.mu.Unlock()
	return view, nil
}

// ═══════════════════════════════════════════════════════════
// DeleteBatch 删除批次
//
// 设计说明：
//   - 仍有学员引用时拒绝删除，提示改为归档
//   - 内存计数与远端计数任一非零都视为有引用；外键 RESTRICT 兜底
//   - 删除后同步移除该批次的项目，若为当前选中批次则清除选择
// ═══════════════════════════════════════════════════════════

// DeleteBatch 删除无学员的批次
func (s *Store) DeleteBatch(ctx context.Context, id string) error {
	if _, ok := s.BatchByID(id); !ok {
		return apperrors.NotFound("batch")
	}
	if s.countInterns(func(v dto.InternView) bool { return v.BatchID == id }) > 0 {
		return apperrors.HasDependents("batch")
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.Intern.CountByBatch(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperrors.HasDependents("batch")
		}
		return tx.Batch.Delete(ctx, id)
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperrors.HasDependents("batch")
		}
		return s.remoteErr("delete batch", "batch", err)
	}

	s.mu.Lock()
	s.batches = filter(s.batches, func(v dto.BatchView) bool { return v.ID != id })
	s.projects = filter(s.projects, func(v dto.ProjectView) bool { return v.BatchID != id })
	if s.selectedBatchID == id {
		s.selectedBatchID = ""
	}
	s.mu.Unlock()

	s.logger.Info("删除批次", zap.String("id", id))
	return nil
}

// ArchiveBatch 归档批次；重复归档幂等
func (s *Store) ArchiveBatch(ctx context.Context, id string) (dto.BatchView, error) {
	return s.setBatchStatus(ctx, id, model.StatusArchived)
}

// RestoreBatch 恢复批次；重复恢复幂等
func (s *Store) RestoreBatch(ctx context.Context, id string) (dto.BatchView, error) {
	return s.setBatchStatus(ctx, id, model.StatusActive)
}

func (s *Store) setBatchStatus(ctx context.Context, id, status string) (dto.BatchView, error) {
	current, ok := s.BatchByID(id)
	if !ok {
		return dto.BatchView{}, apperrors.NotFound("batch")
	}
	if current.Status == status {
		return current, nil
	}
	if err := s.repo.Batch.UpdateStatus(ctx, id, status); err != nil {
		return dto.BatchView{}, s.remoteErr("update batch status", "batch", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.batches {
		if s.batches[i].ID == id {
			s.batches[i].Status = status
			current = s.batches[i]
		}
	}
	return current, nil
}

func (s *Store) countInterns(match func(dto.InternView) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, v := range s.interns {
		if match(v) {
			n++
		}
	}
	return n
}
