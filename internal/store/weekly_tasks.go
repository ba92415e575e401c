package store

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/repository"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
)

func (s *Store) taskByID(id string) (dto.WeeklyTaskView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.weeklyTasks {
		if t.ID == id {
			return t, true
		}
	}
	return dto.WeeklyTaskView{}, false
}

func (s *Store) upsertTaskView(view dto.WeeklyTaskView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.weeklyTasks {
		if s.weeklyTasks[i].ID == view.ID {
			s.weeklyTasks[i] = view
			return
		}
	}
	s.weeklyTasks = append([]dto.WeeklyTaskView{view}, s.weeklyTasks...)
}

// AddWeeklyTask 新增通用任务
func (s *Store) AddWeeklyTask(ctx context.Context, req *dto.CreateWeeklyTaskRequest) (dto.WeeklyTaskView, error) {
	req.Week = strings.TrimSpace(req.Week)
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(req); err != nil {
		return dto.WeeklyTaskView{}, err
	}
	if req.BatchID != "" {
		if _, ok := s.BatchByID(req.BatchID); !ok {
			return dto.WeeklyTaskView{}, apperrors.Invalid("batchId", "Batch does not exist")
		}
	}
	if req.StreamID != "" {
		if _, ok := s.streamByID(req.StreamID); !ok {
			return dto.WeeklyTaskView{}, apperrors.Invalid("streamId", "Stream does not exist")
		}
	}

	row := req.ToModel()
	if err := s.repo.WeeklyTask.Create(ctx, row); err != nil {
		return dto.WeeklyTaskView{}, s.remoteErr("add weekly task", "task", err)
	}
	view := dto.WeeklyTaskFromModel(row)
	s.upsertTaskView(view)

	s.logger.Info("新增周任务", zap.String("id", view.ID), zap.String("week", view.Week))
	return view, nil
}

// ═══════════════════════════════════════════════════════════
// AddTaskAssignment 为学员分配通用任务
//
// 设计说明：
//   - 同一 (任务, 学员) 至多一条分配，已存在时覆盖其状态与评分
//   - 周次、标题与批次/方向上下文继承自通用任务
//   - 总分为四项评分平均值，写入时计算
// ═══════════════════════════════════════════════════════════

// AddTaskAssignment 新增或覆盖个人分配
func (s *Store) AddTaskAssignment(ctx context.Context, req *dto.TaskAssignmentRequest) (dto.WeeklyTaskView, error) {
	if err := validateStruct(req); err != nil {
		return dto.WeeklyTaskView{}, err
	}
	if _, ok := s.InternByID(req.InternID); !ok {
		return dto.WeeklyTaskView{}, apperrors.Invalid("internId", "Intern does not exist")
	}

	var existingID string
	s.mu.RLock()
	for _, t := range s.weeklyTasks {
		if t.TaskID == req.TaskID && t.InternID == req.InternID {
			existingID = t.ID
			break
		}
	}
	s.mu.RUnlock()

	var row *model.WeeklyTask
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		parent, err := tx.WeeklyTask.GetByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		if parent.IsAssignment() {
			return apperrors.Invalid("taskId", "Task must be a general task")
		}
		if existingID != "" {
			if row, err = tx.WeeklyTask.GetByID(ctx, existingID); err != nil {
				return err
			}
			req.Apply(row, parent)
			return tx.WeeklyTask.Update(ctx, row)
		}
		row = &model.WeeklyTask{}
		req.Apply(row, parent)
		return tx.WeeklyTask.Create(ctx, row)
	})
	if err != nil {
		return dto.WeeklyTaskView{}, s.remoteErr("assign weekly task", "task", err)
	}

	view := dto.WeeklyTaskFromModel(row)
	s.upsertTaskView(view)
	return view, nil
}

// UpdateTaskAssignment 更新已有个人分配
func (s *Store) UpdateTaskAssignment(ctx context.Context, id string, req *dto.TaskAssignmentRequest) (dto.WeeklyTaskView, error) {
	current, ok := s.taskByID(id)
	if !ok || !current.IsAssignment {
		return dto.WeeklyTaskView{}, apperrors.NotFound("task assignment")
	}
	req.TaskID = current.TaskID
	req.InternID = current.InternID
	return s.AddTaskAssignment(ctx, req)
}

// UpdateWeeklyTaskStatus 仅修改完成状态
func (s *Store) UpdateWeeklyTaskStatus(ctx context.Context, id string, req *dto.UpdateTaskStatusRequest) (dto.WeeklyTaskView, error) {
	if err := validateStruct(req); err != nil {
		return dto.WeeklyTaskView{}, err
	}
	if err := s.repo.WeeklyTask.UpdateStatus(ctx, id, req.Status); err != nil {
		return dto.WeeklyTaskView{}, s.remoteErr("update task status", "task", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.weeklyTasks {
		if s.weeklyTasks[i].ID == id {
			s.weeklyTasks[i].Status = req.Status
			return s.weeklyTasks[i], nil
		}
	}
	return dto.WeeklyTaskView{ID: id, Status: req.Status}, nil
}

// DeleteWeeklyTask 删除任务；删除通用任务时其个人分配一并移除
func (s *Store) DeleteWeeklyTask(ctx context.Context, id string) error {
	if err := s.repo.WeeklyTask.Delete(ctx, id); err != nil {
		return s.remoteErr("delete weekly task", "task", err)
	}
	s.mu.Lock()
	s.weeklyTasks = filter(s.weeklyTasks, func(v dto.WeeklyTaskView) bool {
		return v.ID != id && v.TaskID != id
	})
	s.mu.Unlock()
	return nil
}
