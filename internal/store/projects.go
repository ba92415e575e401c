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

// checkAssignees 分配的学员必须存在
func (s *Store) checkAssignees(ids []string) error {
	for _, id := range ids {
		if _, ok := s.InternByID(id); !ok {
			return apperrors.Invalid("assignedInterns", "Assigned intern does not exist")
		}
	}
	return nil
}

// AddProject 在指定批次下新增项目及其学员分配
func (s *Store) AddProject(ctx context.Context, batchID string, req *dto.CreateProjectRequest) (dto.ProjectView, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(req); err != nil {
		return dto.ProjectView{}, err
	}
	if _, ok := s.BatchByID(batchID); !ok {
		return dto.ProjectView{}, apperrors.NotFound("batch")
	}
	if err := s.checkAssignees(req.AssignedInterns); err != nil {
		return dto.ProjectView{}, err
	}

	var fresh *model.Project
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		row := req.ToModel(batchID)
		if err := tx.Project.Create(ctx, row); err != nil {
			return err
		}
		if err := tx.Project.ReplaceAssignments(ctx, row.ID, dto.BuildAssignments(row.ID, req.AssignedInterns)); err != nil {
			return err
		}
		var err error
		fresh, err = tx.Project.GetByID(ctx, row.ID)
		return err
	})
	if err != nil {
		return dto.ProjectView{}, s.remoteErr("add project", "project", err)
	}

	view := dto.ProjectFromModel(fresh)
	s.mu.Lock()
	s.projects = append([]dto.ProjectView{view}, s.projects...)
	s.mu.Unlock()

	s.logger.Info("新增项目", zap.String("id", view.ID), zap.Int("assignees", len(view.AssignedInterns)))
	return view, nil
}

// UpdateProject 部分更新项目；AssignedInterns 非 nil 时整体替换分配
func (s *Store) UpdateProject(ctx context.Context, id string, req *dto.UpdateProjectRequest) (dto.ProjectView, error) {
	if err := validateStruct(req); err != nil {
		return dto.ProjectView{}, err
	}
	if req.AssignedInterns != nil {
		if err := s.checkAssignees(req.AssignedInterns); err != nil {
			return dto.ProjectView{}, err
		}
	}

	var fresh *model.Project
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Project.Update(ctx, id, req.Changes()); err != nil {
			return err
		}
		if req.AssignedInterns != nil {
			if err := tx.Project.ReplaceAssignments(ctx, id, dto.BuildAssignments(id, req.AssignedInterns)); err != nil {
				return err
			}
		}
		var err error
		fresh, err = tx.Project.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return dto.ProjectView{}, s.remoteErr("update project", "project", err)
	}

	view := dto.ProjectFromModel(fresh)
	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i] = view
		}
	}
	s.mu.Unlock()
	return view, nil
}

// DeleteProject 删除项目，分配行由外键级联删除
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.repo.Project.Delete(ctx, id); err != nil {
		return s.remoteErr("delete project", "project", err)
	}
	s.mu.Lock()
	s.projects = filter(s.projects, func(v dto.ProjectView) bool { return v.ID != id })
	s.mu.Unlock()
	return nil
}
