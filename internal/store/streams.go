package store

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/repository"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/database"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/slug"
)

// insertStreamSorted 按名称有序插入，与远端 name ASC 排序保持一致
func insertStreamSorted(list []dto.StreamView, v dto.StreamView) []dto.StreamView {
	i := sort.Search(len(list), func(i int) bool { return list[i].Name >= v.Name })
	list = append(list, dto.StreamView{})
	copy(list[i+1:], list[i:])
	list[i] = v
	return list
}

func (s *Store) streamByID(id string) (dto.StreamView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.streams {
		if st.ID == id {
			return st, true
		}
	}
	return dto.StreamView{}, false
}

// AddCustomStream 新增自定义方向，slug 由名称生成；名称或 slug 冲突均视为重名
func (s *Store) AddCustomStream(ctx context.Context, req *dto.CreateStreamRequest) (dto.StreamView, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return dto.StreamView{}, err
	}
	if _, taken := s.streamByNameFold(req.Name); taken {
		return dto.StreamView{}, apperrors.DuplicateName("name", "stream")
	}

	sl := slug.Make(req.Name)
	if sl == "" {
		return dto.StreamView{}, apperrors.Invalid("name", "Stream name must contain letters or numbers")
	}
	if _, taken := s.StreamBySlug(sl); taken {
		return dto.StreamView{}, apperrors.DuplicateName("name", "stream")
	}

	row := &model.Stream{
		Name:        req.Name,
		Slug:        sl,
		Description: req.Description,
		Status:      model.StatusActive,
	}
	if err := s.repo.Stream.Create(ctx, row); err != nil {
		if isDuplicate(err) {
			return dto.StreamView{}, apperrors.DuplicateName("name", "stream")
		}
		return dto.StreamView{}, s.remoteErr("add stream", "stream", err)
	}

	view := dto.StreamFromModel(row)
	s.mu.Lock()
	s.streams = insertStreamSorted(s.streams, view)
	s.mu.Unlock()

	s.logger.Info("新增方向", zap.String("name", view.Name), zap.String("slug", view.Slug))
	return view, nil
}

// DeleteCustomStream 删除自定义方向；默认方向与仍有学员的方向只能归档
func (s *Store) DeleteCustomStream(ctx context.Context, id string) error {
	current, ok := s.streamByID(id)
	if !ok {
		return apperrors.NotFound("stream")
	}
	if current.IsDefault {
		return apperrors.DefaultStream(current.Name)
	}
	if s.countInterns(func(v dto.InternView) bool { return v.StreamID == id }) > 0 {
		return apperrors.HasDependents("stream")
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.Intern.CountByStream(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperrors.HasDependents("stream")
		}
		return tx.Stream.Delete(ctx, id)
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperrors.HasDependents("stream")
		}
		return s.remoteErr("delete stream", "stream", err)
	}

	s.mu.Lock()
	s.streams = filter(s.streams, func(v dto.StreamView) bool { return v.ID != id })
	s.mu.Unlock()

	s.logger.Info("删除方向", zap.String("name", current.Name))
	return nil
}

// ArchiveStream 归档方向（默认方向同样可归档）；重复归档幂等
func (s *Store) ArchiveStream(ctx context.Context, id string) (dto.StreamView, error) {
	return s.setStreamStatus(ctx, id, model.StatusArchived)
}

// RestoreStream 恢复方向；重复恢复幂等
func (s *Store) RestoreStream(ctx context.Context, id string) (dto.StreamView, error) {
	return s.setStreamStatus(ctx, id, model.StatusActive)
}

func (s *Store) setStreamStatus(ctx context.Context, id, status string) (dto.StreamView, error) {
	current, ok := s.streamByID(id)
	if !ok {
		return dto.StreamView{}, apperrors.NotFound("stream")
	}
	if current.Status == status {
		return current, nil
	}
	if err := s.repo.Stream.UpdateStatus(ctx, id, status); err != nil {
		return dto.StreamView{}, s.remoteErr("update stream status", "stream", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.streams {
		if s.streams[i].ID == id {
			s.streams[i].Status = status
			current = s.streams[i]
		}
	}
	return current, nil
}
