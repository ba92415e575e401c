package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// InternRepository 学员数据访问接口
type InternRepository interface {
	Create(ctx context.Context, intern *model.Intern) error
	GetByID(ctx context.Context, id string) (*model.Intern, error)
	List(ctx context.Context) ([]model.Intern, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	CountByBatch(ctx context.Context, batchID string) (int64, error)
	CountByStream(ctx context.Context, streamID string) (int64, error)
}

// internRepo InternRepository 的 GORM 实现
type internRepo struct {
	db *gorm.DB
}

// NewInternRepo 创建 InternRepository 实例
func NewInternRepo(db *gorm.DB) InternRepository {
	return &internRepo{db: db}
}

func (r *internRepo) Create(ctx context.Context, intern *model.Intern) error {
	return r.db.WithContext(ctx).Omit("Stream", "Batch").Create(intern).Error
}

func (r *internRepo) GetByID(ctx context.Context, id string) (*model.Intern, error) {
	var intern model.Intern
	err := r.db.WithContext(ctx).
		Preload("Stream").
		Preload("Batch").
		Where("id = ?", id).
		First(&intern).Error
	if err != nil {
		return nil, err
	}
	return &intern, nil
}

// List 最新加入的排在前面
func (r *internRepo) List(ctx context.Context) ([]model.Intern, error) {
	var interns []model.Intern
	err := r.db.WithContext(ctx).
		Preload("Stream").
		Preload("Batch").
		Order("created_at DESC").
		Find(&interns).Error
	return interns, err
}

func (r *internRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.Intern{}).
		Where("id = ?", id).
		Updates(updates))
}

func (r *internRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Intern{}))
}

func (r *internRepo) CountByBatch(ctx context.Context, batchID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Intern{}).
		Where("batch_id = ?", batchID).
		Count(&count).Error
	return count, err
}

func (r *internRepo) CountByStream(ctx context.Context, streamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Intern{}).
		Where("stream_id = ?", streamID).
		Count(&count).Error
	return count, err
}
