package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// StreamRepository 方向数据访问接口
type StreamRepository interface {
	Create(ctx context.Context, stream *model.Stream) error
	GetByID(ctx context.Context, id string) (*model.Stream, error)
	GetByName(ctx context.Context, name string) (*model.Stream, error)
	List(ctx context.Context) ([]model.Stream, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// streamRepo StreamRepository 的 GORM 实现
type streamRepo struct {
	db *gorm.DB
}

// NewStreamRepo 创建 StreamRepository 实例
func NewStreamRepo(db *gorm.DB) StreamRepository {
	return &streamRepo{db: db}
}

func (r *streamRepo) Create(ctx context.Context, stream *model.Stream) error {
	return r.db.WithContext(ctx).Create(stream).Error
}

func (r *streamRepo) GetByID(ctx context.Context, id string) (*model.Stream, error) {
	var stream model.Stream
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&stream).Error; err != nil {
		return nil, err
	}
	return &stream, nil
}

// GetByName 区分大小写的精确匹配
func (r *streamRepo) GetByName(ctx context.Context, name string) (*model.Stream, error) {
	var stream model.Stream
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&stream).Error; err != nil {
		return nil, err
	}
	return &stream, nil
}

// List 含已归档，按名称排序
func (r *streamRepo) List(ctx context.Context) ([]model.Stream, error) {
	var streams []model.Stream
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&streams).Error
	return streams, err
}

func (r *streamRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.Stream{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("NOW()"),
		}))
}

func (r *streamRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND is_default = ?", id, false).
		Delete(&model.Stream{}))
}
