package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// BatchRepository 批次数据访问接口
type BatchRepository interface {
	Create(ctx context.Context, batch *model.Batch) error
	GetByID(ctx context.Context, id string) (*model.Batch, error)
	GetByName(ctx context.Context, name string) (*model.Batch, error)
	List(ctx context.Context) ([]model.Batch, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// batchRepo BatchRepository 的 GORM 实现
type batchRepo struct {
	db *gorm.DB
}

// NewBatchRepo 创建 BatchRepository 实例
func NewBatchRepo(db *gorm.DB) BatchRepository {
	return &batchRepo{db: db}
}

func (r *batchRepo) Create(ctx context.Context, batch *model.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *batchRepo) GetByID(ctx context.Context, id string) (*model.Batch, error) {
	var batch model.Batch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

// GetByName 区分大小写的精确匹配
func (r *batchRepo) GetByName(ctx context.Context, name string) (*model.Batch, error) {
	var batch model.Batch
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

// List 含已归档，按创建时间排序
func (r *batchRepo) List(ctx context.Context) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Order("created_at ASC, name ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.Batch{}).
		Where("id = ?", id).
		Updates(updates))
}

func (r *batchRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.Update(ctx, id, map[string]interface{}{
		"status":     status,
		"updated_at": gorm.Expr("NOW()"),
	})
}

func (r *batchRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Batch{}))
}
