package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// GlobalWeekRepository 全局周次数据访问接口
type GlobalWeekRepository interface {
	Create(ctx context.Context, week *model.GlobalWeek) error
	List(ctx context.Context) ([]model.GlobalWeek, error)
	Delete(ctx context.Context, id string) error
}

type globalWeekRepo struct {
	db *gorm.DB
}

// NewGlobalWeekRepo 创建 GlobalWeekRepository 实例
func NewGlobalWeekRepo(db *gorm.DB) GlobalWeekRepository {
	return &globalWeekRepo{db: db}
}

func (r *globalWeekRepo) Create(ctx context.Context, week *model.GlobalWeek) error {
	return r.db.WithContext(ctx).Create(week).Error
}

func (r *globalWeekRepo) List(ctx context.Context) ([]model.GlobalWeek, error) {
	var weeks []model.GlobalWeek
	err := r.db.WithContext(ctx).
		Order("week_order ASC").
		Find(&weeks).Error
	return weeks, err
}

// Delete 关联评估由外键 ON DELETE CASCADE 一并删除
func (r *globalWeekRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.GlobalWeek{}))
}
