package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// WeeklyTaskRepository 周任务数据访问接口（通用任务与个人分配同表）
type WeeklyTaskRepository interface {
	Create(ctx context.Context, task *model.WeeklyTask) error
	GetByID(ctx context.Context, id string) (*model.WeeklyTask, error)
	List(ctx context.Context) ([]model.WeeklyTask, error)
	Update(ctx context.Context, task *model.WeeklyTask) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type weeklyTaskRepo struct {
	db *gorm.DB
}

// NewWeeklyTaskRepo 创建 WeeklyTaskRepository 实例
func NewWeeklyTaskRepo(db *gorm.DB) WeeklyTaskRepository {
	return &weeklyTaskRepo{db: db}
}

func (r *weeklyTaskRepo) Create(ctx context.Context, task *model.WeeklyTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *weeklyTaskRepo) GetByID(ctx context.Context, id string) (*model.WeeklyTask, error) {
	var task model.WeeklyTask
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *weeklyTaskRepo) List(ctx context.Context) ([]model.WeeklyTask, error) {
	var tasks []model.WeeklyTask
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *weeklyTaskRepo) Update(ctx context.Context, task *model.WeeklyTask) error {
	return r.db.WithContext(ctx).Omit("CreatedAt").Save(task).Error
}

func (r *weeklyTaskRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return affected(r.db.WithContext(ctx).
		Model(&model.WeeklyTask{}).
		Where("id = ?", id).
		Update("status", status))
}

// Delete 删除通用任务时，其个人分配由外键级联删除
func (r *weeklyTaskRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.WeeklyTask{}))
}
