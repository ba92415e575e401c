package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// EvaluationRepository 绩效评估数据访问接口
type EvaluationRepository interface {
	Create(ctx context.Context, eval *model.PerformanceEvaluation) error
	GetByInternAndWeek(ctx context.Context, internID, weekID string) (*model.PerformanceEvaluation, error)
	Update(ctx context.Context, eval *model.PerformanceEvaluation) error
	List(ctx context.Context) ([]model.PerformanceEvaluation, error)
}

type evaluationRepo struct {
	db *gorm.DB
}

// NewEvaluationRepo 创建 EvaluationRepository 实例
func NewEvaluationRepo(db *gorm.DB) EvaluationRepository {
	return &evaluationRepo{db: db}
}

func (r *evaluationRepo) Create(ctx context.Context, eval *model.PerformanceEvaluation) error {
	return r.db.WithContext(ctx).Omit("Week").Create(eval).Error
}

func (r *evaluationRepo) GetByInternAndWeek(ctx context.Context, internID, weekID string) (*model.PerformanceEvaluation, error) {
	var eval model.PerformanceEvaluation
	err := r.db.WithContext(ctx).
		Where("intern_id = ? AND week_id = ?", internID, weekID).
		First(&eval).Error
	if err != nil {
		return nil, err
	}
	return &eval, nil
}

func (r *evaluationRepo) Update(ctx context.Context, eval *model.PerformanceEvaluation) error {
	return r.db.WithContext(ctx).Omit("Week", "CreatedAt").Save(eval).Error
}

func (r *evaluationRepo) List(ctx context.Context) ([]model.PerformanceEvaluation, error) {
	var evals []model.PerformanceEvaluation
	err := r.db.WithContext(ctx).
		Preload("Week").
		Order("created_at DESC").
		Find(&evals).Error
	return evals, err
}
