package store

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/repository"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/database"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
)

const lowScoreMessage = "Comments are required when any parameter score is 2 or below"

// requiresComments 任一已评分项 ≤2 时必须填写评语；0 表示未评，不计入
func requiresComments(r dto.Ratings) bool {
	for _, v := range r.Values() {
		if v > 0 && v <= 2 {
			return true
		}
	}
	return false
}

// ═══════════════════════════════════════════════════════════
// SavePerformanceEvaluation 保存绩效评估
//
// 设计说明：
//   - 每个 (学员, 周次) 至多一条记录，重复保存覆盖旧记录
//   - 查找与写入在同一事务；并发新增撞上唯一索引时改为覆盖
//   - 学员或周次不存在（外键冲突）视为校验失败
// ═══════════════════════════════════════════════════════════

// SavePerformanceEvaluation 新增或覆盖评估
func (s *Store) SavePerformanceEvaluation(ctx context.Context, req *dto.SaveEvaluationRequest) (dto.EvaluationView, error) {
	req.Comments = strings.TrimSpace(req.Comments)
	if err := validateStruct(req); err != nil {
		return dto.EvaluationView{}, err
	}
	if requiresComments(req.Ratings) && req.Comments == "" {
		return dto.EvaluationView{}, apperrors.Invalid("comments", lowScoreMessage)
	}

	var row *model.PerformanceEvaluation
	save := func(tx *repository.Repository) error {
		existing, err := tx.Evaluation.GetByInternAndWeek(ctx, req.InternID, req.WeekID)
		switch {
		case err == nil:
			req.Apply(existing)
			row = existing
			return tx.Evaluation.Update(ctx, existing)
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = &model.PerformanceEvaluation{}
			req.Apply(row)
			return tx.Evaluation.Create(ctx, row)
		default:
			return err
		}
	}

	err := s.repo.Transaction(ctx, save)
	if isDuplicate(err) {
		err = s.repo.Transaction(ctx, save)
	}
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return dto.EvaluationView{}, apperrors.Invalid("internId", "Intern or week does not exist")
		}
		return dto.EvaluationView{}, s.remoteErr("save evaluation", "evaluation", err)
	}

	name, _ := s.weekName(row.WeekID)
	view := dto.EvaluationFromModel(row, name)

	s.mu.Lock()
	replaced := false
	for i := range s.evaluations {
		if s.evaluations[i].InternID == view.InternID && s.evaluations[i].WeekID == view.WeekID {
			s.evaluations[i] = view
			replaced = true
		}
	}
	if !replaced {
		s.evaluations = append(s.evaluations, view)
	}
	s.mu.Unlock()

	s.logger.Info("保存绩效评估",
		zap.String("intern_id", view.InternID),
		zap.String("week_id", view.WeekID),
		zap.Bool("updated", replaced),
	)
	return view, nil
}
