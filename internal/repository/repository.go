package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/database"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Intern     InternRepository
	Stream     StreamRepository
	Batch      BatchRepository
	GlobalWeek GlobalWeekRepository
	Project    ProjectRepository
	Evaluation EvaluationRepository
	WeeklyTask WeeklyTaskRepository
	Attendance AttendanceRepository

	db      *gorm.DB
	retries int
}

// NewRepository 创建 Repository 聚合
// retries 为事务遇到序列化冲突/死锁时的最大尝试次数
func NewRepository(db *gorm.DB, retries int) *Repository {
	return &Repository{
		Intern:     NewInternRepo(db),
		Stream:     NewStreamRepo(db),
		Batch:      NewBatchRepo(db),
		GlobalWeek: NewGlobalWeekRepo(db),
		Project:    NewProjectRepo(db),
		Evaluation: NewEvaluationRepo(db),
		WeeklyTask: NewWeeklyTaskRepo(db),
		Attendance: NewAttendanceRepo(db),
		db:         db,
		retries:    retries,
	}
}

// Transaction 在单个数据库事务内执行 fn，fn 收到绑定到事务的 Repository
// 事务整体失败时回滚；序列化冲突/死锁会整体重试
// 未绑定数据库（单元测试注入 mock）时直接以自身调用 fn
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return database.Retry(ctx, r.retries, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewRepository(tx, 1))
		})
	})
}

// affected 将 0 行受影响转换为 ErrRecordNotFound
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
