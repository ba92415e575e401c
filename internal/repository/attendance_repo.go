package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	List(ctx context.Context) ([]model.AttendanceRecord, error)
	ListByMonth(ctx context.Context, scope, month string) ([]model.AttendanceRecord, error)
	// ReplaceMonth 删除 (scope, month) 下全部记录后写入新集合
	ReplaceMonth(ctx context.Context, scope, month string, rows []model.AttendanceRecord) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	var rows []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Order("context ASC, month ASC, week ASC").
		Find(&rows).Error
	return rows, err
}

func (r *attendanceRepo) ListByMonth(ctx context.Context, scope, month string) ([]model.AttendanceRecord, error) {
	var rows []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("context = ? AND month = ?", scope, month).
		Order("week ASC").
		Find(&rows).Error
	return rows, err
}

func (r *attendanceRepo) ReplaceMonth(ctx context.Context, scope, month string, rows []model.AttendanceRecord) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("context = ? AND month = ?", scope, month).Delete(&model.AttendanceRecord{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.CreateInBatches(&rows, 200).Error
}
