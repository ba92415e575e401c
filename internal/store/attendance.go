package store

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/repository"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/redis"
)

// ═══════════════════════════════════════════════════════════
// SaveAttendance 整月保存考勤
//
// 设计说明：
//   - 以 (上下文, 月份) 为单位整体替换，空上下文归入 "All"
//   - 空状态格子同样落库，表示该周已查看但未标记
//   - 远端成功后刷新内存并写入离线快照
// ═══════════════════════════════════════════════════════════

// SaveAttendance 覆盖保存某上下文某月的全部考勤格子
func (s *Store) SaveAttendance(ctx context.Context, req *dto.SaveAttendanceRequest) ([]dto.AttendanceView, error) {
	req.Context = strings.TrimSpace(req.Context)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	for _, e := range req.Entries {
		if _, ok := s.InternByID(e.InternID); !ok {
			return nil, apperrors.Invalid("internId", "Intern does not exist")
		}
	}

	scope := req.ResolvedContext()
	rows := req.ToModels()
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.Attendance.ReplaceMonth(ctx, scope, req.Month, rows)
	})
	if err != nil {
		return nil, s.remoteErr("save attendance", "attendance", err)
	}

	views := make([]dto.AttendanceView, 0, len(rows))
	for i := range rows {
		views = append(views, dto.AttendanceFromModel(&rows[i]))
	}

	s.mu.Lock()
	s.attendance = filter(s.attendance, func(v dto.AttendanceView) bool {
		return v.Context != scope || v.Month != req.Month
	})
	s.attendance = append(s.attendance, views...)
	s.mu.Unlock()

	if err := s.cache.PutSnapshot(ctx, redis.AttendanceKey(scope, req.Month), views, s.cacheTTL); err != nil {
		s.logger.Warn("写入考勤快照失败", zap.String("context", scope), zap.Error(err))
	}

	s.logger.Info("保存考勤",
		zap.String("context", scope),
		zap.String("month", req.Month),
		zap.Int("cells", len(views)),
	)
	return views, nil
}

// AttendanceFor 读取某上下文某月的考勤
// 依次尝试内存、远端、离线快照；全部为空时返回空切片
func (s *Store) AttendanceFor(ctx context.Context, scope, month string) ([]dto.AttendanceView, error) {
	if scope == "" {
		scope = dto.DefaultAttendanceContext
	}

	s.mu.RLock()
	out := make([]dto.AttendanceView, 0)
	for _, v := range s.attendance {
		if v.Context == scope && v.Month == month {
			out = append(out, v)
		}
	}
	s.mu.RUnlock()
	if len(out) > 0 {
		return out, nil
	}

	rows, err := s.repo.Attendance.ListByMonth(ctx, scope, month)
	if err == nil {
		for i := range rows {
			out = append(out, dto.AttendanceFromModel(&rows[i]))
		}
		return out, nil
	}

	var cached []dto.AttendanceView
	savedAt, ok, cerr := s.cache.GetSnapshot(ctx, redis.AttendanceKey(scope, month), &cached)
	if cerr == nil && ok {
		s.logger.Warn("使用考勤离线快照", zap.String("context", scope), zap.Time("saved_at", savedAt))
		return cached, nil
	}
	return nil, s.remoteErr("load attendance", "attendance", err)
}
