package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/repository"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/redis"
)

// SnapshotCache 离线快照缓存（考勤、周次），远端为唯一数据源，缓存只做降级读取
type SnapshotCache interface {
	PutSnapshot(ctx context.Context, key string, data any, ttl time.Duration) error
	GetSnapshot(ctx context.Context, key string, dest any) (time.Time, bool, error)
	InvalidateSnapshot(ctx context.Context, key string) error
}

type nopCache struct{}

func (nopCache) PutSnapshot(context.Context, string, any, time.Duration) error { return nil }
func (nopCache) GetSnapshot(context.Context, string, any) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
func (nopCache) InvalidateSnapshot(context.Context, string) error { return nil }

// Store 应用状态容器
// 持有全部实体集合的内存副本，是内存状态的唯一写入方；所有变更先写远端，成功后再更新内存
type Store struct {
	repo     *repository.Repository
	cache    SnapshotCache
	cacheTTL time.Duration
	logger   *zap.Logger

	mu              sync.RWMutex
	interns         []dto.InternView
	streams         []dto.StreamView
	batches         []dto.BatchView
	weeks           []dto.GlobalWeekView
	projects        []dto.ProjectView
	evaluations     []dto.EvaluationView
	weeklyTasks     []dto.WeeklyTaskView
	attendance      []dto.AttendanceView
	selectedBatchID string

	loading atomic.Int32
}

// Option Store 可选配置
type Option func(*Store)

// WithSnapshotCache 启用离线快照缓存；cache 为 nil 时忽略
func WithSnapshotCache(cache SnapshotCache, ttl time.Duration) Option {
	return func(s *Store) {
		if cache != nil {
			s.cache = cache
			s.cacheTTL = ttl
		}
	}
}

// New 创建 Store 实例；创建后需调用 LoadAll 填充内存集合
func New(repo *repository.Repository, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		cache:  nopCache{},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ═══════════════════════════════════════════════════════════
// LoadAll 并发加载全部实体集合
//
// 设计说明：
//   - 各实体互不依赖，一个失败不影响其他实体
//   - 失败的实体仅记录日志，集合置空；周次可回退到离线快照
//   - 并发调用不做串行化，最后完成的结果生效
// ═══════════════════════════════════════════════════════════

// LoadAll 加载全部集合，加载期间 Loading() 为 true
func (s *Store) LoadAll(ctx context.Context) {
	s.loading.Add(1)
	defer s.loading.Add(-1)

	var g errgroup.Group
	g.Go(func() error { s.loadInterns(ctx); return nil })
	g.Go(func() error { s.loadStreams(ctx); return nil })
	g.Go(func() error { s.loadBatches(ctx); return nil })
	g.Go(func() error { s.loadWeeks(ctx); return nil })
	g.Go(func() error { s.loadProjects(ctx); return nil })
	g.Go(func() error { s.loadEvaluations(ctx); return nil })
	g.Go(func() error { s.loadWeeklyTasks(ctx); return nil })
	g.Go(func() error { s.loadAttendance(ctx); return nil })
	_ = g.Wait()

	s.logger.Info("内存状态加载完成",
		zap.Int("interns", len(s.Interns())),
		zap.Int("streams", len(s.Streams())),
		zap.Int("batches", len(s.Batches())),
	)
}

func (s *Store) loadInterns(ctx context.Context) {
	rows, err := s.repo.Intern.List(ctx)
	if err != nil {
		s.logger.Error("加载学员失败", zap.Error(err))
	}
	views := make([]dto.InternView, 0, len(rows))
	for i := range rows {
		views = append(views, dto.InternFromModel(&rows[i]))
	}
	s.mu.Lock()
	s.interns = views
	s.mu.Unlock()
}

func (s *Store) loadStreams(ctx context.Context) {
	rows, err := s.repo.Stream.List(ctx)
	if err != nil {
		s.logger.Error("加载方向失败", zap.Error(err))
	}
	views := make([]dto.StreamView, 0, len(rows))
	for i := range rows {
		views = append(views, dto.StreamFromModel(&rows[i]))
	}
	s.mu.Lock()
	s.streams = views
	s.mu.Unlock()
}

func (s *Store) loadBatches(ctx context.Context) {
	rows, err := s.repo.Batch.List(ctx)
	if err != nil {
		s.logger.Error("加载批次失败", zap.Error(err))
	}
	views := make([]dto.BatchView, 0, len(rows))
	for i := range rows {
		views = append(views, dto.BatchFromModel(&rows[i]))
	}
	s.mu.Lock()
	s.batches = views
	s.mu.Unlock()
}

func (s *Store) loadWeeks(ctx context.Context) {
	rows, err := s.repo.GlobalWeek.List(ctx)
	if err != nil {
		s.logger.Error("加载周次失败，尝试读取离线快照", zap.Error(err))
		var cached []dto.GlobalWeekView
		if savedAt, ok, cerr := s.cache.GetSnapshot(ctx, redis.GlobalWeeksKey, &cached); cerr == nil && ok {
			s.logger.Warn("使用周次离线快照", zap.Time("saved_at", savedAt), zap.Int("count", len(cached)))
			s.mu.Lock()
			s.weeks = cached
			s.mu.Unlock()
			return
		}
	}
	views := make([]dto.GlobalWeekView, 0, len(rows))
	for i := range rows {
		views = append(views, dto.GlobalWeekFromModel(&rows[i]))
	}
	s.mu.Lock()
	s.weeks = views
	s.mu.Unlock()

	if err == nil {
		s.snapshotWeeks(ctx, views)
	}
}

func (s *Store) loadProjects(ctx context.Context) {
	rows, err := s.repo.Project.List(ctx)
	if err != nil {
		s.logger.Error("加载项目失败", zap.Error(err))
	}
	views := make([]dto.ProjectView, 0, len(rows))
	for i := range rows {
		views = append(views, dto.ProjectFromModel(&rows[i]))
	}
	s.mu.Lock()
	s.projects = views
	s.mu.Unlock()
}

func (s *Store) loadEvaluations(ctx context.Context) {
	rows, err := s.repo.Evaluation.List(ctx)
	if err != nil {
		s.logger.Error("加载绩效评估失败", zap.Error(err))
	}
	views := make([]dto.EvaluationView, 0, len(rows))
	for i := range rows {
		views = append(views, dto.EvaluationFromModel(&rows[i], ""))
	}
	s.mu.Lock()
	s.evaluations = views
	s.mu.Unlock()
}

func (s *Store) loadWeeklyTasks(ctx context.Context) {
	rows, err := s.repo.WeeklyTask.List(ctx)
	if err != nil {
		s.logger.Error("加载周任务失败", zap.Error(err))
	}
	views := make([]dto.WeeklyTaskView, 0, len(rows))
	for i := range rows {
		views = append(views, dto.WeeklyTaskFromModel(&rows[i]))
	}
	s.mu.Lock()
	s.weeklyTasks = views
	s.mu.Unlock()
}

func (s *Store) loadAttendance(ctx context.Context) {
	rows, err := s.repo.Attendance.List(ctx)
	if err != nil {
		s.logger.Error("加载考勤失败", zap.Error(err))
	}
	views := make([]dto.AttendanceView, 0, len(rows))
	for i := range rows {
		views = append(views, dto.AttendanceFromModel(&rows[i]))
	}
	s.mu.Lock()
	s.attendance = views
	s.mu.Unlock()
}

// ── 只读访问（返回副本）──

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Loading 是否有 LoadAll 正在进行
func (s *Store) Loading() bool {
	return s.loading.Load() > 0
}

// Interns 学员列表，最新加入的在前
func (s *Store) Interns() []dto.InternView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.interns)
}

// Streams 方向列表（含已归档）
func (s *Store) Streams() []dto.StreamView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.streams)
}

// Batches 批次列表（含已归档）
func (s *Store) Batches() []dto.BatchView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.batches)
}

// GlobalWeeks 周次列表，按周序排列
func (s *Store) GlobalWeeks() []dto.GlobalWeekView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.weeks)
}

// Projects 项目列表
func (s *Store) Projects() []dto.ProjectView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.ProjectView, len(s.projects))
	for i, p := range s.projects {
		p.AssignedInterns = clone(p.AssignedInterns)
		out[i] = p
	}
	return out
}

// Evaluations 绩效评估列表
func (s *Store) Evaluations() []dto.EvaluationView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.evaluations)
}

// WeeklyTasks 周任务列表（通用任务与个人分配）
func (s *Store) WeeklyTasks() []dto.WeeklyTaskView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.weeklyTasks)
}

// Attendance 全部考勤格子
func (s *Store) Attendance() []dto.AttendanceView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.attendance)
}

// InternByID 按 ID 查找学员
func (s *Store) InternByID(id string) (dto.InternView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.interns {
		if v.ID == id {
			return v, true
		}
	}
	return dto.InternView{}, false
}

// BatchByID 按 ID 查找批次
func (s *Store) BatchByID(id string) (dto.BatchView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batchByIDLocked(id)
}

func (s *Store) batchByIDLocked(id string) (dto.BatchView, bool) {
	for _, v := range s.batches {
		if v.ID == id {
			return v, true
		}
	}
	return dto.BatchView{}, false
}

// StreamBySlug 按 slug 查找方向（含已归档）
func (s *Store) StreamBySlug(slug string) (dto.StreamView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.streams {
		if v.Slug == slug {
			return v, true
		}
	}
	return dto.StreamView{}, false
}

// ProjectByID 按 ID 查找项目
func (s *Store) ProjectByID(id string) (dto.ProjectView, bool) {
	for _, p := range s.Projects() {
		if p.ID == id {
			return p, true
		}
	}
	return dto.ProjectView{}, false
}

// ── 当前选中批次（临时 UI 状态，不持久化）──

// SelectBatch 设置当前批次
func (s *Store) SelectBatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.batchByIDLocked(id); !ok {
		return apperrors.NotFound("batch")
	}
	s.selectedBatchID = id
	return nil
}

// SelectedBatch 当前批次；未选择或已删除时 ok=false
func (s *Store) SelectedBatch() (dto.BatchView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selectedBatchID == "" {
		return dto.BatchView{}, false
	}
	return s.batchByIDLocked(s.selectedBatchID)
}

// ClearSelectedBatch 清除当前批次
func (s *Store) ClearSelectedBatch() {
	s.mu.Lock()
	s.selectedBatchID = ""
	s.mu.Unlock()
}

// ── 错误转换 ──

// remoteErr 远端失败统一记录日志后包装为 KindRemote
// gorm.ErrRecordNotFound 转换为 NotFound，业务错误原样返回
func (s *Store) remoteErr(op, entity string, err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity)
	}
	s.logger.Error("远端操作失败", zap.String("op", op), zap.Error(err))
	return apperrors.Remote(op, err)
}
