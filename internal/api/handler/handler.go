package handler

import (
	"context"

	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/service"
)

// Store Handler 依赖的应用状态容器能力（由 store.Store 实现）
type Store interface {
	LoadAll(ctx context.Context)
	Loading() bool

	Interns() []dto.InternView
	Streams() []dto.StreamView
	Batches() []dto.BatchView
	GlobalWeeks() []dto.GlobalWeekView
	Projects() []dto.ProjectView
	Evaluations() []dto.EvaluationView
	WeeklyTasks() []dto.WeeklyTaskView
	Attendance() []dto.AttendanceView

	InternByID(id string) (dto.InternView, bool)
	BatchByID(id string) (dto.BatchView, bool)
	StreamBySlug(slug string) (dto.StreamView, bool)
	ProjectByID(id string) (dto.ProjectView, bool)

	SelectBatch(id string) error
	SelectedBatch() (dto.BatchView, bool)
	ClearSelectedBatch()

	AddIntern(ctx context.Context, req *dto.CreateInternRequest) (dto.InternView, error)
	UpdateIntern(ctx context.Context, id string, req *dto.UpdateInternRequest) (dto.InternView, error)
	UpdateInternStatus(ctx context.Context, id, status string) (dto.InternView, error)
	DeleteIntern(ctx context.Context, id string) error

	AddCustomStream(ctx context.Context, req *dto.CreateStreamRequest) (dto.StreamView, error)
	DeleteCustomStream(ctx context.Context, id string) error
	ArchiveStream(ctx context.Context, id string) (dto.StreamView, error)
	RestoreStream(ctx context.Context, id string) (dto.StreamView, error)

	AddBatch(ctx context.Context, req *dto.CreateBatchRequest) (dto.BatchView, error)
	UpdateBatch(ctx context.Context, id string, req *dto.UpdateBatchRequest) (dto.BatchView, error)
	DeleteBatch(ctx context.Context, id string) error
	ArchiveBatch(ctx context.Context, id string) (dto.BatchView, error)
	RestoreBatch(ctx context.Context, id string) (dto.BatchView, error)

	AddGlobalWeek(ctx context.Context, req *dto.CreateGlobalWeekRequest) (dto.GlobalWeekView, error)
	DeleteGlobalWeek(ctx context.Context, id string) error

	SavePerformanceEvaluation(ctx context.Context, req *dto.SaveEvaluationRequest) (dto.EvaluationView, error)

	AddProject(ctx context.Context, batchID string, req *dto.CreateProjectRequest) (dto.ProjectView, error)
	UpdateProject(ctx context.Context, id string, req *dto.UpdateProjectRequest) (dto.ProjectView, error)
	DeleteProject(ctx context.Context, id string) error

	AddWeeklyTask(ctx context.Context, req *dto.CreateWeeklyTaskRequest) (dto.WeeklyTaskView, error)
	AddTaskAssignment(ctx context.Context, req *dto.TaskAssignmentRequest) (dto.WeeklyTaskView, error)
	UpdateTaskAssignment(ctx context.Context, id string, req *dto.TaskAssignmentRequest) (dto.WeeklyTaskView, error)
	UpdateWeeklyTaskStatus(ctx context.Context, id string, req *dto.UpdateTaskStatusRequest) (dto.WeeklyTaskView, error)
	DeleteWeeklyTask(ctx context.Context, id string) error

	SaveAttendance(ctx context.Context, req *dto.SaveAttendanceRequest) ([]dto.AttendanceView, error)
	AttendanceFor(ctx context.Context, scope, month string) ([]dto.AttendanceView, error)
}

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	State      *StateHandler
	Intern     *InternHandler
	Stream     *StreamHandler
	Batch      *BatchHandler
	Week       *WeekHandler
	Evaluation *EvaluationHandler
	Project    *ProjectHandler
	WeeklyTask *WeeklyTaskHandler
	Attendance *AttendanceHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(st Store, svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		State:      NewStateHandler(st, logger),
		Intern:     NewInternHandler(st),
		Stream:     NewStreamHandler(st),
		Batch:      NewBatchHandler(st),
		Week:       NewWeekHandler(st),
		Evaluation: NewEvaluationHandler(st),
		Project:    NewProjectHandler(st),
		WeeklyTask: NewWeeklyTaskHandler(st),
		Attendance: NewAttendanceHandler(st),
		Export:     NewExportHandler(svc.Export),
	}
}
