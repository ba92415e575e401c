package handler

import (
	"bytes"
	"context"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/service"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Mock Store
// ═══════════════════════════════════════════════════════════

// fakeStore 读操作返回预置集合，写操作返回 err（为 nil 时回显请求）
type fakeStore struct {
	interns     []dto.InternView
	streams     []dto.StreamView
	batches     []dto.BatchView
	weeks       []dto.GlobalWeekView
	projects    []dto.ProjectView
	evaluations []dto.EvaluationView
	tasks       []dto.WeeklyTaskView
	attendance  []dto.AttendanceView
	selected    string
	loading     bool
	loads       int

	err error

	lastBatchID string
	lastScope   string
	lastMonth   string
}

func (f *fakeStore) LoadAll(context.Context)           { f.loads++ }
func (f *fakeStore) Loading() bool                     { return f.loading }
func (f *fakeStore) Interns() []dto.InternView         { return f.interns }
func (f *fakeStore) Streams() []dto.StreamView         { return f.streams }
func (f *fakeStore) Batches() []dto.BatchView          { return f.batches }
func (f *fakeStore) GlobalWeeks() []dto.GlobalWeekView { return f.weeks }
func (f *fakeStore) Projects() []dto.ProjectView       { return f.projects }
func (f *fakeStore) Evaluations() []dto.EvaluationView { return f.evaluations }
func (f *fakeStore) WeeklyTasks() []dto.WeeklyTaskView { return f.tasks }
func (f *fakeStore) Attendance() []dto.AttendanceView  { return f.attendance }

func (f *fakeStore) InternByID(id string) (dto.InternView, bool) {
	for _, i := range f.interns {
		if i.ID == id {
			return i, true
		}
	}
	return dto.InternView{}, false
}

func (f *fakeStore) BatchByID(id string) (dto.BatchView, bool) {
	for _, b := range f.batches {
		if b.ID == id {
			return b, true
		}
	}
	return dto.BatchView{}, false
}

func (f *fakeStore) StreamBySlug(slug string) (dto.StreamView, bool) {
	for _, s := range f.streams {
		if s.Slug == slug {
			return s, true
		}
	}
	return dto.StreamView{}, false
}

func (f *fakeStore) ProjectByID(id string) (dto.ProjectView, bool) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, true
		}
	}
	return dto.ProjectView{}, false
}

func (f *fakeStore) SelectBatch(id string) error {
	if _, ok := f.BatchByID(id); !ok {
		return apperrors.NotFound("batch")
	}
	f.selected = id
	return nil
}

func (f *fakeStore) SelectedBatch() (dto.BatchView, bool) {
	if f.selected == "" {
		return dto.BatchView{}, false
	}
	return f.BatchByID(f.selected)
}

func (f *fakeStore) ClearSelectedBatch() { f.selected = "" }

func (f *fakeStore) AddIntern(_ context.Context, req *dto.CreateInternRequest) (dto.InternView, error) {
	return dto.InternView{ID: "new-intern", Name: req.Name, Email: req.Email, Batch: req.Batch}, f.err
}
func (f *fakeStore) UpdateIntern(_ context.Context, id string, _ *dto.UpdateInternRequest) (dto.InternView, error) {
	return dto.InternView{ID: id}, f.err
}
func (f *fakeStore) UpdateInternStatus(_ context.Context, id, status string) (dto.InternView, error) {
	return dto.InternView{ID: id, Status: status}, f.err
}
func (f *fakeStore) DeleteIntern(context.Context, string) error { return f.err }

func (f *fakeStore) AddCustomStream(_ context.Context, req *dto.CreateStreamRequest) (dto.StreamView, error) {
	return dto.StreamView{ID: "new-stream", Name: req.Name}, f.err
}
func (f *fakeStore) DeleteCustomStream(context.Context, string) error { return f.err }
func (f *fakeStore) ArchiveStream(_ context.Context, id string) (dto.StreamView, error) {
	return dto.StreamView{ID: id, Status: "archived"}, f.err
}
func (f *fakeStore) RestoreStream(_ context.Context, id string) (dto.StreamView, error) {
	return dto.StreamView{ID: id, Status: "active"}, f.err
}

func (f *fakeStore) AddBatch(_ context.Context, req *dto.CreateBatchRequest) (dto.BatchView, error) {
	return dto.BatchView{ID: "new-batch", Name: req.Name}, f.err
}
func (f *fakeStore) UpdateBatch(_ context.Context, id string, _ *dto.UpdateBatchRequest) (dto.BatchView, error) {
	return dto.BatchView{ID: id}, f.err
}
func (f *fakeStore) DeleteBatch(context.Context, string) error { return f.err }
func (f *fakeStore) ArchiveBatch(_ context.Context, id string) (dto.BatchView, error) {
	return dto.BatchView{ID: id, Status: "archived"}, f.err
}
func (f *fakeStore) RestoreBatch(_ context.Context, id string) (dto.BatchView, error) {
	return dto.BatchView{ID: id, Status: "active"}, f.err
}

func (f *fakeStore) AddGlobalWeek(_ context.Context, req *dto.CreateGlobalWeekRequest) (dto.GlobalWeekView, error) {
	return dto.GlobalWeekView{ID: "new-week", Name: req.Name}, f.err
}
func (f *fakeStore) DeleteGlobalWeek(context.Context, string) error { return f.err }

func (f *fakeStore) SavePerformanceEvaluation(_ context.Context, req *dto.SaveEvaluationRequest) (dto.EvaluationView, error) {
	return dto.EvaluationView{ID: "eval", InternID: req.InternID, WeekID: req.WeekID, Ratings: req.Ratings}, f.err
}

func (f *fakeStore) AddProject(_ context.Context, batchID string, req *dto.CreateProjectRequest) (dto.ProjectView, error) {
	f.lastBatchID = batchID
	return dto.ProjectView{ID: "new-project", Title: req.Title, BatchID: batchID}, f.err
}
func (f *fakeStore) UpdateProject(_ context.Context, id string, _ *dto.UpdateProjectRequest) (dto.ProjectView, error) {
	return dto.ProjectView{ID: id}, f.err
}
func (f *fakeStore) DeleteProject(context.Context, string) error { return f.err }

func (f *fakeStore) AddWeeklyTask(_ context.Context, req *dto.CreateWeeklyTaskRequest) (dto.WeeklyTaskView, error) {
	return dto.WeeklyTaskView{ID: "new-task", Week: req.Week, Title: req.Title}, f.err
}
func (f *fakeStore) AddTaskAssignment(_ context.Context, req *dto.TaskAssignmentRequest) (dto.WeeklyTaskView, error) {
	return dto.WeeklyTaskView{ID: "assignment", TaskID: req.TaskID, InternID: req.InternID, IsAssignment: true}, f.err
}
func (f *fakeStore) UpdateTaskAssignment(_ context.Context, id string, req *dto.TaskAssignmentRequest) (dto.WeeklyTaskView, error) {
	return dto.WeeklyTaskView{ID: id, TaskID: req.TaskID, InternID: req.InternID, IsAssignment: true}, f.err
}
func (f *fakeStore) UpdateWeeklyTaskStatus(_ context.Context, id string, req *dto.UpdateTaskStatusRequest) (dto.WeeklyTaskView, error) {
	return dto.WeeklyTaskView{ID: id, Status: req.Status}, f.err
}
func (f *fakeStore) DeleteWeeklyTask(context.Context, string) error { return f.err }

func (f *fakeStore) SaveAttendance(_ context.Context, req *dto.SaveAttendanceRequest) ([]dto.AttendanceView, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]dto.AttendanceView, 0, len(req.Entries))
	for _, e := range req.Entries {
		out = append(out, dto.AttendanceView{InternID: e.InternID, Context: req.ResolvedContext(), Month: req.Month, Week: e.Week, Status: e.Status})
	}
	return out, nil
}

func (f *fakeStore) AttendanceFor(_ context.Context, scope, month string) ([]dto.AttendanceView, error) {
	f.lastScope, f.lastMonth = scope, month
	if f.err != nil {
		return nil, f.err
	}
	var out []dto.AttendanceView
	for _, r := range f.attendance {
		if r.Context == scope && r.Month == month {
			out = append(out, r)
		}
	}
	return out, nil
}

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	session       *dto.SessionResponse
	sessionErr    error
	signOutErr    error
	signedOut     string
}

func (m *mockAuthService) Login(context.Context, *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(context.Context, *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) GetSession(context.Context, string) (*dto.SessionResponse, error) {
	return m.session, m.sessionErr
}
func (m *mockAuthService) SignOut(_ context.Context, token string) error {
	m.signedOut = token
	return m.signOutErr
}
func (m *mockAuthService) OnAuthStateChange(service.AuthListener) func() { return func() {} }

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) AttendanceCSV() (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) AttendanceXLSX() (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) BatchCalendar() (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
