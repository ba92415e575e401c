package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/api/middleware"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/service"
	apperrors "github.com/harithad-26/sparks-intern-progress-tracker/pkg/errors"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Field   string          `json:"field"`
	Data    json.RawMessage `json:"data"`
}

type listData[T any] struct {
	List []T `json:"list"`
}

type pageData[T any] struct {
	List       []T `json:"list"`
	Pagination struct {
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"pagination"`
}

func newTestHandler(st *fakeStore, auth *mockAuthService, export *mockExportService) *Handler {
	if auth == nil {
		auth = &mockAuthService{}
	}
	if export == nil {
		export = &mockExportService{}
	}
	return NewHandler(st, &service.Service{Auth: auth, Export: export}, zap.NewNop())
}

// newEngine 注册与生产一致的路由，跳过 JWT 校验，直接注入 token
func newEngine(h *Handler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/login", h.Auth.Login)
	r.POST("/auth/refresh", h.Auth.Refresh)

	a := r.Group("", func(c *gin.Context) {
		c.Set(middleware.CtxToken, "test-access-token")
		c.Next()
	})
	a.POST("/auth/logout", h.Auth.Logout)
	a.GET("/auth/session", h.Auth.Session)
	a.GET("/state", h.State.GetState)
	a.POST("/state/reload", h.State.Reload)
	a.PUT("/state/selected-batch", h.State.SelectBatch)
	a.DELETE("/state/selected-batch", h.State.ClearSelectedBatch)
	a.GET("/dashboard", h.State.Dashboard)
	a.GET("/archived", h.State.Archived)
	a.GET("/interns", h.Intern.ListInterns)
	a.GET("/interns/:id", h.Intern.GetIntern)
	a.POST("/interns", h.Intern.CreateIntern)
	a.PATCH("/interns/:id/status", h.Intern.UpdateInternStatus)
	a.GET("/streams", h.Stream.ListStreams)
	a.GET("/streams/slug/:slug", h.Stream.GetStreamBySlug)
	a.DELETE("/streams/:id", h.Stream.DeleteStream)
	a.DELETE("/batches/:id", h.Batch.DeleteBatch)
	a.GET("/batches", h.Batch.ListBatches)
	a.POST("/batches", h.Batch.CreateBatch)
	a.GET("/batches/:id/interns", h.Batch.ListBatchInterns)
	a.POST("/weeks", h.Week.CreateWeek)
	a.GET("/evaluations/stats", h.Evaluation.Stats)
	a.PUT("/evaluations", h.Evaluation.SaveEvaluation)
	a.GET("/projects", h.Project.ListProjects)
	a.POST("/projects", h.Project.CreateProject)
	a.POST("/batches/:id/projects", h.Project.CreateProject)
	a.GET("/weekly-tasks", h.WeeklyTask.ListWeeklyTasks)
	a.PATCH("/weekly-tasks/:id/status", h.WeeklyTask.UpdateStatus)
	a.GET("/attendance", h.Attendance.GetAttendance)
	a.PUT("/attendance", h.Attendance.SaveAttendance)
	a.GET("/attendance/stats", h.Attendance.Stats)
	a.GET("/export/attendance.csv", h.Export.AttendanceCSV)
	return r
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("解析响应失败: %v (%s)", err, w.Body.String())
	}
	return env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("解析 data 失败: %v (%s)", err, env.Data)
	}
	return v
}

func sampleStore() *fakeStore {
	return &fakeStore{
		streams: []dto.StreamView{
			{ID: "s-web", Name: "Web Development", Slug: "web-development", Status: "active", IsDefault: true},
			{ID: "s-old", Name: "Legacy", Slug: "legacy", Status: "archived"},
		},
		batches: []dto.BatchView{
			{ID: "b1", Name: "Batch 1", Status: "active"},
			{ID: "b2", Name: "Batch 2", Status: "archived"},
		},
		interns: []dto.InternView{
			{ID: "i1", Name: "Asha", College: "MIT", Domain: "Web Development", Batch: "Batch 1", BatchID: "b1", StreamID: "s-web", Status: "active", CreatedAt: "2025-01-02T00:00:00Z"},
			{ID: "i2", Name: "Ravi", College: "IIT", Domain: "Web Development", Batch: "Batch 1", BatchID: "b1", StreamID: "s-web", Status: "dropped", CreatedAt: "2025-01-03T00:00:00Z"},
			{ID: "i3", Name: "Meera", College: "NIT", Batch: "Batch 2", BatchID: "b2", Status: "completed", CreatedAt: "2025-01-01T00:00:00Z"},
		},
		projects: []dto.ProjectView{
			{ID: "p1", Title: "Portal", BatchID: "b1"},
			{ID: "p2", Title: "Bot", BatchID: "b2"},
		},
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := &mockAuthService{loginResult: &dto.TokenResponse{AccessToken: "a", RefreshToken: "r", ExpiresIn: 900, Email: "admin@sparks.test"}}
	r := newEngine(newTestHandler(sampleStore(), auth, nil))

	w := do(r, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "admin@sparks.test", Password: "secret"})

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}
	tok := decode[dto.TokenResponse](t, parse(t, w))
	if tok.AccessToken != "a" || tok.ExpiresIn != 900 {
		t.Errorf("Token 响应不符: %+v", tok)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	auth := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	r := newEngine(newTestHandler(sampleStore(), auth, nil))

	w := do(r, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "admin@sparks.test", Password: "wrong"})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际: %d", w.Code)
	}
	if env := parse(t, w); env.Code != codeBadCreds || env.Message != "Invalid email or password" {
		t.Errorf("响应不符: %+v", env)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	r := newEngine(newTestHandler(sampleStore(), nil, nil))

	w := do(r, http.MethodPost, "/auth/login", "invalid json")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际: %d", w.Code)
	}
	if env := parse(t, w); env.Code != codeInvalidParam {
		t.Errorf("期望错误码 %d，实际: %d", codeInvalidParam, env.Code)
	}
}

func TestAuthHandler_Login_FieldError(t *testing.T) {
	r := newEngine(newTestHandler(sampleStore(), nil, nil))

	w := do(r, http.MethodPost, "/auth/login", map[string]string{"email": "not-an-email", "password": "x"})

	env := parse(t, w)
	if w.Code != http.StatusBadRequest || env.Code != codeValidation {
		t.Fatalf("期望 400/%d，实际: %d/%d", codeValidation, w.Code, env.Code)
	}
	if env.Field != "email" || env.Message != "Please enter a valid email address" {
		t.Errorf("字段错误不符: %+v", env)
	}
}

func TestAuthHandler_Logout_UsesContextToken(t *testing.T) {
	auth := &mockAuthService{}
	r := newEngine(newTestHandler(sampleStore(), auth, nil))

	w := do(r, http.MethodPost, "/auth/logout", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}
	if auth.signedOut != "test-access-token" {
		t.Errorf("期望注销当前 Token，实际: %q", auth.signedOut)
	}
}

func TestAuthHandler_Session_Expired(t *testing.T) {
	auth := &mockAuthService{sessionErr: jwt.ErrTokenExpired}
	r := newEngine(newTestHandler(sampleStore(), auth, nil))

	w := do(r, http.MethodGet, "/auth/session", nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际: %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// Error Mapping Tests
// ═══════════════════════════════════════════════════════════

func TestRenderError_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     int
		field    string
		message  string
		endpoint string
	}{
		{"缺少批次", apperrors.MissingBatch(), http.StatusBadRequest, codeValidation, "batch", "Batch is required. Please select a batch for this intern.", "/interns"},
		{"名称重复", apperrors.DuplicateName("name", "batch"), http.StatusBadRequest, codeValidation, "name", "A batch with this name already exists", "/batches"},
		{"远端失败", apperrors.Remote("create batch", errors.New("connection refused")), http.StatusInternalServerError, 50000, "", "Something went wrong. Please try again.", "/batches"},
		{"未分类错误", errors.New("boom"), http.StatusInternalServerError, 50000, "", "Something went wrong. Please try again.", "/batches"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := sampleStore()
			st.err = tt.err
			r := newEngine(newTestHandler(st, nil, nil))

			var body interface{} = dto.CreateBatchRequest{Name: "Batch 9"}
			if tt.endpoint == "/interns" {
				body = dto.CreateInternRequest{Name: "Asha", Email: "asha@example.com"}
			}
			w := do(r, http.MethodPost, tt.endpoint, body)

			env := parse(t, w)
			if w.Code != tt.status || env.Code != tt.code {
				t.Fatalf("期望 %d/%d，实际: %d/%d", tt.status, tt.code, w.Code, env.Code)
			}
			if env.Field != tt.field || env.Message != tt.message {
				t.Errorf("响应不符: %+v", env)
			}
		})
	}
}

func TestDeleteBatch_HasDependents(t *testing.T) {
	st := sampleStore()
	st.err = apperrors.HasDependents("batch")
	r := newEngine(newTestHandler(st, nil, nil))

	w := do(r, http.MethodDelete, "/batches/b1", nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际: %d", w.Code)
	}
	env := parse(t, w)
	if env.Code != codeDependency || env.Message != "Cannot delete batch with interns. Archive it instead." {
		t.Errorf("响应不符: %+v", env)
	}
}

func TestDeleteStream_Default(t *testing.T) {
	st := sampleStore()
	st.err = apperrors.DefaultStream("Web Development")
	r := newEngine(newTestHandler(st, nil, nil))

	w := do(r, http.MethodDelete, "/streams/s-web", nil)

	if w.Code != http.StatusConflict {
		t.Errorf("期望 409，实际: %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// InternHandler Tests
// ═══════════════════════════════════════════════════════════

func TestInternHandler_List_Filters(t *testing.T) {
	r := newEngine(newTestHandler(sampleStore(), nil, nil))

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"i1", "i2", "i3"}},
		{"?stream=web-development", []string{"i1", "i2"}},
		{"?stream=Web%20Development&q=mit", []string{"i1"}},
		{"?batch=b2", []string{"i3"}},
		{"?batch=Batch%201&q=dropped", []string{"i2"}},
	}
	for _, tt := range tests {
		w := do(r, http.MethodGet, "/interns"+tt.query, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%q: 期望 200，实际: %d", tt.query, w.Code)
		}
		got := decode[listData[dto.InternView]](t, parse(t, w)).List
		if len(got) != len(tt.want) {
			t.Fatalf("%q: 期望 %v，实际: %+v", tt.query, tt.want, got)
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Errorf("%q: 第 %d 项期望 %s，实际: %s", tt.query, i, id, got[i].ID)
			}
		}
	}
}

func TestInternHandler_List_Paged(t *testing.T) {
	r := newEngine(newTestHandler(sampleStore(), nil, nil))

	w := do(r, http.MethodGet, "/interns?page=2&page_size=2", nil)

	page := decode[pageData[dto.InternView]](t, parse(t, w))
	if len(page.List) != 1 || page.List[0].ID != "i3" {
		t.Errorf("期望第 2 页仅含 i3，实际: %+v", page.List)
	}
	if page.Pagination.Total != 3 || page.Pagination.TotalPages != 2 {
		t.Errorf("分页信息不符: %+v", page.Pagination)
	}
}

func TestInternHandler_Get_NotFound(t *testing.T) {
	r := newEngine(newTestHandler(sampleStore(), nil, nil))

	w := do(r, http.MethodGet, "/interns/missing", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际: %d", w.Code)
	}
	if env := parse(t, w); env.Code != codeNotFound {
		t.Errorf("期望错误码 %d，实际: %d", codeNotFound, env.Code)
	}
}

func TestInternHandler_Create(t *testing.T) {
	r := newEngine(newTestHandler(sampleStore(), nil, nil))

	w := do(r, http.MethodPost, "/interns", dto.CreateInternRequest{Name: "Kiran", Email: "kiran@example.com", Batch: "Batch 3"})

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际: %d (%s)", w.Code, w.Body.String())
	}
	if got := decode[dto.InternView](t, parse(t, w)); got.Batch != "Batch 3" {
		t.Errorf("期望回显批次，实际: %+v", got)
	}
}

func TestInternHandler_UpdateStatus_Invalid(t *testing.T) {
	r := newEngine(newTestHandler(sampleStore(), nil, nil))

	w := do(r, http.MethodPatch, "/interns/i1/status", map[string]string{"status": "paused"})

	env := parse(t, w)
	if w.Code != http.StatusBadRequest || env.Field != "status" {
		t.Errorf("期望 status 字段错误，实际: %d %+v", w.Code, env)
	}
}

// ═══════════════════════════════════════════════════════════
// State / Catalog Tests
// ═══════════════════════════════════════════════════════════

func TestStateHandler_SelectBatchAndDashboard(t *testing.T) {
	st := sampleStore()
	r := newEngine(newTestHandler(st, nil, nil))

	if w := do(r, http.MethodPut, "/state/selected-batch", dto.SelectBatchRequest{BatchID: "missing"}); w.Code != http.StatusNotFound {
		t.Errorf("选择不存在的批次期望 404，实际: %d", w.Code)
	}
	if w := do(r, http.MethodPut, "/state/selected-batch", dto.SelectBatchRequest{BatchID: "b1"}); w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}

	state := decode[dto.StateResponse](t, parse(t, do(r, http.MethodGet, "/state", nil)))
	if state.SelectedBatchID != "b1" || state.Interns != 3 {
		t.Errorf("状态不符: %+v", state)
	}

	dash := decode[dto.DashboardResponse](t, parse(t, do(r, http.MethodGet, "/dashboard", nil)))
	if dash.Interns.Total != 3 || dash.Interns.Active != 1 || dash.Interns.Dropped != 1 || dash.Interns.Completed != 1 {
		t.Errorf("学员统计不符: %+v", dash.Interns)
	}
	if dash.StreamCount != 1 || dash.BatchCount != 1 || dash.ProjectCount != 2 {
		t.Errorf("计数不符: %+v", dash)
	}
	if len(dash.RecentInterns) != 3 || dash.RecentInterns[0].ID != "i2" {
		t.Errorf("期望最近学员按创建时间倒序，实际: %+v", dash.RecentInterns)
	}

	do(r, http.MethodDelete, "/state/selected-batch", nil)
	if st.selected != "" {
		t.Errorf("期望已清除当前批次")
	}
}

func TestStateHandler_Reload(t *testing.T) {
	st := sampleStore()
	r := newEngine(newTestHandler(st, nil, nil))

	do(r, http.MethodPost, "/state/reload", nil)

	if st.loads != 1 {
		t.Errorf("期望 LoadAll 调用 1 次，实际: %d", st.loads)
	}
}

func TestArchivedAndStreamList(t *testing.T) {
	r := newEngine(newTestHandler(sampleStore(), nil, nil))

	archived := decode[dto.ArchivedResponse](t, parse(t, do(r, http.MethodGet, "/archived", nil)))
	if len(archived.Streams) != 1 || archived.Streams[0].ID != "s-old" || len(archived.Batches) != 1 {
		t.Errorf("归档视图不符: %+v", archived)
	}

	streams := decode[listData[dto.StreamView]](t, parse(t, do(r, http.MethodGet, "/streams", nil))).List
	if len(streams) != 1 || streams[0].ID != "s-web" {
		t.Errorf("默认列表应排除归档方向，实际: %+v", streams)
	}
	all := decode[listData[dto.StreamView]](t, parse(t, do(r, http.MethodGet, "/streams?status=all", nil))).List
	if len(all) != 2 {
		t.Errorf("期望全部 2 个方向，实际: %d", len(all))
	}

	if w := do(r, http.MethodGet, "/streams/slug/web-development", nil); w.Code != http.StatusOK {
		t.Errorf("期望按 slug 查到方向，实际: %d", w.Code)
	}
}

func TestBatchHandler_ListWithCounts(t *testing.T) {
	r := newEngine(newTestHandler(sampleStore(), nil, nil))

	list := decode[listData[dto.AvailableBatch]](t, parse(t, do(r, http.MethodGet, "/batches", nil))).List
	if len(list) != 1 || list[0].ID != "b1" || list[0].InternCount != 2 {
		t.Errorf("可选批次不符: %+v", list)
	}

	interns := decode[listData[dto.InternView]](t, parse(t, do(r, http.MethodGet, "/batches/b2/interns", nil))).List
	if len(interns) != 1 || interns[0].ID != "i3" {
		t.Errorf("批次学员不符: %+v", interns)
	}
}

// ═══════════════════════════════════════════════════════════
// Project / Evaluation / Task Tests
// ═══════════════════════════════════════════════════════════

func TestProjectHandler_BatchResolution(t *testing.T) {
	st := sampleStore()
	r := newEngine(newTestHandler(st, nil, nil))
	body := dto.CreateProjectRequest{Title: "Tracker", Description: "Intern tracker"}

	w := do(r, http.MethodPost, "/projects", body)
	if env := parse(t, w); w.Code != http.StatusBadRequest || env.Field != "batchId" {
		t.Fatalf("未选批次期望 batchId 字段错误，实际: %d %+v", w.Code, env)
	}

	st.selected = "b1"
	if w := do(r, http.MethodPost, "/projects", body); w.Code != http.StatusCreated || st.lastBatchID != "b1" {
		t.Errorf("期望使用当前批次 b1，实际: %d %q", w.Code, st.lastBatchID)
	}

	if w := do(r, http.MethodPost, "/batches/b2/projects", body); w.Code != http.StatusCreated || st.lastBatchID != "b2" {
		t.Errorf("期望路径批次优先，实际: %d %q", w.Code, st.lastBatchID)
	}

	list := decode[listData[dto.ProjectView]](t, parse(t, do(r, http.MethodGet, "/projects", nil))).List
	if len(list) != 1 || list[0].ID != "p1" {
		t.Errorf("期望仅返回当前批次项目，实际: %+v", list)
	}
}

func TestEvaluationHandler_SaveAndStats(t *testing.T) {
	st := sampleStore()
	st.evaluations = []dto.EvaluationView{
		{ID: "e1", InternID: "i1", WeekID: "w1", Week: "Week 1", Ratings: dto.Ratings{Interest: 4, Enthusiasm: 4, TechnicalSkills: 3, DeadlineAdherence: 5, TeamCollaboration: 0}},
		{ID: "e2", InternID: "i3", WeekID: "w1", Week: "Week 1", Ratings: dto.Ratings{Interest: 2, Enthusiasm: 2, TechnicalSkills: 2, DeadlineAdherence: 2, TeamCollaboration: 2}},
	}
	r := newEngine(newTestHandler(st, nil, nil))

	stats := decode[dto.EvaluationStats](t, parse(t, do(r, http.MethodGet, "/evaluations/stats?batch_id=b1", nil)))
	if stats.Count != 1 || stats.InternCount != 1 {
		t.Errorf("期望仅统计 b1 的 1 条评估，实际: %+v", stats)
	}

	w := do(r, http.MethodPut, "/evaluations", map[string]interface{}{
		"internId": "i1", "weekId": "w2",
		"ratings": map[string]int{"interest": 6},
	})
	if env := parse(t, w); w.Code != http.StatusBadRequest || env.Field != "interest" {
		t.Errorf("期望 interest 超范围错误，实际: %d %+v", w.Code, env)
	}
}

func TestWeeklyTaskHandler_ListAndStatus(t *testing.T) {
	st := sampleStore()
	st.tasks = []dto.WeeklyTaskView{
		{ID: "t1", Week: "Week 1", Title: "Setup", BatchID: "b1"},
		{ID: "t2", Week: "Week 2", Title: "API", BatchID: "b2"},
		{ID: "t3", Week: "Week 1", Title: "Intro"},
	}
	r := newEngine(newTestHandler(st, nil, nil))

	list := decode[listData[dto.WeeklyTaskView]](t, parse(t, do(r, http.MethodGet, "/weekly-tasks?batch_id=b1&week=Week%201", nil))).List
	if len(list) != 2 {
		t.Errorf("期望 b1 的 Week 1 任务及通用任务共 2 条，实际: %+v", list)
	}

	w := do(r, http.MethodPatch, "/weekly-tasks/t1/status", dto.UpdateTaskStatusRequest{Status: "Completed"})
	if got := decode[dto.WeeklyTaskView](t, parse(t, w)); got.Status != "Completed" {
		t.Errorf("状态不符: %+v", got)
	}
}

// ═══════════════════════════════════════════════════════════
// Attendance / Export Tests
// ═══════════════════════════════════════════════════════════

func TestAttendanceHandler_MonthDefaultsToAll(t *testing.T) {
	st := sampleStore()
	st.attendance = []dto.AttendanceView{
		{InternID: "i1", Context: "All", Month: "October 2025", Week: 1, Status: "present"},
		{InternID: "i1", Context: "All", Month: "October 2025", Week: 2, Status: "absent"},
		{InternID: "i2", Context: "Batch 1", Month: "October 2025", Week: 1, Status: "half-day"},
	}
	r := newEngine(newTestHandler(st, nil, nil))

	list := decode[listData[dto.AttendanceView]](t, parse(t, do(r, http.MethodGet, "/attendance?month=October%202025", nil))).List
	if st.lastScope != "All" || len(list) != 2 {
		t.Errorf("期望读取 All 上下文 2 条，实际: scope=%q %+v", st.lastScope, list)
	}

	stats := decode[dto.AttendanceStats](t, parse(t, do(r, http.MethodGet, "/attendance/stats?context=Batch%201", nil)))
	if stats.HalfDay != 1 || stats.Present != 0 {
		t.Errorf("统计不符: %+v", stats)
	}

	empty := decode[listData[dto.AttendanceView]](t, parse(t, do(r, http.MethodGet, "/attendance?month=March%202020", nil))).List
	if empty == nil || len(empty) != 0 {
		t.Errorf("期望空数组，实际: %+v", empty)
	}
}

func TestAttendanceHandler_Save(t *testing.T) {
	r := newEngine(newTestHandler(sampleStore(), nil, nil))

	w := do(r, http.MethodPut, "/attendance", dto.SaveAttendanceRequest{
		Month:   "October 2025",
		Entries: []dto.AttendanceEntry{{InternID: "i1", Week: 1, Status: "present"}},
	})
	list := decode[listData[dto.AttendanceView]](t, parse(t, w)).List
	if len(list) != 1 || list[0].Context != "All" {
		t.Errorf("保存结果不符: %+v", list)
	}

	w = do(r, http.MethodPut, "/attendance", dto.SaveAttendanceRequest{
		Month:   "October 2025",
		Entries: []dto.AttendanceEntry{{InternID: "i1", Week: 5, Status: "present"}},
	})
	if env := parse(t, w); w.Code != http.StatusBadRequest || env.Field != "week" {
		t.Errorf("期望 week 字段错误，实际: %d %+v", w.Code, env)
	}
}

func TestExportHandler_CSV(t *testing.T) {
	export := &mockExportService{buf: bytes.NewBufferString("Date,Batch/Stream\n"), filename: "Attendance_All_Records_2025-10-05.csv"}
	r := newEngine(newTestHandler(sampleStore(), nil, export))

	w := do(r, http.MethodGet, "/export/attendance.csv", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Attendance_All_Records_2025-10-05.csv") {
		t.Errorf("Content-Disposition 不符: %q", cd)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type 不符: %q", ct)
	}
}

func TestExportHandler_NoAttendance(t *testing.T) {
	export := &mockExportService{err: service.ErrExportNoAttendance}
	r := newEngine(newTestHandler(sampleStore(), nil, export))

	w := do(r, http.MethodGet, "/export/attendance.csv", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际: %d", w.Code)
	}
	if env := parse(t, w); env.Code != codeExportEmpty {
		t.Errorf("期望错误码 %d，实际: %d", codeExportEmpty, env.Code)
	}
}
