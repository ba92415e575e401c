package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/repository"
)

// memDB 各 mock repo 共享的内存表，使关联预加载与计数能跨实体工作
type memDB struct {
	seq         int
	interns     map[string]*model.Intern
	streams     map[string]*model.Stream
	batches     map[string]*model.Batch
	weeks       map[string]*model.GlobalWeek
	projects    map[string]*model.Project
	evaluations map[string]*model.PerformanceEvaluation
	tasks       map[string]*model.WeeklyTask
	attendance  []model.AttendanceRecord

	// fail 非 nil 时所有写操作返回该错误，模拟远端不可用
	fail error
}

func newMemDB() *memDB {
	return &memDB{
		interns:     make(map[string]*model.Intern),
		streams:     make(map[string]*model.Stream),
		batches:     make(map[string]*model.Batch),
		weeks:       make(map[string]*model.GlobalWeek),
		projects:    make(map[string]*model.Project),
		evaluations: make(map[string]*model.PerformanceEvaluation),
		tasks:       make(map[string]*model.WeeklyTask),
	}
}

func (db *memDB) nextID(prefix string) string {
	db.seq++
	return fmt.Sprintf("%s-%03d", prefix, db.seq)
}

func (db *memDB) stamp() time.Time {
	return time.Date(2025, 9, 1, 0, 0, db.seq, 0, time.UTC)
}

// repository 组装绑定到本内存表的 Repository（未绑定数据库，事务直接执行）
func (db *memDB) repository() *repository.Repository {
	return &repository.Repository{
		Intern:     &mockInternRepo{db},
		Stream:     &mockStreamRepo{db},
		Batch:      &mockBatchRepo{db},
		GlobalWeek: &mockWeekRepo{db},
		Project:    &mockProjectRepo{db},
		Evaluation: &mockEvaluationRepo{db},
		WeeklyTask: &mockTaskRepo{db},
		Attendance: &mockAttendanceRepo{db},
	}
}

// ── Mock InternRepository ──

type mockInternRepo struct{ db *memDB }

func (m *mockInternRepo) Create(_ context.Context, intern *model.Intern) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	intern.ID = m.db.nextID("intern")
	intern.CreatedAt = m.db.stamp()
	intern.UpdatedAt = intern.CreatedAt
	cp := *intern
	cp.Stream, cp.Batch = nil, nil
	m.db.interns[intern.ID] = &cp
	return nil
}

func (m *mockInternRepo) GetByID(_ context.Context, id string) (*model.Intern, error) {
	row, ok := m.db.interns[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	cp.Batch = m.db.batches[cp.BatchID]
	if cp.StreamID != nil {
		cp.Stream = m.db.streams[*cp.StreamID]
	}
	return &cp, nil
}

func (m *mockInternRepo) List(ctx context.Context) ([]model.Intern, error) {
	var out []model.Intern
	for id := range m.db.interns {
		row, _ := m.GetByID(ctx, id)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockInternRepo) Update(_ context.Context, id string, updates map[string]interface{}) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	row, ok := m.db.interns[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			row.Name = v.(string)
		case "email":
			row.Email = v.(string)
		case "status":
			row.Status = v.(string)
		case "notes":
			row.Notes = v.(string)
		case "batch_id":
			row.BatchID = v.(string)
		case "stream_id":
			if v == nil {
				row.StreamID = nil
			} else {
				sid := v.(string)
				row.StreamID = &sid
			}
		}
	}
	return nil
}

func (m *mockInternRepo) Delete(_ context.Context, id string) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	if _, ok := m.db.interns[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.db.interns, id)
	return nil
}

func (m *mockInternRepo) CountByBatch(_ context.Context, batchID string) (int64, error) {
	var n int64
	for _, row := range m.db.interns {
		if row.BatchID == batchID {
			n++
		}
	}
	return n, nil
}

func (m *mockInternRepo) CountByStream(_ context.Context, streamID string) (int64, error) {
	var n int64
	for _, row := range m.db.interns {
		if row.StreamID != nil && *row.StreamID == streamID {
			n++
		}
	}
	return n, nil
}

// ── Mock StreamRepository ──

type mockStreamRepo struct{ db *memDB }

func (m *mockStreamRepo) Create(_ context.Context, stream *model.Stream) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	stream.ID = m.db.nextID("stream")
	stream.CreatedAt = m.db.stamp()
	cp := *stream
	m.db.streams[stream.ID] = &cp
	return nil
}

func (m *mockStreamRepo) GetByID(_ context.Context, id string) (*model.Stream, error) {
	if row, ok := m.db.streams[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStreamRepo) GetByName(_ context.Context, name string) (*model.Stream, error) {
	for _, row := range m.db.streams {
		if row.Name == name {
			cp := *row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStreamRepo) List(_ context.Context) ([]model.Stream, error) {
	var out []model.Stream
	for _, row := range m.db.streams {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockStreamRepo) UpdateStatus(_ context.Context, id, status string) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	row, ok := m.db.streams[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Status = status
	return nil
}

func (m *mockStreamRepo) Delete(_ context.Context, id string) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	row, ok := m.db.streams[id]
	if !ok || row.IsDefault {
		return gorm.ErrRecordNotFound
	}
	delete(m.db.streams, id)
	return nil
}

// ── Mock BatchRepository ──

type mockBatchRepo struct{ db *memDB }

func (m *mockBatchRepo) Create(_ context.Context, batch *model.Batch) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	batch.ID = m.db.nextID("batch")
	batch.CreatedAt = m.db.stamp()
	cp := *batch
	m.db.batches[batch.ID] = &cp
	return nil
}

func (m *mockBatchRepo) GetByID(_ context.Context, id string) (*model.Batch, error) {
	if row, ok := m.db.batches[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBatchRepo) GetByName(_ context.Context, name string) (*model.Batch, error) {
	for _, row := range m.db.batches {
		if row.Name == name {
			cp := *row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBatchRepo) List(_ context.Context) ([]model.Batch, error) {
	var out []model.Batch
	for _, row := range m.db.batches {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockBatchRepo) Update(_ context.Context, id string, updates map[string]interface{}) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	row, ok := m.db.batches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		row.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		row.Description = v.(string)
	}
	return nil
}

func (m *mockBatchRepo) UpdateStatus(_ context.Context, id, status string) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	row, ok := m.db.batches[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Status = status
	return nil
}

func (m *mockBatchRepo) Delete(_ context.Context, id string) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	if _, ok := m.db.batches[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.db.batches, id)
	return nil
}

// ── Mock GlobalWeekRepository ──

type mockWeekRepo struct{ db *memDB }

func (m *mockWeekRepo) Create(_ context.Context, week *model.GlobalWeek) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	week.ID = m.db.nextID("week")
	cp := *week
	m.db.weeks[week.ID] = &cp
	return nil
}

func (m *mockWeekRepo) List(_ context.Context) ([]model.GlobalWeek, error) {
	if m.db.fail != nil {
		return nil, m.db.fail
	}
	var out []model.GlobalWeek
	for _, row := range m.db.weeks {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekOrder < out[j].WeekOrder })
	return out, nil
}

func (m *mockWeekRepo) Delete(_ context.Context, id string) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	if _, ok := m.db.weeks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.db.weeks, id)
	for eid, e := range m.db.evaluations {
		if e.WeekID == id {
			delete(m.db.evaluations, eid)
		}
	}
	return nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct{ db *memDB }

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	project.ID = m.db.nextID("project")
	project.CreatedAt = m.db.stamp()
	cp := *project
	m.db.projects[project.ID] = &cp
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	row, ok := m.db.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	cp.Assignments = append([]model.ProjectAssignment(nil), row.Assignments...)
	return &cp, nil
}

func (m *mockProjectRepo) List(_ context.Context) ([]model.Project, error) {
	var out []model.Project
	for _, row := range m.db.projects {
		out = append(out, *row)
	}
	return out, nil
}

func (m *mockProjectRepo) Update(_ context.Context, id string, updates map[string]interface{}) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	row, ok := m.db.projects[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["title"]; ok {
		row.Title = v.(string)
	}
	if v, ok := updates["status"]; ok {
		row.Status = v.(string)
	}
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	if _, ok := m.db.projects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.db.projects, id)
	return nil
}

func (m *mockProjectRepo) ReplaceAssignments(_ context.Context, projectID string, rows []model.ProjectAssignment) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	row, ok := m.db.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Assignments = append([]model.ProjectAssignment(nil), rows...)
	return nil
}

// ── Mock EvaluationRepository ──

type mockEvaluationRepo struct{ db *memDB }

func (m *mockEvaluationRepo) Create(_ context.Context, eval *model.PerformanceEvaluation) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	eval.ID = m.db.nextID("eval")
	eval.UpdatedAt = m.db.stamp()
	cp := *eval
	m.db.evaluations[eval.ID] = &cp
	return nil
}

func (m *mockEvaluationRepo) GetByInternAndWeek(_ context.Context, internID, weekID string) (*model.PerformanceEvaluation, error) {
	for _, row := range m.db.evaluations {
		if row.InternID == internID && row.WeekID == weekID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEvaluationRepo) Update(_ context.Context, eval *model.PerformanceEvaluation) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	cp := *eval
	m.db.evaluations[eval.ID] = &cp
	return nil
}

func (m *mockEvaluationRepo) List(_ context.Context) ([]model.PerformanceEvaluation, error) {
	var out []model.PerformanceEvaluation
	for _, row := range m.db.evaluations {
		cp := *row
		cp.Week = m.db.weeks[row.WeekID]
		out = append(out, cp)
	}
	return out, nil
}

// ── Mock WeeklyTaskRepository ──

type mockTaskRepo struct{ db *memDB }

func (m *mockTaskRepo) Create(_ context.Context, task *model.WeeklyTask) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	task.ID = m.db.nextID("task")
	task.CreatedAt = m.db.stamp()
	cp := *task
	m.db.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.WeeklyTask, error) {
	if row, ok := m.db.tasks[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) List(_ context.Context) ([]model.WeeklyTask, error) {
	var out []model.WeeklyTask
	for _, row := range m.db.tasks {
		out = append(out, *row)
	}
	return out, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.WeeklyTask) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	cp := *task
	m.db.tasks[task.ID] = &cp
	return nil
}

func (m *mockTaskRepo) UpdateStatus(_ context.Context, id, status string) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	row, ok := m.db.tasks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Status = status
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	if _, ok := m.db.tasks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.db.tasks, id)
	for cid, row := range m.db.tasks {
		if row.TaskID != nil && *row.TaskID == id {
			delete(m.db.tasks, cid)
		}
	}
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct{ db *memDB }

func (m *mockAttendanceRepo) List(_ context.Context) ([]model.AttendanceRecord, error) {
	return append([]model.AttendanceRecord(nil), m.db.attendance...), nil
}

func (m *mockAttendanceRepo) ListByMonth(_ context.Context, scope, month string) ([]model.AttendanceRecord, error) {
	if m.db.fail != nil {
		return nil, m.db.fail
	}
	var out []model.AttendanceRecord
	for _, r := range m.db.attendance {
		if r.Context == scope && r.Month == month {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) ReplaceMonth(_ context.Context, scope, month string, rows []model.AttendanceRecord) error {
	if m.db.fail != nil {
		return m.db.fail
	}
	kept := m.db.attendance[:0]
	for _, r := range m.db.attendance {
		if r.Context != scope || r.Month != month {
			kept = append(kept, r)
		}
	}
	m.db.attendance = append(kept, rows...)
	return nil
}

// ── Fake SnapshotCache ──

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) PutSnapshot(_ context.Context, key string, data any, _ time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) GetSnapshot(_ context.Context, key string, dest any) (time.Time, bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return time.Time{}, false, nil
	}
	return time.Time{}, true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) InvalidateSnapshot(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

// seedStreams 写入默认方向
func (db *memDB) seedStreams(names ...string) {
	for _, name := range names {
		id := db.nextID("stream")
		db.streams[id] = &model.Stream{
			ID:        id,
			Name:      name,
			Slug:      strings.ToLower(strings.ReplaceAll(name, " ", "-")),
			IsDefault: true,
			Status:    model.StatusActive,
		}
	}
}
