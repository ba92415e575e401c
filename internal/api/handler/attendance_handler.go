package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/views"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// AttendanceHandler 考勤 HTTP 处理器
type AttendanceHandler struct {
	st Store
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(st Store) *AttendanceHandler {
	return &AttendanceHandler{st: st}
}

// GetAttendance 考勤记录
// GET /api/v1/attendance?context=&month=
// 指定月份时读取该 (上下文, 月份) 的整月记录，远端不可用时回退到离线快照
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	records, ok := h.query(c)
	if !ok {
		return
	}
	response.OK(c, gin.H{"list": records})
}

// Stats 考勤状态统计，过滤条件同查询
// GET /api/v1/attendance/stats
func (h *AttendanceHandler) Stats(c *gin.Context) {
	records, ok := h.query(c)
	if !ok {
		return
	}
	response.OK(c, views.AttendanceStats(records))
}

// SaveAttendance 保存一个月的考勤，整体替换该 (上下文, 月份) 的记录
// PUT /api/v1/attendance
func (h *AttendanceHandler) SaveAttendance(c *gin.Context) {
	var req dto.SaveAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}

	records, err := h.st.SaveAttendance(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// query 失败时已写入错误响应
func (h *AttendanceHandler) query(c *gin.Context) ([]dto.AttendanceView, bool) {
	var q dto.AttendanceQuery
	if !bindQuery(c, &q) {
		return nil, false
	}

	if q.Month != "" {
		scope := q.Context
		if scope == "" {
			scope = dto.DefaultAttendanceContext
		}
		records, err := h.st.AttendanceFor(c.Request.Context(), scope, q.Month)
		if err != nil {
			renderError(c, err)
			return nil, false
		}
		return nonNil(records), true
	}

	records := h.st.Attendance()
	if q.Context != "" {
		out := make([]dto.AttendanceView, 0, len(records))
		for _, r := range records {
			if r.Context == q.Context {
				out = append(out, r)
			}
		}
		records = out
	}
	return nonNil(records), true
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
