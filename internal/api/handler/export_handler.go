package handler

import (
	"bytes"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/service"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// AttendanceCSV 导出全部考勤（CSV）
// GET /api/v1/export/attendance.csv
func (h *ExportHandler) AttendanceCSV(c *gin.Context) {
	h.send(c, "text/csv; charset=utf-8", h.exportSvc.AttendanceCSV)
}

// AttendanceXLSX 导出全部考勤（Excel）
// GET /api/v1/export/attendance.xlsx
func (h *ExportHandler) AttendanceXLSX(c *gin.Context) {
	h.send(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", h.exportSvc.AttendanceXLSX)
}

// BatchCalendar 导出批次日历（iCalendar）
// GET /api/v1/export/batches.ics
func (h *ExportHandler) BatchCalendar(c *gin.Context) {
	h.send(c, "text/calendar; charset=utf-8", h.exportSvc.BatchCalendar)
}

func (h *ExportHandler) send(c *gin.Context, contentType string, build func() (*bytes.Buffer, string, error)) {
	buf, filename, err := build()
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, filename, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoAttendance), errors.Is(err, service.ErrExportNoBatches):
		response.NotFound(c, codeExportEmpty, err.Error())
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
