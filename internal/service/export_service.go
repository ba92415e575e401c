package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoAttendance = errors.New("No attendance data found to export. Please mark some attendance and save it first.")
	ErrExportNoBatches    = errors.New("No batches with start and end dates to export")
	ErrExportGenerateFail = errors.New("Failed to generate export file")
)

// ExportSource 导出所需的内存集合（由 Store 提供）
type ExportSource interface {
	Attendance() []dto.AttendanceView
	Interns() []dto.InternView
	Batches() []dto.BatchView
}

// ExportService 导出业务接口
//
// 设计说明：
//   - 考勤按 (上下文, 月份) 分块，月份按时间先后排列
//   - CSV 为对外交换格式；XLSX 在同一张 Sheet 上呈现相同分块
//   - 批次日历为每个未归档且有起止日期的批次生成一个全天事件
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	AttendanceCSV() (*bytes.Buffer, string, error)
	AttendanceXLSX() (*bytes.Buffer, string, error)
	BatchCalendar() (*bytes.Buffer, string, error)
}

type exportService struct {
	src    ExportSource
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例；loc 为导出日期所用时区
func NewExportService(src ExportSource, loc *time.Location, logger *zap.Logger) ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &exportService{src: src, loc: loc, now: time.Now, logger: logger}
}

var csvColumns = []string{"Date", "Batch/Stream", "Intern Name", "Week 1", "Week 2", "Week 3", "Week 4"}

// attendanceBlock 一个 (上下文, 月份) 分块
type attendanceBlock struct {
	Context string
	Month   string
	Rows    []attendanceRow
}

type attendanceRow struct {
	InternName string
	Weeks      [4]string
}

// exportStatus present/half-day → P，absent → A，其余 → NA
func exportStatus(status string) string {
	switch status {
	case model.AttendancePresent, model.AttendanceHalfDay:
		return "P"
	case model.AttendanceAbsent:
		return "A"
	default:
		return "NA"
	}
}

// monthTime 解析 "January 2006"；无法解析的月份排在最后
func monthTime(month string) time.Time {
	t, err := time.Parse("January 2006", month)
	if err != nil {
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return t
}

// ═══════════════════════════════════════════════════════════
// buildBlocks 将考勤格子整理为导出分块
// ═══════════════════════════════════════════════════════════
//
//   - 上下文按名称排序，同一上下文内月份按时间先后排序
//   - 每名学员一行，行序为该学员在记录中首次出现的顺序
//   - 学员已删除时显示 "Intern ID: <id>"

func (s *exportService) buildBlocks() []attendanceBlock {
	records := s.src.Attendance()
	if len(records) == 0 {
		return nil
	}

	names := make(map[string]string)
	for _, in := range s.src.Interns() {
		names[in.ID] = in.Name
	}

	type blockKey struct{ context, month string }
	index := make(map[blockKey]int)
	rowIndex := make(map[blockKey]map[string]int)
	var blocks []attendanceBlock

	for _, r := range records {
		k := blockKey{r.Context, r.Month}
		bi, ok := index[k]
		if !ok {
			bi = len(blocks)
			index[k] = bi
			rowIndex[k] = make(map[string]int)
			blocks = append(blocks, attendanceBlock{Context: r.Context, Month: r.Month})
		}

		ri, ok := rowIndex[k][r.InternID]
		if !ok {
			name, found := names[r.InternID]
			if !found {
				name = "Intern ID: " + r.InternID
			}
			row := attendanceRow{InternName: name}
			for i := range row.Weeks {
				row.Weeks[i] = "NA"
			}
			ri = len(blocks[bi].Rows)
			rowIndex[k][r.InternID] = ri
			blocks[bi].Rows = append(blocks[bi].Rows, row)
		}
		if r.Week >= 1 && r.Week <= 4 {
			blocks[bi].Rows[ri].Weeks[r.Week-1] = exportStatus(r.Status)
		}
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Context != blocks[j].Context {
			return blocks[i].Context < blocks[j].Context
		}
		return monthTime(blocks[i].Month).Before(monthTime(blocks[j].Month))
	})
	return blocks
}

func (s *exportService) exportDate() string {
	return s.now().In(s.loc).Format("02/01/2006")
}

func (s *exportService) filename(ext string) string {
	return fmt.Sprintf("Attendance_All_Records_%s.%s", s.now().In(s.loc).Format("2006-01-02"), ext)
}

// AttendanceCSV 全部考勤导出为 CSV，分块之间以空行分隔
func (s *exportService) AttendanceCSV() (*bytes.Buffer, string, error) {
	blocks := s.buildBlocks()
	if len(blocks) == 0 {
		return nil, "", ErrExportNoAttendance
	}

	date := s.exportDate()
	buf := new(bytes.Buffer)
	for i, b := range blocks {
		if i > 0 {
			buf.WriteString("\n")
		}
		w := csv.NewWriter(buf)
		_ = w.Write([]string{fmt.Sprintf("%s – %s", b.Month, b.Context)})
		_ = w.Write(csvColumns)
		for _, r := range b.Rows {
			_ = w.Write([]string{date, b.Context, r.InternName, r.Weeks[0], r.Weeks[1], r.Weeks[2], r.Weeks[3]})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			s.logger.Error("写入 CSV 失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	s.logger.Info("导出考勤 CSV", zap.Int("blocks", len(blocks)))
	return buf, s.filename("csv"), nil
}

// AttendanceXLSX 全部考勤导出为 Excel，分块依次排列在同一张 Sheet 上
func (s *exportService) AttendanceXLSX() (*bytes.Buffer, string, error) {
	blocks := s.buildBlocks()
	if len(blocks) == 0 {
		return nil, "", ErrExportNoAttendance
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "B", 16)
	f.SetColWidth(sheet, "C", "C", 28)
	f.SetColWidth(sheet, "D", "G", 10)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	date := s.exportDate()
	row := 1
	for i, b := range blocks {
		if i > 0 {
			row++ // 分块之间空一行
		}
		f.SetCellValue(sheet, cell("A", row), fmt.Sprintf("%s – %s", b.Month, b.Context))
		f.SetCellStyle(sheet, cell("A", row), cell("A", row), titleStyle)
		row++

		for c, title := range csvColumns {
			f.SetCellValue(sheet, cell(colName(c), row), title)
		}
		f.SetCellStyle(sheet, cell("A", row), cell(colName(len(csvColumns)-1), row), headerStyle)
		row++

		for _, r := range b.Rows {
			values := []string{date, b.Context, r.InternName, r.Weeks[0], r.Weeks[1], r.Weeks[2], r.Weeks[3]}
			for c, v := range values {
				f.SetCellValue(sheet, cell(colName(c), row), v)
			}
			row++
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, s.filename("xlsx"), nil
}

// BatchCalendar 未归档批次的起止日期导出为 iCalendar
func (s *exportService) BatchCalendar() (*bytes.Buffer, string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Sparks//Intern Progress Tracker//EN")
	cal.SetName("Sparks Batches")

	stamp := s.now().UTC()
	n := 0
	for _, b := range s.src.Batches() {
		if b.Status == model.StatusArchived || b.StartDate == "" || b.EndDate == "" {
			continue
		}
		start, err1 := time.Parse("2006-01-02", b.StartDate)
		end, err2 := time.Parse("2006-01-02", b.EndDate)
		if err1 != nil || err2 != nil {
			s.logger.Warn("批次日期无法解析，跳过", zap.String("batch", b.Name))
			continue
		}

		evt := cal.AddEvent(b.ID + "@sparks-intern-tracker")
		evt.SetDtStampTime(stamp)
		evt.SetSummary(b.Name)
		if b.Description != "" {
			evt.SetDescription(b.Description)
		}
		evt.SetAllDayStartAt(start)
		// 全天事件的 DTEND 不含当天
		evt.SetAllDayEndAt(end.AddDate(0, 0, 1))
		n++
	}
	if n == 0 {
		return nil, "", ErrExportNoBatches
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "batches.ics", nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
