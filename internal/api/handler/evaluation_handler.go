package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/views"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// EvaluationHandler 周评估 HTTP 处理器
type EvaluationHandler struct {
	st Store
}

// NewEvaluationHandler 创建 EvaluationHandler
func NewEvaluationHandler(st Store) *EvaluationHandler {
	return &EvaluationHandler{st: st}
}

// ListEvaluations 评估列表
// GET /api/v1/evaluations?batch_id=&stream=&intern_id=
// 指定 intern_id 时按周次顺序返回该学员的评估历史
func (h *EvaluationHandler) ListEvaluations(c *gin.Context) {
	var req dto.EvaluationListRequest
	if !bindQuery(c, &req) {
		return
	}
	response.OK(c, gin.H{"list": h.filter(&req)})
}

// Stats 评估统计，过滤条件同列表
// GET /api/v1/evaluations/stats
func (h *EvaluationHandler) Stats(c *gin.Context) {
	var req dto.EvaluationListRequest
	if !bindQuery(c, &req) {
		return
	}
	response.OK(c, views.EvaluationStatistics(h.filter(&req)))
}

// SaveEvaluation 保存评估：同一学员同一周次已有记录则更新，否则新增
// PUT /api/v1/evaluations
func (h *EvaluationHandler) SaveEvaluation(c *gin.Context) {
	var req dto.SaveEvaluationRequest
	if !bindJSON(c, &req) {
		return
	}

	eval, err := h.st.SavePerformanceEvaluation(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err)
		return
	}

	response.OK(c, eval)
}

func (h *EvaluationHandler) filter(req *dto.EvaluationListRequest) []dto.EvaluationView {
	evals := h.st.Evaluations()
	if req.InternID != "" {
		evals = views.InternEvaluationHistory(evals, h.st.GlobalWeeks(), req.InternID)
	}
	if req.BatchID != "" {
		evals = views.EvaluationsForBatch(evals, h.st.Interns(), req.BatchID)
	}
	if req.Stream != "" {
		evals = views.EvaluationsForStream(evals, h.st.Interns(), h.st.Streams(), req.Stream)
	}
	return evals
}
