package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/config"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/api/handler"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/api/middleware"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/service"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/store"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/jwt"
)

// Deps 路由依赖；Blacklist 与 Limiter 为 nil 表示 Redis 不可用
type Deps struct {
	Handler   *handler.Handler
	JWT       *jwt.Manager
	Blacklist middleware.Blacklist
	Limiter   middleware.RateLimiter
	Logger    *zap.Logger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, d Deps) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	// gin 绑定校验错误的字段名与 json 标签一致
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(store.JSONFieldName)
	}

	h := d.Handler
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证），登录按 IP 限流
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(d.Limiter, cfg.Auth.LoginRateLimit, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要管理员身份的路由
		admin := v1.Group("")
		admin.Use(middleware.JWTAuth(d.JWT, d.Blacklist, d.Logger))
		admin.Use(middleware.RoleAuth(service.RoleAdmin))
		{
			admin.POST("/auth/logout", h.Auth.Logout)
			admin.GET("/auth/session", h.Auth.Session)

			// 内存状态与汇总
			state := admin.Group("/state")
			{
				state.GET("", h.State.GetState)
				state.POST("/reload", h.State.Reload)
				state.PUT("/selected-batch", h.State.SelectBatch)
				state.DELETE("/selected-batch", h.State.ClearSelectedBatch)
			}
			admin.GET("/dashboard", h.State.Dashboard)
			admin.GET("/archived", h.State.Archived)

			// 学员模块
			interns := admin.Group("/interns")
			{
				interns.GET("", h.Intern.ListInterns)
				interns.GET("/:id", h.Intern.GetIntern)
				interns.POST("", h.Intern.CreateIntern)
				interns.PUT("/:id", h.Intern.UpdateIntern)
				interns.PATCH("/:id/status", h.Intern.UpdateInternStatus)
				interns.DELETE("/:id", h.Intern.DeleteIntern)
			}

			// 方向模块
			streams := admin.Group("/streams")
			{
				streams.GET("", h.Stream.ListStreams)
				streams.GET("/stats", h.Stream.Stats)
				streams.GET("/slug/:slug", h.Stream.GetStreamBySlug)
				streams.POST("", h.Stream.CreateStream)
				streams.DELETE("/:id", h.Stream.DeleteStream)
				streams.PUT("/:id/archive", h.Stream.ArchiveStream)
				streams.PUT("/:id/restore", h.Stream.RestoreStream)
			}

			// 批次模块
			batches := admin.Group("/batches")
			{
				batches.GET("", h.Batch.ListBatches)
				batches.GET("/stats", h.Batch.Stats)
				batches.GET("/:id", h.Batch.GetBatch)
				batches.GET("/:id/interns", h.Batch.ListBatchInterns)
				batches.GET("/:id/projects", h.Project.ListProjects)
				batches.POST("", h.Batch.CreateBatch)
				batches.POST("/:id/projects", h.Project.CreateProject)
				batches.PUT("/:id", h.Batch.UpdateBatch)
				batches.DELETE("/:id", h.Batch.DeleteBatch)
				batches.PUT("/:id/archive", h.Batch.ArchiveBatch)
				batches.PUT("/:id/restore", h.Batch.RestoreBatch)
			}

			// 周次模块
			weeks := admin.Group("/weeks")
			{
				weeks.GET("", h.Week.ListWeeks)
				weeks.POST("", h.Week.CreateWeek)
				weeks.DELETE("/:id", h.Week.DeleteWeek)
			}

			// 评估模块
			evaluations := admin.Group("/evaluations")
			{
				evaluations.GET("", h.Evaluation.ListEvaluations)
				evaluations.GET("/stats", h.Evaluation.Stats)
				evaluations.PUT("", h.Evaluation.SaveEvaluation)
			}

			// 项目模块
			projects := admin.Group("/projects")
			{
				projects.GET("", h.Project.ListProjects)
				projects.GET("/:id", h.Project.GetProject)
				projects.POST("", h.Project.CreateProject)
				projects.PUT("/:id", h.Project.UpdateProject)
				projects.DELETE("/:id", h.Project.DeleteProject)
			}

			// 周任务模块
			tasks := admin.Group("/weekly-tasks")
			{
				tasks.GET("", h.WeeklyTask.ListWeeklyTasks)
				tasks.POST("", h.WeeklyTask.CreateWeeklyTask)
				tasks.POST("/assignments", h.WeeklyTask.CreateAssignment)
				tasks.PUT("/assignments/:id", h.WeeklyTask.UpdateAssignment)
				tasks.PATCH("/:id/status", h.WeeklyTask.UpdateStatus)
				tasks.DELETE("/:id", h.WeeklyTask.DeleteWeeklyTask)
			}

			// 考勤模块
			attendance := admin.Group("/attendance")
			{
				attendance.GET("", h.Attendance.GetAttendance)
				attendance.GET("/stats", h.Attendance.Stats)
				attendance.PUT("", h.Attendance.SaveAttendance)
			}

			// 导出模块
			export := admin.Group("/export")
			{
				export.GET("/attendance.csv", h.Export.AttendanceCSV)
				export.GET("/attendance.xlsx", h.Export.AttendanceXLSX)
				export.GET("/batches.ics", h.Export.BatchCalendar)
			}
		}
	}

	return r
}
