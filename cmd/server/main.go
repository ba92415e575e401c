package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/config"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/api/handler"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/api/middleware"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/api/router"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/dto"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/repository"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/service"
	"github.com/harithad-26/sparks-intern-progress-tracker/internal/store"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/database"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/jwt"
	applogger "github.com/harithad-26/sparks-intern-progress-tracker/pkg/logger"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接数据库并执行迁移
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 连接 Redis（可选：失败时降级运行，黑名单、限流与离线快照不可用）
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，降级运行", zap.Error(err))
		rdb = nil
	}

	// 接口变量只在 rdb 非 nil 时赋值，避免包含 nil 指针的非 nil 接口
	var (
		blacklist service.TokenBlacklist
		limiter   middleware.RateLimiter
		opts      []store.Option
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
		if cfg.Cache.Enabled {
			opts = append(opts, store.WithSnapshotCache(rdb, cfg.Cache.TTL))
		}
	}

	// 5. 依赖注入: Repository → Store → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db, cfg.Database.TxRetries)
	st := store.New(repo, logger, opts...)
	svc := service.NewService(cfg, st, jwtMgr, blacklist, logger)
	h := handler.NewHandler(st, svc, logger)

	// 登录成功后重新加载全部集合；监听者同步调用，加载放到后台
	unsubscribe := svc.Auth.OnAuthStateChange(func(event service.AuthEvent, session *dto.SessionResponse) {
		if event != service.EventSignedIn {
			return
		}
		logger.Info("管理员登录，重新加载数据", zap.String("email", session.Email))
		go st.LoadAll(context.Background())
	})
	defer unsubscribe()

	// 启动时先加载一次
	st.LoadAll(context.Background())

	// 6. 初始化路由
	engine := router.Setup(cfg, router.Deps{
		Handler:   h,
		JWT:       jwtMgr,
		Blacklist: blacklist,
		Limiter:   limiter,
		Logger:    logger,
	})

	// 7. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 8. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("关闭数据库连接失败", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
