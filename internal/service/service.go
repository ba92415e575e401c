package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/config"
	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/jwt"
)

// Service 所有 Service 的聚合入口
// 实体增删改由 store.Store 直接承担，这里只放不属于内存状态的业务
type Service struct {
	Auth   AuthService
	Export ExportService
}

// NewService 创建 Service 聚合；blacklist 为 nil 表示 Redis 不可用
func NewService(
	cfg *config.Config,
	src ExportSource,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	loc, err := time.LoadLocation(cfg.Export.Timezone)
	if err != nil {
		logger.Warn("导出时区无效，使用 UTC", zap.String("timezone", cfg.Export.Timezone))
		loc = time.UTC
	}
	return &Service{
		Auth:   NewAuthService(&cfg.Auth, jwtMgr, blacklist, logger),
		Export: NewExportService(src, loc, logger),
	}
}
