package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harithad-26/sparks-intern-progress-tracker/pkg/response"
)

// RateLimiter 滑动窗口限流器（Redis 实现）
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit 按 IP + 路由限流
// limiter 为 nil 或 limit<=0 时放行；Redis 出错时降级放行
func RateLimit(limiter RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "sparks:rate:" + c.ClientIP() + ":" + c.FullPath()
		allowed, err := limiter.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err == nil && !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "Too many attempts. Please wait a minute and try again.")
			c.Abort()
			return
		}
		c.Next()
	}
}
