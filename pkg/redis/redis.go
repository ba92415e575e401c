package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/harithad-26/sparks-intern-progress-tracker/config"
)

// Client Redis 客户端封装
// 用于 Token 黑名单、登录限流，以及考勤/周次的离线快照
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 限流 ──

// CheckRateLimit 滑动窗口计数：ZSET 成员为请求时间戳，先清理窗口外成员再计数
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	member := strconv.FormatInt(now.UnixNano(), 10)
	minScore := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", minScore)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixNano()), Member: member})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return card.Val() <= int64(limit), nil
}

// ── 离线快照 ──

// Snapshot 快照外层结构，与前端本地存储的 {savedAt, data} 格式保持一致
type Snapshot struct {
	SavedAt time.Time       `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

const (
	snapshotPrefix   = "sparks:snapshot:"
	GlobalWeeksKey   = "global_weeks"
	attendancePrefix = "attendance_"
)

// AttendanceKey 生成考勤快照键：attendance_<context>_<month>
func AttendanceKey(scope, month string) string {
	return attendancePrefix + strings.ReplaceAll(scope, " ", "_") + "_" + strings.ReplaceAll(month, " ", "_")
}

// PutSnapshot 写入快照，ttl<=0 表示不过期
func (c *Client) PutSnapshot(ctx context.Context, key string, data any, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("序列化快照失败: %w", err)
	}
	payload, err := json.Marshal(Snapshot{SavedAt: time.Now().UTC(), Data: raw})
	if err != nil {
		return fmt.Errorf("序列化快照失败: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	return c.rdb.Set(ctx, snapshotPrefix+key, payload, ttl).Err()
}

// GetSnapshot 读取快照并解码到 dest；键不存在时 ok=false
func (c *Client) GetSnapshot(ctx context.Context, key string, dest any) (time.Time, bool, error) {
	payload, err := c.rdb.Get(ctx, snapshotPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return time.Time{}, false, fmt.Errorf("解析快照失败: %w", err)
	}
	if err := json.Unmarshal(snap.Data, dest); err != nil {
		return time.Time{}, false, fmt.Errorf("解析快照数据失败: %w", err)
	}
	return snap.SavedAt, true, nil
}

// InvalidateSnapshot 删除快照
func (c *Client) InvalidateSnapshot(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, snapshotPrefix+key).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
