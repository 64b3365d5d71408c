package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ferrum/backend/config"
	pkgerrors "ferrum/backend/pkg/errors"
)

// Client Redis 客户端封装
// 当前用于排程看板快照缓存与 Token 黑名单
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

// ── 看板快照缓存 ──

const snapshotPrefix = "planning:snapshot:"

// SetSnapshot 写入看板快照（JSON 字节），TTL 到期后自动失效
func (c *Client) SetSnapshot(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, snapshotPrefix+key, payload, ttl).Err()
}

// GetSnapshot 读取看板快照；未命中返回 ErrSnapshotMiss
func (c *Client) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.rdb.Get(ctx, snapshotPrefix+key).Bytes()
	if err == goredis.Nil {
		return nil, pkgerrors.ErrSnapshotMiss
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// InvalidateSnapshots 清除全部看板快照（基础数据变更后调用）
func (c *Client) InvalidateSnapshots(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, snapshotPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
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

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
