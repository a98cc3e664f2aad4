package cache

import (
	"context"
	"time"

	"AttendSheet/storage/redis"
)

// 消费者幂等标记：同一条消息只处理一次

const (
	processedPrefix = "processed"
	processedTTL    = 24 * time.Hour
)

// MarkProcessed SetNX 占位，返回 false 表示该消息已被处理过
func MarkProcessed(ctx context.Context, messageID string) (bool, error) {
	key := redis.Key(processedPrefix, messageID)
	return redis.Client().SetNX(ctx, key, "processing", processedTTL).Result()
}

// ClearProcessed 处理失败时释放标记，允许重投后重试
func ClearProcessed(ctx context.Context, messageID string) error {
	key := redis.Key(processedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}
