package utils

import (
	"os"

	"github.com/redis/go-redis/v9"

	"zodiac-api/internal/logger"
)

// OpenRedisFromEnv：REDIS_ENABLE=true 时按 REDIS_* 变量创建客户端，否则返回 nil
// 约束：REDIS_DB 非法或为负时回退到 0
func OpenRedisFromEnv() *redis.Client {
	if os.Getenv("REDIS_ENABLE") != "true" {
		return nil
	}
	addr := envOr("REDIS_HOST", "127.0.0.1") + ":" + envOr("REDIS_PORT", "6379")
	db := envInt("REDIS_DB", 0)
	if db < 0 {
		db = 0
	}
	logger.L().Debug("redis_env", "addr", addr, "db", db)
	return redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASS"), DB: db})
}
