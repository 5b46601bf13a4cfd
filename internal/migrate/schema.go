package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"zodiac-api/internal/logger"
)

// 约束：仅创建计数表；使用 IF NOT EXISTS 以便重复启动
var statements = []string{
	`CREATE TABLE IF NOT EXISTS _zodiac_stats_total (
            id INT PRIMARY KEY,
            total_queries BIGINT NOT NULL DEFAULT 0,
            failed_queries BIGINT NOT NULL DEFAULT 0
        )`,
	`CREATE TABLE IF NOT EXISTS _zodiac_stats_daily (
            day DATE NOT NULL,
            endpoint TEXT NOT NULL,
            queries BIGINT NOT NULL DEFAULT 0,
            failed BIGINT NOT NULL DEFAULT 0,
            PRIMARY KEY (day, endpoint)
        )`,
	`INSERT INTO _zodiac_stats_total(id, total_queries, failed_queries)
         VALUES(1, 0, 0)
         ON CONFLICT (id) DO NOTHING`,
}

// EnsureSchema：首次运行时建表并写入累计行
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, s := range statements {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("schema stmt %d: %w", i, err)
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
