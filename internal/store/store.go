// 包 store：PostgreSQL 访问层，仅保存聚合请求计数，不保存姓名与生日
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"zodiac-api/internal/logger"
)

// Store：持有连接池并提供计数读写
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// Totals：累计查询数、当日查询数、累计失败数
type Totals struct {
	Total  int64 `json:"total"`
	Today  int64 `json:"today"`
	Failed int64 `json:"failed"`
}

// IncrStats：查询结束后递增累计与当日计数；ok 为 false 时同时递增失败计数
func (s *Store) IncrStats(ctx context.Context, endpoint string, ok bool) error {
	failed := 0
	if !ok {
		failed = 1
	}
	if _, err := s.db.ExecContext(ctx,
		"UPDATE _zodiac_stats_total SET total_queries=total_queries+1, failed_queries=failed_queries+$1 WHERE id=1",
		failed); err != nil {
		return fmt.Errorf("incr total: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO _zodiac_stats_daily(day, endpoint, queries, failed) VALUES(current_date, $1, 1, $2)
        ON CONFLICT (day, endpoint) DO UPDATE SET queries=_zodiac_stats_daily.queries+1, failed=_zodiac_stats_daily.failed+EXCLUDED.failed`,
		endpoint, failed); err != nil {
		return fmt.Errorf("incr daily: %w", err)
	}
	logger.L().Debug("stats_incr", "endpoint", endpoint, "ok", ok)
	return nil
}

// GetTotals：读取累计与当日计数；当日尚无记录时 Today 为 0
func (s *Store) GetTotals(ctx context.Context) (*Totals, error) {
	var t Totals
	row := s.db.QueryRowContext(ctx, "SELECT total_queries, failed_queries FROM _zodiac_stats_total WHERE id=1")
	if err := row.Scan(&t.Total, &t.Failed); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read total: %w", err)
	}
	row2 := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(queries), 0) FROM _zodiac_stats_daily WHERE day=current_date")
	if err := row2.Scan(&t.Today); err != nil {
		return nil, fmt.Errorf("read daily: %w", err)
	}
	logger.L().Debug("stats_totals", "total", t.Total, "today", t.Today, "failed", t.Failed)
	return &t, nil
}
