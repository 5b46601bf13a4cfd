// 程序入口：读取环境变量、初始化可选依赖（PostgreSQL 统计、Redis 限流）并启动 HTTP 服务
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"zodiac-api/internal/api"
	"zodiac-api/internal/logger"
	"zodiac-api/internal/metrics"
	"zodiac-api/internal/middleware"
	"zodiac-api/internal/migrate"
	"zodiac-api/internal/store"
	"zodiac-api/internal/utils"
	"zodiac-api/internal/version"
	"zodiac-api/internal/web"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
	l := logger.Setup()
	l.Info("starting", "commit", version.Commit)

	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = "/api"
	}
	l.Debug("config_api_base", "base", apiBase)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 统计为可选项：数据库不可用时仅关闭统计，不影响查询
	var stats api.Stats
	if os.Getenv("STATS_ENABLE") == "true" {
		if st := openStats(ctx); st != nil {
			defer st.Close()
			stats = st
		}
	} else {
		l.Info("stats_disabled")
	}

	rc := utils.OpenRedisFromEnv()
	if rc == nil {
		l.Info("redis_disabled")
	} else {
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
	}

	s := &http.Server{
		Addr:              envAddr(),
		Handler:           buildHandler(apiBase, stats, rc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- serve(s) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("server_error", "err", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		l.Info("shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			l.Error("shutdown_error", "err", err)
		}
	}
}

// buildHandler：API 挂载在 apiBase 下，其余路径交给表单页
func buildHandler(apiBase string, stats api.Stats, rc *redis.Client) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(apiBase+"/", http.StripPrefix(apiBase, api.BuildRoutes(stats)))
	mux.Handle(apiBase+"/metrics", metrics.Handler())
	mux.Handle("/", web.NewHandler(stats, apiBase))

	handler := logger.AccessMiddleware(logger.L())(mux)
	return middleware.Wrap(handler, rc)
}

func openStats(ctx context.Context) *store.Store {
	l := logger.L()
	db, err := utils.OpenPostgresFromEnv()
	if err != nil {
		l.Error("db_open_error", "err", err)
		return nil
	}
	if err := db.PingContext(ctx); err != nil {
		l.Error("db_ping_error", "err", err)
		_ = db.Close()
		return nil
	}
	l.Info("db_ping_ok")
	if err := migrate.EnsureSchema(ctx, db); err != nil {
		l.Error("schema_error", "err", err)
		_ = db.Close()
		return nil
	}
	return store.AttachDB(db)
}

func envAddr() string {
	if addr := os.Getenv("ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}

// serve：TLS_ENABLE=true 时使用（必要时自动生成的）自签证书
func serve(s *http.Server) error {
	l := logger.L()
	if os.Getenv("TLS_ENABLE") != "true" {
		l.Info("listening", "addr", s.Addr)
		return s.ListenAndServe()
	}
	certPath := os.Getenv("TLS_CERT_PATH")
	if certPath == "" {
		certPath = filepath.Join("data", "certs", "server.crt")
	}
	keyPath := os.Getenv("TLS_KEY_PATH")
	if keyPath == "" {
		keyPath = filepath.Join("data", "certs", "server.key")
	}
	if err := utils.EnsureSelfSignedCert(certPath, keyPath, "zodiac.local"); err != nil {
		return err
	}
	l.Info("listening_tls", "addr", s.Addr, "cert", certPath)
	return s.ListenAndServeTLS(certPath, keyPath)
}
