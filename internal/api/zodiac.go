// 包 api：JSON 接口路由，由主入口挂载到 API_BASE 前缀下
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"zodiac-api/internal/logger"
	"zodiac-api/internal/metrics"
	"zodiac-api/internal/store"
	"zodiac-api/internal/version"
	"zodiac-api/internal/zodiac"
)

// Stats：聚合计数的读写；为 nil 时统计关闭
type Stats interface {
	IncrStats(ctx context.Context, endpoint string, ok bool) error
	GetTotals(ctx context.Context) (*store.Totals, error)
}

const endpoint = "api"

type handler struct {
	stats Stats
}

// BuildRoutes：返回独立 ServeMux，路径不含 API_BASE 前缀
func BuildRoutes(stats Stats) *http.ServeMux {
	h := &handler{stats: stats}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /zodiac", h.zodiac)
	mux.HandleFunc("GET /stats", h.totals)
	mux.HandleFunc("GET /health", h.health)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// zodiac：name 去空白后为空则为 "there"；dob 原样使用，不去空白
func (h *handler) zodiac(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	q := r.URL.Query()
	reading, err := zodiac.Resolve(zodiac.DisplayName(q.Get("name")), q.Get("dob"))
	if err != nil {
		metrics.ObserveLookup(endpoint, metrics.OutcomeInvalid, start)
		h.record(r.Context(), false)
		logger.L().Debug("zodiac_invalid_dob", "endpoint", endpoint)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: dobHint})
		return
	}
	metrics.ObserveLookup(endpoint, metrics.OutcomeOK, start)
	metrics.ObserveSigns(reading.Western, reading.Chinese)
	h.record(r.Context(), true)
	writeJSON(w, http.StatusOK, reading)
}

// record：统计写入失败只记日志，不影响响应
func (h *handler) record(ctx context.Context, ok bool) {
	if h.stats == nil {
		return
	}
	if err := h.stats.IncrStats(ctx, endpoint, ok); err != nil {
		metrics.StatsWriteFailTotal.Inc()
		logger.L().Error("stats_incr_error", "endpoint", endpoint, "err", err)
	}
}

func (h *handler) totals(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeJSON(w, http.StatusOK, statsDisabledBody{Enabled: false})
		return
	}
	t, err := h.stats.GetTotals(r.Context())
	if err != nil {
		logger.L().Error("stats_read_error", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "stats unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Commit: version.Commit})
}
