package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 结果标签取值
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zodiac_requests_total",
		Help: "Total number of zodiac lookups by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zodiac_request_duration_ms",
		Help:    "Zodiac lookup duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500},
	}, []string{"endpoint"})
	SignsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zodiac_signs_total",
		Help: "Resolved signs by system (western/chinese)",
	}, []string{"system", "sign"})
	RateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zodiac_rate_limited_total",
		Help: "Requests rejected with 429 by limiter backend",
	}, []string{"backend"})
	StatsWriteFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "zodiac_stats_write_fail_total",
		Help: "Failed writes of aggregate request counters",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(SignsTotal)
	prometheus.MustRegister(RateLimitedTotal)
	prometheus.MustRegister(StatsWriteFailTotal)
}

// ObserveLookup：记录一次查询的结果与耗时
func ObserveLookup(endpoint, outcome string, start time.Time) {
	RequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	RequestDurationMs.WithLabelValues(endpoint).Observe(float64(time.Since(start).Microseconds()) / 1000)
}

// ObserveSigns：记录命中的星座与生肖分布
func ObserveSigns(western, chinese string) {
	SignsTotal.WithLabelValues("western", western).Inc()
	SignsTotal.WithLabelValues("chinese", chinese).Inc()
}

// Handler：Prometheus 抓取入口
func Handler() http.Handler { return promhttp.Handler() }
