// 包 web：首页 HTML 表单，提交后在同一页面展示星座与生肖
package web

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"zodiac-api/internal/logger"
	"zodiac-api/internal/metrics"
	"zodiac-api/internal/zodiac"
)

//go:embed page.html
var pageHTML string

var page = template.Must(template.New("page").Parse(pageHTML))

const endpoint = "form"

// statsRecorder：聚合计数写入；为 nil 时不统计
type statsRecorder interface {
	IncrStats(ctx context.Context, endpoint string, ok bool) error
}

// pageData：模板数据；Name/DOB 用于回填表单
type pageData struct {
	Name    string
	DOB     string
	Invalid bool
	Reading *zodiac.Reading
	APIBase string
}

type handler struct {
	stats   statsRecorder
	apiBase string
}

// NewHandler：仅响应 "/" 的 GET 与 POST，其余路径 404、其余方法 405
func NewHandler(stats statsRecorder, apiBase string) http.Handler {
	h := &handler{stats: stats, apiBase: apiBase}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.show)
	mux.HandleFunc("POST /{$}", h.submit)
	return mux
}

func (h *handler) show(w http.ResponseWriter, r *http.Request) {
	h.render(w, pageData{APIBase: h.apiBase})
}

func (h *handler) submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := strings.TrimSpace(r.PostFormValue("name"))
	dob := strings.TrimSpace(r.PostFormValue("dob"))
	data := pageData{Name: name, DOB: dob, APIBase: h.apiBase}

	reading, err := zodiac.Resolve(zodiac.DisplayName(name), dob)
	if err != nil {
		data.Invalid = true
		metrics.ObserveLookup(endpoint, metrics.OutcomeInvalid, start)
	} else {
		data.Reading = &reading
		metrics.ObserveLookup(endpoint, metrics.OutcomeOK, start)
		metrics.ObserveSigns(reading.Western, reading.Chinese)
	}
	if h.stats != nil {
		if err := h.stats.IncrStats(r.Context(), endpoint, !data.Invalid); err != nil {
			metrics.StatsWriteFailTotal.Inc()
			logger.L().Error("stats_incr_error", "endpoint", endpoint, "err", err)
		}
	}
	h.render(w, data)
}

// render：先写入缓冲区，模板出错时返回 500 而不是半截页面
func (h *handler) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		logger.L().Error("page_render_error", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "text/html; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	_, _ = buf.WriteTo(w)
}
