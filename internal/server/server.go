package server

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/unemployment-dashboard/internal/dataset"
	"github.com/julienschmidt/httprouter"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

//go:embed static/* templates/*
var assets embed.FS

type handler struct {
	logger   *zap.Logger
	ds       *dataset.Dataset
	opts     Options
	page     *template.Template
	metrics  *metrics
	registry *prometheus.Registry
}

// NewHandler constructs the HTTP handler that serves the dashboard, its
// downloads and the JSON API. A nil logger discards logs.
func NewHandler(logger *zap.Logger, ds *dataset.Dataset, opts Options) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ds == nil {
		return nil, fmt.Errorf("server requires a dataset")
	}
	opts = opts.normalize()

	page, err := template.New("dashboard.html.tmpl").Funcs(templateFuncs).ParseFS(assets, "templates/dashboard.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard template: %w", err)
	}

	registry := prometheus.NewRegistry()
	h := &handler{
		logger:   logger,
		ds:       ds,
		opts:     opts,
		page:     page,
		metrics:  newMetrics(registry),
		registry: registry,
	}

	router := httprouter.New()

	// Dashboard page, re-rendered in full for every selection change
	h.route(router, "/", h.handleDashboard)

	// Raw data downloads
	h.route(router, "/download/csv", h.handleDownloadCSV)
	h.route(router, "/download/xlsx", h.handleDownloadXLSX)
	h.route(router, "/download/arrow", h.handleDownloadArrow)

	// Rendered charts
	h.route(router, "/charts/:section", h.handleChart)

	// JSON API
	h.route(router, "/api/dashboard", h.handleDashboardJSON)
	h.route(router, "/api/groups", h.handleGroups)
	h.route(router, "/api/version", h.handleVersion)

	h.route(router, "/healthz", h.handleHealth)
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare embedded static files: %w", err)
	}
	router.Handler(http.MethodGet, "/static/*filepath", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.respondErrorWithOp(w, r, http.StatusNotFound, "not found", "server.notFound")
	})

	var next http.Handler = router
	if opts.RateLimit > 0 {
		next = newRateLimiter(opts.RateLimit, opts.RateBurst, h.respondErrorWithOp).middleware(next)
	}
	next = h.requestLogger(next)
	if opts.Gzip {
		next = gzhttp.GzipHandler(next)
	}
	return next, nil
}

// route registers a GET handler and records its request count and latency
// under the route pattern.
func (h *handler) route(router *httprouter.Router, pattern string, handle httprouter.Handle) {
	router.GET(pattern, func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		handle(rec, r, ps)
		h.metrics.observe(pattern, rec.status, time.Since(start))
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.opts.Version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"rows":   h.ds.Len(),
	})
}

// respondErrorWithOp logs a failed request and answers with a JSON error, or
// plain text when the client asked for HTML.
func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.requestLog(r).Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	if r != nil && strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Error(w, msg, status)
		return
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
