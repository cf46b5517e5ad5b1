package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

type ctxKey int

const loggerKey ctxKey = iota

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// requestLogger tags every request with an id, echoes it in the response and
// logs the outcome once the handler returns.
func (h *handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		logger := h.logger.With(zap.String("request_id", id))
		r = r.WithContext(context.WithValue(r.Context(), loggerKey, logger))

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) requestLog(r *http.Request) *zap.Logger {
	if r != nil {
		if logger, ok := r.Context().Value(loggerKey).(*zap.Logger); ok {
			return logger
		}
	}
	return h.logger
}

// Probes and scrapes are never throttled.
var rateLimitExempt = map[string]bool{
	"/healthz": true,
	"/metrics": true,
}

type errorResponder func(w http.ResponseWriter, r *http.Request, status int, msg string, op string)

// rateLimiter throttles each client address with its own token bucket.
type rateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	max      int
	// overflow is shared by new clients once the map is full.
	overflow *rate.Limiter
	respond  errorResponder
}

func newRateLimiter(perSecond float64, burst int, respond errorResponder) *rateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		max:      10000,
		overflow: rate.NewLimiter(rate.Limit(perSecond), burst),
		respond:  respond,
	}
}

func (rl *rateLimiter) limiter(client string) *rate.Limiter {
	rl.mu.RLock()
	limiter, ok := rl.limiters[client]
	rl.mu.RUnlock()
	if ok {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if limiter, ok := rl.limiters[client]; ok {
		return limiter
	}
	// Full buckets belong to idle clients and are safe to forget.
	if len(rl.limiters) >= rl.max {
		for key, l := range rl.limiters {
			if l.Tokens() >= float64(rl.burst) {
				delete(rl.limiters, key)
			}
		}
		if len(rl.limiters) >= rl.max {
			return rl.overflow
		}
	}
	limiter = rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters[client] = limiter
	return limiter
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rateLimitExempt[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.limiter(clientAddress(r)).Allow() {
			retry := 1
			if rl.limit > 0 {
				retry = int(1/float64(rl.limit)) + 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burst))
			rl.respond(w, r, http.StatusTooManyRequests, "rate limit exceeded", "server.rateLimit")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
