package httpserver

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"hotel_allocation/internal/adapters/observability"
)

func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return http.TimeoutHandler(next, d, "timeout") }
}

// ---- status-recording ResponseWriter ----

type srw struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *srw) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *srw) Write(b []byte) (int, error) {
	if !w.wrote {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *srw) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// ---- Metrics middleware ----

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &srw{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}
		observability.ObserveHTTP(route, r.Method, sw.Status(), time.Since(start))
	})
}

// ---- Structured logging middleware ----

func Logger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &srw{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			l.Info().
				Str("route", route).
				Str("method", r.Method).
				Int("status", sw.Status()).
				Dur("duration", time.Since(start)).
				Str("remote", remoteIP(r)).
				Str("ua", r.UserAgent()).
				Msg("http_request")
		})
	}
}

// Picks first X-Forwarded-For IP, else X-Real-IP, else RemoteAddr host.
func remoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// ---- Per-tenant rate limiting ----

// TenantLimiter hands out one token bucket per tenant. Buckets idle for
// longer than IdleTTL are swept, and the map never holds more than MaxTenants
// entries; when full, the least recently used bucket is dropped.
type TenantLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	buckets map[string]*tenantBucket

	IdleTTL    time.Duration
	MaxTenants int

	now       func() time.Time
	lastSweep time.Time
}

type tenantBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

const (
	defaultLimiterIdleTTL    = 10 * time.Minute
	defaultLimiterMaxTenants = 10000
)

func NewTenantLimiter(rps float64, burst int) *TenantLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &TenantLimiter{
		rps:        rate.Limit(rps),
		burst:      burst,
		buckets:    map[string]*tenantBucket{},
		IdleTTL:    defaultLimiterIdleTTL,
		MaxTenants: defaultLimiterMaxTenants,
		now:        time.Now,
	}
}

// Len reports how many tenant buckets are currently held.
func (t *TenantLimiter) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.buckets)
}

func (t *TenantLimiter) get(tenant string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if b, ok := t.buckets[tenant]; ok {
		b.lastSeen = now
		return b.lim
	}

	if t.IdleTTL > 0 && now.Sub(t.lastSweep) >= t.IdleTTL {
		t.sweep(now)
	}
	if t.MaxTenants > 0 && len(t.buckets) >= t.MaxTenants {
		t.sweep(now)
		for len(t.buckets) >= t.MaxTenants {
			t.evictOldest()
		}
	}

	b := &tenantBucket{lim: rate.NewLimiter(t.rps, t.burst), lastSeen: now}
	t.buckets[tenant] = b
	return b.lim
}

// sweep drops buckets idle past IdleTTL. Caller holds mu.
func (t *TenantLimiter) sweep(now time.Time) {
	t.lastSweep = now
	if t.IdleTTL <= 0 {
		return
	}
	for k, b := range t.buckets {
		if now.Sub(b.lastSeen) > t.IdleTTL {
			delete(t.buckets, k)
		}
	}
}

func (t *TenantLimiter) evictOldest() {
	var (
		oldest string
		at     time.Time
		found  bool
	)
	for k, b := range t.buckets {
		if !found || b.lastSeen.Before(at) {
			oldest, at, found = k, b.lastSeen, true
		}
	}
	if found {
		delete(t.buckets, oldest)
	}
}

// Middleware rejects requests over the tenant's budget with 429. It must sit
// on a route that carries the {tenantID} parameter.
func (t *TenantLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t.rps <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		l := t.get(chi.URLParam(r, "tenantID"))
		res := l.Reserve()
		if d := res.Delay(); d > 0 {
			res.Cancel()
			secs := int(d.Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "solve rate limit exceeded for tenant")
			return
		}
		next.ServeHTTP(w, r)
	})
}
