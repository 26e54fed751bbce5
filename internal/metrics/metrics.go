// Package metrics exposes Prometheus counters for the ticket pipeline and an
// optional HTTP server for /metrics and /healthz. The server only runs when
// the operator sets a metrics address; the one-shot CLI works without it.
package metrics

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the analyzer.
type Metrics struct {
	TicketsParsed   prometheus.Counter
	TicketsDropped  prometheus.Counter
	TicketsAnalyzed prometheus.Counter
	ResolverTier    *prometheus.CounterVec // labels: tier=file|cache|default
	StoreSaveDur    prometheus.Histogram
}

// New registers and returns all metrics.
func New() *Metrics {
	m := &Metrics{
		TicketsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticketanalyzer_tickets_parsed_total",
			Help: "Tickets successfully mapped from input documents",
		}),
		TicketsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticketanalyzer_tickets_dropped_total",
			Help: "Tickets dropped during mapping (bad dates, bad fields)",
		}),
		TicketsAnalyzed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ticketanalyzer_tickets_analyzed_total",
			Help: "Tickets that matched the requested route",
		}),
		ResolverTier: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketanalyzer_resolver_tier_total",
			Help: "Data source tier attempts (file, cache, default)",
		}, []string{"tier"}),
		StoreSaveDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ticketanalyzer_store_save_duration_seconds",
			Help:    "Batch cache write latency",
			Buckets: prometheus.DefBuckets,
		}),
	}

	prometheus.MustRegister(
		m.TicketsParsed,
		m.TicketsDropped,
		m.TicketsAnalyzed,
		m.ResolverTier,
		m.StoreSaveDur,
	)

	return m
}

// HealthStatus reports backend connectivity for /healthz.
type HealthStatus struct {
	mu sync.RWMutex

	SQLiteOK        bool
	RedisConnected  bool
	SQLiteLatencyMs float64
	RedisLatencyMs  float64
	LastCheckAt     time.Time
	StartedAt       time.Time
}

// NewHealthStatus returns a default health status.
func NewHealthStatus() *HealthStatus {
	return &HealthStatus{StartedAt: time.Now()}
}

// CheckSQLite runs a ping and records latency + health.
func (h *HealthStatus) CheckSQLite(ctx context.Context, db *sql.DB) {
	start := time.Now()
	err := db.PingContext(ctx)
	latency := time.Since(start)

	h.mu.Lock()
	h.SQLiteOK = err == nil
	h.SQLiteLatencyMs = float64(latency.Microseconds()) / 1000.0
	h.LastCheckAt = time.Now()
	h.mu.Unlock()
}

// CheckRedis pings Redis and records latency + connectivity.
func (h *HealthStatus) CheckRedis(ctx context.Context, rdb *goredis.Client) {
	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start)

	h.mu.Lock()
	h.RedisConnected = err == nil
	h.RedisLatencyMs = float64(latency.Microseconds()) / 1000.0
	h.LastCheckAt = time.Now()
	h.mu.Unlock()
}

// ServeHTTP handles the /healthz endpoint.
func (h *HealthStatus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	overall := "healthy"
	httpCode := http.StatusOK
	if !h.SQLiteOK && !h.RedisConnected {
		overall = "degraded"
		httpCode = http.StatusServiceUnavailable
	}

	status := struct {
		Status          string  `json:"status"`
		Uptime          string  `json:"uptime"`
		SQLiteOK        bool    `json:"sqlite_ok"`
		SQLiteLatencyMs float64 `json:"sqlite_latency_ms"`
		RedisConnected  bool    `json:"redis_connected"`
		RedisLatencyMs  float64 `json:"redis_latency_ms"`
		LastCheckAt     string  `json:"last_check_at"`
	}{
		Status:          overall,
		Uptime:          time.Since(h.StartedAt).Round(time.Second).String(),
		SQLiteOK:        h.SQLiteOK,
		SQLiteLatencyMs: h.SQLiteLatencyMs,
		RedisConnected:  h.RedisConnected,
		RedisLatencyMs:  h.RedisLatencyMs,
		LastCheckAt:     h.LastCheckAt.Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if httpCode != http.StatusOK {
		w.WriteHeader(httpCode)
	}
	json.NewEncoder(w).Encode(status)
}

// Server runs an HTTP server exposing /metrics and /healthz.
type Server struct {
	addr string
	srv  *http.Server
}

// NewServer creates a metrics and health server.
func NewServer(addr string, health *HealthStatus) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", health.ServeHTTP)

	return &Server{
		addr: addr,
		srv: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		log.Printf("[metrics] server listening on %s", s.addr)
		if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("[metrics] server error: %v", err)
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) {
	s.srv.Shutdown(ctx)
}
