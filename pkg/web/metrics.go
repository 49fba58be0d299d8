package web

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus metric descriptors for the web front-end.
type Metrics struct {
	startTime time.Time

	sessionsActive  prometheus.Gauge
	sessionsTotal   prometheus.Counter
	commandsTotal   prometheus.Counter
	gamesFinished   prometheus.Counter
	uptimeSeconds   prometheus.Gauge
	memoryHeapBytes prometheus.Gauge
	goroutines      prometheus.Gauge
}

// NewMetrics creates and registers Prometheus metrics for the server.
func NewMetrics(startTime time.Time) *Metrics {
	m := &Metrics{
		startTime: startTime,
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scottfree_sessions_active",
			Help: "Number of currently connected play sessions.",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scottfree_sessions_total",
			Help: "Total sessions since server start.",
		}),
		commandsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scottfree_commands_processed_total",
			Help: "Total player commands processed since server start.",
		}),
		gamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scottfree_games_finished_total",
			Help: "Sessions that reached an end-game state.",
		}),
		uptimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scottfree_uptime_seconds",
			Help: "Server uptime in seconds.",
		}),
		memoryHeapBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scottfree_memory_heap_bytes",
			Help: "Go heap memory allocated in bytes.",
		}),
		goroutines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scottfree_goroutines",
			Help: "Number of active goroutines.",
		}),
	}

	prometheus.MustRegister(
		m.sessionsActive,
		m.sessionsTotal,
		m.commandsTotal,
		m.gamesFinished,
		m.uptimeSeconds,
		m.memoryHeapBytes,
		m.goroutines,
	)

	return m
}

// Update refreshes the gauge metrics.
func (m *Metrics) Update() {
	m.uptimeSeconds.Set(time.Since(m.startTime).Seconds())

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	m.memoryHeapBytes.Set(float64(mem.HeapAlloc))
	m.goroutines.Set(float64(runtime.NumGoroutine()))
}

// Handler returns an http.Handler that updates metrics before serving them.
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.Update()
		promhttp.Handler().ServeHTTP(w, r)
	})
}
