package monitoring

import (
	"log"
	"net/http"
	"time"

	"antrian-fm/config"
	"antrian-fm/utils"

	"github.com/labstack/echo/v5"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var (
	ticketsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "antrian_tickets_created_total",
			Help: "Total tickets issued per service prefix",
		},
		[]string{"service"},
	)

	ticketTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "antrian_ticket_transitions_total",
			Help: "Total ticket status transitions",
		},
		[]string{"from", "to"},
	)

	queueLength = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "antrian_queue_length",
			Help: "Current ticket count per status",
		},
		[]string{"status"},
	)

	waitTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "antrian_wait_time_minutes",
			Help:    "Minutes between ticket creation and call",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	serviceTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "antrian_service_time_minutes",
			Help:    "Minutes between ticket call and completion",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

func TrackTicketCreated(service string) {
	ticketsCreated.WithLabelValues(service).Inc()
}

func TrackTransition(from, to string) {
	ticketTransitions.WithLabelValues(from, to).Inc()
}

func ObserveWaitTime(d time.Duration) {
	waitTime.Observe(d.Minutes())
}

func ObserveServiceTime(d time.Duration) {
	serviceTime.Observe(d.Minutes())
}

// Monitor periodically refreshes the per-status queue gauges from the store.
type Monitor struct {
	app      core.App
	interval time.Duration
	stop     chan struct{}
}

func NewMonitor(app core.App, interval time.Duration) *Monitor {
	monitor := &Monitor{
		app:      app,
		interval: interval,
		stop:     make(chan struct{}),
	}
	go monitor.collect()
	return monitor
}

func (m *Monitor) Stop() {
	close(m.stop)
}

func (m *Monitor) collect() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	statuses := []string{"waiting", "called", "serving", "completed"}
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			for _, st := range statuses {
				count, err := m.app.CountRecords("queue_tickets", dbx.HashExp{"status": st})
				if err != nil {
					log.Printf("queue gauge collect failed: %v", err)
					continue
				}
				queueLength.WithLabelValues(st).Set(float64(count))
			}
		}
	}
}

// StartMetricsServer serves /metrics and /health on the ops port. Runs until
// the process exits.
func StartMetricsServer(cfg *config.Config, redisClient *redis.Client) {
	e := echo.New()

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		if err := utils.RedisHealthCheck(redisClient); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	server := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: e}
	log.Printf("Metrics server listening on :%s", cfg.MetricsPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Metrics server stopped: %v", err)
	}
}
