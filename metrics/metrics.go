package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tournament"

var (
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "teams",
		Name:      "registrations_total",
		Help:      "The total number of accepted team registrations",
	}, []string{"game"})

	RejectedRegistrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "teams",
		Name:      "registrations_rejected_total",
		Help:      "The total number of refused team registrations",
	}, []string{"reason"})

	StatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "teams",
		Name:      "status_changes_total",
		Help:      "The total number of moderation status changes",
	}, []string{"status"})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "notifications_total",
		Help:      "The total number of realtime notifications by outcome",
	}, []string{"event", "outcome"})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "admin",
		Name:      "exports_total",
		Help:      "The total number of spreadsheet exports",
	}, []string{"game"})
)

// Notification outcomes.
const (
	OutcomePublished = "published"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"
)

// StatsServer serves the prometheus metrics on its own listener.
type StatsServer struct {
	server *http.Server
}

func NewStatsServer(addr string) *StatsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &StatsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: time.Second * 10,
			ReadTimeout:       time.Second * 10,
			WriteTimeout:      time.Second * 10,
			MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
		},
	}
}

func (s *StatsServer) Addr() string {
	return s.server.Addr
}

func (s *StatsServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *StatsServer) ListenAndServe() error {
	return s.server.ListenAndServe()
}

func (s *StatsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
