package http

import (
	"net/http"

	"github.com/akomarov/hockey-bot/internal/attendance"
	"github.com/akomarov/hockey-bot/internal/config"
	"github.com/akomarov/hockey-bot/internal/lineup"
	"github.com/akomarov/hockey-bot/internal/metrics"
	"github.com/akomarov/hockey-bot/internal/roster"
	"github.com/akomarov/hockey-bot/internal/schedule"
)

func NewServer(players roster.Store, events schedule.Store, ledger attendance.Ledger, teams lineup.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Players:        players,
		Events:         events,
		Ledger:         ledger,
		Teams:          teams,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/", Chain(s.HealthCheckHandler(), loggingMiddleware))
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), loggingMiddleware))
	s.Router.Handle("/events", Chain(s.ListEventsHandler(), loggingMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), loggingMiddleware))
	s.Router.Handle("/participants", Chain(s.ListParticipantsHandler(), loggingMiddleware))
	s.Router.Handle("/teams", Chain(s.ListTeamsHandler(), loggingMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
