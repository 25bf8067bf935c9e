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

type Server struct {
	Players        roster.Store
	Events         schedule.Store
	Ledger         attendance.Ledger
	Teams          lineup.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
